package gmail

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// Token is the refreshable Gmail credential bundle stored in the registry.
type Token struct {
	tok *oauth2.Token
}

func NewToken(tok *oauth2.Token) *Token {
	return &Token{tok: tok}
}

// Redacted identifies the token without leaking secret material.
func (t *Token) Redacted() string {
	if t.tok == nil {
		return "gmail token (empty)"
	}
	return fmt.Sprintf("gmail token (expires %s)", t.tok.Expiry.Format(time.RFC3339))
}
