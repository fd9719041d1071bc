// Package gmail talks to the Gmail REST API: it issues OAuth credential
// bundles and serves partition listings and message details for them.
package gmail

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/akarpati/unimail/internal/mailbox"
)

// Issuer runs the authorization-code exchange against Google and resolves
// the authenticated account's address.
type Issuer struct {
	conf *oauth2.Config
}

func NewIssuer(clientID, clientSecret, redirectURI string) *Issuer {
	return &Issuer{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{gmailapi.GmailReadonlyScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the consent page URL. Offline access is requested so
// the credential bundle includes a refresh token.
func (i *Issuer) AuthCodeURL(state string) string {
	return i.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for a token bundle and asks Gmail
// which profile address owns it.
func (i *Issuer) Exchange(ctx context.Context, code string) (string, mailbox.Credential, error) {
	tok, err := i.conf.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(i.conf.TokenSource(ctx, tok)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	profile, err := svc.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve profile address: %w", err)
	}

	return profile.EmailAddress, NewToken(tok), nil
}
