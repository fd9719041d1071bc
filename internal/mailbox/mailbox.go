// Package mailbox defines the contracts between the fetch pipeline and the
// concrete mail providers.
package mailbox

import (
	"context"

	"github.com/akarpati/unimail/internal/models"
)

// Credential is an opaque bundle of authentication material for one account.
// A provider may silently refresh it while a session is in use; the refreshed
// value is read back through Session.Credential so the registry can store it.
type Credential interface {
	// Redacted returns a loggable description that carries no secret
	// material.
	Redacted() string
}

// Session applies one account's credential to provider calls. A session is
// bound to exactly one credential and shares no state with other sessions.
type Session interface {
	// List returns lightweight refs for one partition of the mailbox.
	List(ctx context.Context, query models.PartitionQuery) ([]models.RawMessageRef, error)

	// GetDetail retrieves the full detail for one message id.
	GetDetail(ctx context.Context, id string) (*models.RawMessageDetail, error)

	// Credential returns the current credential, reflecting any silent
	// refresh that happened during the session.
	Credential() Credential

	Close() error
}

// Provider opens per-account sessions against one mail backend.
type Provider interface {
	Name() string
	Open(ctx context.Context, cred Credential) (Session, error)
}

// Issuer exchanges an authorization code for the authenticated account's
// address and its credential bundle.
type Issuer interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (address string, cred Credential, err error)
}
