package gmail

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/akarpati/unimail/internal/mailbox"
	"github.com/akarpati/unimail/internal/models"
)

// metadataHeaders are the only headers the normalizer consumes, so detail
// retrieval asks for nothing more.
var metadataHeaders = []string{"Subject", "From", "Date", "Received"}

// Provider fetches messages through the Gmail REST API. Every session gets
// its own token source, so credentials never bleed between accounts.
type Provider struct {
	conf      *oauth2.Config
	listLimit int64
}

func NewProvider(clientID, clientSecret, redirectURI string, listLimit int) *Provider {
	if listLimit <= 0 {
		listLimit = 30
	}
	return &Provider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{gmailapi.GmailReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		listLimit: int64(listLimit),
	}
}

func (p *Provider) Name() string { return "gmail" }

// Open binds the credential to a fresh service instance for one account.
func (p *Provider) Open(ctx context.Context, cred mailbox.Credential) (mailbox.Session, error) {
	tok, ok := cred.(*Token)
	if !ok {
		return nil, fmt.Errorf("gmail session requires a gmail token, got %T", cred)
	}

	source := p.conf.TokenSource(ctx, tok.tok)
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &session{
		svc:       svc,
		source:    source,
		cred:      tok,
		listLimit: p.listLimit,
	}, nil
}

type session struct {
	svc       *gmailapi.Service
	source    oauth2.TokenSource
	cred      *Token
	listLimit int64
}

func (s *session) List(ctx context.Context, query models.PartitionQuery) ([]models.RawMessageRef, error) {
	resp, err := s.svc.Users.Messages.List("me").
		Q(query.Selector).
		MaxResults(s.listLimit).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list %q messages: %w", query.Tag, err)
	}

	refs := make([]models.RawMessageRef, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		refs = append(refs, models.RawMessageRef{ID: m.Id, PartitionTag: query.Tag})
	}
	return refs, nil
}

func (s *session) GetDetail(ctx context.Context, id string) (*models.RawMessageDetail, error) {
	msg, err := s.svc.Users.Messages.Get("me", id).
		Format("metadata").
		MetadataHeaders(metadataHeaders...).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	return convertMessage(msg), nil
}

// Credential reflects any silent refresh the token source performed. When
// nothing changed, the original credential is returned unchanged so callers
// can tell the two cases apart.
func (s *session) Credential() mailbox.Credential {
	tok, err := s.source.Token()
	if err != nil || tok.AccessToken == s.cred.tok.AccessToken {
		return s.cred
	}
	return NewToken(tok)
}

func (s *session) Close() error { return nil }
