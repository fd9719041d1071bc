package api

import (
	"context"
	"errors"

	"github.com/akarpati/unimail/internal/mailbox"
	"github.com/akarpati/unimail/internal/models"
)

type stubCredential string

func (c stubCredential) Redacted() string { return "stub credential" }

// stubSession serves a fixed set of messages for handler tests.
type stubSession struct {
	refs    []models.RawMessageRef
	details map[string]*models.RawMessageDetail
	cred    mailbox.Credential
}

func (s *stubSession) List(_ context.Context, query models.PartitionQuery) ([]models.RawMessageRef, error) {
	var out []models.RawMessageRef
	for _, ref := range s.refs {
		if ref.PartitionTag == query.Tag {
			out = append(out, ref)
		}
	}
	return out, nil
}

func (s *stubSession) GetDetail(_ context.Context, id string) (*models.RawMessageDetail, error) {
	detail, ok := s.details[id]
	if !ok {
		return nil, errors.New("no such message")
	}
	return detail, nil
}

func (s *stubSession) Credential() mailbox.Credential { return s.cred }

func (s *stubSession) Close() error { return nil }

type stubProvider struct {
	session *stubSession
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Open(_ context.Context, cred mailbox.Credential) (mailbox.Session, error) {
	if p.session.cred == nil {
		p.session.cred = cred
	}
	return p.session, nil
}

// stubIssuer hands out a canned identity instead of talking to an
// authorization server.
type stubIssuer struct {
	consentURL string
	address    string
	cred       mailbox.Credential
	err        error
}

func (i *stubIssuer) AuthCodeURL(state string) string {
	return i.consentURL + "?state=" + state
}

func (i *stubIssuer) Exchange(_ context.Context, _ string) (string, mailbox.Credential, error) {
	if i.err != nil {
		return "", nil, i.err
	}
	return i.address, i.cred, nil
}
