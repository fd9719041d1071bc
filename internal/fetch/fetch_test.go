package fetch

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/akarpati/unimail/internal/mailbox"
	"github.com/akarpati/unimail/internal/models"
)

// fakeCredential is an inert credential for pipeline tests.
type fakeCredential string

func (c fakeCredential) Redacted() string { return "fake credential " + string(c) }

// fakeSession serves canned listings and details for one account.
type fakeSession struct {
	lists      map[string][]models.RawMessageRef // keyed by partition tag
	listErrs   map[string]error
	details    map[string]*models.RawMessageDetail
	detailErrs map[string]error

	// cred is what Credential() reports; set it to something new to
	// simulate a silent refresh.
	cred mailbox.Credential

	closed atomic.Bool
}

func (s *fakeSession) List(_ context.Context, query models.PartitionQuery) ([]models.RawMessageRef, error) {
	if err := s.listErrs[query.Tag]; err != nil {
		return nil, err
	}
	return s.lists[query.Tag], nil
}

func (s *fakeSession) GetDetail(_ context.Context, id string) (*models.RawMessageDetail, error) {
	if err := s.detailErrs[id]; err != nil {
		return nil, err
	}
	detail, ok := s.details[id]
	if !ok {
		return nil, errors.New("no such message")
	}
	return detail, nil
}

func (s *fakeSession) Credential() mailbox.Credential { return s.cred }

func (s *fakeSession) Close() error {
	s.closed.Store(true)
	return nil
}

// fakeProvider opens one canned session per credential.
type fakeProvider struct {
	sessions map[mailbox.Credential]*fakeSession
	openErrs map[mailbox.Credential]error
	opens    atomic.Int64
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Open(_ context.Context, cred mailbox.Credential) (mailbox.Session, error) {
	p.opens.Add(1)
	if err := p.openErrs[cred]; err != nil {
		return nil, err
	}
	session, ok := p.sessions[cred]
	if !ok {
		return nil, errors.New("unknown credential")
	}
	if session.cred == nil {
		session.cred = cred
	}
	return session, nil
}

func inboxAndSpamQueries() []models.PartitionQuery {
	return []models.PartitionQuery{
		{Selector: "in:inbox", Tag: "INBOX"},
		{Selector: "in:spam", Tag: "SPAM"},
	}
}
