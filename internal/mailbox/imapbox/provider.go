// Package imapbox adapts password-authenticated IMAP mailboxes to the
// provider contract used by the fetch pipeline. Partition tags map to
// conventional folder names; Gmail-style markers are synthesized from the
// folder and the message flags so the shared classifier applies unchanged.
package imapbox

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/akarpati/unimail/internal/mailbox"
	"github.com/akarpati/unimail/internal/models"
)

// ServerCredential is the static credential bundle for one IMAP account.
// IMAP has no silent-refresh mechanism, so sessions return it unchanged.
type ServerCredential struct {
	Host     string // host:port
	Username string
	Password string
}

// Redacted identifies the account without exposing the password.
func (c *ServerCredential) Redacted() string {
	return fmt.Sprintf("imap credentials for %s at %s", c.Username, c.Host)
}

// folderForTag maps partition tags to conventional IMAP folder names.
// Partitions without a folder equivalent (the Gmail category tabs) fail
// their listing and are skipped by the fetcher's partition isolation.
var folderForTag = map[string]string{
	"INBOX": "INBOX",
	"SPAM":  "Junk",
	"SENT":  "Sent",
	"DRAFT": "Drafts",
}

type Provider struct {
	listLimit uint32
	useTLS    bool
}

func NewProvider(listLimit int) *Provider {
	if listLimit <= 0 {
		listLimit = 30
	}
	return &Provider{listLimit: uint32(listLimit), useTLS: true}
}

// NewPlaintextProvider returns a provider that dials without TLS. Only for
// tests against local servers.
func NewPlaintextProvider(listLimit int) *Provider {
	p := NewProvider(listLimit)
	p.useTLS = false
	return p
}

func (p *Provider) Name() string { return "imap" }

// Open dials the account's server and authenticates. The connection belongs
// to this session alone.
func (p *Provider) Open(ctx context.Context, cred mailbox.Credential) (mailbox.Session, error) {
	sc, ok := cred.(*ServerCredential)
	if !ok {
		return nil, fmt.Errorf("imap session requires server credentials, got %T", cred)
	}

	c, err := dial(sc.Host, p.useTLS)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", sc.Host, err)
	}

	if err := c.Login(sc.Username, sc.Password); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	return &session{client: c, cred: sc, listLimit: p.listLimit}, nil
}

// dial connects to the IMAP server with a 5-second timeout.
func dial(server string, useTLS bool) (*client.Client, error) {
	dialer := &net.Dialer{Timeout: 5 * time.Second}

	if useTLS {
		c, err := client.DialWithDialerTLS(dialer, server, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to dial with TLS: %w", err)
		}
		return c, nil
	}

	c, err := client.DialWithDialer(dialer, server)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}
	return c, nil
}

// session serves one account over a single IMAP connection. The connection
// cannot run commands concurrently, so calls serialize on the mutex.
type session struct {
	client    *client.Client
	cred      *ServerCredential
	listLimit uint32

	mu sync.Mutex
}

func (s *session) List(ctx context.Context, query models.PartitionQuery) ([]models.RawMessageRef, error) {
	folder, ok := folderForTag[query.Tag]
	if !ok {
		return nil, fmt.Errorf("no IMAP folder for partition %q", query.Tag)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mbox, err := s.client.Select(folder, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select folder %s: %w", folder, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	// Newest messages live at the top of the sequence range.
	from := uint32(1)
	if mbox.Messages > s.listLimit {
		from = mbox.Messages - s.listLimit + 1
	}
	seqSet := new(imap.SeqSet)
	seqSet.AddRange(from, mbox.Messages)

	messages := make(chan *imap.Message, s.listLimit)
	done := make(chan error, 1)
	go func() {
		done <- s.client.Fetch(seqSet, []imap.FetchItem{imap.FetchUid}, messages)
	}()

	var refs []models.RawMessageRef
	for msg := range messages {
		refs = append(refs, models.RawMessageRef{
			ID:           encodeID(folder, msg.Uid),
			PartitionTag: query.Tag,
		})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch refs from %s: %w", folder, err)
	}
	return refs, nil
}

func (s *session) GetDetail(ctx context.Context, id string) (*models.RawMessageDetail, error) {
	folder, uid, err := decodeID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.client.Select(folder, true); err != nil {
		return nil, fmt.Errorf("failed to select folder %s: %w", folder, err)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{
		imap.FetchEnvelope,
		imap.FetchFlags,
		imap.FetchInternalDate,
		section.FetchItem(),
	}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.client.UidFetch(seqSet, items, messages)
	}()

	msg := <-messages
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("server did not return message %s", id)
	}

	detail := convertMessage(id, folder, msg)
	if body := msg.GetBody(section); body != nil {
		detail.Snippet = extractSnippet(body)
	}
	return detail, nil
}

// Credential returns the static credential bundle unchanged.
func (s *session) Credential() mailbox.Credential {
	return s.cred
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Logout()
}
