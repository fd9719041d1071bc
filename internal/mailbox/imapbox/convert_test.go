package imapbox

import (
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpati/unimail/internal/models"
)

func TestEncodeDecodeID(t *testing.T) {
	t.Run("round trips folder and uid", func(t *testing.T) {
		id := encodeID("INBOX", 42)
		assert.Equal(t, "INBOX/42", id)

		folder, uid, err := decodeID(id)
		require.NoError(t, err)
		assert.Equal(t, "INBOX", folder)
		assert.Equal(t, uint32(42), uid)
	})

	t.Run("keeps slashes inside the folder name", func(t *testing.T) {
		folder, uid, err := decodeID("Archive/2025/7")
		require.NoError(t, err)
		assert.Equal(t, "Archive/2025", folder)
		assert.Equal(t, uint32(7), uid)
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		for _, id := range []string{"", "42", "INBOX/", "/42", "INBOX/abc"} {
			_, _, err := decodeID(id)
			assert.Error(t, err, "id %q", id)
		}
	})
}

func TestMarkersFor(t *testing.T) {
	tests := []struct {
		name   string
		folder string
		flags  []string
		want   []string
	}{
		{"unseen inbox message", "INBOX", nil, []string{"UNREAD", "INBOX"}},
		{"seen inbox message", "INBOX", []string{imap.SeenFlag}, []string{"INBOX"}},
		{"starred message", "INBOX", []string{imap.SeenFlag, imap.FlaggedFlag}, []string{"STARRED", "INBOX"}},
		{"junk folder", "Junk", []string{imap.SeenFlag}, []string{"SPAM"}},
		{"spam folder", "Spam", nil, []string{"UNREAD", "SPAM"}},
		{"sent folder", "Sent", []string{imap.SeenFlag}, []string{"SENT"}},
		{"draft flag in drafts folder", "Drafts", []string{imap.DraftFlag}, []string{"DRAFT", "UNREAD", "DRAFT"}},
		{"unknown folder falls back to inbox", "Newsletters", []string{imap.SeenFlag}, []string{"INBOX"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markersFor(tt.folder, tt.flags))
		})
	}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name    string
		address *imap.Address
		want    string
	}{
		{"nil address", nil, ""},
		{"empty address", &imap.Address{}, ""},
		{
			"with personal name",
			&imap.Address{PersonalName: "Jane Doe", MailboxName: "jane", HostName: "example.com"},
			"Jane Doe <jane@example.com>",
		},
		{
			"bare address",
			&imap.Address{MailboxName: "jane", HostName: "example.com"},
			"jane@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAddress(tt.address))
		})
	}
}

func TestConvertMessage(t *testing.T) {
	received := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	sent := time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC)

	msg := &imap.Message{
		Flags:        []string{imap.SeenFlag},
		InternalDate: received,
		Envelope: &imap.Envelope{
			Subject: "Quarterly report",
			From:    []*imap.Address{{PersonalName: "Jane Doe", MailboxName: "jane", HostName: "example.com"}},
			Date:    sent,
		},
	}

	detail := convertMessage("INBOX/42", "INBOX", msg)

	assert.Equal(t, "INBOX/42", detail.ID)
	assert.Equal(t, []string{"INBOX"}, detail.Markers)
	assert.Equal(t, received, detail.ReceivedAt)
	assert.Equal(t, []models.Header{
		{Name: "Subject", Value: "Quarterly report"},
		{Name: "From", Value: "Jane Doe <jane@example.com>"},
		{Name: "Date", Value: sent.Format(time.RFC1123Z)},
	}, detail.Headers)
}

func TestConvertMessageWithoutEnvelope(t *testing.T) {
	detail := convertMessage("INBOX/7", "INBOX", &imap.Message{InternalDate: time.Now()})

	assert.Equal(t, "INBOX/7", detail.ID)
	assert.Empty(t, detail.Headers)
	assert.Equal(t, []string{"UNREAD", "INBOX"}, detail.Markers)
}

func TestExtractSnippet(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		raw := "From: jane@example.com\r\n" +
			"Subject: hi\r\n" +
			"Content-Type: text/plain\r\n" +
			"\r\n" +
			"Hello\r\nthere,   how\tare you?\r\n"

		assert.Equal(t, "Hello there, how are you?", extractSnippet(strings.NewReader(raw)))
	})

	t.Run("truncates long bodies", func(t *testing.T) {
		raw := "Content-Type: text/plain\r\n\r\n" + strings.Repeat("a", 500)

		snippet := extractSnippet(strings.NewReader(raw))
		assert.Len(t, snippet, snippetLength)
	})

	t.Run("unparseable input yields an empty snippet", func(t *testing.T) {
		assert.Equal(t, "", extractSnippet(strings.NewReader("")))
	})
}
