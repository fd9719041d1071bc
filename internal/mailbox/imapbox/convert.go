package imapbox

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/jhillyerd/enmime"

	"github.com/akarpati/unimail/internal/models"
)

const snippetLength = 120

// encodeID builds a self-contained message id. Detail retrieval is keyed by
// id alone, so the folder has to travel inside it: "INBOX/42".
func encodeID(folder string, uid uint32) string {
	return fmt.Sprintf("%s/%d", folder, uid)
}

func decodeID(id string) (folder string, uid uint32, err error) {
	i := strings.LastIndex(id, "/")
	if i <= 0 || i == len(id)-1 {
		return "", 0, fmt.Errorf("malformed message id %q", id)
	}

	n, err := strconv.ParseUint(id[i+1:], 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("malformed message id %q: %w", id, err)
	}
	return id[:i], uint32(n), nil
}

// markersFor synthesizes Gmail-style markers from the folder and the
// message flags.
func markersFor(folder string, flags []string) []string {
	var markers []string

	seen := false
	for _, f := range flags {
		switch f {
		case imap.SeenFlag:
			seen = true
		case imap.FlaggedFlag:
			markers = append(markers, "STARRED")
		case imap.DraftFlag:
			markers = append(markers, "DRAFT")
		}
	}
	if !seen {
		markers = append(markers, "UNREAD")
	}

	switch folder {
	case "Junk", "Spam":
		markers = append(markers, "SPAM")
	case "Sent":
		markers = append(markers, "SENT")
	case "Drafts":
		markers = append(markers, "DRAFT")
	default:
		markers = append(markers, "INBOX")
	}

	return markers
}

// convertMessage maps an IMAP message onto the provider-neutral detail
// shape. The envelope fields are re-expressed as plain headers so the
// normalizer treats both providers alike.
func convertMessage(id, folder string, msg *imap.Message) *models.RawMessageDetail {
	detail := &models.RawMessageDetail{
		ID:         id,
		Markers:    markersFor(folder, msg.Flags),
		ReceivedAt: msg.InternalDate,
	}

	if msg.Envelope != nil {
		if msg.Envelope.Subject != "" {
			detail.Headers = append(detail.Headers, models.Header{Name: "Subject", Value: msg.Envelope.Subject})
		}
		if len(msg.Envelope.From) > 0 {
			if from := formatAddress(msg.Envelope.From[0]); from != "" {
				detail.Headers = append(detail.Headers, models.Header{Name: "From", Value: from})
			}
		}
		if !msg.Envelope.Date.IsZero() {
			detail.Headers = append(detail.Headers, models.Header{Name: "Date", Value: msg.Envelope.Date.Format(time.RFC1123Z)})
		}
	}

	return detail
}

// formatAddress renders an IMAP address as "Name <box@host>".
func formatAddress(address *imap.Address) string {
	if address == nil {
		return ""
	}

	if address.MailboxName == "" && address.HostName == "" {
		return ""
	}

	if address.PersonalName != "" {
		return fmt.Sprintf("%s <%s@%s>", address.PersonalName, address.MailboxName, address.HostName)
	}

	return fmt.Sprintf("%s@%s", address.MailboxName, address.HostName)
}

// extractSnippet pulls a short plain-text preview from the raw message body.
// Parse failures produce an empty snippet, not an error.
func extractSnippet(r io.Reader) string {
	envelope, err := enmime.ReadEnvelope(r)
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(envelope.Text), " ")
	runes := []rune(text)
	if len(runes) > snippetLength {
		return string(runes[:snippetLength])
	}
	return text
}
