package fetch

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/akarpati/unimail/internal/label"
	"github.com/akarpati/unimail/internal/models"
)

const (
	defaultSubject = "No Subject"
	defaultSender  = "Unknown Sender"

	markerUnread = "UNREAD"
	markerSpam   = "SPAM"
)

var fromPattern = regexp.MustCompile(`^(.+?)\s*<(.+)>$`)

// Normalize converts one raw provider message into the canonical Email
// entity. Malformed-but-present data is defaulted, never rejected; the only
// error case is a missing message identifier.
func Normalize(accountAddress string, detail *models.RawMessageDetail) (models.Email, error) {
	if detail == nil || detail.ID == "" {
		return models.Email{}, fmt.Errorf("message detail has no identifier")
	}

	subject := headerValue(detail.Headers, "Subject")
	if subject == "" {
		subject = defaultSubject
	}

	from := headerValue(detail.Headers, "From")
	if from == "" {
		from = defaultSender
	}
	senderName, senderEmail := splitSender(from)

	return models.Email{
		ID:          detail.ID,
		Account:     accountAddress,
		Subject:     subject,
		From:        from,
		SenderName:  senderName,
		SenderEmail: senderEmail,
		Date:        resolveDate(detail),
		Snippet:     detail.Snippet,
		Label:       label.Classify(detail.Markers),
		IsRead:      !hasMarker(detail.Markers, markerUnread),
		IsSpam:      hasMarker(detail.Markers, markerSpam),
	}, nil
}

// headerValue returns the first header with the given name, case-insensitive.
// A missing header list behaves like an empty one.
func headerValue(headers []models.Header, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return strings.TrimSpace(h.Value)
		}
	}
	return ""
}

func hasMarker(markers []string, name string) bool {
	for _, m := range markers {
		if m == name {
			return true
		}
	}
	return false
}

// splitSender parses "Display Name <address>", stripping surrounding quotes
// from the display name. When the pattern does not match, the whole string
// serves as both the display name and the address fallback.
func splitSender(from string) (name, email string) {
	if m := fromPattern.FindStringSubmatch(from); m != nil {
		return strings.Trim(strings.TrimSpace(m[1]), `"'`), strings.TrimSpace(m[2])
	}
	trimmed := strings.TrimSpace(from)
	return strings.Trim(trimmed, `"'`), trimmed
}

// resolveDate walks the fallback chain: Date header, Received header,
// provider receive time, provider-internal timestamp, current time. A step
// that fails to parse falls through to the next one.
func resolveDate(detail *models.RawMessageDetail) time.Time {
	if raw := headerValue(detail.Headers, "Date"); raw != "" {
		if t, err := mail.ParseDate(raw); err == nil {
			return t
		}
	}

	if raw := headerValue(detail.Headers, "Received"); raw != "" {
		// The timestamp sits after the last semicolon of a Received header.
		parts := strings.Split(raw, ";")
		if t, err := mail.ParseDate(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return t
		}
	}

	if !detail.ReceivedAt.IsZero() {
		return detail.ReceivedAt
	}

	if detail.InternalDate > 0 {
		return time.UnixMilli(detail.InternalDate)
	}

	return time.Now()
}
