package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/akarpati/unimail/internal/models"
)

func TestConvertMessage(t *testing.T) {
	t.Run("maps all fields", func(t *testing.T) {
		msg := &gmailapi.Message{
			Id:           "19a7c3",
			LabelIds:     []string{"INBOX", "UNREAD", "IMPORTANT"},
			Snippet:      "Hello there",
			InternalDate: 1748865845000,
			Payload: &gmailapi.MessagePart{
				Headers: []*gmailapi.MessagePartHeader{
					{Name: "Subject", Value: "Hello"},
					{Name: "From", Value: "Jane Doe <jane@example.com>"},
					nil,
					{Name: "Date", Value: "Mon, 02 Jun 2025 15:04:05 +0200"},
				},
			},
		}

		detail := convertMessage(msg)

		assert.Equal(t, "19a7c3", detail.ID)
		assert.Equal(t, []string{"INBOX", "UNREAD", "IMPORTANT"}, detail.Markers)
		assert.Equal(t, "Hello there", detail.Snippet)
		assert.Equal(t, int64(1748865845000), detail.InternalDate)
		assert.Equal(t, []models.Header{
			{Name: "Subject", Value: "Hello"},
			{Name: "From", Value: "Jane Doe <jane@example.com>"},
			{Name: "Date", Value: "Mon, 02 Jun 2025 15:04:05 +0200"},
		}, detail.Headers)
	})

	t.Run("tolerates a missing payload", func(t *testing.T) {
		detail := convertMessage(&gmailapi.Message{Id: "19a7c4"})

		assert.Equal(t, "19a7c4", detail.ID)
		assert.Empty(t, detail.Headers)
	})
}
