package gmail

import (
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/akarpati/unimail/internal/models"
)

// convertMessage maps a Gmail API message onto the provider-neutral detail
// shape. Gmail label ids double as the raw marker set.
func convertMessage(msg *gmailapi.Message) *models.RawMessageDetail {
	detail := &models.RawMessageDetail{
		ID:           msg.Id,
		Markers:      msg.LabelIds,
		Snippet:      msg.Snippet,
		InternalDate: msg.InternalDate,
	}

	if msg.Payload != nil {
		detail.Headers = make([]models.Header, 0, len(msg.Payload.Headers))
		for _, h := range msg.Payload.Headers {
			if h == nil {
				continue
			}
			detail.Headers = append(detail.Headers, models.Header{Name: h.Name, Value: h.Value})
		}
	}

	return detail
}
