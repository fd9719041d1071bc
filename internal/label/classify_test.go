package label

import (
	"testing"

	"github.com/akarpati/unimail/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		markers []string
		want    models.Label
	}{
		{"empty set defaults to inbox", nil, models.LabelInbox},
		{"unknown markers default to inbox", []string{"CHAT", "MUTED"}, models.LabelInbox},
		{"plain inbox", []string{"INBOX", "UNREAD"}, models.LabelInbox},
		{"spam", []string{"SPAM"}, models.LabelSpam},
		{"spam wins over promotions", []string{"CATEGORY_PROMOTIONS", "SPAM"}, models.LabelSpam},
		{"spam wins over every category", []string{"CATEGORY_SOCIAL", "CATEGORY_UPDATES", "IMPORTANT", "SPAM"}, models.LabelSpam},
		{"promotions wins over important", []string{"IMPORTANT", "CATEGORY_PROMOTIONS"}, models.LabelPromotions},
		{"social", []string{"CATEGORY_SOCIAL", "INBOX"}, models.LabelSocial},
		{"updates", []string{"CATEGORY_UPDATES", "INBOX"}, models.LabelUpdates},
		{"forums", []string{"CATEGORY_FORUMS"}, models.LabelForums},
		{"important over starred", []string{"STARRED", "IMPORTANT"}, models.LabelImportant},
		{"starred", []string{"STARRED", "INBOX"}, models.LabelStarred},
		{"sent", []string{"SENT"}, models.LabelSent},
		{"draft", []string{"DRAFT"}, models.LabelDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.markers); got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.markers, got, tt.want)
			}
		})
	}
}

func TestClassifyIsOrderIndependent(t *testing.T) {
	forward := Classify([]string{"SPAM", "CATEGORY_PROMOTIONS", "INBOX"})
	backward := Classify([]string{"INBOX", "CATEGORY_PROMOTIONS", "SPAM"})

	if forward != backward {
		t.Errorf("Classify depends on marker order: %s vs %s", forward, backward)
	}
	if forward != models.LabelSpam {
		t.Errorf("expected SPAM, got %s", forward)
	}
}
