// Package label maps raw provider marker sets to the application's fixed
// label taxonomy.
package label

import "github.com/akarpati/unimail/internal/models"

// priority lists marker/label pairs in resolution order. The order is
// significant: spam must never be shadowed by a category marker.
var priority = []struct {
	marker string
	label  models.Label
}{
	{"SPAM", models.LabelSpam},
	{"CATEGORY_PROMOTIONS", models.LabelPromotions},
	{"CATEGORY_SOCIAL", models.LabelSocial},
	{"CATEGORY_UPDATES", models.LabelUpdates},
	{"CATEGORY_FORUMS", models.LabelForums},
	{"IMPORTANT", models.LabelImportant},
	{"STARRED", models.LabelStarred},
	{"SENT", models.LabelSent},
	{"DRAFT", models.LabelDraft},
	{"INBOX", models.LabelInbox},
}

// Classify resolves a marker set to exactly one label using first-match by
// fixed priority. It always returns a value; an empty or unrecognized set
// resolves to INBOX.
func Classify(markers []string) models.Label {
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[m] = struct{}{}
	}

	for _, p := range priority {
		if _, ok := set[p.marker]; ok {
			return p.label
		}
	}

	return models.LabelInbox
}
