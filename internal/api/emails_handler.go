package api

import (
	"net/http"
	"time"

	"github.com/akarpati/unimail/internal/fetch"
	"github.com/akarpati/unimail/internal/models"
)

// EmailsHandler serves the merged inbox feed.
type EmailsHandler struct {
	cache *fetch.Cache
}

func NewEmailsHandler(cache *fetch.Cache) *EmailsHandler {
	return &EmailsHandler{cache: cache}
}

// GetEmails triggers a fetch cycle, or serves the cached feed while it is
// fresh, and returns the ordered result. No registered accounts yields an
// empty array, not an error. The X-Cache headers make staleness observable.
func (h *EmailsHandler) GetEmails(w http.ResponseWriter, r *http.Request) {
	result := h.cache.Get(r.Context())

	if result.FromCache {
		w.Header().Set("X-Cache", "hit")
		w.Header().Set("X-Cache-Age", result.Age.Round(time.Second).String())
	} else {
		w.Header().Set("X-Cache", "miss")
	}

	emails := result.Emails
	if emails == nil {
		emails = []models.Email{}
	}

	if !WriteJSONResponse(w, emails) {
		return
	}
}
