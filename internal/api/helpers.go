package api

import (
	"encoding/json"
	"net/http"

	"github.com/akarpati/unimail/internal/logging"
)

// WriteJSONResponse marshals v and writes it as a JSON response. Marshaling
// happens up front so an encoding failure produces a clean 500 instead of a
// truncated body. Returns false when the response could not be written.
func WriteJSONResponse(w http.ResponseWriter, v interface{}) bool {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Log.WithError(err).Error("Failed to encode response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
	return true
}

// AllowOrigin sets the CORS header for the configured frontend origin on
// every response.
func AllowOrigin(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		next.ServeHTTP(w, r)
	})
}
