package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpati/unimail/internal/account"
)

func TestGetHealth(t *testing.T) {
	registry := account.NewRegistry()
	registry.Register("a@x.com", "stub", stubCredential("a"))
	registry.Register("b@y.com", "stub", stubCredential("b"))
	handler := NewHealthHandler(registry)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.GetHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var payload struct {
		Status    string `json:"status"`
		Accounts  int    `json:"accounts"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, 2, payload.Accounts)

	_, err := time.Parse(time.RFC3339, payload.Timestamp)
	assert.NoError(t, err)
}
