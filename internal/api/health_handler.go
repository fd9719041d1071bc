package api

import (
	"net/http"
	"time"

	"github.com/akarpati/unimail/internal/account"
)

// HealthHandler reports registry size and a timestamp. It always succeeds.
type HealthHandler struct {
	registry *account.Registry
}

func NewHealthHandler(registry *account.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

type healthResponse struct {
	Status    string `json:"status"`
	Accounts  int    `json:"accounts"`
	Timestamp string `json:"timestamp"`
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, _ *http.Request) {
	response := healthResponse{
		Status:    "ok",
		Accounts:  h.registry.Len(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if !WriteJSONResponse(w, response) {
		return
	}
}
