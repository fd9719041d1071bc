package api

import (
	"net/http"

	"github.com/akarpati/unimail/internal/account"
	"github.com/akarpati/unimail/internal/logging"
	"github.com/akarpati/unimail/internal/mailbox"
)

// AuthHandler drives the authorization redirect dance and records the
// resulting account in the registry.
type AuthHandler struct {
	issuer      mailbox.Issuer
	registry    *account.Registry
	provider    string
	frontendURL string
}

func NewAuthHandler(issuer mailbox.Issuer, registry *account.Registry, provider, frontendURL string) *AuthHandler {
	return &AuthHandler{
		issuer:      issuer,
		registry:    registry,
		provider:    provider,
		frontendURL: frontendURL,
	}
}

// BeginAuth redirects the browser to the provider's consent page.
func (h *AuthHandler) BeginAuth(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.issuer.AuthCodeURL("state-token"), http.StatusFound)
}

// Callback exchanges the authorization code, registers the account, and
// sends the browser back to the frontend. Registering an already-connected
// address is a no-op; the first-connected credential wins.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing code in query", http.StatusBadRequest)
		return
	}

	address, cred, err := h.issuer.Exchange(r.Context(), code)
	if err != nil {
		logging.Log.WithError(err).Error("Authorization code exchange failed")
		http.Error(w, "Authentication failed", http.StatusInternalServerError)
		return
	}

	if h.registry.Register(address, h.provider, cred) {
		logging.Log.WithField("account", address).Info("Account connected")
	} else {
		logging.Log.WithField("account", address).Info("Account already connected")
	}

	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}
