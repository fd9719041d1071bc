package main

import (
	"fmt"
	"net/http"

	"github.com/akarpati/unimail/internal/account"
	"github.com/akarpati/unimail/internal/api"
	"github.com/akarpati/unimail/internal/config"
	"github.com/akarpati/unimail/internal/fetch"
	"github.com/akarpati/unimail/internal/logging"
	"github.com/akarpati/unimail/internal/mailbox"
	"github.com/akarpati/unimail/internal/mailbox/gmail"
	"github.com/akarpati/unimail/internal/mailbox/imapbox"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logging.Log.Fatalf("Failed to load config: %v", err)
	}

	registry := account.NewRegistry()
	registerIMAPAccounts(registry, cfg)

	server := NewServer(cfg, registry)

	address := ":" + cfg.Port
	logging.Log.Infof("Unimail backend starting on %s (environment: %s)", address, cfg.Environment)

	if err := http.ListenAndServe(address, server); err != nil {
		logging.Log.Fatalf("Server failed to start: %v", err)
	}
}

// NewServer wires the fetch pipeline and returns the HTTP handler for the
// Unimail API.
func NewServer(cfg *config.Config, registry *account.Registry) http.Handler {
	issuer := gmail.NewIssuer(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	providers := map[string]mailbox.Provider{
		"gmail": gmail.NewProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, cfg.ListLimit),
		"imap":  imapbox.NewProvider(cfg.ListLimit),
	}

	fetcher := fetch.NewFetcher(providers, cfg.DetailConcurrency)
	orchestrator := fetch.NewOrchestrator(registry, fetcher, cfg.Partitions, cfg.ResultLimit)
	cache := fetch.NewCache(orchestrator, cfg.CacheTTL)

	emailsHandler := api.NewEmailsHandler(cache)
	healthHandler := api.NewHealthHandler(registry)
	authHandler := api.NewAuthHandler(issuer, registry, "gmail", cfg.FrontendURL)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleRoot)
	mux.Handle("/emails", http.HandlerFunc(emailsHandler.GetEmails))
	mux.Handle("/health", http.HandlerFunc(healthHandler.GetHealth))
	mux.Handle("/auth", http.HandlerFunc(authHandler.BeginAuth))
	mux.Handle("/auth/callback", http.HandlerFunc(authHandler.Callback))

	return api.AllowOrigin(cfg.FrontendURL, mux)
}

// registerIMAPAccounts seeds the registry with the password-authenticated
// accounts declared in the config file.
func registerIMAPAccounts(registry *account.Registry, cfg *config.Config) {
	for _, acc := range cfg.IMAPAccounts {
		cred := &imapbox.ServerCredential{
			Host:     acc.Host,
			Username: acc.Username,
			Password: acc.Password,
		}
		if registry.Register(acc.Address, "imap", cred) {
			logging.Log.WithField("account", acc.Address).Info("IMAP account registered")
		}
	}
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Unimail API is running")
}
