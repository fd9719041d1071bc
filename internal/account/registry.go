// Package account holds the in-memory registry of connected accounts.
package account

import (
	"sync"
	"time"

	"github.com/akarpati/unimail/internal/mailbox"
)

// Account is one externally-authenticated mailbox identity the system polls.
type Account struct {
	Address         string
	Provider        string
	Credential      mailbox.Credential
	LastRefreshedAt time.Time
}

// Registry exclusively owns all Account records. Readers get
// insertion-ordered copies; credential updates are applied per key so a
// concurrent registration is never clobbered. Nothing is persisted: the
// registry is lost on restart.
type Registry struct {
	mu       sync.RWMutex
	accounts []Account
	index    map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds an account. Registration is idempotent with the
// first-connected credential winning: re-registering an existing address is
// a no-op. The return value reports whether the account was newly added.
func (r *Registry) Register(address, provider string, cred mailbox.Credential) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[address]; ok {
		return false
	}

	r.index[address] = len(r.accounts)
	r.accounts = append(r.accounts, Account{
		Address:         address,
		Provider:        provider,
		Credential:      cred,
		LastRefreshedAt: time.Now(),
	})
	return true
}

// List returns a snapshot of all accounts in insertion order. The copies
// stay valid while registrations and credential updates continue.
func (r *Registry) List() []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// UpdateCredential replaces the stored credential for one address, typically
// after a fetch cycle silently refreshed it. Unknown addresses are ignored.
func (r *Registry) UpdateCredential(address string, cred mailbox.Credential) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[address]
	if !ok {
		return
	}
	r.accounts[i].Credential = cred
	r.accounts[i].LastRefreshedAt = time.Now()
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
