package fetch

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/akarpati/unimail/internal/account"
	"github.com/akarpati/unimail/internal/logging"
	"github.com/akarpati/unimail/internal/mailbox"
	"github.com/akarpati/unimail/internal/models"
)

// Orchestrator fans fetches out across every registered account and merges
// the contributions into one date-ordered feed.
type Orchestrator struct {
	registry *account.Registry
	fetcher  *Fetcher
	queries  []models.PartitionQuery
	limit    int
}

// NewOrchestrator creates an orchestrator. limit caps the merged feed
// length; 0 disables the cap.
func NewOrchestrator(registry *account.Registry, fetcher *Fetcher, queries []models.PartitionQuery, limit int) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		fetcher:  fetcher,
		queries:  queries,
		limit:    limit,
	}
}

type contribution struct {
	emails []models.Email
	cred   mailbox.Credential
}

// RunCycle produces the merged feed. Accounts are fetched concurrently and
// independently; a failed account contributes nothing. A cycle never fails:
// zero emails because every account failed is a successful empty result.
func (o *Orchestrator) RunCycle(ctx context.Context) []models.Email {
	accounts := o.registry.List()
	if len(accounts) == 0 {
		return []models.Email{}
	}

	contributions := make([]contribution, len(accounts))

	var wg sync.WaitGroup
	for i, acc := range accounts {
		i, acc := i, acc
		wg.Add(1)
		go func() {
			defer wg.Done()
			emails, cred := o.fetcher.FetchAccount(ctx, acc, o.queries)
			contributions[i] = contribution{emails: emails, cred: cred}
		}()
	}
	wg.Wait()

	merged := make([]models.Email, 0)
	for i, c := range contributions {
		// Write refreshed credentials back per account so concurrent
		// registrations are never clobbered.
		if c.cred != nil && c.cred != accounts[i].Credential {
			o.registry.UpdateCredential(accounts[i].Address, c.cred)
		}
		merged = append(merged, c.emails...)
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Date.After(merged[b].Date)
	})

	if o.limit > 0 && len(merged) > o.limit {
		merged = merged[:o.limit]
	}

	logging.Log.WithFields(logrus.Fields{
		"emails":   len(merged),
		"accounts": len(accounts),
	}).Info("Fetch cycle complete")

	return merged
}
