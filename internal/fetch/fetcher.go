package fetch

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/akarpati/unimail/internal/account"
	"github.com/akarpati/unimail/internal/logging"
	"github.com/akarpati/unimail/internal/mailbox"
	"github.com/akarpati/unimail/internal/models"
)

// Fetcher retrieves and normalizes one account's messages across all
// configured partitions.
type Fetcher struct {
	providers         map[string]mailbox.Provider
	detailConcurrency int
}

func NewFetcher(providers map[string]mailbox.Provider, detailConcurrency int) *Fetcher {
	if detailConcurrency <= 0 {
		detailConcurrency = 8
	}
	return &Fetcher{
		providers:         providers,
		detailConcurrency: detailConcurrency,
	}
}

// FetchAccount returns the account's merged partition contents and the
// possibly-refreshed credential to write back. Failures degrade the account
// to a smaller (possibly empty) contribution; they never propagate. The
// credential stays an explicit argument to the provider throughout; sessions
// never share credential state across accounts.
func (f *Fetcher) FetchAccount(ctx context.Context, acc account.Account, queries []models.PartitionQuery) ([]models.Email, mailbox.Credential) {
	log := logging.Log.WithField("account", acc.Address)

	provider, ok := f.providers[acc.Provider]
	if !ok {
		log.Warnf("No provider registered for %q", acc.Provider)
		return nil, nil
	}

	session, err := provider.Open(ctx, acc.Credential)
	if err != nil {
		log.WithError(err).Warn("Failed to open mailbox session")
		return nil, nil
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.WithError(closeErr).Debug("Failed to close mailbox session")
		}
	}()

	refs := listPartitions(ctx, session, queries, log)
	emails := f.fetchDetails(ctx, session, acc.Address, dedupRefs(refs), log)

	return emails, session.Credential()
}

// listPartitions queries every partition, keeping whatever subset succeeds.
// A failed partition is logged and skipped; the account's listing is the
// union of the partitions that worked.
func listPartitions(ctx context.Context, session mailbox.Session, queries []models.PartitionQuery, log *logrus.Entry) []models.RawMessageRef {
	var refs []models.RawMessageRef
	for _, q := range queries {
		partial, err := session.List(ctx, q)
		if err != nil {
			log.WithError(err).WithField("partition", q.Tag).Warn("Partition listing failed")
			continue
		}
		refs = append(refs, partial...)
	}
	return refs
}

// dedupRefs drops refs already seen under another partition, keeping the
// first partition's tag. A message can legitimately match several queries.
func dedupRefs(refs []models.RawMessageRef) []models.RawMessageRef {
	seen := make(map[string]struct{}, len(refs))
	out := make([]models.RawMessageRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// fetchDetails retrieves and normalizes the unique refs concurrently,
// bounded by the configured limit. A failed message is dropped without
// affecting its siblings.
func (f *Fetcher) fetchDetails(ctx context.Context, session mailbox.Session, address string, refs []models.RawMessageRef, log *logrus.Entry) []models.Email {
	results := make([]*models.Email, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.detailConcurrency)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			detail, err := session.GetDetail(ctx, ref.ID)
			if err != nil {
				log.WithError(err).WithField("message", ref.ID).Warn("Dropping message: detail retrieval failed")
				return nil
			}

			email, err := Normalize(address, detail)
			if err != nil {
				log.WithError(err).WithField("message", ref.ID).Warn("Dropping message: normalization failed")
				return nil
			}

			results[i] = &email
			return nil
		})
	}
	// Workers report failures by leaving their slot empty, never by error.
	_ = g.Wait()

	emails := make([]models.Email, 0, len(results))
	for _, e := range results {
		if e != nil {
			emails = append(emails, *e)
		}
	}
	return emails
}
