package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/akarpati/unimail/internal/models"
)

// Cache serves the most recent merged feed for up to one TTL and coalesces
// concurrent refreshes into a single fetch cycle. A TTL of 0 disables
// caching, so every request runs (or joins) a cycle.
type Cache struct {
	orchestrator *Orchestrator
	ttl          time.Duration

	group singleflight.Group

	mu        sync.Mutex
	result    []models.Email
	fetchedAt time.Time
}

func NewCache(orchestrator *Orchestrator, ttl time.Duration) *Cache {
	return &Cache{
		orchestrator: orchestrator,
		ttl:          ttl,
	}
}

// Result is a feed plus how it was obtained, so callers can surface
// staleness to clients. Age is bounded by the configured TTL.
type Result struct {
	Emails    []models.Email
	FromCache bool
	Age       time.Duration
}

// Get returns the cached feed while it is fresh, otherwise runs one fetch
// cycle. Overlapping poll triggers share a single in-flight cycle; the
// shared cycle runs under the context of whichever caller started it.
func (c *Cache) Get(ctx context.Context) Result {
	if c.ttl > 0 {
		c.mu.Lock()
		if c.result != nil && time.Since(c.fetchedAt) < c.ttl {
			res := Result{Emails: c.result, FromCache: true, Age: time.Since(c.fetchedAt)}
			c.mu.Unlock()
			return res
		}
		c.mu.Unlock()
	}

	v, _, _ := c.group.Do("cycle", func() (interface{}, error) {
		emails := c.orchestrator.RunCycle(ctx)
		c.mu.Lock()
		c.result = emails
		c.fetchedAt = time.Now()
		c.mu.Unlock()
		return emails, nil
	})

	return Result{Emails: v.([]models.Email)}
}
