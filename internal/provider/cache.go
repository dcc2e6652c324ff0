package provider

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dcf-analyzer/internal/logging"
	"dcf-analyzer/internal/models"
)

// cacheEntry holds one fetched result with its fetch time.
type cacheEntry struct {
	snapshot  models.CompanySnapshot
	history   []models.HistoricalQuarter
	fetchedAt time.Time
}

// CachingProvider wraps a Provider with a TTL in-memory cache keyed by
// ticker. Caching stays outside the engine boundary: the engine sees only
// the finished data.
type CachingProvider struct {
	inner  Provider
	ttl    time.Duration
	logger zerolog.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// CacheStats summarizes cache usage.
type CacheStats struct {
	Entries   int           `json:"entries"`
	OldestAge time.Duration `json:"oldest_age"`
}

// NewCachingProvider wraps inner with a TTL cache. A non-positive ttl
// disables expiry.
func NewCachingProvider(inner Provider, ttl time.Duration, logger zerolog.Logger) *CachingProvider {
	return &CachingProvider{
		inner:   inner,
		ttl:     ttl,
		logger:  logger,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch returns the cached result when fresh, delegating to the wrapped
// provider on miss or expiry. Failed fetches are never cached.
func (c *CachingProvider) Fetch(ctx context.Context, ticker string) (models.CompanySnapshot, []models.HistoricalQuarter, error) {
	c.mu.RLock()
	entry, ok := c.entries[ticker]
	c.mu.RUnlock()

	if ok {
		age := time.Since(entry.fetchedAt)
		if c.ttl <= 0 || age < c.ttl {
			logging.LogCacheEvent(c.logger, "hit", ticker, age)
			return entry.snapshot, entry.history, nil
		}
		logging.LogCacheEvent(c.logger, "expired", ticker, age)
		c.mu.Lock()
		delete(c.entries, ticker)
		c.mu.Unlock()
	} else {
		logging.LogCacheEvent(c.logger, "miss", ticker, 0)
	}

	snapshot, history, err := c.inner.Fetch(ctx, ticker)
	if err != nil {
		return snapshot, history, err
	}

	c.mu.Lock()
	c.entries[ticker] = cacheEntry{snapshot: snapshot, history: history, fetchedAt: time.Now()}
	c.mu.Unlock()

	return snapshot, history, nil
}

// Clear drops all cached entries.
func (c *CachingProvider) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Stats returns a summary of cache usage.
func (c *CachingProvider) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := CacheStats{Entries: len(c.entries)}
	for _, entry := range c.entries {
		if age := time.Since(entry.fetchedAt); age > stats.OldestAge {
			stats.OldestAge = age
		}
	}
	return stats
}
