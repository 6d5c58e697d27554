package analytics

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

// payloadCache keeps the last authoritative payload per (scope, filters) so
// rapid filter toggles reuse it. Entries past the TTL are still served while
// a background refresh runs (stale-while-revalidate); eviction is LRU.
type payloadCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
}

type cacheEntry struct {
	scopeID   string
	criteria  analytics.FilterCriteria
	payload   *analytics.PartialSnapshot // nil when the remote has no aggregate for the scope
	fetchedAt time.Time
}

func newPayloadCache(size int, ttl time.Duration) (*payloadCache, error) {
	if size <= 0 {
		size = 256
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create payload cache: %w", err)
	}
	return &payloadCache{entries: entries, ttl: ttl}, nil
}

func cacheKey(scopeID string, criteria analytics.FilterCriteria) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		scopeID,
		criteria.TimeRange,
		criteria.Status,
		criteria.Scope.ExcludeUserID,
		criteria.Scope.RestrictToDepartmentID,
		criteria.Scope.RestrictToManagerID,
	)
}

// Get returns the cached payload and whether it is past its TTL
func (c *payloadCache) Get(key string, now time.Time) (payload *analytics.PartialSnapshot, stale bool, ok bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false, false
	}
	return entry.payload, now.Sub(entry.fetchedAt) > c.ttl, true
}

func (c *payloadCache) Add(key, scopeID string, criteria analytics.FilterCriteria, payload *analytics.PartialSnapshot, now time.Time) {
	c.entries.Add(key, cacheEntry{
		scopeID:   scopeID,
		criteria:  criteria,
		payload:   payload,
		fetchedAt: now,
	})
}

// StaleEntries returns the entries past their TTL, for the refresh sweep
func (c *payloadCache) StaleEntries(now time.Time) []cacheEntry {
	var stale []cacheEntry
	for _, key := range c.entries.Keys() {
		if entry, ok := c.entries.Peek(key); ok && now.Sub(entry.fetchedAt) > c.ttl {
			stale = append(stale, entry)
		}
	}
	return stale
}
