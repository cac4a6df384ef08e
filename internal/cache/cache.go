// Package cache holds short-lived, per-user caches for derived read models.
// The dashboard summary is the only aggregation expensive enough to cache;
// every mutation for a user invalidates that user's entries.
package cache

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultTTL      = 30 * time.Second
	cleanupInterval = 5 * time.Minute
)

// SummaryCache caches dashboard summaries keyed by user and period.
type SummaryCache struct {
	store *gocache.Cache
}

// NewSummaryCache creates a SummaryCache with the default TTL.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func key(userID string, month, year int) string {
	return fmt.Sprintf("%s:%02d-%04d", userID, month, year)
}

// Get returns the cached value for the user and period, if present.
func (c *SummaryCache) Get(userID string, month, year int) (interface{}, bool) {
	return c.store.Get(key(userID, month, year))
}

// Set stores the value for the user and period with the default TTL.
func (c *SummaryCache) Set(userID string, month, year int, value interface{}) {
	c.store.SetDefault(key(userID, month, year), value)
}

// Invalidate drops all cached periods for the user.
func (c *SummaryCache) Invalidate(userID string) {
	prefix := userID + ":"
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
		}
	}
}
