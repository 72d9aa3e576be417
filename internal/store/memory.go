package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/i474232898/aqi-explorer/internal/airquality"
)

type cacheEntry struct {
	derived  airquality.Derived
	storedAt time.Time
}

// MemoryCache is a concurrency-safe in-memory implementation of
// airquality.Cache.
type MemoryCache struct {
	mu sync.RWMutex

	// key: selection key, value: derived series
	data map[string]cacheEntry
	// insertion order, oldest first
	order []string

	// retention configuration
	maxEntries int           // max number of cached selections
	maxAge     time.Duration // optional max age for entries

	now func() time.Time
}

// NewMemoryCache creates a new MemoryCache with optional limits.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryCache(maxEntries int, maxAge time.Duration) *MemoryCache {
	return &MemoryCache{
		data:       make(map[string]cacheEntry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Put stores a derived value and enforces retention.
func (c *MemoryCache) Put(_ context.Context, key string, d airquality.Derived) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[key]; ok {
		c.order = slices.DeleteFunc(c.order, func(k string) bool { return k == key })
	}
	c.order = append(c.order, key)
	c.data[key] = cacheEntry{derived: d, storedAt: c.now()}

	// Enforce retention by count.
	if c.maxEntries > 0 && len(c.order) > c.maxEntries {
		over := len(c.order) - c.maxEntries
		for _, k := range c.order[:over] {
			delete(c.data, k)
		}
		c.order = c.order[over:]
	}

	// Enforce retention by age.
	if c.maxAge > 0 {
		cutoff := c.now().Add(-c.maxAge)
		i := 0
		for ; i < len(c.order); i++ {
			if !c.data[c.order[i]].storedAt.Before(cutoff) {
				break
			}
			delete(c.data, c.order[i])
		}
		c.order = c.order[i:]
	}
}

// Get returns the derived value for key if present and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) (airquality.Derived, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok {
		return airquality.Derived{}, false
	}
	if c.maxAge > 0 && c.now().Sub(e.storedAt) > c.maxAge {
		return airquality.Derived{}, false
	}
	return e.derived, true
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
