package report

import (
	"sync"
	"time"
)

type cacheEntry struct {
	result  *Result
	expires time.Time
}

// Cache holds the current report of each user until it expires.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

// Put makes result the current report of user.
func (c *Cache) Put(user string, result *Result, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[user] = cacheEntry{result: result, expires: now.Add(c.ttl)}
}

// Get returns the current report of user, if any.
func (c *Cache) Get(user string, now time.Time) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[user]
	if !ok || now.After(e.expires) {
		return nil, false
	}
	return e.result, true
}

// Sweep drops expired entries and reports how many were removed.
func (c *Cache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for user, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, user)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached reports.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
