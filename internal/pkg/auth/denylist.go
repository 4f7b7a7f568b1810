package auth

import (
	"sync"
	"time"
)

// Denylist remembers revoked token ids until the tokens would have expired.
type Denylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewDenylist creates an empty denylist.
func NewDenylist() *Denylist {
	return &Denylist{entries: make(map[string]time.Time)}
}

// Revoke marks id as revoked until expiresAt.
func (d *Denylist) Revoke(id string, expiresAt time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[id] = expiresAt
}

// Revoked reports whether id has been revoked.
func (d *Denylist) Revoked(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.entries[id]
	return ok
}

// Sweep drops entries whose tokens expired before now and reports how many
// were removed.
func (d *Denylist) Sweep(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	for id, exp := range d.entries {
		if exp.Before(now) {
			delete(d.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked entries.
func (d *Denylist) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
