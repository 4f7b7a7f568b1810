package capture

import "sync"

// Guard allows at most one submission in flight per key.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Acquire claims key. It returns false when key is already claimed; otherwise
// the returned release function frees it.
func (g *Guard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return nil, false
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, true
}
