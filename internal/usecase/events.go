package usecase

import (
	"sync"
	"time"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
)

// SessionEventKind names a session state change.
type SessionEventKind string

const (
	SessionSignedIn  SessionEventKind = "signed_in"
	SessionSignedOut SessionEventKind = "signed_out"
)

// SessionEvent is delivered to every subscriber when a session changes.
type SessionEvent struct {
	Kind     SessionEventKind
	Identity model.Identity
	At       time.Time
}

// SessionEvents fans session changes out to subscribers.
type SessionEvents struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(SessionEvent)
}

// NewSessionEvents creates a broadcaster without subscribers.
func NewSessionEvents() *SessionEvents {
	return &SessionEvents{subs: make(map[int]func(SessionEvent))}
}

// Subscribe registers fn and returns the function that removes it. Calling
// release more than once is harmless.
func (e *SessionEvents) Subscribe(fn func(SessionEvent)) (release func()) {
	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

// Publish calls every current subscriber synchronously.
func (e *SessionEvents) Publish(ev SessionEvent) {
	e.mu.RLock()
	fns := make([]func(SessionEvent), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Subscribers returns the number of active subscriptions.
func (e *SessionEvents) Subscribers() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}
