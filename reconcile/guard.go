package reconcile

import (
	"errors"
	"sync"
)

// ErrBusy is returned when a mutating operation for the same key is
// already in flight.
var ErrBusy = errors.New("reconcile: operation already in flight")

// Guard serializes mutating operations per key (session + blog + kind):
// a toggle in flight blocks further toggles for that key until it
// resolves. Distinct keys never block each other.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGuard creates an empty Guard.
func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]struct{})}
}

// TryAcquire marks key as in flight. It returns ErrBusy when the key is
// already held. Callers must Release in a deferred path so the key is
// freed regardless of outcome.
func (g *Guard) TryAcquire(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.inflight[key]; held {
		return ErrBusy
	}
	g.inflight[key] = struct{}{}
	return nil
}

// Release frees key. Releasing an unheld key is a no-op.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
}
