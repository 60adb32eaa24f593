package bot

import (
	"sync"
	"time"
)

// Registry holds live sessions keyed by normalized phone. Each key carries
// its own lock, so two messages from the same customer are handled strictly
// one after the other while distinct customers proceed in parallel.
type Registry struct {
	mu    sync.Mutex
	slots map[string]*sessionSlot
}

type sessionSlot struct {
	mu      sync.Mutex
	session *Session
}

// NewRegistry is the constructor for Registry.
func NewRegistry() *Registry {
	return &Registry{
		slots: make(map[string]*sessionSlot),
	}
}

// With runs fn with the session for phone, creating it in StateAnonymous on
// first contact. The per-key lock is held for the whole call. If fn closes
// the session it is removed afterwards.
func (r *Registry) With(phone string, fn func(*Session)) {
	r.mu.Lock()
	slot, ok := r.slots[phone]
	if !ok {
		slot = &sessionSlot{
			session: &Session{
				Phone:    phone,
				State:    StateAnonymous,
				LastSeen: time.Now(),
			},
		}
		r.slots[phone] = slot
	}
	r.mu.Unlock()

	slot.mu.Lock()
	fn(slot.session)
	closed := slot.session.closed
	slot.mu.Unlock()

	if closed {
		r.remove(phone, slot)
	}
}

// Remove drops the session for phone, if any.
func (r *Registry) Remove(phone string) {
	r.mu.Lock()
	delete(r.slots, phone)
	r.mu.Unlock()
}

// remove deletes the key only while it still maps to the same slot, so a
// session recreated concurrently is never torn down by a stale removal.
func (r *Registry) remove(phone string, slot *sessionSlot) {
	r.mu.Lock()
	if current, ok := r.slots[phone]; ok && current == slot {
		delete(r.slots, phone)
	}
	r.mu.Unlock()
}

// Sweep removes sessions idle for longer than maxIdle and returns how many
// were evicted. Slots currently handling a message are skipped; they are
// active by definition.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-maxIdle)
	evicted := 0

	r.mu.Lock()
	for phone, slot := range r.slots {
		if !slot.mu.TryLock() {
			continue
		}
		idle := slot.session.LastSeen.Before(cutoff)
		slot.mu.Unlock()

		if idle {
			delete(r.slots, phone)
			evicted++
		}
	}
	r.mu.Unlock()

	return evicted
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.slots)
}
