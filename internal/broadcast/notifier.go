// Package broadcast carries the logout signal from the gateway to whoever
// keeps authentication state.
package broadcast

import (
	"context"
	"slices"
	"sync"
)

// Reason says why a logout was broadcast.
type Reason string

const (
	ReasonUnauthorized Reason = "unauthorized"
	ReasonLogout       Reason = "logout"
)

// Signal is delivered to every listener.
type Signal struct {
	Reason Reason `json:"reason"`
	Path   string `json:"path,omitempty"`
	Origin string `json:"origin,omitempty"`
}

// Listener receives logout signals. It must not block for long.
type Listener func(Signal)

// Notifier fans a logout signal out to subscribers.
type Notifier interface {
	Publish(ctx context.Context, sig Signal) error
	Subscribe(l Listener) (unsubscribe func())
}

// registry is the subscriber bookkeeping shared by the notifiers.
type registry struct {
	mu        sync.Mutex
	next      int
	listeners map[int]Listener
}

func (r *registry) add(l Listener) func() {
	r.mu.Lock()
	if r.listeners == nil {
		r.listeners = make(map[int]Listener)
	}
	id := r.next
	r.next++
	r.listeners[id] = l
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.listeners, id)
			r.mu.Unlock()
		})
	}
}

// dispatch calls listeners in subscription order without holding the lock,
// so a listener may unsubscribe or publish again.
func (r *registry) dispatch(sig Signal) {
	r.mu.Lock()
	ids := make([]int, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	snapshot := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		snapshot = append(snapshot, r.listeners[id])
	}
	r.mu.Unlock()

	for _, l := range snapshot {
		l(sig)
	}
}
