// Package dispatch implements the consumer-facing event channels of the
// facade: a multicast hub with explicit register/unregister by listener
// id and synchronous delivery on the publishing goroutine.
//
// Delivery is synchronous because event payloads may reference transient
// provider buffers that are only valid for the duration of the callback.
package dispatch

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrListenerExists   = errors.New("dispatch: listener already registered")
	ErrListenerNotFound = errors.New("dispatch: listener not found")
	ErrNilListener      = errors.New("dispatch: nil listener provided")
)

// ListenerStats tracks per-listener delivery metrics.
type ListenerStats struct {
	Delivered uint64
}

// HubStats is a snapshot of hub delivery metrics.
type HubStats struct {
	Published uint64
	Listeners map[string]ListenerStats
}

type listener[T any] struct {
	id        string
	fn        func(T)
	delivered uint64
}

// Hub multicasts events of type T to registered listeners. In practice a
// hub carries at most one listener, but multicast is supported.
type Hub[T any] struct {
	mu        sync.RWMutex
	listeners map[string]*listener[T]
	published uint64
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		listeners: make(map[string]*listener[T]),
	}
}

// Register subscribes fn under the given listener id.
func (h *Hub[T]) Register(id string, fn func(T)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if fn == nil {
		return ErrNilListener
	}
	if _, exists := h.listeners[id]; exists {
		return ErrListenerExists
	}

	h.listeners[id] = &listener[T]{id: id, fn: fn}
	return nil
}

// Unregister removes the listener with the given id.
func (h *Hub[T]) Unregister(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.listeners[id]; !exists {
		return ErrListenerNotFound
	}
	delete(h.listeners, id)
	return nil
}

// Publish delivers ev to every registered listener, synchronously, on the
// calling goroutine. Listeners are invoked outside the hub lock so they
// may register or unregister during delivery.
func (h *Hub[T]) Publish(ev T) {
	h.mu.RLock()
	snapshot := make([]*listener[T], 0, len(h.listeners))
	for _, l := range h.listeners {
		snapshot = append(snapshot, l)
	}
	h.mu.RUnlock()

	atomic.AddUint64(&h.published, 1)
	for _, l := range snapshot {
		atomic.AddUint64(&l.delivered, 1)
		l.fn(ev)
	}
}

// Len reports the number of registered listeners.
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// Stats returns a snapshot of delivery metrics.
func (h *Hub[T]) Stats() HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := HubStats{
		Published: atomic.LoadUint64(&h.published),
		Listeners: make(map[string]ListenerStats, len(h.listeners)),
	}
	for id, l := range h.listeners {
		stats.Listeners[id] = ListenerStats{
			Delivered: atomic.LoadUint64(&l.delivered),
		}
	}
	return stats
}
