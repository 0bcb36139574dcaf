// Package registry tracks the mapping between consumer-facing anchor
// identifiers and provider anchor handles.
//
// The registry exists solely for translation: the facade hands string
// identifiers to the consumer and needs the provider handle back for
// removal and change filtering. Invariant: the registry never holds an
// identifier the provider does not currently acknowledge.
package registry

import (
	"sync"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// Registry is an id -> provider handle map. Safe for concurrent use; the
// lock is sized for the documented multi-threaded-provider substitution,
// the single-threaded engine model never contends it.
type Registry struct {
	mu      sync.RWMutex
	anchors map[string]xr.Anchor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{anchors: make(map[string]xr.Anchor)}
}

// Put tracks the handle under its provider-generated identifier.
func (r *Registry) Put(a xr.Anchor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.anchors[a.ID()] = a
}

// Get returns the handle tracked under id.
func (r *Registry) Get(id string) (xr.Anchor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.anchors[id]
	return a, ok
}

// Contains reports whether id is tracked.
func (r *Registry) Contains(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.anchors[id]
	return ok
}

// Remove stops tracking id and returns the handle that was tracked.
func (r *Registry) Remove(id string) (xr.Anchor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.anchors[id]
	if ok {
		delete(r.anchors, id)
	}
	return a, ok
}

// Drain removes every entry and returns the handles that were tracked.
func (r *Registry) Drain() []xr.Anchor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]xr.Anchor, 0, len(r.anchors))
	for _, a := range r.anchors {
		out = append(out, a)
	}
	r.anchors = make(map[string]xr.Anchor)
	return out
}

// Len reports the number of tracked anchors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.anchors)
}

// IDs returns the tracked identifiers in unspecified order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.anchors))
	for id := range r.anchors {
		out = append(out, id)
	}
	return out
}
