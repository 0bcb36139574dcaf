package sim

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// Anchor is the provider-owned anchor handle. Its pose is read live.
type Anchor struct {
	id string

	mu   sync.Mutex
	pose xr.Pose
}

// ID implements xr.Anchor.
func (a *Anchor) ID() string { return a.id }

// Pose implements xr.Anchor.
func (a *Anchor) Pose() xr.Pose {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pose
}

// Anchors implements xr.AnchorManager for the simulated world. Anchor
// identifiers are provider-generated UUIDs.
type Anchors struct {
	session *Session

	mu      sync.Mutex
	anchors map[string]*Anchor
	order   []string
	lost    []string
	cb      func(xr.AnchorChanges)
}

func newAnchors(session *Session) *Anchors {
	return &Anchors{
		session: session,
		anchors: make(map[string]*Anchor),
	}
}

// TryAdd implements xr.AnchorManager. Fails while the session has not
// reached the ready threshold, the way a platform rejects anchors before
// tracking is established.
func (m *Anchors) TryAdd(pose xr.Pose) (xr.Anchor, bool) {
	if !m.session.State().AtLeastReady() {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a := &Anchor{id: uuid.NewString(), pose: pose}
	m.anchors[a.id] = a
	m.order = append(m.order, a.id)
	return a, true
}

// Remove implements xr.AnchorManager.
func (m *Anchors) Remove(h xr.Anchor) bool {
	a, ok := h.(*Anchor)
	if !ok {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, tracked := m.anchors[a.id]; !tracked {
		return false
	}
	m.drop(a.id)
	return true
}

// RegisterChangeCallback implements xr.AnchorManager.
func (m *Anchors) RegisterChangeCallback(cb func(xr.AnchorChanges)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cb = cb
}

// UnregisterChangeCallback implements xr.AnchorManager.
func (m *Anchors) UnregisterChangeCallback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cb = nil
}

// Lose marks a tracked anchor as lost: the next Advance reports it
// removed and drops it provider-side, simulating tracking loss.
func (m *Anchors) Lose(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, tracked := m.anchors[id]; tracked {
		m.lost = append(m.lost, id)
	}
}

// Len reports the number of provider-tracked anchors.
func (m *Anchors) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.anchors)
}

// Contains reports whether the provider tracks id.
func (m *Anchors) Contains(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.anchors[id]
	return ok
}

// advance reports pending losses and refreshed poses through the change
// callback, in anchor creation order.
func (m *Anchors) advance() {
	m.mu.Lock()

	var changes xr.AnchorChanges
	for _, id := range m.lost {
		a, ok := m.anchors[id]
		if !ok {
			continue
		}
		m.drop(id)
		changes.Removed = append(changes.Removed, a)
	}
	m.lost = nil

	for _, id := range m.order {
		changes.Updated = append(changes.Updated, m.anchors[id])
	}

	cb := m.cb
	m.mu.Unlock()

	if cb == nil || (len(changes.Removed) == 0 && len(changes.Updated) == 0) {
		return
	}
	cb(changes)
}

// reset discards every provider-side anchor without a change
// notification (session reset semantics).
func (m *Anchors) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anchors = make(map[string]*Anchor)
	m.order = nil
	m.lost = nil
}

// drop removes id from the tracked set. Caller holds m.mu.
func (m *Anchors) drop(id string) {
	delete(m.anchors, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
