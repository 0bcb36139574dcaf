package bridge

import (
	"log/slog"
	"sync/atomic"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// AddAnchor implements Bridge.
func (b *native) AddAnchor(pose xr.Pose) string {
	b.mu.RLock()
	anchors := b.anchors
	b.mu.RUnlock()

	if anchors == nil {
		return ""
	}

	handle, ok := anchors.TryAdd(pose)
	if !ok {
		slog.Debug("arbridge: anchor add rejected by provider")
		return ""
	}

	b.reg.Put(handle)
	atomic.AddUint64(&b.anchorsAdded, 1)
	return handle.ID()
}

// RemoveAnchor implements Bridge.
func (b *native) RemoveAnchor(id string) bool {
	b.mu.RLock()
	anchors := b.anchors
	b.mu.RUnlock()

	if anchors == nil {
		return false
	}

	handle, ok := b.reg.Remove(id)
	if !ok {
		return false
	}

	removed := anchors.Remove(handle)
	atomic.AddUint64(&b.anchorsRemoved, 1)
	return removed
}

// ClearAnchors implements Bridge.
func (b *native) ClearAnchors() {
	b.mu.RLock()
	anchors := b.anchors
	b.mu.RUnlock()

	if anchors == nil {
		return
	}

	handles := b.reg.Drain()
	failures := 0
	for _, h := range handles {
		if !anchors.Remove(h) {
			failures++
		}
	}
	atomic.AddUint64(&b.anchorsRemoved, uint64(len(handles)))

	if failures > 0 {
		slog.Debug("arbridge: clear anchors finished with provider failures",
			"cleared", len(handles),
			"failures", failures,
		)
	}
}

// onAnchorsChanged is the provider anchor-change callback. Reported
// anchors are partitioned against the registry: only tracked anchors
// reach the consumer. Removed ones leave the registry before the event
// fires; updated poses are read from the handle, never cached.
func (b *native) onAnchorsChanged(changes xr.AnchorChanges) {
	var ev AnchorsChangedEvent

	for _, a := range changes.Removed {
		handle, ok := b.reg.Remove(a.ID())
		if !ok {
			continue
		}
		ev.Removed = append(ev.Removed, AnchorChange{ID: handle.ID(), Pose: a.Pose()})
		atomic.AddUint64(&b.anchorsRemoved, 1)
	}

	for _, a := range changes.Updated {
		if !b.reg.Contains(a.ID()) {
			continue
		}
		ev.Updated = append(ev.Updated, AnchorChange{ID: a.ID(), Pose: a.Pose()})
	}

	if len(ev.Removed) == 0 && len(ev.Updated) == 0 {
		return
	}
	b.anchorHub.Publish(ev)
}
