package sim

import (
	"sync"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// Session implements xr.SessionManager for the simulated world.
type Session struct {
	mu sync.Mutex

	world *World
	cfg   AvailabilityConfig

	availability xr.Availability
	requestFrame int
	state        xr.SessionState

	anchors *Anchors
}

func newSession(world *World, cfg AvailabilityConfig) *Session {
	return &Session{
		world:        world,
		cfg:          cfg,
		availability: xr.AvailabilityUnknown,
		state:        xr.SessionStateNone,
	}
}

// Availability implements xr.SessionManager.
func (s *Session) Availability() xr.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availability
}

// RequestAvailabilityCheck implements xr.SessionManager. Idempotent: a
// check already running or concluded is left alone.
func (s *Session) RequestAvailabilityCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.availability != xr.AvailabilityUnknown {
		return
	}
	s.availability = xr.AvailabilityChecking
	s.requestFrame = s.world.Frame()
}

// State implements xr.SessionManager.
func (s *Session) State() xr.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset implements xr.SessionManager. The session falls back to its
// pre-tracking state and provider-side anchors are discarded without a
// change notification, matching platform reset semantics. Availability
// stays determined: platform support does not change across resets.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.availability == xr.AvailabilitySupported {
		s.state = xr.SessionStateInitializing
	} else {
		s.state = xr.SessionStateNone
	}
	anchors := s.anchors
	s.mu.Unlock()

	if anchors != nil {
		anchors.reset()
	}
}

// AttachAnchorManager implements xr.SessionManager: creates the anchor
// manager, attaches it to the session's owning scene object and returns
// it. Subsequent calls return the same manager.
func (s *Session) AttachAnchorManager() xr.AnchorManager {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.anchors == nil {
		s.anchors = newAnchors(s)
		s.world.object.Attach(s.anchors)
	}
	return s.anchors
}

func (s *Session) anchorManager() *Anchors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchors
}

// advance steps availability determination and the session state machine
// at an engine frame boundary.
func (s *Session) advance(frame int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.availability == xr.AvailabilityChecking && frame >= s.requestFrame+s.cfg.DelayFrames {
		if s.cfg.Supported {
			s.availability = xr.AvailabilitySupported
		} else {
			s.availability = xr.AvailabilityUnsupported
		}
	}

	switch s.state {
	case xr.SessionStateNone:
		if s.availability == xr.AvailabilitySupported {
			s.state = xr.SessionStateInitializing
		}
	case xr.SessionStateInitializing:
		if s.world.camera.PermissionGranted() {
			s.state = xr.SessionStateReady
		}
	case xr.SessionStateReady:
		if s.world.camera.captureCount() > 0 {
			s.state = xr.SessionStateTracking
		}
	}
}
