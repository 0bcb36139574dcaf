package arbridge

import "github.com/sam20code/SolarSystem-ARBook/internal/bridge"

// Public API - re-export internal types as the stable contract.

// Bridge is the facade's command/event surface. One provider-backed
// implementation and one stub exist, selected at build time.
type Bridge = bridge.Bridge

// ImageEvent fires once per captured frame. Plane buffers are valid only
// for the duration of the listener callback.
type ImageEvent = bridge.ImageEvent

// PoseEvent fires once per captured frame with the camera transform.
type PoseEvent = bridge.PoseEvent

// AnchorChange is one (identifier, transform) entry of an
// anchors-changed event.
type AnchorChange = bridge.AnchorChange

// AnchorsChangedEvent fires when the provider reports anchor changes.
type AnchorsChangedEvent = bridge.AnchorsChangedEvent

// Stats is a snapshot of facade operational counters.
type Stats = bridge.Stats

// Public API errors - re-export internal errors as the stable contract.
var (
	ErrNotResolved    = bridge.ErrNotResolved
	ErrAlreadyStarted = bridge.ErrAlreadyStarted
	ErrNoMatchingMode = bridge.ErrNoMatchingMode
)
