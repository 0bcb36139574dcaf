package xr

// SessionManager is the provider's session component.
//
// Implementations must guarantee:
//   - Availability() starts Unknown and becomes terminal after a
//     RequestAvailabilityCheck() has been serviced
//   - Reset() returns the session to its pre-tracking state and discards
//     provider-side anchors
//   - AttachAnchorManager() is only called when no anchor manager exists
//     in the scene; the created manager is attached to the session's
//     owning scene object
type SessionManager interface {
	// Availability reports the current support-availability state.
	Availability() Availability

	// RequestAvailabilityCheck asks the platform to determine support.
	// Idempotent; the result arrives asynchronously via Availability().
	RequestAvailabilityCheck()

	// State reports the session lifecycle state.
	State() SessionState

	// Reset returns the session to its initial state.
	Reset()

	// AttachAnchorManager creates an anchor manager attached to the
	// session's owning scene object and returns it.
	AttachAnchorManager() AnchorManager
}

// CameraManager is the provider's camera component.
type CameraManager interface {
	// Running reports whether the camera subsystem is delivering frames.
	Running() bool

	// PermissionGranted reports whether camera permission has been granted.
	PermissionGranted() bool

	// Transform returns the current camera pose. Provider-owned,
	// read-only; defined as the last pose the provider produced.
	Transform() Pose

	// Intrinsics returns the current camera intrinsics, or ok=false when
	// the provider cannot supply them for the current frame.
	Intrinsics() (CameraIntrinsics, bool)

	// AcquireLatestImage returns the most recent decoded camera image, or
	// ok=false when none is available. The caller owns the release.
	AcquireLatestImage() (CameraImage, bool)

	// Configurations enumerates the available capture configurations.
	// An empty slice means the provider has none; that is not an error.
	Configurations() []CameraMode

	// ActiveConfiguration returns the currently active configuration.
	ActiveConfiguration() (CameraMode, bool)

	// SetConfiguration activates the given configuration. The mode must
	// be one returned by Configurations.
	SetConfiguration(CameraMode) error

	// RegisterFrameCallback subscribes cb to frame-received notifications.
	// At most one callback is registered at a time; registering replaces
	// any previous callback.
	RegisterFrameCallback(cb func(FrameEvent))

	// UnregisterFrameCallback removes the registered callback, if any.
	UnregisterFrameCallback()
}

// Anchor is a provider-owned handle to a tracked spatial reference point.
// ID is a provider-generated identifier, unique for the session. Pose is
// read live from the provider; it is never a cached snapshot.
type Anchor interface {
	ID() string
	Pose() Pose
}

// AnchorChanges is the payload of a provider anchor-change notification.
// Handles in Removed are no longer tracked by the provider; handles in
// Updated carry refreshed poses.
type AnchorChanges struct {
	Updated []Anchor
	Removed []Anchor
}

// AnchorManager is the provider's anchor component.
type AnchorManager interface {
	// TryAdd requests a new anchor at the given pose. Returns ok=false on
	// failure (no error); a successful add returns the provider handle.
	TryAdd(pose Pose) (Anchor, bool)

	// Remove detaches the anchor. Returns false when the provider no
	// longer tracks the handle.
	Remove(a Anchor) bool

	// RegisterChangeCallback subscribes cb to anchor-change
	// notifications. At most one callback is registered at a time.
	RegisterChangeCallback(cb func(AnchorChanges))

	// UnregisterChangeCallback removes the registered callback, if any.
	UnregisterChangeCallback()
}

// RaycastManager is the provider's hit-testing component.
type RaycastManager interface {
	// RaycastWithinPlane casts a ray through the given screen point
	// against tracked plane geometry, restricted to hits inside a
	// detected plane's bounded polygon. Hits are ordered nearest first.
	// An empty result is benign.
	RaycastWithinPlane(pt ScreenPoint) []Hit
}
