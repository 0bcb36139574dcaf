// Package bridge implements the platform facade behind the public
// arbridge API.
//
// This package is INTERNAL - clients must use the public API in the
// arbridge package. Two implementations of the same Bridge contract live
// here: the provider-backed native bridge and an empty stub for build
// targets without an AR toolkit.
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/sam20code/SolarSystem-ARBook/internal/dispatch"
	"github.com/sam20code/SolarSystem-ARBook/internal/registry"
	"github.com/sam20code/SolarSystem-ARBook/scene"
	"github.com/sam20code/SolarSystem-ARBook/xr"
)

var (
	// ErrNotResolved is returned when the facade is used before
	// ResolveDependencies has located the provider managers.
	ErrNotResolved = errors.New("arbridge: provider managers not resolved")

	// ErrAlreadyStarted is returned by a second Start call.
	ErrAlreadyStarted = errors.New("arbridge: bridge already started")

	// ErrNoMatchingMode is returned by SelectProfile when the candidate
	// set for the requested frame rate holds no exact resolution match.
	ErrNoMatchingMode = errors.New("arbridge: no camera configuration matches requested mode")
)

// ImageEvent fires once per captured frame with the frame's pixel planes,
// strides, timestamp and intrinsics. Plane buffers are provider-owned and
// valid only for the duration of the listener callback; copy to retain.
type ImageEvent struct {
	Planes         [xr.MaxImagePlanes]xr.ImagePlane
	PlaneCount     int
	Width          int
	Height         int
	TimestampNanos int64
	Intrinsics     xr.CameraIntrinsics
}

// PoseEvent fires once per captured frame with the camera transform.
type PoseEvent struct {
	Pose           xr.Pose
	TimestampNanos int64
}

// AnchorChange is one (identifier, transform) entry of an anchors-changed
// event.
type AnchorChange struct {
	ID   string
	Pose xr.Pose
}

// AnchorsChangedEvent fires when the provider reports anchor changes.
// Only anchors tracked by the facade at callback time are reported.
type AnchorsChangedEvent struct {
	Removed []AnchorChange
	Updated []AnchorChange
}

// Stats is a snapshot of facade operational counters.
type Stats struct {
	FramesEmitted             uint64
	FramesDroppedNoIntrinsics uint64
	FramesDroppedNoImage      uint64
	AnchorsAdded              uint64
	AnchorsRemoved            uint64
	AnchorsTracked            int
	HitTests                  uint64
}

// Bridge is the facade's fixed command/event surface. One provider-backed
// implementation and one stub exist; consumers never need conditional
// logic.
type Bridge interface {
	// IsScenePresent reports whether a provider session manager exists in
	// the given scene.
	IsScenePresent(sc *scene.Scene) bool

	// ResolveDependencies locates the provider managers in the scene. If
	// no anchor manager is present one is created attached to the
	// session's owning object. Missing required managers leave the bridge
	// unresolved; subsequent operations return ErrNotResolved or benign
	// sentinels.
	ResolveDependencies(sc *scene.Scene)

	// CheckAvailability suspends the caller until the provider has
	// determined support availability, then reports it. The wait is
	// cooperative: it resumes on Tick. Cancellation is the caller's via
	// ctx; there is no internal timeout.
	CheckAvailability(ctx context.Context) (bool, error)

	// Start subscribes the provider callbacks. Must be called exactly
	// once after a successful ResolveDependencies.
	Start() error

	// Stop clears all tracked anchors, resets the provider session and
	// unsubscribes all provider callbacks. Idempotent.
	Stop()

	// Tick services pending cooperative waits. The host engine calls it
	// once per display frame on the main update goroutine.
	Tick()

	// WaitUntilCameraReady suspends the caller, polling once per Tick,
	// until the camera subsystem exists, is running and permission has
	// been granted. No internal timeout.
	WaitUntilCameraReady(ctx context.Context) error

	// IsReady reports whether the provider session state has reached or
	// passed the ready threshold.
	IsReady() bool

	// CameraTransform returns the current camera pose (provider-owned,
	// read-only).
	CameraTransform() (xr.Pose, error)

	// ListProfiles enumerates available capture configurations. An empty
	// slice means the provider has none; that is not an error.
	ListProfiles() []xr.CameraMode

	// SelectProfile activates the configuration matching the requested
	// resolution and frame rate, exact match only. Returns (false, nil)
	// when the provider has no configurations at all and
	// (false, ErrNoMatchingMode) when no candidate matches.
	SelectProfile(mode xr.CameraMode) (bool, error)

	// AddAnchor requests a new anchor at the given pose and returns its
	// provider-generated identifier, or "" on failure.
	AddAnchor(pose xr.Pose) string

	// RemoveAnchor removes the anchor if id is known. Unknown ids are a
	// no-op returning false.
	RemoveAnchor(id string) bool

	// ClearAnchors removes every tracked anchor, best-effort; the
	// registry is cleared regardless of per-anchor provider failures.
	ClearAnchors()

	// HitTest ray-casts against tracked plane geometry, restricted to
	// hits within a detected plane's bounded polygon. Poses are ordered
	// nearest first; (false, empty) on no hit is benign.
	HitTest(pt xr.ScreenPoint) (bool, []xr.Pose)

	// Event channels. At most one listener per channel is expected in
	// practice, but multicast is safe.
	OnImage(id string, fn func(ImageEvent)) error
	OffImage(id string) error
	OnPose(id string, fn func(PoseEvent)) error
	OffPose(id string) error
	OnAnchorsChanged(id string, fn func(AnchorsChangedEvent)) error
	OffAnchorsChanged(id string) error

	// Stats returns a snapshot of operational counters.
	Stats() Stats
}

// native is the provider-backed Bridge implementation.
type native struct {
	mu       sync.RWMutex
	session  xr.SessionManager
	camera   xr.CameraManager
	anchors  xr.AnchorManager
	raycast  xr.RaycastManager
	resolved bool
	started  bool

	reg *registry.Registry

	imageHub  *dispatch.Hub[ImageEvent]
	poseHub   *dispatch.Hub[PoseEvent]
	anchorHub *dispatch.Hub[AnchorsChangedEvent]

	waitersMu sync.Mutex
	waiters   []*waiter

	// Counters (atomic for thread-safety)
	framesEmitted      uint64
	dropsNoIntrinsics  uint64
	dropsNoImage       uint64
	anchorsAdded       uint64
	anchorsRemoved     uint64
	hitTestsPerformed  uint64
}

// New creates the provider-backed bridge. Managers are located later via
// ResolveDependencies.
func New() Bridge {
	return &native{
		reg:       registry.New(),
		imageHub:  dispatch.NewHub[ImageEvent](),
		poseHub:   dispatch.NewHub[PoseEvent](),
		anchorHub: dispatch.NewHub[AnchorsChangedEvent](),
	}
}

// IsScenePresent implements Bridge.
func (b *native) IsScenePresent(sc *scene.Scene) bool {
	if sc == nil {
		return false
	}
	_, ok := scene.Find[xr.SessionManager](sc)
	return ok
}

// ResolveDependencies implements Bridge.
func (b *native) ResolveDependencies(sc *scene.Scene) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sc == nil {
		return
	}

	session, okSession := scene.Find[xr.SessionManager](sc)
	camera, okCamera := scene.Find[xr.CameraManager](sc)
	raycast, okRaycast := scene.Find[xr.RaycastManager](sc)

	if !okSession || !okCamera || !okRaycast {
		// Silent failure: the scene does not carry the provider rig.
		slog.Debug("arbridge: dependency resolution failed",
			"session", okSession,
			"camera", okCamera,
			"raycast", okRaycast,
		)
		return
	}

	anchors, okAnchors := scene.Find[xr.AnchorManager](sc)
	if !okAnchors {
		anchors = session.AttachAnchorManager()
		slog.Debug("arbridge: anchor manager created on session object")
	}

	b.session = session
	b.camera = camera
	b.raycast = raycast
	b.anchors = anchors
	b.resolved = true

	slog.Info("arbridge: provider managers resolved",
		"anchor_manager_created", !okAnchors,
	)
}

// Start implements Bridge.
func (b *native) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.resolved {
		return ErrNotResolved
	}
	if b.started {
		return ErrAlreadyStarted
	}

	b.anchors.RegisterChangeCallback(b.onAnchorsChanged)
	b.camera.RegisterFrameCallback(b.onFrame)
	b.started = true

	slog.Info("arbridge: started, provider callbacks subscribed")
	return nil
}

// Stop implements Bridge.
func (b *native) Stop() {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return
	}
	b.started = false
	camera := b.camera
	anchors := b.anchors
	session := b.session
	b.mu.Unlock()

	b.ClearAnchors()
	session.Reset()
	camera.UnregisterFrameCallback()
	anchors.UnregisterChangeCallback()

	slog.Info("arbridge: stopped, anchors cleared, session reset")
}

// IsReady implements Bridge.
func (b *native) IsReady() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.session == nil {
		return false
	}
	return b.session.State().AtLeastReady()
}

// CheckAvailability implements Bridge.
func (b *native) CheckAvailability(ctx context.Context) (bool, error) {
	b.mu.RLock()
	session := b.session
	b.mu.RUnlock()

	if session == nil {
		return false, ErrNotResolved
	}

	session.RequestAvailabilityCheck()
	if session.Availability().Determined() {
		return session.Availability() == xr.AvailabilitySupported, nil
	}

	if err := b.await(ctx, func() bool { return session.Availability().Determined() }); err != nil {
		return false, err
	}
	return session.Availability() == xr.AvailabilitySupported, nil
}

// WaitUntilCameraReady implements Bridge.
func (b *native) WaitUntilCameraReady(ctx context.Context) error {
	ready := func() bool {
		b.mu.RLock()
		camera := b.camera
		b.mu.RUnlock()
		if camera == nil {
			return false
		}
		return camera.Running() && camera.PermissionGranted()
	}

	if ready() {
		return nil
	}
	return b.await(ctx, ready)
}

// OnImage implements Bridge.
func (b *native) OnImage(id string, fn func(ImageEvent)) error {
	return b.imageHub.Register(id, fn)
}

// OffImage implements Bridge.
func (b *native) OffImage(id string) error {
	return b.imageHub.Unregister(id)
}

// OnPose implements Bridge.
func (b *native) OnPose(id string, fn func(PoseEvent)) error {
	return b.poseHub.Register(id, fn)
}

// OffPose implements Bridge.
func (b *native) OffPose(id string) error {
	return b.poseHub.Unregister(id)
}

// OnAnchorsChanged implements Bridge.
func (b *native) OnAnchorsChanged(id string, fn func(AnchorsChangedEvent)) error {
	return b.anchorHub.Register(id, fn)
}

// OffAnchorsChanged implements Bridge.
func (b *native) OffAnchorsChanged(id string) error {
	return b.anchorHub.Unregister(id)
}

// Stats implements Bridge.
func (b *native) Stats() Stats {
	return Stats{
		FramesEmitted:             atomic.LoadUint64(&b.framesEmitted),
		FramesDroppedNoIntrinsics: atomic.LoadUint64(&b.dropsNoIntrinsics),
		FramesDroppedNoImage:      atomic.LoadUint64(&b.dropsNoImage),
		AnchorsAdded:              atomic.LoadUint64(&b.anchorsAdded),
		AnchorsRemoved:            atomic.LoadUint64(&b.anchorsRemoved),
		AnchorsTracked:            b.reg.Len(),
		HitTests:                  atomic.LoadUint64(&b.hitTestsPerformed),
	}
}
