package xr

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a rigid transform: a position and an orientation.
//
// Orientation is a unit quaternion. The zero value is not a valid pose;
// use IdentityPose for a neutral transform.
type Pose struct {
	Position    r3.Vec
	Orientation quat.Number
}

// IdentityPose returns the neutral transform (origin, no rotation).
func IdentityPose() Pose {
	return Pose{Orientation: quat.Number{Real: 1}}
}

// CameraIntrinsics are the calibration parameters needed to interpret
// image geometry: focal lengths and principal point in pixels, plus the
// resolution they were estimated at.
type CameraIntrinsics struct {
	FocalX     float64
	FocalY     float64
	PrincipalX float64
	PrincipalY float64
	Width      int
	Height     int
}

// CameraMode describes one available capture configuration. Immutable,
// used only for selection: two modes match when width, height and frame
// rate are all equal. PlatformTag carries the provider's native handle
// name and does not participate in matching.
type CameraMode struct {
	Width       int
	Height      int
	FPS         float64
	PlatformTag string
}

// Matches reports whether m and other describe the same capture
// configuration (exact width, height and frame rate).
func (m CameraMode) Matches(other CameraMode) bool {
	return m.Width == other.Width && m.Height == other.Height && m.FPS == other.FPS
}

// String returns a human-readable form like "1280x720@30.0".
func (m CameraMode) String() string {
	return fmt.Sprintf("%dx%d@%.1f", m.Width, m.Height, m.FPS)
}

// MaxImagePlanes is the fixed plane-slot count of a camera image record.
// Most platforms supply two planes (e.g. NV12: Y + interleaved UV); one
// supplies three (planar YUV). A missing third plane is represented as an
// explicit empty plane, never as an error.
const MaxImagePlanes = 3

// ImagePlane is one pixel plane of a camera image. The zero value is the
// explicit "absent plane" representation (empty buffer, zero strides).
type ImagePlane struct {
	Data        []byte
	RowStride   int
	PixelStride int
}

// Present reports whether the plane carries pixel data.
func (p ImagePlane) Present() bool { return len(p.Data) > 0 }

// CameraImage is a decoded camera image acquired from the provider.
//
// The image and its plane buffers are a scoped resource: they are valid
// only until Release() is called. Callers must release exactly once,
// unconditionally, after use.
type CameraImage interface {
	Width() int
	Height() int

	// Timestamp is the image's own capture time in seconds on the
	// provider's image clock.
	Timestamp() float64

	// PlaneCount reports how many planes carry data (2 or 3).
	PlaneCount() int

	// Plane returns plane i. Indexes at or beyond PlaneCount return the
	// zero (absent) plane.
	Plane(i int) ImagePlane

	// Release returns the underlying buffers to the provider. The image
	// must not be used afterwards.
	Release()
}

// FrameEvent is the provider's frame-received notification.
// TimestampNanos is the provider event timestamp; zero means the provider
// supplied none and the consumer should derive one from the image clock.
type FrameEvent struct {
	TimestampNanos int64
}

// ScreenPoint is a 2D point in screen pixel coordinates.
type ScreenPoint struct {
	X float64
	Y float64
}

// Hit is one raycast intersection against tracked plane geometry.
type Hit struct {
	Pose     Pose
	Distance float64
}

// Availability is the provider's support-availability state. It starts
// Unknown and moves through Checking to a terminal Supported or
// Unsupported once the platform has determined support.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	AvailabilityChecking
	AvailabilitySupported
	AvailabilityUnsupported
)

// Determined reports whether the availability check has concluded.
func (a Availability) Determined() bool {
	return a == AvailabilitySupported || a == AvailabilityUnsupported
}

func (a Availability) String() string {
	switch a {
	case AvailabilityUnknown:
		return "unknown"
	case AvailabilityChecking:
		return "checking"
	case AvailabilitySupported:
		return "supported"
	case AvailabilityUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// SessionState is the provider session lifecycle state.
type SessionState int

const (
	SessionStateNone SessionState = iota
	SessionStateInitializing
	SessionStateReady
	SessionStateTracking
)

// AtLeastReady reports whether the state has reached or passed the ready
// threshold.
func (s SessionState) AtLeastReady() bool { return s >= SessionStateReady }

func (s SessionState) String() string {
	switch s {
	case SessionStateNone:
		return "none"
	case SessionStateInitializing:
		return "initializing"
	case SessionStateReady:
		return "ready"
	case SessionStateTracking:
		return "tracking"
	default:
		return "none"
	}
}
