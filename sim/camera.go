package sim

import (
	"fmt"
	"sync"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// Camera implements xr.CameraManager for the simulated world. It captures
// at most one frame per Advance while the session is running.
type Camera struct {
	world *World
	cfg   CameraConfig

	mu        sync.Mutex
	modes     []xr.CameraMode
	active    int // index into modes, -1 when none
	permitted bool

	pos          r3.Vec
	captured     uint64
	captureClock time.Duration

	frameCB func(xr.FrameEvent)

	// Fault injection (see package doc).
	failIntrinsics  bool
	failImage       bool
	supplyTimestamp bool

	lastAcquired *Image
}

func newCamera(world *World, cfg CameraConfig) *Camera {
	c := &Camera{
		world:           world,
		cfg:             cfg,
		modes:           cfg.modes(),
		active:          -1,
		supplyTimestamp: true,
	}
	if len(c.modes) > 0 {
		c.active = 0
	}
	return c
}

// Running implements xr.CameraManager: the camera delivers frames once
// the session is at least ready and permission has been granted.
func (c *Camera) Running() bool {
	state := c.world.session.State()

	c.mu.Lock()
	permitted := c.permitted
	c.mu.Unlock()

	return state.AtLeastReady() && permitted
}

// PermissionGranted implements xr.CameraManager.
func (c *Camera) PermissionGranted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.permitted
}

// Transform implements xr.CameraManager. The pose is the last pose the
// camera produced; orientation stays identity, the scenario path only
// translates.
func (c *Camera) Transform() xr.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return xr.Pose{Position: c.pos, Orientation: quat.Number{Real: 1}}
}

// Intrinsics implements xr.CameraManager. Unavailable until the camera
// runs with an active configuration, or under fault injection.
func (c *Camera) Intrinsics() (xr.CameraIntrinsics, bool) {
	running := c.Running()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failIntrinsics || !running || c.active < 0 {
		return xr.CameraIntrinsics{}, false
	}
	return c.cfg.intrinsics(c.modes[c.active]), true
}

// AcquireLatestImage implements xr.CameraManager. The returned image is a
// fresh synthetic YUV buffer sized for the active configuration.
func (c *Camera) AcquireLatestImage() (xr.CameraImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failImage || c.captured == 0 || c.active < 0 {
		return nil, false
	}

	mode := c.modes[c.active]
	img := newImage(mode.Width, mode.Height, c.cfg.PlaneCount, c.captureClock.Seconds())
	c.lastAcquired = img
	return img, true
}

// Configurations implements xr.CameraManager.
func (c *Camera) Configurations() []xr.CameraMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]xr.CameraMode, len(c.modes))
	copy(out, c.modes)
	return out
}

// ActiveConfiguration implements xr.CameraManager.
func (c *Camera) ActiveConfiguration() (xr.CameraMode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active < 0 {
		return xr.CameraMode{}, false
	}
	return c.modes[c.active], true
}

// SetConfiguration implements xr.CameraManager.
func (c *Camera) SetConfiguration(mode xr.CameraMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, m := range c.modes {
		if m.Matches(mode) {
			c.active = i
			return nil
		}
	}
	return fmt.Errorf("sim: unknown configuration %s", mode)
}

// RegisterFrameCallback implements xr.CameraManager.
func (c *Camera) RegisterFrameCallback(cb func(xr.FrameEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameCB = cb
}

// UnregisterFrameCallback implements xr.CameraManager.
func (c *Camera) UnregisterFrameCallback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameCB = nil
}

// SetFailIntrinsics forces Intrinsics to report unavailable.
func (c *Camera) SetFailIntrinsics(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failIntrinsics = fail
}

// SetFailImageAcquire forces AcquireLatestImage to report unavailable.
func (c *Camera) SetFailImageAcquire(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failImage = fail
}

// SetSupplyEventTimestamp toggles the provider event timestamp. When
// false, frame events carry no timestamp and consumers must fall back to
// the image clock.
func (c *Camera) SetSupplyEventTimestamp(supply bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supplyTimestamp = supply
}

// LastAcquired returns the image most recently handed out, for release
// assertions in tests. Nil before any acquisition.
func (c *Camera) LastAcquired() *Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAcquired
}

func (c *Camera) captureCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captured
}

// advance grants permission once the scenario ramp completes, then
// captures one frame and fires the frame callback when the camera runs.
func (c *Camera) advance(frame int, clock time.Duration) {
	c.mu.Lock()
	c.permitted = frame >= c.cfg.PermissionDelayFrames
	c.mu.Unlock()

	if !c.Running() {
		return
	}

	c.mu.Lock()
	if c.active < 0 {
		c.mu.Unlock()
		return
	}
	c.captured++
	c.captureClock = clock
	c.pos = r3.Add(c.pos, r3.Vec{X: c.cfg.PathStep[0], Y: c.cfg.PathStep[1], Z: c.cfg.PathStep[2]})
	cb := c.frameCB
	supply := c.supplyTimestamp
	c.mu.Unlock()

	if cb == nil {
		return
	}
	var ts int64
	if supply {
		ts = clock.Nanoseconds()
	}
	cb(xr.FrameEvent{TimestampNanos: ts})
}
