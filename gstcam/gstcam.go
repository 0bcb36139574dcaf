package gstcam

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
	"gonum.org/v1/gonum/num/quat"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// DefaultDevice is the Linux default webcam node.
const DefaultDevice = "/dev/video0"

// Config configures a webcam capture.
type Config struct {
	// Device is the V4L2 device node. Defaults to DefaultDevice.
	Device string

	// Modes are the capture configurations this device may be switched
	// between. The first mode is active initially. At least one is
	// required.
	Modes []xr.CameraMode

	// Intrinsics is the optional calibration for the device. When left
	// zero, Intrinsics() reports unavailable and consumers treat frames
	// as undropped-but-unprojectable.
	Intrinsics xr.CameraIntrinsics
}

// validate checks the configuration fail-fast, at construction time.
func (c Config) validate() error {
	if len(c.Modes) == 0 {
		return fmt.Errorf("gstcam: at least one capture mode is required")
	}
	for i, m := range c.Modes {
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("gstcam: invalid resolution %dx%d in mode %d", m.Width, m.Height, i)
		}
		if m.FPS < 0.1 || m.FPS > 60 {
			return fmt.Errorf("gstcam: invalid FPS %.2f in mode %d (must be 0.1-60)", m.FPS, i)
		}
	}
	return nil
}

// Stats is a snapshot of capture counters.
type Stats struct {
	FrameCount uint64
	BytesRead  uint64
	FPSReal    float64
	Uptime     time.Duration
}

// Capture drives a webcam as an xr.CameraManager. Frames arrive on
// GStreamer's streaming goroutine; the registered frame callback fires
// there.
type Capture struct {
	cfg Config

	mu       sync.Mutex
	modes    []xr.CameraMode
	active   int
	elements *pipelineElements
	latest   *nv12Image
	frameCB  func(xr.FrameEvent)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started time.Time

	frameCount uint64
	bytesRead  uint64
}

// NewCapture creates a webcam capture with fail-fast validation. Returns
// an error if the configuration is invalid or GStreamer is unavailable.
func NewCapture(cfg Config) (*Capture, error) {
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := checkGStreamerAvailable(); err != nil {
		return nil, fmt.Errorf("gstcam: GStreamer not available: %w", err)
	}

	c := &Capture{
		cfg:    cfg,
		modes:  append([]xr.CameraMode(nil), cfg.Modes...),
		active: 0,
	}

	slog.Info("gstcam: capture created",
		"device", cfg.Device,
		"mode", cfg.Modes[0].String(),
		"modes", len(cfg.Modes),
	)
	return c, nil
}

// Start builds the pipeline and begins capturing. Frames arrive
// asynchronously once the pipeline reaches PLAYING state.
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return fmt.Errorf("gstcam: capture already started")
	}

	mode := c.modes[c.active]
	elements, err := createPipeline(c.cfg.Device, mode.Width, mode.Height, mode.FPS)
	if err != nil {
		return fmt.Errorf("gstcam: failed to create pipeline: %w", err)
	}
	c.elements = elements

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.started = time.Now()

	elements.appSink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: c.onNewSample,
	})

	if err := elements.pipeline.SetState(gst.StatePlaying); err != nil {
		c.cancel()
		c.cancel = nil
		return fmt.Errorf("gstcam: failed to start pipeline: %w", err)
	}

	c.wg.Add(1)
	go c.monitorBus()

	slog.Info("gstcam: capture started",
		"device", c.cfg.Device,
		"mode", mode.String(),
	)
	return nil
}

// Stop shuts the capture down. Idempotent.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel == nil {
		slog.Debug("gstcam: capture not started, nothing to stop")
		return nil
	}

	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		slog.Warn("gstcam: stop timeout exceeded, bus monitor may still be running")
	}

	if err := destroyPipeline(c.elements); err != nil {
		slog.Error("gstcam: failed to destroy pipeline", "error", err)
	}
	c.elements = nil
	c.cancel = nil
	c.ctx = nil

	slog.Info("gstcam: capture stopped",
		"frames_captured", atomic.LoadUint64(&c.frameCount),
		"uptime", time.Since(c.started),
	)
	return nil
}

// onNewSample copies one NV12 buffer out of the appsink, retains it as
// the latest frame and fires the frame callback.
func (c *Capture) onNewSample(sink *app.Sink) gst.FlowReturn {
	sample := sink.PullSample()
	if sample == nil {
		slog.Warn("gstcam: failed to pull sample from appsink, skipping frame")
		return gst.FlowOK
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		slog.Warn("gstcam: failed to get buffer from sample, skipping frame")
		return gst.FlowOK
	}

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	if len(data) == 0 {
		buffer.Unmap()
		slog.Warn("gstcam: empty buffer received")
		return gst.FlowOK
	}
	// Copy out: GStreamer reuses the buffer after Unmap.
	frameData := make([]byte, len(data))
	copy(frameData, data)
	buffer.Unmap()

	atomic.AddUint64(&c.frameCount, 1)
	atomic.AddUint64(&c.bytesRead, uint64(len(data)))

	elapsed := time.Since(c.started)

	c.mu.Lock()
	mode := c.modes[c.active]
	c.latest = newNV12Image(mode.Width, mode.Height, elapsed.Seconds(), frameData)
	cb := c.frameCB
	c.mu.Unlock()

	if cb != nil {
		cb(xr.FrameEvent{TimestampNanos: elapsed.Nanoseconds()})
	}
	return gst.FlowOK
}

// monitorBus watches the pipeline bus until shutdown. Webcams do not
// reconnect: a pipeline error ends the capture.
func (c *Capture) monitorBus() {
	defer c.wg.Done()

	c.mu.Lock()
	elements := c.elements
	ctx := c.ctx
	c.mu.Unlock()
	if elements == nil {
		return
	}
	bus := elements.pipeline.GetPipelineBus()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("gstcam: context cancelled, stopping bus monitor")
			return
		default:
			msg := bus.TimedPop(50 * time.Millisecond)
			if msg == nil {
				continue
			}
			switch msg.Type() {
			case gst.MessageEOS:
				slog.Info("gstcam: end of stream",
					"device", c.cfg.Device,
					"frames_captured", atomic.LoadUint64(&c.frameCount),
				)
				return
			case gst.MessageError:
				gerr := msg.ParseError()
				slog.Error("gstcam: pipeline error",
					"error", gerr.Error(),
					"debug", gerr.DebugString(),
					"device", c.cfg.Device,
					"uptime", time.Since(c.started),
				)
				return
			}
		}
	}
}

// Running implements xr.CameraManager.
func (c *Capture) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// PermissionGranted implements xr.CameraManager. Device access stands in
// for permission: a webcam the pipeline opened is a webcam the process
// may read.
func (c *Capture) PermissionGranted() bool {
	return c.Running()
}

// Transform implements xr.CameraManager. A webcam carries no spatial
// tracking, so the pose is always identity.
func (c *Capture) Transform() xr.Pose {
	return xr.Pose{Orientation: quat.Number{Real: 1}}
}

// Intrinsics implements xr.CameraManager. Available only when the
// configuration carries a calibration.
func (c *Capture) Intrinsics() (xr.CameraIntrinsics, bool) {
	if c.cfg.Intrinsics.FocalX == 0 || c.cfg.Intrinsics.FocalY == 0 {
		return xr.CameraIntrinsics{}, false
	}
	c.mu.Lock()
	mode := c.modes[c.active]
	c.mu.Unlock()

	intr := c.cfg.Intrinsics
	intr.Width = mode.Width
	intr.Height = mode.Height
	return intr, true
}

// AcquireLatestImage implements xr.CameraManager.
func (c *Capture) AcquireLatestImage() (xr.CameraImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest == nil {
		return nil, false
	}
	return c.latest, true
}

// Configurations implements xr.CameraManager.
func (c *Capture) Configurations() []xr.CameraMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]xr.CameraMode, len(c.modes))
	copy(out, c.modes)
	return out
}

// ActiveConfiguration implements xr.CameraManager.
func (c *Capture) ActiveConfiguration() (xr.CameraMode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modes[c.active], true
}

// SetConfiguration implements xr.CameraManager. On a running pipeline the
// capsfilter is hot-reloaded; capture pauses briefly while GStreamer
// renegotiates.
func (c *Capture) SetConfiguration(mode xr.CameraMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, m := range c.modes {
		if !m.Matches(mode) {
			continue
		}
		if c.elements != nil {
			if err := updateCaps(c.elements.capsFilter, m.Width, m.Height, m.FPS); err != nil {
				return fmt.Errorf("gstcam: failed to update caps: %w", err)
			}
		}
		c.active = i
		c.latest = nil
		slog.Info("gstcam: configuration changed", "mode", m.String())
		return nil
	}
	return fmt.Errorf("gstcam: unknown configuration %s", mode)
}

// RegisterFrameCallback implements xr.CameraManager.
func (c *Capture) RegisterFrameCallback(cb func(xr.FrameEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameCB = cb
}

// UnregisterFrameCallback implements xr.CameraManager.
func (c *Capture) UnregisterFrameCallback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameCB = nil
}

// Stats returns current capture statistics.
func (c *Capture) Stats() Stats {
	frameCount := atomic.LoadUint64(&c.frameCount)

	var fpsReal float64
	var uptime time.Duration
	c.mu.Lock()
	if !c.started.IsZero() {
		uptime = time.Since(c.started)
	}
	c.mu.Unlock()
	if secs := uptime.Seconds(); secs > 0 {
		fpsReal = float64(frameCount) / secs
	}

	return Stats{
		FrameCount: frameCount,
		BytesRead:  atomic.LoadUint64(&c.bytesRead),
		FPSReal:    fpsReal,
		Uptime:     uptime,
	}
}

// checkGStreamerAvailable verifies GStreamer works by creating a trivial
// element, fail-fast at construction time.
func checkGStreamerAvailable() error {
	gst.Init(nil)

	elem, err := gst.NewElement("fakesrc")
	if err != nil {
		return fmt.Errorf("GStreamer not available or not properly installed: %w", err)
	}
	elem.SetState(gst.StateNull)
	return nil
}
