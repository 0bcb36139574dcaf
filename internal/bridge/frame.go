package bridge

import (
	"log/slog"
	"sync/atomic"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// nanosPerSecond converts the image clock (seconds) to event timestamps
// (nanoseconds). The fallback conversion assumes the image clock counts
// seconds on every platform; calibrate against real provider behavior
// when binding a new toolkit.
const nanosPerSecond = 1e9

// onFrame is the provider frame-received callback. It translates one
// captured frame into a pose event followed by an image event, or drops
// the frame silently when intrinsics or the decoded image are
// unavailable.
func (b *native) onFrame(ev xr.FrameEvent) {
	b.mu.RLock()
	camera := b.camera
	started := b.started
	b.mu.RUnlock()

	if camera == nil || !started {
		return
	}

	intr, ok := camera.Intrinsics()
	if !ok {
		atomic.AddUint64(&b.dropsNoIntrinsics, 1)
		slog.Debug("arbridge: frame dropped, intrinsics unavailable")
		return
	}

	img, ok := camera.AcquireLatestImage()
	if !ok {
		atomic.AddUint64(&b.dropsNoImage, 1)
		slog.Debug("arbridge: frame dropped, image unavailable")
		return
	}
	// Scoped resource: the image must be released even if a listener
	// panics during emission.
	defer img.Release()

	timestamp := ev.TimestampNanos
	if timestamp == 0 {
		timestamp = int64(img.Timestamp() * nanosPerSecond)
	}

	b.poseHub.Publish(PoseEvent{
		Pose:           camera.Transform(),
		TimestampNanos: timestamp,
	})

	image := ImageEvent{
		Width:          img.Width(),
		Height:         img.Height(),
		TimestampNanos: timestamp,
		Intrinsics:     intr,
	}
	count := img.PlaneCount()
	if count > xr.MaxImagePlanes {
		count = xr.MaxImagePlanes
	}
	image.PlaneCount = count
	for i := 0; i < count; i++ {
		image.Planes[i] = img.Plane(i)
	}
	// Slots past PlaneCount stay zero: the explicit absent-plane
	// representation.
	b.imageHub.Publish(image)

	atomic.AddUint64(&b.framesEmitted, 1)
}
