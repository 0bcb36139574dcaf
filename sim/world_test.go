package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam20code/SolarSystem-ARBook/scene"
	"github.com/sam20code/SolarSystem-ARBook/xr"
)

const step = 33 * time.Millisecond

func testWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(DefaultScenario())
	require.NoError(t, err)
	return w
}

func TestWorldRigDiscoverable(t *testing.T) {
	w := testWorld(t)

	obj, ok := w.Scene().FindObject(ObjectName)
	require.True(t, ok)
	assert.Len(t, obj.Components(), 3)

	session, ok := scene.Find[xr.SessionManager](w.Scene())
	require.True(t, ok)
	assert.Same(t, w.Session(), session.(*Session))

	_, ok = scene.Find[xr.CameraManager](w.Scene())
	assert.True(t, ok)
	_, ok = scene.Find[xr.RaycastManager](w.Scene())
	assert.True(t, ok)
	_, ok = scene.Find[xr.AnchorManager](w.Scene())
	assert.False(t, ok, "anchor manager absent until attached")
}

func TestAvailabilityRamp(t *testing.T) {
	w := testWorld(t)
	s := w.Session()

	assert.Equal(t, xr.AvailabilityUnknown, s.Availability())

	s.RequestAvailabilityCheck()
	assert.Equal(t, xr.AvailabilityChecking, s.Availability())

	w.Advance(step)
	assert.Equal(t, xr.AvailabilityChecking, s.Availability(), "one frame in, still pending")

	w.Advance(step)
	assert.Equal(t, xr.AvailabilitySupported, s.Availability())

	// Re-requesting after conclusion is a no-op.
	s.RequestAvailabilityCheck()
	assert.Equal(t, xr.AvailabilitySupported, s.Availability())
}

func TestAvailabilityUnsupported(t *testing.T) {
	sc := DefaultScenario()
	sc.Availability.Supported = false
	w, err := NewWorld(sc)
	require.NoError(t, err)

	w.Session().RequestAvailabilityCheck()
	for i := 0; i < 5; i++ {
		w.Advance(step)
	}
	assert.Equal(t, xr.AvailabilityUnsupported, w.Session().Availability())
	assert.Equal(t, xr.SessionStateNone, w.Session().State())
}

func TestSessionStateProgression(t *testing.T) {
	w := testWorld(t)
	s := w.Session()
	s.RequestAvailabilityCheck()

	// Defaults: availability concludes and permission lands at frame 2.
	w.Advance(step) // frame 1
	assert.Equal(t, xr.SessionStateNone, s.State())

	w.Advance(step) // frame 2: supported, state leaves None
	assert.Equal(t, xr.SessionStateInitializing, s.State())
	assert.True(t, w.Camera().PermissionGranted())

	w.Advance(step) // frame 3: ready, first frame captured
	assert.Equal(t, xr.SessionStateReady, s.State())
	assert.True(t, w.Camera().Running())

	w.Advance(step) // frame 4: capture seen, tracking
	assert.Equal(t, xr.SessionStateTracking, s.State())
	assert.True(t, s.State().AtLeastReady())
}

func TestCameraCaptureCadence(t *testing.T) {
	w := testWorld(t)
	w.Session().RequestAvailabilityCheck()

	var frames int
	w.Camera().RegisterFrameCallback(func(ev xr.FrameEvent) {
		frames++
		assert.Equal(t, w.Clock().Nanoseconds(), ev.TimestampNanos)
	})

	for i := 0; i < 6; i++ {
		w.Advance(step)
	}

	// Frames 3 through 6 capture: one per advance once running.
	assert.Equal(t, 4, frames)
	assert.InDelta(t, 4*0.01, w.Camera().Transform().Position.Z, 1e-12)
}

func TestCameraImageLayouts(t *testing.T) {
	for _, planes := range []int{2, 3} {
		sc := DefaultScenario()
		sc.Camera.PlaneCount = planes
		w, err := NewWorld(sc)
		require.NoError(t, err)
		w.Session().RequestAvailabilityCheck()
		for i := 0; i < 4; i++ {
			w.Advance(step)
		}

		img, ok := w.Camera().AcquireLatestImage()
		require.True(t, ok)
		require.Equal(t, planes, img.PlaneCount())

		y := img.Plane(0)
		assert.Len(t, y.Data, 1280*720)
		assert.Equal(t, 1, y.PixelStride)

		if planes == 2 {
			uv := img.Plane(1)
			assert.Len(t, uv.Data, 1280*720/2)
			assert.Equal(t, 2, uv.PixelStride)
		} else {
			for i := 1; i < 3; i++ {
				chroma := img.Plane(i)
				assert.Len(t, chroma.Data, 1280*720/4)
				assert.Equal(t, 1280/2, chroma.RowStride)
				assert.Equal(t, 1, chroma.PixelStride)
			}
		}

		assert.False(t, img.(*Image).Released())
		img.Release()
		img.Release() // idempotent
		assert.True(t, img.(*Image).Released())
	}
}

func TestAcquireBeforeFirstCapture(t *testing.T) {
	w := testWorld(t)

	_, ok := w.Camera().AcquireLatestImage()
	assert.False(t, ok)
	_, ok = w.Camera().Intrinsics()
	assert.False(t, ok)
}

func TestAnchorsRequireReadySession(t *testing.T) {
	w := testWorld(t)
	anchors := w.Session().AttachAnchorManager()

	_, ok := anchors.TryAdd(xr.IdentityPose())
	assert.False(t, ok, "session not ready yet")

	w.Session().RequestAvailabilityCheck()
	for i := 0; i < 4; i++ {
		w.Advance(step)
	}

	a, ok := anchors.TryAdd(xr.IdentityPose())
	require.True(t, ok)
	assert.NotEmpty(t, a.ID())
	assert.True(t, w.Anchors().Contains(a.ID()))
}

func TestAnchorLossReporting(t *testing.T) {
	w := testWorld(t)
	anchors := w.Session().AttachAnchorManager()
	w.Session().RequestAvailabilityCheck()
	for i := 0; i < 4; i++ {
		w.Advance(step)
	}

	first, ok := anchors.TryAdd(xr.IdentityPose())
	require.True(t, ok)
	second, ok := anchors.TryAdd(xr.IdentityPose())
	require.True(t, ok)

	var last xr.AnchorChanges
	anchors.RegisterChangeCallback(func(ch xr.AnchorChanges) { last = ch })

	w.Anchors().Lose(first.ID())
	w.Advance(step)

	require.Len(t, last.Removed, 1)
	assert.Equal(t, first.ID(), last.Removed[0].ID())
	require.Len(t, last.Updated, 1)
	assert.Equal(t, second.ID(), last.Updated[0].ID())
	assert.False(t, w.Anchors().Contains(first.ID()))
}

func TestSessionResetDiscardsAnchorsSilently(t *testing.T) {
	w := testWorld(t)
	anchors := w.Session().AttachAnchorManager()
	w.Session().RequestAvailabilityCheck()
	for i := 0; i < 4; i++ {
		w.Advance(step)
	}

	_, ok := anchors.TryAdd(xr.IdentityPose())
	require.True(t, ok)

	var fired int
	anchors.RegisterChangeCallback(func(xr.AnchorChanges) { fired++ })

	w.Session().Reset()

	assert.Equal(t, 0, w.Anchors().Len())
	assert.Zero(t, fired, "reset notifies nobody")
	assert.Equal(t, xr.SessionStateInitializing, w.Session().State())

	// The session climbs back without a fresh availability request.
	w.Advance(step)
	w.Advance(step)
	assert.Equal(t, xr.SessionStateTracking, w.Session().State())
}

func TestAttachAnchorManagerIdempotent(t *testing.T) {
	w := testWorld(t)

	first := w.Session().AttachAnchorManager()
	second := w.Session().AttachAnchorManager()
	assert.Same(t, first, second)

	found, ok := scene.Find[xr.AnchorManager](w.Scene())
	require.True(t, ok)
	assert.Same(t, first, found)
}
