package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam20code/SolarSystem-ARBook/internal/bridge"
	"github.com/sam20code/SolarSystem-ARBook/sim"
	"github.com/sam20code/SolarSystem-ARBook/xr"
)

func TestHitTestCenterHitsWall(t *testing.T) {
	w, b := newWorld(t)
	startTracking(t, w, b)

	ok, poses := b.HitTest(centerPoint())
	require.True(t, ok)
	require.Len(t, poses, 1)

	cam, err := b.CameraTransform()
	require.NoError(t, err)

	// The principal point looks straight ahead: the hit lands on the
	// wall two meters out, laterally aligned with the camera.
	assert.InDelta(t, cam.Position.X, poses[0].Position.X, 1e-9)
	assert.InDelta(t, cam.Position.Y, poses[0].Position.Y, 1e-9)
	assert.InDelta(t, 2.0, poses[0].Position.Z, 1e-9)

	assert.Equal(t, uint64(1), b.Stats().HitTests)
}

func TestHitTestOffPolygonMisses(t *testing.T) {
	w, b := newWorld(t)
	startTracking(t, w, b)

	// Far off-axis: the ray crosses the wall plane outside its polygon.
	ok, poses := b.HitTest(xr.ScreenPoint{X: 5000, Y: 360})
	assert.False(t, ok)
	assert.Empty(t, poses)
	assert.Equal(t, uint64(1), b.Stats().HitTests)
}

func TestHitTestNearestFirst(t *testing.T) {
	sc := sim.DefaultScenario()
	sc.Planes = append(sc.Planes, sim.PlaneConfig{
		Origin:  [3]float64{0, 0, 3},
		Normal:  [3]float64{0, 0, -1},
		Polygon: [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
	})
	w, err := sim.NewWorld(sc)
	require.NoError(t, err)

	b := bridge.New()
	startTracking(t, w, b)

	ok, poses := b.HitTest(centerPoint())
	require.True(t, ok)
	require.Len(t, poses, 2)
	assert.Less(t, poses[0].Position.Z, poses[1].Position.Z)
	assert.InDelta(t, 2.0, poses[0].Position.Z, 1e-9)
	assert.InDelta(t, 3.0, poses[1].Position.Z, 1e-9)
}

func TestHitTestWithoutRaycastManager(t *testing.T) {
	_, b := newWorld(t)

	ok, poses := b.HitTest(centerPoint())
	assert.False(t, ok)
	assert.Empty(t, poses)
	assert.Equal(t, uint64(0), b.Stats().HitTests, "unresolved calls are not counted")
}
