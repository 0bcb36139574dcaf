package bridge_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/sam20code/SolarSystem-ARBook/internal/bridge"
	"github.com/sam20code/SolarSystem-ARBook/sim"
	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// tickInterval is exactly representable in binary seconds, so converting
// the simulated clock through float64 seconds stays lossless in tests.
const tickInterval = 31250 * time.Microsecond

// newWorld builds a default simulated world and a fresh native bridge.
func newWorld(t *testing.T) (*sim.World, bridge.Bridge) {
	t.Helper()
	w, err := sim.NewWorld(sim.DefaultScenario())
	require.NoError(t, err)
	return w, bridge.New()
}

// advance steps world and bridge together for n engine frames.
func advance(w *sim.World, b bridge.Bridge, n int) {
	for i := 0; i < n; i++ {
		w.Advance(tickInterval)
		b.Tick()
	}
}

// advanceUntil steps until pred holds, failing the test after max frames.
func advanceUntil(t *testing.T, w *sim.World, b bridge.Bridge, max int, pred func() bool) {
	t.Helper()
	for i := 0; i < max; i++ {
		w.Advance(tickInterval)
		b.Tick()
		if pred() {
			return
		}
	}
	t.Fatalf("condition not reached within %d frames", max)
}

// simPose is an arbitrary placement used by anchor tests.
func simPose() xr.Pose {
	p := xr.IdentityPose()
	p.Position = r3.Vec{X: 0.5, Y: 0.2, Z: 1.0}
	return p
}

// centerPoint targets the principal point of the default intrinsics,
// which projects straight down the camera's forward axis.
func centerPoint() xr.ScreenPoint {
	return xr.ScreenPoint{X: 640, Y: 360}
}

// startTracking resolves, starts and advances the world until the
// session is ready and frames are flowing.
func startTracking(t *testing.T, w *sim.World, b bridge.Bridge) {
	t.Helper()
	b.ResolveDependencies(w.Scene())
	require.NoError(t, b.Start())
	w.Session().RequestAvailabilityCheck()
	advanceUntil(t, w, b, 20, func() bool {
		return b.IsReady() && b.Stats().FramesEmitted > 0
	})
}
