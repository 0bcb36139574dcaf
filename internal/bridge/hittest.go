package bridge

import (
	"sync/atomic"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// HitTest implements Bridge. Ordering is provider-defined (nearest
// first); an empty result is benign, not an error.
func (b *native) HitTest(pt xr.ScreenPoint) (bool, []xr.Pose) {
	b.mu.RLock()
	raycast := b.raycast
	b.mu.RUnlock()

	if raycast == nil {
		return false, nil
	}

	atomic.AddUint64(&b.hitTestsPerformed, 1)

	hits := raycast.RaycastWithinPlane(pt)
	if len(hits) == 0 {
		return false, nil
	}

	poses := make([]xr.Pose, len(hits))
	for i, h := range hits {
		poses[i] = h.Pose
	}
	return true, poses
}
