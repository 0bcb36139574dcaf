package bridge

import (
	"fmt"
	"log/slog"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// CameraTransform implements Bridge.
func (b *native) CameraTransform() (xr.Pose, error) {
	b.mu.RLock()
	camera := b.camera
	b.mu.RUnlock()

	if camera == nil {
		return xr.Pose{}, ErrNotResolved
	}
	return camera.Transform(), nil
}

// ListProfiles implements Bridge.
func (b *native) ListProfiles() []xr.CameraMode {
	b.mu.RLock()
	camera := b.camera
	b.mu.RUnlock()

	if camera == nil {
		return nil
	}
	return camera.Configurations()
}

// SelectProfile implements Bridge. Exact-match only: the candidate set is
// every configuration with the requested frame rate, and within it the
// requested width and height must match exactly. No nearest-fit fallback.
func (b *native) SelectProfile(mode xr.CameraMode) (bool, error) {
	b.mu.RLock()
	camera := b.camera
	b.mu.RUnlock()

	if camera == nil {
		return false, ErrNotResolved
	}

	available := camera.Configurations()
	if len(available) == 0 {
		return false, nil
	}

	for _, candidate := range available {
		if candidate.FPS != mode.FPS {
			continue
		}
		if candidate.Width == mode.Width && candidate.Height == mode.Height {
			if err := camera.SetConfiguration(candidate); err != nil {
				return false, fmt.Errorf("arbridge: activating %s: %w", candidate, err)
			}
			slog.Info("arbridge: camera profile selected", "mode", candidate.String())
			return true, nil
		}
	}

	return false, fmt.Errorf("%w: %s", ErrNoMatchingMode, mode)
}
