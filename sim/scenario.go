package sim

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// Scenario declares a simulated AR environment.
type Scenario struct {
	Availability AvailabilityConfig `toml:"availability"`
	Camera       CameraConfig       `toml:"camera"`
	Planes       []PlaneConfig      `toml:"planes"`
}

// AvailabilityConfig shapes the support-availability ramp.
type AvailabilityConfig struct {
	// DelayFrames is how many engine frames a requested availability
	// check takes before it concludes.
	DelayFrames int `toml:"delay_frames"`
	// Supported is the conclusion the check reaches.
	Supported bool `toml:"supported"`
}

// CameraConfig shapes the simulated camera.
type CameraConfig struct {
	// PermissionDelayFrames is the engine frame at which camera
	// permission is granted.
	PermissionDelayFrames int `toml:"permission_delay_frames"`
	// PlaneCount is the image plane layout: 2 (NV12) or 3 (planar YUV).
	PlaneCount int `toml:"plane_count"`
	// PathStep is the camera translation applied per captured frame.
	PathStep [3]float64 `toml:"path_step"`
	// Modes are the available capture configurations. The first mode is
	// active initially. An empty list is valid: the provider then has no
	// configurations.
	Modes []ModeConfig `toml:"modes"`
	// Intrinsics are the calibration parameters the camera reports.
	Intrinsics IntrinsicsConfig `toml:"intrinsics"`
}

// ModeConfig is one capture configuration.
type ModeConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	FPS    float64 `toml:"fps"`
	Tag    string  `toml:"tag"`
}

// IntrinsicsConfig are the reported calibration parameters.
type IntrinsicsConfig struct {
	FocalX     float64 `toml:"focal_x"`
	FocalY     float64 `toml:"focal_y"`
	PrincipalX float64 `toml:"principal_x"`
	PrincipalY float64 `toml:"principal_y"`
}

// PlaneConfig is one tracked plane: an origin, a unit normal and a
// bounded polygon in plane-local (u, v) coordinates.
type PlaneConfig struct {
	Origin  [3]float64   `toml:"origin"`
	Normal  [3]float64   `toml:"normal"`
	Polygon [][2]float64 `toml:"polygon"`
}

// DefaultScenario returns a small world: availability supported after two
// frames, permission after two frames, one 720p mode, a two-plane image
// layout and a single wall plane two meters in front of the camera.
func DefaultScenario() Scenario {
	return Scenario{
		Availability: AvailabilityConfig{DelayFrames: 2, Supported: true},
		Camera: CameraConfig{
			PermissionDelayFrames: 2,
			PlaneCount:            2,
			PathStep:              [3]float64{0, 0, 0.01},
			Modes: []ModeConfig{
				{Width: 1280, Height: 720, FPS: 30, Tag: "sim-720p"},
				{Width: 1920, Height: 1080, FPS: 30, Tag: "sim-1080p"},
				{Width: 1280, Height: 720, FPS: 60, Tag: "sim-720p60"},
			},
			Intrinsics: IntrinsicsConfig{
				FocalX:     900,
				FocalY:     900,
				PrincipalX: 640,
				PrincipalY: 360,
			},
		},
		Planes: []PlaneConfig{
			{
				Origin:  [3]float64{0, 0, 2},
				Normal:  [3]float64{0, 0, -1},
				Polygon: [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
			},
		},
	}
}

// LoadScenario reads a scenario from a TOML file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("sim: reading scenario: %w", err)
	}
	var sc Scenario
	if err := toml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("sim: parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks the scenario fail-fast, at construction time.
func (s Scenario) Validate() error {
	if s.Camera.PlaneCount != 2 && s.Camera.PlaneCount != 3 {
		return fmt.Errorf("sim: invalid plane count %d (must be 2 or 3)", s.Camera.PlaneCount)
	}
	if s.Availability.DelayFrames < 0 {
		return fmt.Errorf("sim: negative availability delay %d", s.Availability.DelayFrames)
	}
	if s.Camera.PermissionDelayFrames < 0 {
		return fmt.Errorf("sim: negative permission delay %d", s.Camera.PermissionDelayFrames)
	}
	for i, m := range s.Camera.Modes {
		if m.Width <= 0 || m.Height <= 0 || m.FPS <= 0 {
			return fmt.Errorf("sim: invalid mode %d: %dx%d@%.1f", i, m.Width, m.Height, m.FPS)
		}
	}
	for i, p := range s.Planes {
		if len(p.Polygon) < 3 {
			return fmt.Errorf("sim: plane %d polygon needs at least 3 vertices", i)
		}
	}
	return nil
}

// modes converts the configured modes to xr values.
func (c CameraConfig) modes() []xr.CameraMode {
	out := make([]xr.CameraMode, len(c.Modes))
	for i, m := range c.Modes {
		out[i] = xr.CameraMode{Width: m.Width, Height: m.Height, FPS: m.FPS, PlatformTag: m.Tag}
	}
	return out
}

// intrinsics converts the configured intrinsics for the given mode.
func (c CameraConfig) intrinsics(mode xr.CameraMode) xr.CameraIntrinsics {
	return xr.CameraIntrinsics{
		FocalX:     c.Intrinsics.FocalX,
		FocalY:     c.Intrinsics.FocalY,
		PrincipalX: c.Intrinsics.PrincipalX,
		PrincipalY: c.Intrinsics.PrincipalY,
		Width:      mode.Width,
		Height:     mode.Height,
	}
}
