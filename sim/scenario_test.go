package sim

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScenarioValid(t *testing.T) {
	require.NoError(t, DefaultScenario().Validate())
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "scenario.toml"))
	require.NoError(t, err)

	want := Scenario{
		Availability: AvailabilityConfig{DelayFrames: 5, Supported: true},
		Camera: CameraConfig{
			PermissionDelayFrames: 3,
			PlaneCount:            3,
			PathStep:              [3]float64{0, 0, 0.02},
			Modes: []ModeConfig{
				{Width: 1920, Height: 1080, FPS: 30, Tag: "table-1080p"},
				{Width: 1280, Height: 720, FPS: 60, Tag: "table-720p60"},
			},
			Intrinsics: IntrinsicsConfig{
				FocalX:     1400,
				FocalY:     1400,
				PrincipalX: 960,
				PrincipalY: 540,
			},
		},
		Planes: []PlaneConfig{
			{
				Origin:  [3]float64{0, -1, 0},
				Normal:  [3]float64{0, 1, 0},
				Polygon: [][2]float64{{-3, -3}, {3, -3}, {3, 3}, {-3, 3}},
			},
			{
				Origin:  [3]float64{0, -0.2, 1.5},
				Normal:  [3]float64{0, 1, 0},
				Polygon: [][2]float64{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}},
			},
		},
	}
	if diff := cmp.Diff(want, sc); diff != "" {
		t.Errorf("scenario mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "absent.toml"))
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"bad plane count", func(s *Scenario) { s.Camera.PlaneCount = 4 }},
		{"negative availability delay", func(s *Scenario) { s.Availability.DelayFrames = -1 }},
		{"negative permission delay", func(s *Scenario) { s.Camera.PermissionDelayFrames = -1 }},
		{"zero-size mode", func(s *Scenario) { s.Camera.Modes[0].Width = 0 }},
		{"degenerate polygon", func(s *Scenario) { s.Planes[0].Polygon = s.Planes[0].Polygon[:2] }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc := DefaultScenario()
			tc.mutate(&sc)
			assert.Error(t, sc.Validate())
		})
	}
}

func TestNewWorldRejectsInvalidScenario(t *testing.T) {
	sc := DefaultScenario()
	sc.Camera.PlaneCount = 1
	_, err := NewWorld(sc)
	assert.Error(t, err)
}
