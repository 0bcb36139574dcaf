package bridge

import (
	"context"

	"github.com/sam20code/SolarSystem-ARBook/internal/dispatch"
	"github.com/sam20code/SolarSystem-ARBook/scene"
	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// stub satisfies the Bridge surface on build targets without an AR
// toolkit: every command is a no-op or benign sentinel and no event ever
// fires. Listener registration still works so callers keep a single code
// path.
type stub struct {
	imageHub  *dispatch.Hub[ImageEvent]
	poseHub   *dispatch.Hub[PoseEvent]
	anchorHub *dispatch.Hub[AnchorsChangedEvent]
}

// NewStub creates the empty stub bridge.
func NewStub() Bridge {
	return &stub{
		imageHub:  dispatch.NewHub[ImageEvent](),
		poseHub:   dispatch.NewHub[PoseEvent](),
		anchorHub: dispatch.NewHub[AnchorsChangedEvent](),
	}
}

func (s *stub) IsScenePresent(*scene.Scene) bool  { return false }
func (s *stub) ResolveDependencies(*scene.Scene)  {}
func (s *stub) Start() error                      { return nil }
func (s *stub) Stop()                             {}
func (s *stub) Tick()                             {}
func (s *stub) IsReady() bool                     { return false }

// CheckAvailability reports no support immediately; there is no provider
// to wait for.
func (s *stub) CheckAvailability(context.Context) (bool, error) { return false, nil }

// WaitUntilCameraReady returns immediately: with no camera subsystem a
// cooperative wait would never resume.
func (s *stub) WaitUntilCameraReady(context.Context) error { return nil }

func (s *stub) CameraTransform() (xr.Pose, error)         { return xr.Pose{}, ErrNotResolved }
func (s *stub) ListProfiles() []xr.CameraMode             { return nil }
func (s *stub) SelectProfile(xr.CameraMode) (bool, error) { return false, nil }

func (s *stub) AddAnchor(xr.Pose) string    { return "" }
func (s *stub) RemoveAnchor(string) bool    { return false }
func (s *stub) ClearAnchors()               {}

func (s *stub) HitTest(xr.ScreenPoint) (bool, []xr.Pose) { return false, nil }

func (s *stub) OnImage(id string, fn func(ImageEvent)) error { return s.imageHub.Register(id, fn) }
func (s *stub) OffImage(id string) error                     { return s.imageHub.Unregister(id) }
func (s *stub) OnPose(id string, fn func(PoseEvent)) error   { return s.poseHub.Register(id, fn) }
func (s *stub) OffPose(id string) error                      { return s.poseHub.Unregister(id) }
func (s *stub) OnAnchorsChanged(id string, fn func(AnchorsChangedEvent)) error {
	return s.anchorHub.Register(id, fn)
}
func (s *stub) OffAnchorsChanged(id string) error { return s.anchorHub.Unregister(id) }

func (s *stub) Stats() Stats { return Stats{} }
