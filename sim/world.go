package sim

import (
	"sync"
	"time"

	"github.com/sam20code/SolarSystem-ARBook/scene"
)

// ObjectName is the name of the scene object carrying the provider rig.
const ObjectName = "AR Session Origin"

// World is the simulated provider. It owns one scene object carrying
// session, camera and raycast components; the anchor manager is created
// on demand via SessionManager.AttachAnchorManager, mirroring real
// provider rigs that ship without one.
type World struct {
	mu sync.Mutex

	scenario Scenario
	sc       *scene.Scene
	object   *scene.Object

	session *Session
	camera  *Camera
	raycast *Raycast

	frame int
	clock time.Duration
}

// NewWorld builds a world from the scenario, fail-fast on invalid
// configuration, and populates a fresh scene with the provider rig.
func NewWorld(scenario Scenario) (*World, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		scenario: scenario,
		sc:       scene.New(),
		object:   scene.NewObject(ObjectName),
	}

	w.session = newSession(w, scenario.Availability)
	w.camera = newCamera(w, scenario.Camera)
	w.raycast = newRaycast(w.camera, scenario)

	w.object.Attach(w.session)
	w.object.Attach(w.camera)
	w.object.Attach(w.raycast)
	w.sc.Add(w.object)

	return w, nil
}

// Scene returns the scene holding the provider rig.
func (w *World) Scene() *scene.Scene { return w.sc }

// Session returns the simulated session manager.
func (w *World) Session() *Session { return w.session }

// Camera returns the simulated camera manager.
func (w *World) Camera() *Camera { return w.camera }

// Raycast returns the simulated raycast manager.
func (w *World) Raycast() *Raycast { return w.raycast }

// Anchors returns the simulated anchor manager, or nil before anything
// attached one.
func (w *World) Anchors() *Anchors { return w.session.anchorManager() }

// Frame returns the current engine frame index.
func (w *World) Frame() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frame
}

// Clock returns the simulated time since world start.
func (w *World) Clock() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clock
}

// Advance moves the simulation one engine frame forward: availability
// checks conclude, permission ramps complete, the session state machine
// steps, at most one camera frame is captured and anchor changes are
// reported. Callbacks fire on the calling goroutine, matching the
// single-threaded engine model.
func (w *World) Advance(dt time.Duration) {
	w.mu.Lock()
	w.frame++
	w.clock += dt
	frame := w.frame
	clock := w.clock
	w.mu.Unlock()

	w.session.advance(frame)
	w.camera.advance(frame, clock)
	if a := w.session.anchorManager(); a != nil {
		a.advance()
	}
}
