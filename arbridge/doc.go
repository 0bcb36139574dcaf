// Package arbridge is the AR platform facade of the SolarSystem ARBook
// engine integration.
//
// # Overview
//
// The facade bridges the book's AR integration layer (the consumer) to
// the underlying platform AR subsystem (the provider): it discovers the
// provider-owned managers - camera, session, anchor, raycast - in the
// scene at runtime, translates provider events (frame-received,
// anchors-changed) into a narrow event surface, and forwards simple
// commands (anchor add/remove, hit-testing, camera-profile selection) to
// the provider APIs. There is no algorithm here: pose tracking, plane
// detection and intrinsics estimation all live behind the xr provider
// contract.
//
// # Basic Usage
//
//	br := arbridge.Initialize()
//	if !br.IsScenePresent(sc) {
//	    return // no AR rig in this scene
//	}
//	br.ResolveDependencies(sc)
//
//	supported, err := br.CheckAvailability(ctx)
//	if err != nil || !supported {
//	    return
//	}
//	if err := br.Start(); err != nil {
//	    return
//	}
//	defer br.Stop()
//
//	br.OnPose("renderer", func(ev arbridge.PoseEvent) { ... })
//	br.OnImage("recorder", func(ev arbridge.ImageEvent) { ... })
//
// The host engine drives cooperative time: call Tick once per display
// frame on the main update goroutine. CheckAvailability and
// WaitUntilCameraReady suspend their calling goroutine and resume on a
// Tick; cancellation is the caller's, via context.
//
// # Events
//
// Three channels fire toward the consumer: an image event and a pose
// event once per captured frame, and an anchors-changed event whenever
// the provider reports changes to tracked anchors. Listeners register
// and unregister explicitly by id. Delivery is synchronous on the
// provider callback goroutine: image plane buffers are only valid for
// the duration of the callback, copy to retain.
//
// # Build Variants
//
// The provider-backed implementation is the default build. Building with
// the "arstub" tag selects an empty stub satisfying the same Bridge
// surface, for targets without an AR toolkit; callers need no
// conditional logic.
//
// # Thread Model
//
// Single-threaded cooperative: provider callbacks and facade commands
// run on the engine's main update goroutine, and no operation blocks it.
// Internal state is nevertheless lock-protected so a multi-threaded
// provider substitution stays safe.
package arbridge
