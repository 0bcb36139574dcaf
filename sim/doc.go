// Package sim is a deterministic pure-Go AR provider for tests and
// development.
//
// # Overview
//
// A World implements the full xr provider contract - session, camera,
// anchors, raycast - without any platform toolkit. Time is explicit: the
// caller drives the world one engine frame at a time with Advance, and
// every transition (availability determination, permission grant, session
// readiness, frame capture, anchor change reporting) happens at a frame
// boundary derived from the scenario.
//
// # Scenario
//
// A Scenario describes the simulated environment: availability and
// permission ramps, capture configurations, camera intrinsics, per-frame
// camera motion, image plane layout (two-plane NV12 or three-plane planar
// YUV) and tracked plane polygons for hit-testing. Scenarios load from
// TOML files or start from DefaultScenario.
//
//	sc, err := sim.LoadScenario("scenario.toml")
//	world, err := sim.NewWorld(sc)
//
//	for i := 0; i < frames; i++ {
//	    world.Advance(33 * time.Millisecond)
//	    bridge.Tick()
//	}
//
// # Fault Injection
//
// The simulated camera exposes knobs consumers use to test their drop
// paths: FailIntrinsics and FailImageAcquire force the corresponding
// acquisition to report unavailable, and SupplyEventTimestamp toggles the
// provider event timestamp so the image-clock fallback can be exercised.
package sim
