// Package xr defines the provider contract for AR platform integrations.
//
// # Overview
//
// The arbridge facade talks to the underlying AR platform exclusively
// through the manager interfaces in this package: SessionManager,
// CameraManager, AnchorManager and RaycastManager. The hard work - pose
// tracking, plane detection, camera intrinsics estimation, anchor
// lifecycle - lives behind these interfaces; the types here are the thin
// vocabulary both sides agree on.
//
// Two providers ship with this repository:
//
//   - sim: a deterministic pure-Go world for tests and development
//   - gstcam: a GStreamer webcam passthrough for desktop runs
//
// A production toolkit binding implements the same four interfaces.
//
// # Ownership
//
// Values flowing through this package are provider-owned unless stated
// otherwise. In particular, a CameraImage and its plane buffers are valid
// only until Release() is called, and an Anchor's pose is read live from
// the provider on every Pose() call - it is never a cached snapshot.
//
// # Thread Model
//
// Providers invoke callbacks on the engine's main update goroutine, the
// same goroutine driving the facade. Implementations substituting a
// multi-threaded provider must serialize callback dispatch themselves.
package xr
