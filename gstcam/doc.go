// Package gstcam implements the xr.CameraManager contract over a local
// V4L2 webcam using GStreamer.
//
// The capture pipeline decodes and scales device output into NV12 frames
// at a fixed resolution and rate:
//
//	v4l2src → videoconvert → videoscale → videorate → capsfilter → appsink
//
// A Capture reports no spatial tracking: its Transform is always the
// identity pose and anchors or hit tests are out of its scope. It exists
// to drive the frame side of the bridge on machines without an AR
// toolkit, with real camera data instead of synthetic buffers.
//
// Lifecycle is Start/Stop with context cancellation. Permission maps to
// device access: a webcam that opens is a webcam the process may use.
package gstcam
