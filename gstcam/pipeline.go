package gstcam

import (
	"fmt"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

// pipelineElements holds references to the GStreamer elements needed for
// hot-reload and cleanup.
type pipelineElements struct {
	pipeline   *gst.Pipeline
	appSink    *app.Sink
	capsFilter *gst.Element
}

// createPipeline builds the webcam capture pipeline. The pipeline is
// configured but not started; the caller sets it to PLAYING.
func createPipeline(device string, width, height int, fps float64) (*pipelineElements, error) {
	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	src, err := gst.NewElement("v4l2src")
	if err != nil {
		return nil, fmt.Errorf("failed to create v4l2src: %w", err)
	}
	src.SetProperty("device", device)

	converter, err := gst.NewElement("videoconvert")
	if err != nil {
		return nil, fmt.Errorf("failed to create videoconvert: %w", err)
	}
	converter.SetProperty("n-threads", 0)

	scaler, err := gst.NewElement("videoscale")
	if err != nil {
		return nil, fmt.Errorf("failed to create videoscale: %w", err)
	}

	videorate, err := gst.NewElement("videorate")
	if err != nil {
		return nil, fmt.Errorf("failed to create videorate: %w", err)
	}
	videorate.SetProperty("drop-only", true)
	videorate.SetProperty("skip-to-first", true)

	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return nil, fmt.Errorf("failed to create capsfilter: %w", err)
	}
	capsfilter.SetProperty("caps", gst.NewCapsFromString(buildCaps(width, height, fps)))

	appsink, err := app.NewAppSink()
	if err != nil {
		return nil, fmt.Errorf("failed to create appsink: %w", err)
	}
	appsink.SetProperty("sync", false)
	appsink.SetProperty("max-buffers", 1)
	appsink.SetProperty("drop", true)

	pipeline.AddMany(src, converter, scaler, videorate, capsfilter, appsink.Element)

	if err := gst.ElementLinkMany(src, converter, scaler, videorate, capsfilter, appsink.Element); err != nil {
		return nil, fmt.Errorf("failed to link pipeline elements: %w", err)
	}

	return &pipelineElements{
		pipeline:   pipeline,
		appSink:    appsink,
		capsFilter: capsfilter,
	}, nil
}

// updateCaps swaps the capsfilter for a new mode without rebuilding the
// pipeline. Renegotiation interrupts capture briefly.
func updateCaps(capsfilter *gst.Element, width, height int, fps float64) error {
	if capsfilter == nil {
		return fmt.Errorf("capsfilter is nil")
	}
	capsfilter.SetProperty("caps", gst.NewCapsFromString(buildCaps(width, height, fps)))
	return nil
}

// destroyPipeline releases pipeline resources. Safe on a pipeline that is
// already down.
func destroyPipeline(elements *pipelineElements) error {
	if elements == nil || elements.pipeline == nil {
		return nil
	}
	if err := elements.pipeline.SetState(gst.StateNull); err != nil {
		return fmt.Errorf("failed to set pipeline to NULL: %w", err)
	}
	return nil
}

// buildCaps formats the NV12 caps string, handling fractional rates the
// GStreamer way (0.5 Hz is framerate=1/2).
func buildCaps(width, height int, fps float64) string {
	numerator, denominator := 1, 1
	if fps < 1.0 {
		denominator = int(1.0 / fps)
	} else {
		numerator = int(fps)
	}
	return fmt.Sprintf(
		"video/x-raw,format=NV12,width=%d,height=%d,framerate=%d/%d",
		width, height, numerator, denominator,
	)
}
