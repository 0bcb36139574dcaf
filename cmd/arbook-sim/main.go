// Command arbook-sim runs the AR bridge against the simulated provider:
// it drives the engine tick loop, waits for availability and camera
// readiness, places an anchor, fires hit tests and reports facade
// statistics. Useful for exercising the full bridge surface without an
// AR device.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sam20code/SolarSystem-ARBook/arbridge"
	"github.com/sam20code/SolarSystem-ARBook/sim"
	"github.com/sam20code/SolarSystem-ARBook/xr"
)

const version = "v0.1.0"

func main() {
	scenarioPath := flag.String("scenario", "", "Scenario TOML file (default: built-in scenario)")
	tickHz := flag.Float64("tick-hz", 30.0, "Engine tick rate")
	duration := flag.Duration("duration", 10*time.Second, "How long to run (0 = until Ctrl+C)")
	hitEvery := flag.Int("hit-every", 30, "Frames between hit tests (0 = disabled)")
	statsInterval := flag.Int("stats-interval", 5, "Seconds between stats reports")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("arbook-sim %s\n", version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if *tickHz <= 0 {
		log.Fatalf("Invalid tick rate: %.2f", *tickHz)
	}

	scenario := sim.DefaultScenario()
	if *scenarioPath != "" {
		var err error
		scenario, err = sim.LoadScenario(*scenarioPath)
		if err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
	}

	world, err := sim.NewWorld(scenario)
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	fmt.Printf("arbook-sim %s\n", version)
	fmt.Printf("  Scenario:  %s\n", scenarioLabel(*scenarioPath))
	fmt.Printf("  Tick rate: %.1f Hz\n", *tickHz)
	fmt.Printf("  Duration:  %s\n", durationLabel(*duration))
	fmt.Printf("\n")

	bridge := arbridge.Initialize()
	if !bridge.IsScenePresent(world.Scene()) {
		log.Fatal("Session manager not present in scene")
	}
	bridge.ResolveDependencies(world.Scene())
	if err := bridge.Start(); err != nil {
		log.Fatalf("Failed to start bridge: %v", err)
	}

	var frames, poses, anchorEvents uint64
	if err := bridge.OnImage("arbook-sim", func(ev arbridge.ImageEvent) {
		frames++
		slog.Debug("frame received",
			"width", ev.Width,
			"height", ev.Height,
			"planes", ev.PlaneCount,
			"timestamp_ns", ev.TimestampNanos,
		)
	}); err != nil {
		log.Fatalf("Failed to register image listener: %v", err)
	}
	if err := bridge.OnPose("arbook-sim", func(arbridge.PoseEvent) { poses++ }); err != nil {
		log.Fatalf("Failed to register pose listener: %v", err)
	}
	if err := bridge.OnAnchorsChanged("arbook-sim", func(ev arbridge.AnchorsChangedEvent) {
		anchorEvents++
		slog.Debug("anchors changed",
			"updated", len(ev.Updated),
			"removed", len(ev.Removed),
		)
	}); err != nil {
		log.Fatalf("Failed to register anchor listener: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("shutdown requested")
		cancel()
	}()

	// Availability and camera readiness resume on ticks driven below.
	readiness := make(chan error, 1)
	go func() {
		supported, err := bridge.CheckAvailability(ctx)
		if err != nil {
			readiness <- err
			return
		}
		if !supported {
			readiness <- fmt.Errorf("AR not supported in this scenario")
			return
		}
		slog.Info("availability confirmed")
		readiness <- bridge.WaitUntilCameraReady(ctx)
	}()

	tickInterval := time.Duration(float64(time.Second) / *tickHz)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	statsTicker := time.NewTicker(time.Duration(*statsInterval) * time.Second)
	defer statsTicker.Stop()

	var anchorID string
	tracking := false
	frame := 0

loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case err := <-readiness:
			if err != nil {
				slog.Error("session did not become ready", "error", err)
				break loop
			}
			tracking = true
			pose, err := bridge.CameraTransform()
			if err != nil {
				log.Fatalf("Failed to read camera transform: %v", err)
			}
			slog.Info("camera ready",
				"position_z", pose.Position.Z,
				"profiles", len(bridge.ListProfiles()),
			)

			anchorID = bridge.AddAnchor(pose)
			if anchorID == "" {
				slog.Warn("anchor placement rejected")
			} else {
				slog.Info("anchor placed", "id", anchorID)
			}

		case <-statsTicker.C:
			printStats(bridge.Stats(), frames, poses, anchorEvents)

		case <-ticker.C:
			world.Advance(tickInterval)
			bridge.Tick()
			frame++

			if tracking && *hitEvery > 0 && frame%*hitEvery == 0 {
				hit, hitPoses := bridge.HitTest(xr.ScreenPoint{
					X: scenario.Camera.Intrinsics.PrincipalX,
					Y: scenario.Camera.Intrinsics.PrincipalY,
				})
				if hit {
					slog.Info("hit test",
						"hits", len(hitPoses),
						"nearest_z", hitPoses[0].Position.Z,
					)
				} else {
					slog.Info("hit test missed")
				}
			}
		}
	}

	if anchorID != "" && bridge.RemoveAnchor(anchorID) {
		slog.Info("anchor removed", "id", anchorID)
	}
	bridge.Stop()

	fmt.Printf("\nFinal report\n")
	printStats(bridge.Stats(), frames, poses, anchorEvents)
}

func printStats(s arbridge.Stats, frames, poses, anchorEvents uint64) {
	fmt.Printf("  frames emitted:   %d (listener saw %d images, %d poses)\n",
		s.FramesEmitted, frames, poses)
	fmt.Printf("  frames dropped:   %d no-intrinsics, %d no-image (drop rate %.1f%%)\n",
		s.FramesDroppedNoIntrinsics, s.FramesDroppedNoImage, arbridge.FrameDropRate(s)*100)
	fmt.Printf("  anchors:          %d tracked, %d added, %d removed, %d change events\n",
		s.AnchorsTracked, s.AnchorsAdded, s.AnchorsRemoved, anchorEvents)
	fmt.Printf("  hit tests:        %d\n", s.HitTests)
}

func scenarioLabel(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}

func durationLabel(d time.Duration) string {
	if d <= 0 {
		return "until interrupted"
	}
	return d.String()
}
