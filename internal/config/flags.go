package config

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/Faultbox/handviz/internal/handviz"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagVelocity   = flag.String("velocity", "", "Velocity overlay: none, linear or angular")
	flagMeshes     = flag.String("meshes", "", "Draw hand meshes (true/false)")
	flagJoints     = flag.String("joints", "", "Draw debug joints (true/false)")
	flagRecording  = flag.String("recording", "", "Play back a recorded session instead of synthetic tracking")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagVelocity != "" {
		v, err := handviz.ParseVelocityType(*flagVelocity)
		if err != nil {
			return fmt.Errorf("-velocity: %w", err)
		}
		cfg.Visualizer.VelocityType = v
	}
	if *flagMeshes != "" {
		b, err := strconv.ParseBool(*flagMeshes)
		if err != nil {
			return fmt.Errorf("-meshes: %w", err)
		}
		cfg.Visualizer.DrawMeshes = b
	}
	if *flagJoints != "" {
		b, err := strconv.ParseBool(*flagJoints)
		if err != nil {
			return fmt.Errorf("-joints: %w", err)
		}
		cfg.Visualizer.DebugDrawJoints = b
	}
	if *flagRecording != "" {
		cfg.Tracking.Source = SourceRecording
		cfg.Tracking.Recording = *flagRecording
	}
	return nil
}
