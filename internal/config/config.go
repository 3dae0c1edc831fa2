// Package config handles viewer and visualizer configuration loading and
// management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/handviz/internal/handviz"
	"github.com/Faultbox/handviz/pkg/hand"
)

// Tracking source kinds.
const (
	SourceSynthetic = "synthetic"
	SourceRecording = "recording"
)

// Config holds all settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Visualizer handviz.Settings `yaml:"visualizer"`
	Rig        RigConfig        `yaml:"rig"`
	Tracking   TrackingConfig   `yaml:"tracking"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit"`
	FOV        float32    `yaml:"fov"`
	Background [3]float32 `yaml:"background,flow"`
}

// RigConfig holds the prefabs and naming used to bind the hands. Empty
// prefab paths select the built-in prefabs.
type RigConfig struct {
	AssetDirs   []string `yaml:"asset_dirs"`
	LeftMesh    string   `yaml:"left_mesh"`
	RightMesh   string   `yaml:"right_mesh"`
	DebugMarker string   `yaml:"debug_marker"`
	Velocity    string   `yaml:"velocity"`
	LineWidth   float32  `yaml:"line_width"`
	// JointNames overrides the name suffix matched for individual joints,
	// keyed by canonical joint name.
	JointNames map[string]string `yaml:"joint_names"`
}

// TrackingConfig selects and tunes the tracking source.
type TrackingConfig struct {
	Source    string `yaml:"source"`
	Recording string `yaml:"recording"`
	Loop      bool   `yaml:"loop"`
	// AcquireDelay is how many ticks the subsystem stays unavailable,
	// to exercise lazy initialization.
	AcquireDelay int     `yaml:"acquire_delay"`
	CurlPeriod   float64 `yaml:"curl_period"`
	DropoutEvery float64 `yaml:"dropout_every"`
	DropoutFor   float64 `yaml:"dropout_for"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        45,
			Background: [3]float32{0.08, 0.09, 0.11},
		},
		Visualizer: handviz.Settings{
			DrawMeshes:      true,
			DebugDrawJoints: true,
			VelocityType:    handviz.VelocityNone,
		},
		Rig: RigConfig{
			LineWidth: handviz.DefaultLineWidth,
		},
		Tracking: TrackingConfig{
			Source:       SourceSynthetic,
			Loop:         true,
			AcquireDelay: 30,
			CurlPeriod:   3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// JointNameTable returns the default joint names with the configured
// overrides applied.
func (r RigConfig) JointNameTable() ([hand.JointCount]string, error) {
	names := hand.DefaultJointNames()
	for key, name := range r.JointNames {
		j, ok := hand.ParseJoint(key)
		if !ok {
			return names, fmt.Errorf("joint_names: unknown joint %q", key)
		}
		if name == "" {
			return names, fmt.Errorf("joint_names: empty name for %s", key)
		}
		names[j.ToIndex()] = name
	}
	return names, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov must be in (0, 180), got %v", c.Graphics.FOV))
	}
	if c.Rig.LineWidth < 0 {
		errs = append(errs, fmt.Errorf("rig: negative line_width %v", c.Rig.LineWidth))
	}
	if _, err := c.Rig.JointNameTable(); err != nil {
		errs = append(errs, fmt.Errorf("rig: %w", err))
	}
	switch c.Tracking.Source {
	case SourceSynthetic:
	case SourceRecording:
		if c.Tracking.Recording == "" {
			errs = append(errs, errors.New("tracking: source recording needs a recording path"))
		}
	default:
		errs = append(errs, fmt.Errorf("tracking: unknown source %q", c.Tracking.Source))
	}
	if c.Tracking.AcquireDelay < 0 {
		errs = append(errs, fmt.Errorf("tracking: negative acquire_delay %d", c.Tracking.AcquireDelay))
	}
	if c.Tracking.DropoutFor > c.Tracking.DropoutEvery && c.Tracking.DropoutEvery > 0 {
		errs = append(errs, errors.New("tracking: dropout_for longer than dropout_every"))
	}
	return errors.Join(errs...)
}
