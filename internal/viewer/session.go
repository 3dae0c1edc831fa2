// Package viewer wires a tracking source, the hand visualizer and the debug
// line collector together. It has no window or GL dependency; the app
// package drives it from the SDL loop.
package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/handviz/internal/assets"
	"github.com/Faultbox/handviz/internal/config"
	"github.com/Faultbox/handviz/internal/engine/debug"
	"github.com/Faultbox/handviz/internal/handviz"
	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/internal/tracking"
	"github.com/Faultbox/handviz/pkg/hand"
)

// Floor grid layout, in meters.
const (
	gridHalfExtent = 0.5
	gridStep       = 0.05
	gridHeight     = -0.25
)

// Action is a user command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionToggleMeshes
	ActionToggleJoints
	ActionCycleVelocity
	ActionToggleLeftLost
	ActionToggleRightLost
)

func (a Action) String() string {
	switch a {
	case ActionToggleMeshes:
		return "toggle-meshes"
	case ActionToggleJoints:
		return "toggle-joints"
	case ActionCycleVelocity:
		return "cycle-velocity"
	case ActionToggleLeftLost:
		return "toggle-left-lost"
	case ActionToggleRightLost:
		return "toggle-right-lost"
	}
	return "none"
}

// frameFunc returns the tracking frame due at t and whether the source has
// run out.
type frameFunc func(t float64) (tracking.Frame, bool)

// Session owns the scene graph and everything that feeds it.
type Session struct {
	log    *zap.Logger
	graph  *scene.Graph
	origin scene.NodeID

	source *tracking.Source
	frames frameFunc
	synth  *tracking.Synthetic // nil when playing a recording

	vis  *handviz.Visualizer
	grid []debug.Vertex
	done bool
}

// NewSession loads prefabs through am, sets up the configured tracking
// source and creates the visualizer. Rigs are bound on a later Step, once
// the tracking provider reports the subsystem available.
func NewSession(cfg *config.Config, am *assets.Manager, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		log:    log,
		graph:  scene.NewGraph(),
		source: tracking.NewSource(),
		grid:   debug.FloorGrid(gridHalfExtent, gridStep, gridHeight),
	}
	s.origin = s.graph.Create("TrackingOrigin", scene.NoNode)

	if err := s.setupSource(cfg.Tracking); err != nil {
		return nil, err
	}

	opts, err := visualizerOptions(cfg, am)
	if err != nil {
		return nil, err
	}
	opts.Graph = s.graph
	opts.Parent = s.origin
	opts.Origin = s.origin
	opts.Provider = tracking.After(cfg.Tracking.AcquireDelay, s.source)
	opts.Logger = log.Named("handviz")
	s.vis = handviz.New(opts)

	return s, nil
}

func (s *Session) setupSource(tc config.TrackingConfig) error {
	switch tc.Source {
	case config.SourceRecording:
		rec, err := tracking.LoadRecording(tc.Recording)
		if err != nil {
			return fmt.Errorf("tracking source: %w", err)
		}
		player := tracking.NewPlayer(rec, tc.Loop)
		s.frames = player.At
		s.log.Info("playing recording",
			zap.String("name", rec.Name),
			zap.Int("frames", len(rec.Frames)),
			zap.Float64("duration", rec.Duration()),
			zap.Bool("loop", tc.Loop))
	case config.SourceSynthetic:
		sc := tracking.DefaultSyntheticConfig()
		if tc.CurlPeriod > 0 {
			sc.CurlPeriod = tc.CurlPeriod
		}
		sc.DropoutEvery = tc.DropoutEvery
		sc.DropoutFor = tc.DropoutFor
		s.synth = tracking.NewSynthetic(sc)
		s.frames = func(t float64) (tracking.Frame, bool) {
			return s.synth.Frame(t), false
		}
		s.log.Info("using synthetic tracking", zap.Float64("curl_period", sc.CurlPeriod))
	default:
		return fmt.Errorf("tracking source: unknown kind %q", tc.Source)
	}
	return nil
}

func visualizerOptions(cfg *config.Config, am *assets.Manager) (handviz.Options, error) {
	var opts handviz.Options
	var err error

	if opts.LeftMesh, err = am.Prefab(cfg.Rig.LeftMesh, func() *scene.Prefab { return assets.HandPrefab(hand.Left) }); err != nil {
		return opts, fmt.Errorf("left mesh: %w", err)
	}
	if opts.RightMesh, err = am.Prefab(cfg.Rig.RightMesh, func() *scene.Prefab { return assets.HandPrefab(hand.Right) }); err != nil {
		return opts, fmt.Errorf("right mesh: %w", err)
	}
	if opts.DebugMarker, err = am.Prefab(cfg.Rig.DebugMarker, assets.DebugMarkerPrefab); err != nil {
		return opts, fmt.Errorf("debug marker: %w", err)
	}
	if opts.Velocity, err = am.Prefab(cfg.Rig.Velocity, assets.VelocityPrefab); err != nil {
		return opts, fmt.Errorf("velocity: %w", err)
	}
	if opts.JointNames, err = cfg.Rig.JointNameTable(); err != nil {
		return opts, err
	}
	opts.LineWidth = cfg.Rig.LineWidth
	opts.Settings = cfg.Visualizer
	return opts, nil
}

// Step publishes the frame due at t (an interpolation pass, then the
// authoritative pass) and ticks the visualizer.
func (s *Session) Step(t float64) error {
	frame, done := s.frames(t)
	if done && !s.done {
		s.log.Info("recording finished, holding last frame")
	}
	s.done = done

	s.source.Publish(frame, tracking.UpdateDynamic)
	s.source.Publish(frame, tracking.UpdateBeforeRender)
	return s.vis.Tick()
}

// Do runs a user action.
func (s *Session) Do(a Action) {
	st := s.vis.Settings()
	switch a {
	case ActionToggleMeshes:
		s.vis.SetDrawMeshes(!st.DrawMeshes)
	case ActionToggleJoints:
		s.vis.SetDebugDrawJoints(!st.DebugDrawJoints)
	case ActionCycleVelocity:
		s.vis.SetVelocityType(st.VelocityType.Next())
	case ActionToggleLeftLost:
		s.toggleLost(hand.Left)
	case ActionToggleRightLost:
		s.toggleLost(hand.Right)
	default:
		return
	}
	s.log.Debug("action", zap.Stringer("action", a), zap.Object("settings", s.vis.Settings()))
}

func (s *Session) toggleLost(h hand.Handedness) {
	if s.synth == nil {
		s.log.Warn("forced tracking loss needs the synthetic source", zap.Stringer("hand", h))
		return
	}
	s.synth.SetForcedLost(h, !s.synth.ForcedLost(h))
}

// Lines returns everything to draw this frame: the floor grid followed by
// every enabled renderer in the scene.
func (s *Session) Lines() []debug.Vertex {
	out := make([]debug.Vertex, 0, len(s.grid)+512)
	out = append(out, s.grid...)
	return append(out, debug.SceneLines(s.graph)...)
}

// Visualizer returns the hand visualizer.
func (s *Session) Visualizer() *handviz.Visualizer {
	return s.vis
}

// Graph returns the scene graph.
func (s *Session) Graph() *scene.Graph {
	return s.graph
}

// Source returns the in-process tracking subsystem.
func (s *Session) Source() *tracking.Source {
	return s.source
}

// Close disables the visualizer.
func (s *Session) Close() {
	s.vis.Disable()
}
