// Package handviz binds hand-tracking data onto an authored hand hierarchy
// and keeps its debug visualization in sync.
//
// A Visualizer waits for a tracking subsystem to become available, builds a
// Rig per hand from the configured prefabs, and then drives the rigs from
// the subsystem's events: joint poses are propagated on every authoritative
// update, and meshes, debug joints and velocity lines are hidden whenever a
// hand is not tracked.
package handviz

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/internal/tracking"
	"github.com/Faultbox/handviz/pkg/hand"
	"github.com/Faultbox/handviz/pkg/math"
)

// Options configure a Visualizer.
type Options struct {
	Graph    *scene.Graph
	Provider tracking.Provider

	// Parent is the node both hands are created under.
	Parent scene.NodeID
	// Origin maps tracking space to world space for debug lines. Set it to
	// scene.NoNode for identity.
	Origin scene.NodeID

	LeftMesh    *scene.Prefab
	RightMesh   *scene.Prefab
	DebugMarker *scene.Prefab
	Velocity    *scene.Prefab

	JointNames [hand.JointCount]string
	LineWidth  float32
	Settings   Settings
	Logger     *zap.Logger
}

// Visualizer is the per-scene hand visualizer. It is not safe for
// concurrent use: Tick, the setters and the tracking callbacks must all run
// on the same goroutine.
type Visualizer struct {
	opts     Options
	log      *zap.Logger
	settings Settings

	subsystem tracking.Subsystem
	rigs      [hand.HandCount]*Rig
}

var _ tracking.Listener = (*Visualizer)(nil)

// New creates a Visualizer. Nothing is bound until the first Tick that
// acquires the subsystem.
func New(opts Options) *Visualizer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Graph == nil {
		opts.Graph = scene.NewGraph()
	}
	return &Visualizer{
		opts:     opts,
		log:      log,
		settings: opts.Settings,
	}
}

// Graph returns the scene graph the rigs live in.
func (v *Visualizer) Graph() *scene.Graph {
	return v.opts.Graph
}

// Ready reports whether the subsystem has been acquired and both rigs bound.
func (v *Visualizer) Ready() bool {
	return v.subsystem != nil
}

// Rig returns the rig for h, or nil before the visualizer is ready.
func (v *Visualizer) Rig(h hand.Handedness) *Rig {
	return v.rigs[h]
}

// Settings returns the configured (not effective) settings.
func (v *Visualizer) Settings() Settings {
	return v.settings
}

// Tick initializes the visualizer if it is not ready yet. An unavailable
// subsystem is not an error; Tick just tries again next time. A binding
// error aborts this attempt and is returned.
func (v *Visualizer) Tick() error {
	if v.subsystem != nil {
		return nil
	}
	if v.opts.Provider == nil {
		return nil
	}
	sub, ok := v.opts.Provider.TryAcquire()
	if !ok || sub == nil {
		return nil
	}

	var rigs [hand.HandCount]*Rig
	for _, h := range hand.Hands() {
		rig, err := BindRig(v.opts.Graph, v.bindOptions(h))
		if err != nil {
			for _, bound := range rigs {
				if bound != nil {
					bound.Destroy()
				}
			}
			return fmt.Errorf("bind %s hand: %w", h, err)
		}
		rigs[h] = rig
	}

	v.subsystem = sub
	v.rigs = rigs
	for _, h := range hand.Hands() {
		v.rigs[h].Apply(v.settings.Effective(sub.IsTracked(h)), true)
		v.log.Info("hand rig bound",
			zap.Stringer("hand", h),
			zap.Int("joints", v.rigs[h].Bound()),
			zap.Bool("tracked", sub.IsTracked(h)))
	}
	sub.Subscribe(v)
	v.log.Info("hand tracking subsystem acquired")
	return nil
}

func (v *Visualizer) bindOptions(h hand.Handedness) BindOptions {
	mesh := v.opts.RightMesh
	if h == hand.Left {
		mesh = v.opts.LeftMesh
	}
	return BindOptions{
		Handedness: h,
		Parent:     v.opts.Parent,
		Assets: RigAssets{
			Mesh:        mesh,
			DebugMarker: v.opts.DebugMarker,
			Velocity:    v.opts.Velocity,
		},
		JointNames: v.opts.JointNames,
		LineWidth:  v.opts.LineWidth,
		Logger:     v.log,
	}
}

// Disable unsubscribes from the subsystem, drops it and destroys both rigs.
// The next Tick starts over. Calling Disable when not ready does nothing.
func (v *Visualizer) Disable() {
	if v.subsystem == nil {
		return
	}
	v.subsystem.Unsubscribe(v)
	v.subsystem = nil
	for h, rig := range v.rigs {
		if rig != nil {
			rig.Destroy()
		}
		v.rigs[h] = nil
	}
	v.log.Info("hand visualizer disabled")
}

// SetDrawMeshes configures mesh visibility for both hands.
func (v *Visualizer) SetDrawMeshes(draw bool) {
	v.settings.DrawMeshes = draw
	v.sync()
}

// SetDebugDrawJoints configures debug joint drawing for both hands.
func (v *Visualizer) SetDebugDrawJoints(draw bool) {
	v.settings.DebugDrawJoints = draw
	v.sync()
}

// SetVelocityType configures the velocity overlay for both hands.
func (v *Visualizer) SetVelocityType(t VelocityType) {
	v.settings.VelocityType = t
	v.sync()
}

// SetSettings replaces the whole configuration.
func (v *Visualizer) SetSettings(s Settings) {
	v.settings = s
	v.sync()
}

// sync applies the effective settings to both rigs, skipping flags that
// are already in the right state.
func (v *Visualizer) sync() {
	if v.subsystem == nil {
		return
	}
	for _, h := range hand.Hands() {
		v.rigs[h].Apply(v.settings.Effective(v.subsystem.IsTracked(h)), false)
	}
}

// OnTrackingAcquired restores the configured settings for h.
func (v *Visualizer) OnTrackingAcquired(h hand.Handedness) {
	if rig := v.rigs[h]; rig != nil {
		rig.Apply(v.settings, true)
		v.log.Debug("hand tracking acquired", zap.Stringer("hand", h))
	}
}

// OnTrackingLost hides everything for h.
func (v *Visualizer) OnTrackingLost(h hand.Handedness) {
	if rig := v.rigs[h]; rig != nil {
		rig.Apply(v.settings.Effective(false), true)
		v.log.Debug("hand tracking lost", zap.Stringer("hand", h))
	}
}

// OnHandsUpdated propagates fresh poses. Interpolation-only updates are
// ignored.
func (v *Visualizer) OnHandsUpdated(flags tracking.UpdateSuccessFlags, updateType tracking.UpdateType) {
	if !updateType.Authoritative() || v.subsystem == nil {
		return
	}

	v.sync()

	origin := v.originPose()
	for _, h := range hand.Hands() {
		rig := v.rigs[h]
		snap := v.subsystem.Hand(h)
		if flags.Has(tracking.RootPoseFlag(h)) {
			rig.UpdateRootPose(snap)
		}
		if flags.Has(tracking.JointsFlag(h)) {
			rig.UpdateJoints(origin, snap)
		}
	}
}

func (v *Visualizer) originPose() math.Pose {
	if v.opts.Graph.Valid(v.opts.Origin) {
		return v.opts.Graph.WorldPose(v.opts.Origin)
	}
	return math.PoseIdentity()
}
