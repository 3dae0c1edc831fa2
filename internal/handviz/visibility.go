package handviz

import (
	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/pkg/hand"
)

// SetDrawMesh shows or hides the hand mesh unless it is already in that
// state.
func (r *Rig) SetDrawMesh(draw bool) {
	if draw != r.drawMesh {
		r.ForceSetDrawMesh(draw)
	}
}

// ForceSetDrawMesh toggles every skinned mesh renderer directly under the
// mesh root. Other children are left alone.
func (r *Rig) ForceSetDrawMesh(draw bool) {
	r.drawMesh = draw
	for _, child := range r.g.Children(r.meshRoot) {
		if smr, ok := scene.GetComponent[*scene.SkinnedMeshRenderer](r.g, child); ok {
			smr.SetEnabled(draw)
		}
	}
}

// SetDebugDrawJoints shows or hides the joint markers and connection lines
// unless they are already in that state.
func (r *Rig) SetDebugDrawJoints(draw bool) {
	if draw != r.debugDrawJoints {
		r.ForceSetDebugDrawJoints(draw)
	}
}

// ForceSetDebugDrawJoints toggles the markers and connection lines of every
// joint. The wrist has no chain parent, so its line always ends up disabled.
func (r *Rig) ForceSetDebugDrawJoints(draw bool) {
	r.debugDrawJoints = draw
	for i, d := range r.debug {
		scene.ToggleRenderers[*scene.MeshRenderer](r.g, d, draw)
		if r.lines[i] != nil {
			r.lines[i].SetEnabled(draw)
		}
	}
	if wrist := r.lines[hand.Wrist.ToIndex()]; wrist != nil {
		wrist.SetEnabled(false)
	}
}

// SetVelocityType changes the velocity overlay unless it is already t.
func (r *Rig) SetVelocityType(t VelocityType) {
	if t != r.velocityType {
		r.ForceSetVelocityType(t)
	}
}

// ForceSetVelocityType enables the velocity lines of every joint when t is
// not VelocityNone, and disables them otherwise.
func (r *Rig) ForceSetVelocityType(t VelocityType) {
	r.velocityType = t
	for _, v := range r.velocity {
		scene.ToggleRenderers[*scene.LineRenderer](r.g, v, t != VelocityNone)
	}
}

// Apply sets all three flags, either idempotently or forced.
func (r *Rig) Apply(s Settings, force bool) {
	if force {
		r.ForceSetDebugDrawJoints(s.DebugDrawJoints)
		r.ForceSetVelocityType(s.VelocityType)
		r.ForceSetDrawMesh(s.DrawMeshes)
		return
	}
	r.SetDrawMesh(s.DrawMeshes)
	r.SetDebugDrawJoints(s.DebugDrawJoints)
	r.SetVelocityType(s.VelocityType)
}
