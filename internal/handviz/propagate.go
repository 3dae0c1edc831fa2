package handviz

import (
	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/internal/tracking"
	"github.com/Faultbox/handviz/pkg/hand"
	"github.com/Faultbox/handviz/pkg/math"
)

// AngularVelocityScale is the length of an angular velocity line.
const AngularVelocityScale = 0.05

var poseIdentity = math.PoseIdentity()

// UpdateRootPose places the wrist node at the hand's root pose.
func (r *Rig) UpdateRootPose(snap *tracking.HandSnapshot) {
	r.g.SetLocalPose(r.joints[hand.Wrist.ToIndex()], snap.RootPose)
}

// UpdateJoints copies the snapshot's joint poses onto the bound nodes.
//
// Snapshot poses are in the hand parent's space. Each joint node gets its
// pose relative to its chain parent: the wrist for palm and the first joint
// of every finger, the previous joint otherwise. origin maps the hand
// parent's space to world space for the debug lines.
//
// Joints that are unbound or missing from the snapshot are skipped.
func (r *Rig) UpdateJoints(origin math.Pose, snap *tracking.HandSnapshot) {
	wristPose := poseIdentity
	r.updateJoint(origin, snap, hand.Wrist, &wristPose, true)
	r.updateJoint(origin, snap, hand.Palm, &wristPose, false)

	for _, f := range hand.Fingers() {
		parentPose := wristPose
		for j := f.FrontJoint(); j <= f.BackJoint(); j++ {
			r.updateJoint(origin, snap, j, &parentPose, true)
		}
	}
}

func (r *Rig) updateJoint(origin math.Pose, snap *tracking.HandSnapshot, j hand.JointID, parentPose *math.Pose, cacheParent bool) {
	i := j.ToIndex()
	node := r.joints[i]
	if node == scene.NoNode {
		return
	}
	pose, ok := snap.JointPose(j)
	if !ok {
		return
	}

	r.g.SetLocalPose(r.debug[i], pose)

	if r.debugDrawJoints && j != hand.Wrist {
		r.lines[i].SetPositions(
			parentPose.TransformedBy(origin).Position,
			pose.TransformedBy(origin).Position,
		)
	}

	r.g.SetLocalPose(node, pose.RelativeTo(*parentPose))
	if cacheParent {
		*parentPose = pose
	}

	if r.velocityType != VelocityNone {
		r.updateVelocity(i, j, snap)
	}
}

func (r *Rig) updateVelocity(i int, j hand.JointID, snap *tracking.HandSnapshot) {
	v := r.velocity[i]
	line, ok := scene.GetComponent[*scene.LineRenderer](r.g, v)
	if !ok {
		return
	}
	r.g.SetLocalPose(v, poseIdentity)
	start := r.g.WorldPose(v).Position

	switch r.velocityType {
	case VelocityLinear:
		if lin, ok := snap.LinearVelocity(j); ok {
			line.SetPositions(start, start.Add(lin))
		}
	case VelocityAngular:
		if ang, ok := snap.AngularVelocity(j); ok {
			line.SetPositions(start, start.Add(ang.Normalize().Scale(AngularVelocityScale)))
		}
	}
}
