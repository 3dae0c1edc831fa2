package viewer

import (
	"github.com/Faultbox/handviz/internal/assets"
	"github.com/Faultbox/handviz/internal/engine/picking"
	"github.com/Faultbox/handviz/pkg/hand"
	"github.com/Faultbox/handviz/pkg/math"
)

// pickSize is the edge length of the box tested around each joint. It is a
// little larger than the marker so small joints stay clickable.
const pickSize = assets.DebugMarkerSize * 2

// Picked is a joint hit by a pick ray.
type Picked struct {
	Hand     hand.Handedness
	Joint    hand.JointID
	Pose     math.Pose // world pose
	Distance float32
}

// Pick returns the bound joint nearest to the ray origin whose pick box the
// ray hits. Nothing can be picked before the rigs are bound.
func (s *Session) Pick(r picking.Ray) (Picked, bool) {
	var best Picked
	found := false
	for _, h := range hand.Hands() {
		rig := s.vis.Rig(h)
		if rig == nil {
			continue
		}
		for _, j := range hand.Joints() {
			id, ok := rig.JointNode(j)
			if !ok {
				continue
			}
			pose := s.graph.WorldPose(id)
			t, hit := r.IntersectAABB(picking.CubeAround(pose.Position, pickSize))
			if hit && (!found || t < best.Distance) {
				best = Picked{Hand: h, Joint: j, Pose: pose, Distance: t}
				found = true
			}
		}
	}
	return best, found
}
