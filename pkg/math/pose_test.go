package math

import (
	"math"
	"testing"
)

func TestPoseRelativeToRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		parent Pose
		joint  Pose
	}{
		{
			name:   "identity parent",
			parent: PoseIdentity(),
			joint:  Pose{Position: Vec3{0.1, 0.2, 0.3}, Rotation: QuatFromAxisAngle(Vec3{0, 1, 0}, 0.4)},
		},
		{
			name:   "translated parent",
			parent: Pose{Position: Vec3{1, -1, 2}, Rotation: QuatIdentity()},
			joint:  Pose{Position: Vec3{1.05, -0.9, 2.01}, Rotation: QuatFromAxisAngle(Vec3{1, 0, 0}, -0.7)},
		},
		{
			name:   "rotated and translated parent",
			parent: Pose{Position: Vec3{0.3, 1.2, -0.4}, Rotation: QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 2.1)},
			joint:  Pose{Position: Vec3{0.32, 1.25, -0.35}, Rotation: QuatFromAxisAngle(Vec3{0, 0, 1}, float32(math.Pi))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := tt.joint.RelativeTo(tt.parent)

			rot := tt.parent.Rotation.Mul(local.Rotation)
			if !rot.ApproxEqual(tt.joint.Rotation, 1e-5) {
				t.Errorf("parent.R * local.R = %v, want %v", rot, tt.joint.Rotation)
			}

			pos := tt.parent.Position.Add(tt.parent.Rotation.Rotate(local.Position))
			if !pos.ApproxEqual(tt.joint.Position, 1e-5) {
				t.Errorf("parent.P + parent.R * local.P = %v, want %v", pos, tt.joint.Position)
			}

			if back := local.TransformedBy(tt.parent); !back.ApproxEqual(tt.joint, 1e-5) {
				t.Errorf("TransformedBy(RelativeTo) = %v, want %v", back, tt.joint)
			}
		})
	}
}

func TestPoseRoundTripNonUnitParent(t *testing.T) {
	parent := Pose{
		Position: Vec3{-1, 0.5, 2},
		Rotation: Quat{X: 0.4, Y: 0.4, Z: 0, W: 0.8},
	}
	joint := Pose{Position: Vec3{-0.9, 0.55, 2.1}, Rotation: QuatFromAxisAngle(Vec3{0, 1, 0}, 0.3)}

	back := joint.RelativeTo(parent).TransformedBy(parent)
	if d := back.Position.Distance(joint.Position); d > 1e-5 {
		t.Errorf("position off by %v: got %v, want %v", d, back.Position, joint.Position)
	}
	if !back.Rotation.ApproxEqual(joint.Rotation, 1e-5) {
		t.Errorf("rotation = %v, want %v", back.Rotation, joint.Rotation)
	}
}

func TestPoseIdentity(t *testing.T) {
	p := Pose{Position: Vec3{1, 2, 3}, Rotation: QuatFromAxisAngle(Vec3{0, 0, 1}, 0.5)}
	if got := p.TransformedBy(PoseIdentity()); !got.ApproxEqual(p, 1e-6) {
		t.Errorf("TransformedBy(identity) = %v, want %v", got, p)
	}
	if got := p.RelativeTo(PoseIdentity()); !got.ApproxEqual(p, 1e-6) {
		t.Errorf("RelativeTo(identity) = %v, want %v", got, p)
	}
}
