package math

// Pose is a rigid transform: a position and a rotation.
type Pose struct {
	Position Vec3
	Rotation Quat
}

// PoseIdentity returns the pose at the origin with no rotation.
func PoseIdentity() Pose {
	return Pose{Rotation: QuatIdentity()}
}

// NewPose builds a pose from position and rotation.
func NewPose(position Vec3, rotation Quat) Pose {
	return Pose{Position: position, Rotation: rotation}
}

// TransformedBy expresses p, given in parent's local space, in the space
// parent lives in. The parent rotation is treated as a unit quaternion.
func (p Pose) TransformedBy(parent Pose) Pose {
	r := parent.Rotation.Normalize()
	return Pose{
		Position: r.Rotate(p.Position).Add(parent.Position),
		Rotation: r.Mul(p.Rotation),
	}
}

// RelativeTo expresses p in parent's local space. It is the inverse of
// TransformedBy: p.RelativeTo(parent).TransformedBy(parent) == p, for any
// non-degenerate parent rotation.
func (p Pose) RelativeTo(parent Pose) Pose {
	inv := parent.Rotation.Normalize().Conjugate()
	return Pose{
		Position: inv.Rotate(p.Position.Sub(parent.Position)),
		Rotation: inv.Mul(p.Rotation),
	}
}

// ApproxEqual compares position and rotation within eps.
func (p Pose) ApproxEqual(other Pose, eps float32) bool {
	return p.Position.ApproxEqual(other.Position, eps) && p.Rotation.ApproxEqual(other.Rotation, eps)
}

// Mat4 returns the model matrix translate(position) * rotate(rotation).
func (p Pose) Mat4() Mat4 {
	return Translate(p.Position.X, p.Position.Y, p.Position.Z).Mul(p.Rotation.ToMat4())
}
