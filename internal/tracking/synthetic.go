package tracking

import (
	gomath "math"

	"github.com/Faultbox/handviz/pkg/hand"
	"github.com/Faultbox/handviz/pkg/math"
)

// SyntheticConfig tunes the procedural hand animation.
type SyntheticConfig struct {
	CurlPeriod  float64 // seconds for one open-close cycle
	MaxCurl     float32 // radians per finger joint at full curl
	HandSpacing float32 // lateral distance of each wrist from the center
	Height      float32
	Depth       float32
	// DropoutEvery and DropoutFor make the right hand lose tracking for
	// DropoutFor seconds out of every DropoutEvery. Zero disables.
	DropoutEvery float64
	DropoutFor   float64
}

// DefaultSyntheticConfig returns a gentle open-close animation.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		CurlPeriod:  3.0,
		MaxCurl:     1.1,
		HandSpacing: 0.15,
		Height:      0.0,
		Depth:       0.0,
	}
}

// Synthetic generates plausible two-hand tracking data without hardware.
type Synthetic struct {
	cfg        SyntheticConfig
	prev       Frame
	prevTime   float64
	hasPrev    bool
	forcedLost [hand.HandCount]bool
}

// NewSynthetic creates a generator.
func NewSynthetic(cfg SyntheticConfig) *Synthetic {
	if cfg.CurlPeriod <= 0 {
		cfg.CurlPeriod = DefaultSyntheticConfig().CurlPeriod
	}
	return &Synthetic{cfg: cfg}
}

// SetForcedLost forces a hand to report untracked until cleared.
func (s *Synthetic) SetForcedLost(h hand.Handedness, lost bool) {
	s.forcedLost[h] = lost
}

// ForcedLost reports whether h is forced untracked.
func (s *Synthetic) ForcedLost(h hand.Handedness) bool {
	return s.forcedLost[h]
}

// Frame returns the hands at time t seconds. Velocities are finite
// differences against the previous call, so they are absent on the first
// frame and after a hand reacquires tracking.
func (s *Synthetic) Frame(t float64) Frame {
	f := NewFrame()
	for _, h := range hand.Hands() {
		if !s.tracked(h, t) {
			continue
		}
		snap := &f.Hands[h]
		snap.Tracked = true
		s.pose(h, t, snap)

		prev := &s.prev.Hands[h]
		dt := float32(t - s.prevTime)
		if !s.hasPrev || !prev.Tracked || dt <= 0 {
			continue
		}
		for i := range snap.Joints {
			cur, old := snap.Joints[i].Pose, prev.Joints[i].Pose
			snap.SetVelocities(hand.FromIndex(i),
				cur.Position.Sub(old.Position).Scale(1/dt),
				AngularVelocity(old.Rotation, cur.Rotation, dt),
			)
		}
	}
	s.prev = f
	s.prevTime = t
	s.hasPrev = true
	return f
}

func (s *Synthetic) tracked(h hand.Handedness, t float64) bool {
	if s.forcedLost[h] {
		return false
	}
	if h == hand.Right && s.cfg.DropoutEvery > 0 {
		if gomath.Mod(t, s.cfg.DropoutEvery) < s.cfg.DropoutFor {
			return false
		}
	}
	return true
}

func (s *Synthetic) pose(h hand.Handedness, t float64, snap *HandSnapshot) {
	sway := float32(gomath.Sin(t * 0.7))
	root := math.NewPose(
		math.Vec3{
			X: h.Mirror() * s.cfg.HandSpacing,
			Y: s.cfg.Height + 0.02*sway,
			Z: s.cfg.Depth,
		},
		math.QuatFromAxisAngle(math.Vec3{Y: 1}, 0.25*sway*h.Mirror()),
	)
	snap.RootPose = root
	snap.SetJointPose(hand.Wrist, root)
	snap.SetJointPose(hand.Palm, math.NewPose(hand.RestOffset(h, hand.Palm), math.QuatIdentity()).TransformedBy(root))

	for _, f := range hand.Fingers() {
		phase := 2*gomath.Pi*t/s.cfg.CurlPeriod + float64(f)*0.45
		curl := s.cfg.MaxCurl * float32(0.5-0.5*gomath.Cos(phase))
		if f == hand.Thumb {
			curl *= 0.6
		}

		parent := root
		for _, j := range f.Chain() {
			bend := curl
			if j == f.FrontJoint() || j == f.BackJoint() {
				bend = 0
			}
			local := math.NewPose(hand.RestOffset(h, j), math.QuatFromAxisAngle(math.Vec3{X: 1}, bend))
			pose := local.TransformedBy(parent)
			snap.SetJointPose(j, pose)
			parent = pose
		}
	}
}

// AngularVelocity returns the angular velocity (axis * radians per second)
// that turns from into to over dt seconds.
func AngularVelocity(from, to math.Quat, dt float32) math.Vec3 {
	d := to.Mul(from.Inverse()).Normalize()
	if d.W < 0 {
		d = math.Quat{X: -d.X, Y: -d.Y, Z: -d.Z, W: -d.W}
	}
	w := gomath.Min(float64(d.W), 1)
	angle := 2 * gomath.Acos(w)
	sinHalf := gomath.Sqrt(1 - w*w)
	if sinHalf < 1e-6 || dt <= 0 {
		return math.Vec3{}
	}
	axis := math.Vec3{X: d.X, Y: d.Y, Z: d.Z}.Scale(float32(1 / sinHalf))
	return axis.Scale(float32(angle) / dt)
}
