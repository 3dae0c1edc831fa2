package hand

import "github.com/Faultbox/handviz/pkg/math"

// Rest layout of a right hand in meters. +Z points from the wrist towards the
// fingertips, +Y out of the back of the hand, +X towards the thumb. The left
// hand mirrors X.
var (
	palmOffset = math.Vec3{X: 0, Y: 0, Z: 0.045}

	fingerBase = [FingerCount]math.Vec3{
		Thumb:  {X: 0.022, Y: -0.012, Z: 0.02},
		Index:  {X: 0.021, Y: 0, Z: 0.012},
		Middle: {X: 0.002, Y: 0, Z: 0.012},
		Ring:   {X: -0.016, Y: 0, Z: 0.01},
		Little: {X: -0.031, Y: -0.002, Z: 0.008},
	}

	// segment[j] is the length of the bone ending at joint j.
	segment = [EndMarker]float32{
		ThumbProximal: 0.035,
		ThumbDistal:   0.032,
		ThumbTip:      0.025,

		IndexProximal:     0.065,
		IndexIntermediate: 0.040,
		IndexDistal:       0.024,
		IndexTip:          0.022,

		MiddleProximal:     0.066,
		MiddleIntermediate: 0.045,
		MiddleDistal:       0.028,
		MiddleTip:          0.024,

		RingProximal:     0.062,
		RingIntermediate: 0.042,
		RingDistal:       0.027,
		RingTip:          0.023,

		LittleProximal:     0.056,
		LittleIntermediate: 0.035,
		LittleDistal:       0.020,
		LittleTip:          0.020,
	}
)

// ChainParent returns the joint j hangs off when walking outward from the
// wrist. Palm and every finger's front joint hang off the wrist. The wrist
// has no chain parent and returns Invalid.
func ChainParent(j JointID) JointID {
	switch {
	case !j.Valid(), j == Wrist:
		return Invalid
	case j == Palm:
		return Wrist
	}
	f, _ := j.Finger()
	if j == f.FrontJoint() {
		return Wrist
	}
	return j - 1
}

// RestOffset returns the rest position of j in its chain parent's frame.
func RestOffset(h Handedness, j JointID) math.Vec3 {
	var v math.Vec3
	switch {
	case !j.Valid(), j == Wrist:
		return v
	case j == Palm:
		v = palmOffset
	default:
		f, _ := j.Finger()
		if j == f.FrontJoint() {
			v = fingerBase[f]
		} else {
			v = math.Vec3{Z: segment[j]}
		}
	}
	v.X *= h.Mirror()
	return v
}
