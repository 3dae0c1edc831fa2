package hand

// FingerID identifies a finger.
type FingerID uint8

const (
	Thumb FingerID = iota
	Index
	Middle
	Ring
	Little
)

// FingerCount is the number of fingers per hand.
const FingerCount = 5

var fingerRanges = [FingerCount][2]JointID{
	Thumb:  {ThumbMetacarpal, ThumbTip},
	Index:  {IndexMetacarpal, IndexTip},
	Middle: {MiddleMetacarpal, MiddleTip},
	Ring:   {RingMetacarpal, RingTip},
	Little: {LittleMetacarpal, LittleTip},
}

var fingerNames = [FingerCount]string{"Thumb", "Index", "Middle", "Ring", "Little"}

// Fingers returns Thumb..Little in order.
func Fingers() []FingerID {
	return []FingerID{Thumb, Index, Middle, Ring, Little}
}

func (f FingerID) String() string {
	if int(f) < FingerCount {
		return fingerNames[f]
	}
	return "Unknown"
}

// FrontJoint returns the joint closest to the wrist (the metacarpal).
func (f FingerID) FrontJoint() JointID {
	return fingerRanges[f][0]
}

// BackJoint returns the fingertip joint.
func (f FingerID) BackJoint() JointID {
	return fingerRanges[f][1]
}

// Chain returns the finger's joints from front to back.
func (f FingerID) Chain() []JointID {
	front, back := f.FrontJoint(), f.BackJoint()
	out := make([]JointID, 0, back-front+1)
	for j := front; j <= back; j++ {
		out = append(out, j)
	}
	return out
}
