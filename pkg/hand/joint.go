// Package hand defines the hand joint taxonomy: joint and finger
// identifiers, their dense index space, and the rest layout of a hand.
package hand

// JointID identifies a hand joint. Valid IDs run from BeginMarker up to, but
// not including, EndMarker, and map onto the dense index range
// [0, JointCount) through ToIndex.
type JointID uint8

const (
	Invalid JointID = iota
	Wrist
	Palm

	ThumbMetacarpal
	ThumbProximal
	ThumbDistal
	ThumbTip

	IndexMetacarpal
	IndexProximal
	IndexIntermediate
	IndexDistal
	IndexTip

	MiddleMetacarpal
	MiddleProximal
	MiddleIntermediate
	MiddleDistal
	MiddleTip

	RingMetacarpal
	RingProximal
	RingIntermediate
	RingDistal
	RingTip

	LittleMetacarpal
	LittleProximal
	LittleIntermediate
	LittleDistal
	LittleTip

	EndMarker

	BeginMarker = Wrist
)

// JointCount is the number of valid joints, and the length of every
// per-joint array.
const JointCount = int(EndMarker - BeginMarker)

var jointNames = [...]string{
	Invalid:            "Invalid",
	Wrist:              "Wrist",
	Palm:               "Palm",
	ThumbMetacarpal:    "ThumbMetacarpal",
	ThumbProximal:      "ThumbProximal",
	ThumbDistal:        "ThumbDistal",
	ThumbTip:           "ThumbTip",
	IndexMetacarpal:    "IndexMetacarpal",
	IndexProximal:      "IndexProximal",
	IndexIntermediate:  "IndexIntermediate",
	IndexDistal:        "IndexDistal",
	IndexTip:           "IndexTip",
	MiddleMetacarpal:   "MiddleMetacarpal",
	MiddleProximal:     "MiddleProximal",
	MiddleIntermediate: "MiddleIntermediate",
	MiddleDistal:       "MiddleDistal",
	MiddleTip:          "MiddleTip",
	RingMetacarpal:     "RingMetacarpal",
	RingProximal:       "RingProximal",
	RingIntermediate:   "RingIntermediate",
	RingDistal:         "RingDistal",
	RingTip:            "RingTip",
	LittleMetacarpal:   "LittleMetacarpal",
	LittleProximal:     "LittleProximal",
	LittleIntermediate: "LittleIntermediate",
	LittleDistal:       "LittleDistal",
	LittleTip:          "LittleTip",
	EndMarker:          "EndMarker",
}

// String returns the canonical joint name, e.g. "IndexIntermediate".
func (j JointID) String() string {
	if int(j) < len(jointNames) {
		return jointNames[j]
	}
	return "Unknown"
}

// Valid reports whether j is inside [BeginMarker, EndMarker).
func (j JointID) Valid() bool {
	return j >= BeginMarker && j < EndMarker
}

// ToIndex maps a joint to its dense array index.
func (j JointID) ToIndex() int {
	return int(j) - int(BeginMarker)
}

// FromIndex maps a dense array index back to its joint.
func FromIndex(i int) JointID {
	return JointID(i + int(BeginMarker))
}

// Finger returns the finger j belongs to. Wrist and Palm belong to no finger.
func (j JointID) Finger() (FingerID, bool) {
	for _, f := range Fingers() {
		if j >= f.FrontJoint() && j <= f.BackJoint() {
			return f, true
		}
	}
	return 0, false
}

// Joints returns every valid joint in index order.
func Joints() []JointID {
	out := make([]JointID, 0, JointCount)
	for i := 0; i < JointCount; i++ {
		out = append(out, FromIndex(i))
	}
	return out
}

// DefaultJointNames returns the name table used to match authored nodes to
// joints, indexed by ToIndex.
func DefaultJointNames() [JointCount]string {
	var names [JointCount]string
	for i := range names {
		names[i] = FromIndex(i).String()
	}
	return names
}

// ParseJoint returns the joint with canonical name s.
func ParseJoint(s string) (JointID, bool) {
	for i := 0; i < JointCount; i++ {
		if j := FromIndex(i); j.String() == s {
			return j, true
		}
	}
	return Invalid, false
}
