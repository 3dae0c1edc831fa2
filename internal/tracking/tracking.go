// Package tracking defines the contract between a hand-tracking subsystem
// and its consumers, plus in-process implementations of it.
//
// A Subsystem reports per-joint optional poses and velocities for both hands
// once per update, and notifies Listeners synchronously when a hand's
// tracking is acquired or lost and when new data has been published.
package tracking

import (
	"github.com/Faultbox/handviz/pkg/hand"
	"github.com/Faultbox/handviz/pkg/math"
)

// UpdateSuccessFlags reports which categories of data an update refreshed.
type UpdateSuccessFlags uint8

const (
	LeftHandRootPose UpdateSuccessFlags = 1 << iota
	LeftHandJoints
	RightHandRootPose
	RightHandJoints

	UpdateNone UpdateSuccessFlags = 0
	UpdateAll                     = LeftHandRootPose | LeftHandJoints | RightHandRootPose | RightHandJoints
)

// RootPoseFlag returns the root-pose bit for h.
func RootPoseFlag(h hand.Handedness) UpdateSuccessFlags {
	if h == hand.Left {
		return LeftHandRootPose
	}
	return RightHandRootPose
}

// JointsFlag returns the joints bit for h.
func JointsFlag(h hand.Handedness) UpdateSuccessFlags {
	if h == hand.Left {
		return LeftHandJoints
	}
	return RightHandJoints
}

// Has reports whether every bit in other is set.
func (f UpdateSuccessFlags) Has(other UpdateSuccessFlags) bool {
	return f&other == other && other != UpdateNone
}

// UpdateType tells consumers which pass an update belongs to.
type UpdateType uint8

const (
	// UpdateDynamic is the high-frequency pass run alongside gameplay
	// logic. It carries interpolated data only.
	UpdateDynamic UpdateType = iota
	// UpdateBeforeRender is the authoritative pass published right before
	// rendering with fresh ground-truth data.
	UpdateBeforeRender
)

// Authoritative reports whether the pass carries new ground-truth data.
func (t UpdateType) Authoritative() bool {
	return t == UpdateBeforeRender
}

func (t UpdateType) String() string {
	if t == UpdateDynamic {
		return "Dynamic"
	}
	return "BeforeRender"
}

// JointSample is one joint's data for one update. Each field is only
// meaningful when its Has flag is set.
type JointSample struct {
	Pose               math.Pose
	LinearVelocity     math.Vec3
	AngularVelocity    math.Vec3
	HasPose            bool
	HasLinearVelocity  bool
	HasAngularVelocity bool
}

// HandSnapshot is everything a subsystem knows about one hand for the
// current update. Joint poses are in the tracking (hand parent) space.
type HandSnapshot struct {
	Handedness hand.Handedness
	Tracked    bool
	RootPose   math.Pose
	Joints     [hand.JointCount]JointSample
}

// NewHandSnapshot returns an untracked snapshot with identity root pose.
func NewHandSnapshot(h hand.Handedness) HandSnapshot {
	return HandSnapshot{Handedness: h, RootPose: math.PoseIdentity()}
}

// JointPose returns the pose of j, if reported this update.
func (s *HandSnapshot) JointPose(j hand.JointID) (math.Pose, bool) {
	if !j.Valid() {
		return math.Pose{}, false
	}
	js := &s.Joints[j.ToIndex()]
	return js.Pose, js.HasPose
}

// LinearVelocity returns the linear velocity of j, if reported.
func (s *HandSnapshot) LinearVelocity(j hand.JointID) (math.Vec3, bool) {
	if !j.Valid() {
		return math.Vec3{}, false
	}
	js := &s.Joints[j.ToIndex()]
	return js.LinearVelocity, js.HasLinearVelocity
}

// AngularVelocity returns the angular velocity of j, if reported.
func (s *HandSnapshot) AngularVelocity(j hand.JointID) (math.Vec3, bool) {
	if !j.Valid() {
		return math.Vec3{}, false
	}
	js := &s.Joints[j.ToIndex()]
	return js.AngularVelocity, js.HasAngularVelocity
}

// SetJointPose records a pose for j. The rotation is stored normalized.
// Invalid joints are ignored.
func (s *HandSnapshot) SetJointPose(j hand.JointID, pose math.Pose) {
	if !j.Valid() {
		return
	}
	js := &s.Joints[j.ToIndex()]
	pose.Rotation = pose.Rotation.Normalize()
	js.Pose = pose
	js.HasPose = true
}

// SetVelocities records linear and angular velocity for j. Invalid joints
// are ignored.
func (s *HandSnapshot) SetVelocities(j hand.JointID, linear, angular math.Vec3) {
	if !j.Valid() {
		return
	}
	js := &s.Joints[j.ToIndex()]
	js.LinearVelocity = linear
	js.AngularVelocity = angular
	js.HasLinearVelocity = true
	js.HasAngularVelocity = true
}

// Listener receives subsystem events. Callbacks run synchronously on the
// goroutine that publishes the update.
type Listener interface {
	OnTrackingAcquired(h hand.Handedness)
	OnTrackingLost(h hand.Handedness)
	OnHandsUpdated(flags UpdateSuccessFlags, updateType UpdateType)
}

// Subsystem is a running hand-tracking source.
type Subsystem interface {
	IsTracked(h hand.Handedness) bool
	// Hand returns the latest snapshot for h. The snapshot is owned by the
	// subsystem and only valid until the next update.
	Hand(h hand.Handedness) *HandSnapshot
	Subscribe(l Listener)
	Unsubscribe(l Listener)
}

// Provider hands out the subsystem once it is available. Unavailability is
// an expected, transient condition, not an error.
type Provider interface {
	TryAcquire() (Subsystem, bool)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() (Subsystem, bool)

// TryAcquire calls f.
func (f ProviderFunc) TryAcquire() (Subsystem, bool) {
	return f()
}

// Always returns a provider that is immediately available.
func Always(s Subsystem) Provider {
	return ProviderFunc(func() (Subsystem, bool) { return s, true })
}

// After returns a provider that fails its first n attempts, modelling a
// subsystem that is still loading.
func After(n int, s Subsystem) Provider {
	attempts := 0
	return ProviderFunc(func() (Subsystem, bool) {
		if attempts < n {
			attempts++
			return nil, false
		}
		return s, true
	})
}
