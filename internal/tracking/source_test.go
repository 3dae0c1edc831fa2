package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/handviz/pkg/hand"
	"github.com/Faultbox/handviz/pkg/math"
)

type event struct {
	kind  string
	hand  hand.Handedness
	flags UpdateSuccessFlags
	typ   UpdateType
}

type recorder struct {
	events []event
}

func (r *recorder) OnTrackingAcquired(h hand.Handedness) {
	r.events = append(r.events, event{kind: "acquired", hand: h})
}

func (r *recorder) OnTrackingLost(h hand.Handedness) {
	r.events = append(r.events, event{kind: "lost", hand: h})
}

func (r *recorder) OnHandsUpdated(flags UpdateSuccessFlags, typ UpdateType) {
	r.events = append(r.events, event{kind: "updated", flags: flags, typ: typ})
}

func trackedFrame(hands ...hand.Handedness) Frame {
	f := NewFrame()
	for _, h := range hands {
		f.Hands[h].Tracked = true
		f.Hands[h].SetJointPose(hand.Wrist, math.PoseIdentity())
	}
	return f
}

func TestFlags(t *testing.T) {
	assert.Equal(t, LeftHandRootPose, RootPoseFlag(hand.Left))
	assert.Equal(t, RightHandJoints, JointsFlag(hand.Right))
	assert.True(t, UpdateAll.Has(LeftHandJoints|RightHandRootPose))
	assert.False(t, LeftHandRootPose.Has(LeftHandJoints))
	assert.False(t, UpdateAll.Has(UpdateNone))
	assert.True(t, UpdateBeforeRender.Authoritative())
	assert.False(t, UpdateDynamic.Authoritative())
}

func TestSnapshotAccessors(t *testing.T) {
	s := NewHandSnapshot(hand.Right)
	_, ok := s.JointPose(hand.IndexTip)
	assert.False(t, ok)
	_, ok = s.JointPose(hand.Invalid)
	assert.False(t, ok)

	p := math.NewPose(math.Vec3{X: 1}, math.QuatIdentity())
	s.SetJointPose(hand.IndexTip, p)
	s.SetVelocities(hand.IndexTip, math.Vec3{Y: 2}, math.Vec3{Z: 3})

	got, ok := s.JointPose(hand.IndexTip)
	require.True(t, ok)
	assert.Equal(t, p, got)
	lin, ok := s.LinearVelocity(hand.IndexTip)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{Y: 2}, lin)
	ang, ok := s.AngularVelocity(hand.IndexTip)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{Z: 3}, ang)
	_, ok = s.LinearVelocity(hand.IndexDistal)
	assert.False(t, ok)
}

func TestSnapshotSettersIgnoreInvalidJoint(t *testing.T) {
	s := NewHandSnapshot(hand.Left)
	before := s
	assert.NotPanics(t, func() {
		s.SetJointPose(hand.Invalid, math.NewPose(math.Vec3{X: 1}, math.QuatIdentity()))
		s.SetVelocities(hand.Invalid, math.Vec3{Y: 2}, math.Vec3{Z: 3})
	})
	assert.Equal(t, before, s)
	_, ok := s.JointPose(hand.Invalid)
	assert.False(t, ok)
}

func TestSetJointPoseNormalizesRotation(t *testing.T) {
	s := NewHandSnapshot(hand.Right)
	s.SetJointPose(hand.Wrist, math.NewPose(math.Vec3{}, math.Quat{X: 0.4, Y: 0.4, W: 0.8}))
	got, ok := s.JointPose(hand.Wrist)
	require.True(t, ok)
	assert.InDelta(t, 1, got.Rotation.Dot(got.Rotation), 1e-5)
}

func TestPublishEdges(t *testing.T) {
	src := NewSource()
	rec := &recorder{}
	src.Subscribe(rec)
	src.Subscribe(rec)
	assert.Equal(t, 1, src.Listeners())

	flags := src.Publish(trackedFrame(hand.Left), UpdateBeforeRender)
	assert.Equal(t, LeftHandRootPose|LeftHandJoints, flags)
	assert.True(t, src.IsTracked(hand.Left))
	assert.False(t, src.IsTracked(hand.Right))
	assert.Equal(t, []event{
		{kind: "acquired", hand: hand.Left},
		{kind: "updated", flags: flags, typ: UpdateBeforeRender},
	}, rec.events)

	rec.events = nil
	flags = src.Publish(trackedFrame(hand.Right), UpdateDynamic)
	assert.Equal(t, RightHandRootPose|RightHandJoints, flags)
	assert.Equal(t, []event{
		{kind: "acquired", hand: hand.Right},
		{kind: "lost", hand: hand.Left},
		{kind: "updated", flags: flags, typ: UpdateDynamic},
	}, rec.events)

	// No edges on a repeated frame
	rec.events = nil
	src.Publish(trackedFrame(hand.Right), UpdateBeforeRender)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "updated", rec.events[0].kind)
}

func TestPublishRootOnly(t *testing.T) {
	src := NewSource()
	f := NewFrame()
	f.Hands[hand.Left].Tracked = true
	assert.Equal(t, LeftHandRootPose, src.Publish(f, UpdateBeforeRender))
}

type unsubscriber struct {
	recorder
	src *Source
}

func (u *unsubscriber) OnTrackingAcquired(h hand.Handedness) {
	u.recorder.OnTrackingAcquired(h)
	u.src.Unsubscribe(u)
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	src := NewSource()
	u := &unsubscriber{src: src}
	other := &recorder{}
	src.Subscribe(u)
	src.Subscribe(other)

	src.Publish(trackedFrame(hand.Left), UpdateBeforeRender)

	assert.Equal(t, 1, src.Listeners())
	assert.Len(t, other.events, 2)
	// The current dispatch still reaches u
	assert.Len(t, u.events, 2)

	u.events = nil
	src.Publish(NewFrame(), UpdateBeforeRender)
	assert.Empty(t, u.events)
}

func TestProviders(t *testing.T) {
	src := NewSource()

	s, ok := Always(src).TryAcquire()
	assert.True(t, ok)
	assert.Equal(t, Subsystem(src), s)

	p := After(2, src)
	for i := 0; i < 2; i++ {
		s, ok = p.TryAcquire()
		assert.False(t, ok)
		assert.Nil(t, s)
	}
	s, ok = p.TryAcquire()
	assert.True(t, ok)
	assert.NotNil(t, s)
}
