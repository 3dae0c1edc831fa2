package tracking

import (
	"github.com/Faultbox/handviz/pkg/hand"
)

// Frame is one update's worth of data for both hands, indexed by
// hand.Handedness.
type Frame struct {
	Hands [hand.HandCount]HandSnapshot
}

// NewFrame returns a frame with both hands untracked.
func NewFrame() Frame {
	return Frame{Hands: [hand.HandCount]HandSnapshot{
		NewHandSnapshot(hand.Left),
		NewHandSnapshot(hand.Right),
	}}
}

// Source is an in-process Subsystem. Producers push frames with Publish and
// Source turns them into listener events.
type Source struct {
	hands     [hand.HandCount]HandSnapshot
	listeners []Listener
}

// NewSource creates a source with both hands untracked.
func NewSource() *Source {
	f := NewFrame()
	return &Source{hands: f.Hands}
}

// IsTracked implements Subsystem.
func (s *Source) IsTracked(h hand.Handedness) bool {
	return s.hands[h].Tracked
}

// Hand implements Subsystem.
func (s *Source) Hand(h hand.Handedness) *HandSnapshot {
	return &s.hands[h]
}

// Subscribe implements Subsystem. Subscribing the same listener twice has
// no effect.
func (s *Source) Subscribe(l Listener) {
	for _, existing := range s.listeners {
		if existing == l {
			return
		}
	}
	s.listeners = append(s.listeners, l)
}

// Unsubscribe implements Subsystem.
func (s *Source) Unsubscribe(l Listener) {
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of subscribed listeners.
func (s *Source) Listeners() int {
	return len(s.listeners)
}

// Publish stores frame as the current data, fires acquired/lost events for
// hands whose trackedness changed, then fires OnHandsUpdated. It returns the
// flags that were reported.
func (s *Source) Publish(frame Frame, updateType UpdateType) UpdateSuccessFlags {
	var acquired, lost []hand.Handedness
	flags := UpdateNone

	for _, h := range hand.Hands() {
		was := s.hands[h].Tracked
		s.hands[h] = frame.Hands[h]
		s.hands[h].Handedness = h

		now := s.hands[h].Tracked
		switch {
		case now && !was:
			acquired = append(acquired, h)
		case !now && was:
			lost = append(lost, h)
		}

		if !now {
			continue
		}
		flags |= RootPoseFlag(h)
		for i := range s.hands[h].Joints {
			if s.hands[h].Joints[i].HasPose {
				flags |= JointsFlag(h)
				break
			}
		}
	}

	// Listeners may unsubscribe from inside a callback.
	listeners := append([]Listener(nil), s.listeners...)
	for _, h := range acquired {
		for _, l := range listeners {
			l.OnTrackingAcquired(h)
		}
	}
	for _, h := range lost {
		for _, l := range listeners {
			l.OnTrackingLost(h)
		}
	}
	for _, l := range listeners {
		l.OnHandsUpdated(flags, updateType)
	}
	return flags
}
