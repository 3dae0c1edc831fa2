package tracking

import (
	"errors"
	"fmt"
	gomath "math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/handviz/pkg/hand"
	"github.com/Faultbox/handviz/pkg/math"
)

// ErrInvalidRecording is returned for recordings that fail validation.
var ErrInvalidRecording = errors.New("invalid recording")

// PoseValue is a pose serialized as [px, py, pz, qx, qy, qz, qw].
type PoseValue [7]float32

// MarshalYAML writes the pose on a single line.
func (v PoseValue) MarshalYAML() (interface{}, error) {
	return flowNode(v[:])
}

// Pose converts the value.
func (v PoseValue) Pose() math.Pose {
	return math.NewPose(
		math.Vec3{X: v[0], Y: v[1], Z: v[2]},
		math.QuatFromArray([4]float32{v[3], v[4], v[5], v[6]}),
	)
}

// PoseValueOf converts a pose.
func PoseValueOf(p math.Pose) PoseValue {
	r := p.Rotation
	return PoseValue{p.Position.X, p.Position.Y, p.Position.Z, r.X, r.Y, r.Z, r.W}
}

// VecValue is a vector serialized as [x, y, z].
type VecValue [3]float32

// MarshalYAML writes the vector on a single line.
func (v VecValue) MarshalYAML() (interface{}, error) {
	return flowNode(v[:])
}

func flowNode(values []float32) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(values); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return n, nil
}

// RecordedHand is one tracked hand in one recorded frame. Maps are keyed by
// canonical joint name.
type RecordedHand struct {
	Root    PoseValue            `yaml:"root"`
	Joints  map[string]PoseValue `yaml:"joints,omitempty"`
	Linear  map[string]VecValue  `yaml:"linear,omitempty"`
	Angular map[string]VecValue  `yaml:"angular,omitempty"`
}

// RecordedFrame is one update. A nil hand was untracked.
type RecordedFrame struct {
	T     float64       `yaml:"t"`
	Left  *RecordedHand `yaml:"left,omitempty"`
	Right *RecordedHand `yaml:"right,omitempty"`
}

// Recording is a captured tracking session.
type Recording struct {
	Name   string          `yaml:"name"`
	Rate   float64         `yaml:"rate"`
	Frames []RecordedFrame `yaml:"frames"`
}

// ParseRecording decodes and validates a recording.
func ParseRecording(data []byte) (*Recording, error) {
	var r Recording
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecording, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadRecording reads a recording from disk.
func LoadRecording(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	r, err := ParseRecording(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Marshal encodes the recording as YAML.
func (r *Recording) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Save writes the recording to path.
func (r *Recording) Save(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("marshal recording: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write recording: %w", err)
	}
	return nil
}

// Validate checks the rate, frame ordering and joint names.
func (r *Recording) Validate() error {
	if r.Rate <= 0 {
		return fmt.Errorf("%w: rate must be positive, got %v", ErrInvalidRecording, r.Rate)
	}
	if len(r.Frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrInvalidRecording)
	}
	for i := range r.Frames {
		f := &r.Frames[i]
		if i > 0 && f.T < r.Frames[i-1].T {
			return fmt.Errorf("%w: frame %d goes back in time (%v < %v)", ErrInvalidRecording, i, f.T, r.Frames[i-1].T)
		}
		for _, rh := range []*RecordedHand{f.Left, f.Right} {
			if rh == nil {
				continue
			}
			if err := rh.validate(); err != nil {
				return fmt.Errorf("%w: frame %d: %v", ErrInvalidRecording, i, err)
			}
		}
	}
	return nil
}

func (rh *RecordedHand) validate() error {
	for name := range rh.Joints {
		if _, ok := hand.ParseJoint(name); !ok {
			return fmt.Errorf("unknown joint %q", name)
		}
	}
	for name := range rh.Linear {
		if _, ok := hand.ParseJoint(name); !ok {
			return fmt.Errorf("unknown joint %q in linear", name)
		}
	}
	for name := range rh.Angular {
		if _, ok := hand.ParseJoint(name); !ok {
			return fmt.Errorf("unknown joint %q in angular", name)
		}
	}
	return nil
}

// Duration is the time covered by the recording, including the last frame's
// own interval.
func (r *Recording) Duration() float64 {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].T - r.Frames[0].T + 1/r.Rate
}

// Frame converts the recorded frame. Unknown joint names are ignored.
func (rf *RecordedFrame) Frame() Frame {
	f := NewFrame()
	rf.Left.fill(&f.Hands[hand.Left])
	rf.Right.fill(&f.Hands[hand.Right])
	return f
}

func (rh *RecordedHand) fill(snap *HandSnapshot) {
	if rh == nil {
		return
	}
	snap.Tracked = true
	snap.RootPose = rh.Root.Pose()
	for name, v := range rh.Joints {
		if j, ok := hand.ParseJoint(name); ok {
			snap.SetJointPose(j, v.Pose())
		}
	}
	for name, v := range rh.Linear {
		if j, ok := hand.ParseJoint(name); ok {
			js := &snap.Joints[j.ToIndex()]
			js.LinearVelocity = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
			js.HasLinearVelocity = true
		}
	}
	for name, v := range rh.Angular {
		if j, ok := hand.ParseJoint(name); ok {
			js := &snap.Joints[j.ToIndex()]
			js.AngularVelocity = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
			js.HasAngularVelocity = true
		}
	}
}

// RecordFrame converts a frame for storage at time t.
func RecordFrame(t float64, f Frame) RecordedFrame {
	return RecordedFrame{
		T:     t,
		Left:  recordHand(&f.Hands[hand.Left]),
		Right: recordHand(&f.Hands[hand.Right]),
	}
}

func recordHand(snap *HandSnapshot) *RecordedHand {
	if !snap.Tracked {
		return nil
	}
	rh := &RecordedHand{Root: PoseValueOf(snap.RootPose)}
	for i := range snap.Joints {
		js := &snap.Joints[i]
		name := hand.FromIndex(i).String()
		if js.HasPose {
			if rh.Joints == nil {
				rh.Joints = make(map[string]PoseValue)
			}
			rh.Joints[name] = PoseValueOf(js.Pose)
		}
		if js.HasLinearVelocity {
			if rh.Linear == nil {
				rh.Linear = make(map[string]VecValue)
			}
			rh.Linear[name] = VecValue(js.LinearVelocity.Array())
		}
		if js.HasAngularVelocity {
			if rh.Angular == nil {
				rh.Angular = make(map[string]VecValue)
			}
			rh.Angular[name] = VecValue(js.AngularVelocity.Array())
		}
	}
	return rh
}

// Record samples a synthetic source for seconds at rate frames per second.
func Record(s *Synthetic, name string, seconds, rate float64) *Recording {
	r := &Recording{Name: name, Rate: rate}
	n := int(gomath.Ceil(seconds * rate))
	for i := 0; i < n; i++ {
		t := float64(i) / rate
		r.Frames = append(r.Frames, RecordFrame(t, s.Frame(t)))
	}
	return r
}

// Player replays a recording against a clock. It holds each frame until the
// next one is due.
type Player struct {
	rec  *Recording
	loop bool
}

// NewPlayer creates a player. With loop set, time wraps around the
// recording's duration.
func NewPlayer(rec *Recording, loop bool) *Player {
	return &Player{rec: rec, loop: loop}
}

// Recording returns the recording being played.
func (p *Player) Recording() *Recording {
	return p.rec
}

// At returns the frame due at time t seconds since playback started, and
// whether playback has finished. A finished non-looping player keeps
// returning the last frame.
func (p *Player) At(t float64) (Frame, bool) {
	frames := p.rec.Frames
	if len(frames) == 0 {
		return NewFrame(), true
	}
	done := false
	if dur := p.rec.Duration(); t >= dur {
		if p.loop {
			t = gomath.Mod(t, dur)
		} else {
			done = true
		}
	}
	t += frames[0].T
	i := sort.Search(len(frames), func(i int) bool { return frames[i].T > t }) - 1
	if i < 0 {
		i = 0
	}
	return frames[i].Frame(), done
}
