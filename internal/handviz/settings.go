package handviz

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// VelocityType selects which velocity, if any, is drawn from each joint.
type VelocityType uint8

const (
	VelocityNone VelocityType = iota
	VelocityLinear
	VelocityAngular
)

var velocityNames = [...]string{"none", "linear", "angular"}

func (v VelocityType) String() string {
	if int(v) < len(velocityNames) {
		return velocityNames[v]
	}
	return fmt.Sprintf("VelocityType(%d)", uint8(v))
}

// Next cycles none -> linear -> angular -> none.
func (v VelocityType) Next() VelocityType {
	return (v + 1) % VelocityType(len(velocityNames))
}

// ParseVelocityType parses "none", "linear" or "angular", ignoring case.
func ParseVelocityType(s string) (VelocityType, error) {
	for i, name := range velocityNames {
		if strings.EqualFold(s, name) {
			return VelocityType(i), nil
		}
	}
	return VelocityNone, fmt.Errorf("unknown velocity type %q (want none, linear or angular)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v VelocityType) MarshalText() ([]byte, error) {
	if int(v) >= len(velocityNames) {
		return nil, fmt.Errorf("invalid velocity type %d", uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VelocityType) UnmarshalText(text []byte) error {
	parsed, err := ParseVelocityType(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Settings is the visualization configuration shared by both hands.
type Settings struct {
	DrawMeshes      bool         `yaml:"draw_meshes"`
	DebugDrawJoints bool         `yaml:"debug_draw_joints"`
	VelocityType    VelocityType `yaml:"velocity_type"`
}

// Effective returns what a hand should actually show: everything hidden
// when it is not tracked, the configured values otherwise.
func (s Settings) Effective(tracked bool) Settings {
	if !tracked {
		return Settings{VelocityType: VelocityNone}
	}
	return s
}

// MarshalLogObject lets Settings be logged with zap.Object.
func (s Settings) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("draw_meshes", s.DrawMeshes)
	enc.AddBool("debug_draw_joints", s.DebugDrawJoints)
	enc.AddString("velocity_type", s.VelocityType.String())
	return nil
}
