package scene

import "github.com/Faultbox/handviz/pkg/math"

// Component is anything attached to a node.
type Component interface {
	Kind() string
}

// Renderer is a component that can be switched on and off.
type Renderer interface {
	Component
	Enabled() bool
	SetEnabled(enabled bool)
}

// Color is an RGB color with components in [0, 1].
type Color [3]float32

type rendererState struct {
	enabled bool
}

func (r *rendererState) Enabled() bool           { return r.enabled }
func (r *rendererState) SetEnabled(enabled bool) { r.enabled = enabled }

// SkinnedMeshRenderer draws a mesh deformed by a bone hierarchy starting at
// RootBone.
type SkinnedMeshRenderer struct {
	rendererState
	RootBone NodeID
	Color    Color
}

// NewSkinnedMeshRenderer returns an enabled skinned mesh renderer.
func NewSkinnedMeshRenderer(color Color) *SkinnedMeshRenderer {
	return &SkinnedMeshRenderer{rendererState: rendererState{enabled: true}, RootBone: NoNode, Color: color}
}

func (*SkinnedMeshRenderer) Kind() string { return "skinned_mesh" }

// MeshRenderer draws a small static shape at its node, such as a debug
// joint marker.
type MeshRenderer struct {
	rendererState
	Shape string
	Size  float32
	Color Color
}

// NewMeshRenderer returns an enabled mesh renderer.
func NewMeshRenderer(shape string, size float32, color Color) *MeshRenderer {
	return &MeshRenderer{rendererState: rendererState{enabled: true}, Shape: shape, Size: size, Color: color}
}

func (*MeshRenderer) Kind() string { return "mesh" }

// LineRenderer draws a single segment between two world-space points.
type LineRenderer struct {
	rendererState
	Points [2]math.Vec3
	Width  float32
	Color  Color
}

// NewLineRenderer returns an enabled, zero-length line.
func NewLineRenderer(width float32, color Color) *LineRenderer {
	return &LineRenderer{rendererState: rendererState{enabled: true}, Width: width, Color: color}
}

func (*LineRenderer) Kind() string { return "line" }

// SetPositions sets both endpoints.
func (l *LineRenderer) SetPositions(start, end math.Vec3) {
	l.Points[0] = start
	l.Points[1] = end
}

// GetComponent returns the first component of type T on the node.
func GetComponent[T Component](g *Graph, id NodeID) (T, bool) {
	for _, c := range g.Components(id) {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// ToggleRenderers enables or disables every renderer of type T in the
// subtree rooted at root, and returns how many were touched. Renderers of
// other types are left alone.
func ToggleRenderers[T Renderer](g *Graph, root NodeID, enabled bool) int {
	n := 0
	g.Walk(root, func(id NodeID) bool {
		for _, c := range g.Components(id) {
			if r, ok := c.(T); ok {
				r.SetEnabled(enabled)
				n++
			}
		}
		return true
	})
	return n
}
