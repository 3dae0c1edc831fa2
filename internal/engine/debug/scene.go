package debug

import (
	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/pkg/math"
)

func vertex(p math.Vec3, c [3]float32) Vertex {
	return Vertex{p.X, p.Y, p.Z, c[0], c[1], c[2]}
}

// SceneLines collects line vertices for every enabled renderer in g:
//   - LineRenderer: its segment as is.
//   - MeshRenderer: a wire cube of its size at the node ("cube") or an
//     axis cross (any other shape).
//   - SkinnedMeshRenderer: the bone skeleton below its root bone, one
//     segment from every bone to each of its children.
func SceneLines(g *scene.Graph) []Vertex {
	var out []Vertex
	for _, root := range g.Roots() {
		g.Walk(root, func(id scene.NodeID) bool {
			for _, c := range g.Components(id) {
				out = appendComponent(out, g, id, c)
			}
			return true
		})
	}
	return out
}

func appendComponent(out []Vertex, g *scene.Graph, id scene.NodeID, c scene.Component) []Vertex {
	switch r := c.(type) {
	case *scene.LineRenderer:
		if r.Enabled() {
			out = append(out, vertex(r.Points[0], r.Color), vertex(r.Points[1], r.Color))
		}
	case *scene.MeshRenderer:
		if !r.Enabled() {
			break
		}
		pose := g.WorldPose(id)
		if r.Shape == "cube" {
			out = append(out, CubeWireframe(pose, r.Size, r.Color)...)
		} else {
			out = append(out, AxisCross(pose, r.Size)...)
		}
	case *scene.SkinnedMeshRenderer:
		if r.Enabled() && g.Valid(r.RootBone) {
			out = appendSkeleton(out, g, r.RootBone, r.Color)
		}
	}
	return out
}

func appendSkeleton(out []Vertex, g *scene.Graph, bone scene.NodeID, color [3]float32) []Vertex {
	g.Walk(bone, func(id scene.NodeID) bool {
		from := g.WorldPose(id).Position
		for _, child := range g.Children(id) {
			out = append(out, vertex(from, color), vertex(g.WorldPose(child).Position, color))
		}
		return true
	})
	return out
}
