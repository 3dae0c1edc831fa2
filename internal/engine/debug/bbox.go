// Package debug turns scene renderer components into colored line vertices
// for the debug viewer.
package debug

import "github.com/Faultbox/handviz/pkg/math"

// cubeEdges lists the 12 edges of a unit cube as pairs of corner indices.
// Corner i has coordinates (bit0, bit1, bit2) mapped to (-1|+1).
var cubeEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// CubeVertexCount is the number of vertices of a cube wireframe (12 edges × 2).
const CubeVertexCount = 24

// CubeWireframe returns the line vertices of a cube with edge length size,
// centered on pose and rotated with it.
func CubeWireframe(pose math.Pose, size float32, color [3]float32) []Vertex {
	h := size / 2
	var corners [8]math.Vec3
	for i := range corners {
		local := math.Vec3{X: -h, Y: -h, Z: -h}
		if i&1 != 0 {
			local.X = h
		}
		if i&2 != 0 {
			local.Y = h
		}
		if i&4 != 0 {
			local.Z = h
		}
		corners[i] = pose.Rotation.Rotate(local).Add(pose.Position)
	}

	out := make([]Vertex, 0, CubeVertexCount)
	for _, e := range cubeEdges {
		out = append(out, vertex(corners[e[0]], color), vertex(corners[e[1]], color))
	}
	return out
}

// AxisCross returns three short lines along the pose's local axes, colored
// red, green and blue for X, Y and Z.
func AxisCross(pose math.Pose, length float32) []Vertex {
	axes := [3]struct {
		dir   math.Vec3
		color [3]float32
	}{
		{math.Vec3{X: 1}, [3]float32{1, 0.2, 0.2}},
		{math.Vec3{Y: 1}, [3]float32{0.2, 1, 0.2}},
		{math.Vec3{Z: 1}, [3]float32{0.3, 0.4, 1}},
	}
	out := make([]Vertex, 0, 6)
	for _, a := range axes {
		end := pose.Position.Add(pose.Rotation.Rotate(a.dir).Scale(length))
		out = append(out, vertex(pose.Position, a.color), vertex(end, a.color))
	}
	return out
}
