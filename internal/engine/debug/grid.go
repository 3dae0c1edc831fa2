package debug

// Vertex is one colored line endpoint.
type Vertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// GridColor is the color of the floor grid.
var GridColor = [3]float32{0.3, 0.3, 0.33}

// FloorGrid generates line vertices for a square grid on the plane y = height,
// spanning [-halfExtent, halfExtent] on X and Z with lines every step.
func FloorGrid(halfExtent, step, height float32) []Vertex {
	if step <= 0 || halfExtent <= 0 {
		return nil
	}
	n := int(halfExtent / step)
	c := GridColor

	vertices := make([]Vertex, 0, (2*n+1)*4)
	for i := -n; i <= n; i++ {
		p := float32(i) * step
		// Line along Z
		vertices = append(vertices,
			Vertex{p, height, -halfExtent, c[0], c[1], c[2]},
			Vertex{p, height, halfExtent, c[0], c[1], c[2]},
		)
		// Line along X
		vertices = append(vertices,
			Vertex{-halfExtent, height, p, c[0], c[1], c[2]},
			Vertex{halfExtent, height, p, c[0], c[1], c[2]},
		)
	}
	return vertices
}
