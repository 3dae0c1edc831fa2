package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/handviz/pkg/math"
)

func TestScreenToRayThroughCenter(t *testing.T) {
	eye := math.Vec3{Z: 2}
	viewProj := math.Perspective(1, 1, 0.1, 10).Mul(math.LookAt(eye, math.Vec3Zero(), math.Vec3{Y: 1}))

	inv, ok := viewProj.Inverse()
	require.True(t, ok)

	r := ScreenToRay(50, 50, 100, 100, inv)

	assert.InDelta(t, 0, r.Direction.X, 1e-4)
	assert.InDelta(t, 0, r.Direction.Y, 1e-4)
	assert.InDelta(t, -1, r.Direction.Z, 1e-4)
	// The origin sits on the near plane in front of the eye.
	assert.InDelta(t, 1.9, r.Origin.Z, 1e-3)
}

func TestIntersectAABB(t *testing.T) {
	box := CubeAround(math.Vec3{Z: -5}, 2)

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
		wantT   float32
	}{
		{"straight on", Ray{Origin: math.Vec3Zero(), Direction: math.Vec3{Z: -1}}, true, 4},
		{"away", Ray{Origin: math.Vec3Zero(), Direction: math.Vec3{Z: 1}}, false, 0},
		{"parallel outside", Ray{Origin: math.Vec3{X: 3}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"from inside", Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: -1}}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.InDelta(t, tt.wantT, got, 1e-5)
			}
		})
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1}, Direction: math.Vec3{Y: 1}}
	assert.Equal(t, math.Vec3{X: 1, Y: 2}, r.At(2))
}
