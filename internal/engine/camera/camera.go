// Package camera provides the orbit camera used by the hand viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/handviz/pkg/math"
)

// OrbitCamera orbits around a target point. Distances are in meters.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y

	// Projection
	FOV       float32 // vertical, radians
	Near, Far float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera returns a camera framing a pair of hands at arm's length.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        0.6,
		Pitch:           0.35,
		FOV:             60 * gomath.Pi / 180,
		Near:            0.01,
		Far:             50,
		MinDistance:     0.1,
		MaxDistance:     10,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp, sp := gomath.Cos(float64(c.Pitch)), gomath.Sin(float64(c.Pitch))
	cy, sy := gomath.Cos(float64(c.Yaw)), gomath.Sin(float64(c.Yaw))
	offset := math.Vec3{
		X: float32(cp * sy),
		Y: float32(sp),
		Z: float32(cp * cy),
	}
	return c.Target.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect
// ratio (width / height).
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjection returns projection × view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta. Positive delta
// moves closer.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the target on the ground plane relative to the
// current yaw, and vertically by up.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.02

	sy := float32(gomath.Sin(float64(c.Yaw)))
	cy := float32(gomath.Cos(float64(c.Yaw)))

	// Negate forward so W moves "into" the scene
	c.Target.X += (-sy*forward + cy*right) * speed
	c.Target.Z += (-cy*forward - sy*right) * speed
	c.Target.Y += up * speed
}

// FitToBounds centers the camera on an axis-aligned box and backs off far
// enough to see all of it.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Target = min.Add(max).Scale(0.5)
	radius := max.Sub(min).Length() / 2
	d := radius / float32(gomath.Tan(float64(c.FOV)/2))
	c.Distance = clamp(d*1.2, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
