package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromArrayZeroIsIdentity(t *testing.T) {
	if got := QuatFromArray([4]float32{}); got != QuatIdentity() {
		t.Errorf("QuatFromArray(zero) = %v, want identity", got)
	}
	q := Quat{X: 0, Y: 0.7071, Z: 0, W: 0.7071}
	if got := QuatFromArray(q.Array()); !got.ApproxEqual(q, 1e-4) {
		t.Errorf("QuatFromArray(Array()) = %v, want %v", got, q)
	}
}

func TestQuatFromArrayNormalizes(t *testing.T) {
	// Three-decimal values as stored in recordings: |q|^2 = 0.98.
	q := QuatFromArray([4]float32{0.4, 0.4, 0, 0.8})
	if n := q.Dot(q); math.Abs(float64(n-1)) > 1e-5 {
		t.Errorf("|q|^2 = %v, want 1", n)
	}
	want := Quat{X: 0.4, Y: 0.4, Z: 0, W: 0.8}.Normalize()
	if !q.ApproxEqual(want, 1e-6) {
		t.Errorf("QuatFromArray = %v, want %v", q, want)
	}
}

func TestQuatFromAxisAngleNormalizesAxis(t *testing.T) {
	got := QuatFromAxisAngle(Vec3{X: 1, Y: 1}, 1.2)
	want := QuatFromAxisAngle(Vec3{X: 1, Y: 1}.Normalize(), 1.2)
	if !got.ApproxEqual(want, 1e-6) {
		t.Errorf("QuatFromAxisAngle = %v, want %v", got, want)
	}
	if n := got.Dot(got); math.Abs(float64(n-1)) > 1e-5 {
		t.Errorf("|q|^2 = %v, want 1", n)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// Halfway through a 90 degree turn is 45 degrees
	result5 := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(float64(math.Pi / 8)))
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name string
		axis Vec3
		in   Vec3
		want Vec3
	}{
		{"x around y", Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"y around z", Vec3{0, 0, 1}, Vec3{0, 1, 0}, Vec3{-1, 0, 0}},
		{"z around x", Vec3{1, 0, 0}, Vec3{0, 0, 1}, Vec3{0, -1, 0}},
		{"axis unchanged", Vec3{0, 1, 0}, Vec3{0, 2, 0}, Vec3{0, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, float32(math.Pi/2))
			got := q.Rotate(tt.in)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.in, got, tt.want)
			}
			// Rotate must agree with the matrix form
			viaMat := q.ToMat4().TransformVec3(tt.in)
			if !got.ApproxEqual(viaMat, 1e-5) {
				t.Errorf("Rotate(%v) = %v, matrix gives %v", tt.in, got, viaMat)
			}
		})
	}
}

func TestQuatInverse(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 2, 3}.Normalize(), 1.1)
	got := q.Mul(q.Inverse())
	if !got.ApproxEqual(QuatIdentity(), 1e-6) {
		t.Errorf("q * q^-1 = %v, want identity", got)
	}

	if inv := (Quat{}).Inverse(); inv != QuatIdentity() {
		t.Errorf("zero quaternion inverse = %v, want identity", inv)
	}
}

func TestQuatApproxEqualSignInvariant(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.3)
	neg := Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
	if !q.ApproxEqual(neg, 1e-6) {
		t.Error("q and -q should be the same rotation")
	}
}
