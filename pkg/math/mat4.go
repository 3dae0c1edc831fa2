package math

import "math"

// Mat4 is a 4x4 matrix stored column by column, the layout glUniformMatrix4fv
// expects without transposition. Element (row, col) lives at col*4+row.
type Mat4 [16]float32

// Vec4 is a homogeneous coordinate [x, y, z, w].
type Vec4 [4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i*5] = 1
	}
	return m
}

// Translate returns a matrix that moves points by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m.setColumn(3, Vec4{x, y, z, 1})
	return m
}

// Perspective returns a right-handed projection onto OpenGL clip space
// (depth -1..1). fovY is the vertical field of view in radians and aspect is
// width over height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	focal := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far

	var m Mat4
	m[0] = focal / aspect
	m[5] = focal
	m[10] = (near + far) / depth
	m[11] = -1
	m[14] = 2 * near * far / depth
	return m
}

// LookAt returns the view matrix of a camera at eye facing center. The camera
// looks down its -Z axis with up roughly along +Y of the view.
func LookAt(eye, center, up Vec3) Mat4 {
	forward := center.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)
	back := forward.Scale(-1)

	// The camera basis forms the rows of the rotation part.
	var m Mat4
	m.setColumn(0, Vec4{right.X, camUp.X, back.X, 0})
	m.setColumn(1, Vec4{right.Y, camUp.Y, back.Y, 0})
	m.setColumn(2, Vec4{right.Z, camUp.Z, back.Z, 0})
	m.setColumn(3, Vec4{-right.Dot(eye), -camUp.Dot(eye), forward.Dot(eye), 1})
	return m
}

// Mul returns m * other, so other is applied to a vector first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		out.setColumn(col, m.MulVec4(other.column(col)))
	}
	return out
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row] += m[col*4+row] * v[col]
		}
	}
	return out
}

// TransformVec3 maps a point (w = 1) through m, dividing by the resulting w
// when the matrix is projective.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	p := m.MulVec4(Vec4{v.X, v.Y, v.Z, 1})
	if p[3] != 0 && p[3] != 1 {
		return Vec3{p[0] / p[3], p[1] / p[3], p[2] / p[3]}
	}
	return Vec3{p[0], p[1], p[2]}
}

// Inverse inverts m by Gauss-Jordan elimination with partial pivoting. It
// reports false and returns the identity when m is singular.
func (m Mat4) Inverse() (Mat4, bool) {
	a := m
	inv := Identity()
	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if absf(a[col*4+row]) > absf(a[col*4+pivot]) {
				pivot = row
			}
		}
		if absf(a[col*4+pivot]) < 1e-12 {
			return Identity(), false
		}
		a.swapRows(col, pivot)
		inv.swapRows(col, pivot)

		scale := 1 / a[col*4+col]
		a.scaleRow(col, scale)
		inv.scaleRow(col, scale)

		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[col*4+row]
			if f == 0 {
				continue
			}
			a.addRow(row, col, -f)
			inv.addRow(row, col, -f)
		}
	}
	return inv, true
}

// Ptr returns the address of the first element for GL uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

func (m Mat4) column(col int) Vec4 {
	return Vec4{m[col*4], m[col*4+1], m[col*4+2], m[col*4+3]}
}

func (m *Mat4) setColumn(col int, v Vec4) {
	copy(m[col*4:col*4+4], v[:])
}

func (m *Mat4) swapRows(i, j int) {
	if i == j {
		return
	}
	for col := 0; col < 4; col++ {
		m[col*4+i], m[col*4+j] = m[col*4+j], m[col*4+i]
	}
}

func (m *Mat4) scaleRow(row int, s float32) {
	for col := 0; col < 4; col++ {
		m[col*4+row] *= s
	}
}

// addRow adds s times row src to row dst.
func (m *Mat4) addRow(dst, src int, s float32) {
	for col := 0; col < 4; col++ {
		m[col*4+dst] += s * m[col*4+src]
	}
}
