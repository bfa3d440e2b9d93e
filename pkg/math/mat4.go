package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 is a 4x4 affine matrix stored row-major for row vectors.
// Layout: [m0  m1  m2  m3 ]
//
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
//
// The translation lives in the last row (m12, m13, m14). The flat layout is
// identical to a column-major matrix for column vectors, so a Mat4 converts
// to mgl64.Mat4 without copying and represents the same transform there.
type Mat4 [16]float64

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scale matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Row returns row r.
func (m Mat4) Row(r int) [4]float64 {
	return [4]float64{m[r*4], m[r*4+1], m[r*4+2], m[r*4+3]}
}

// Mul returns m * other. With row vectors, m is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[r*4+c] = m[r*4+0]*other[0*4+c] +
				m[r*4+1]*other[1*4+c] +
				m[r*4+2]*other[2*4+c] +
				m[r*4+3]*other[3*4+c]
		}
	}
	return result
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		d.X*m[0] + d.Y*m[4] + d.Z*m[8],
		d.X*m[1] + d.Y*m[5] + d.Z*m[9],
		d.X*m[2] + d.Y*m[6] + d.Z*m[10],
	}
}

// Translation returns the translation part.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// WithTranslation returns a copy of m with its translation replaced.
func (m Mat4) WithTranslation(t Vec3) Mat4 {
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Rotation returns the upper-left 3x3 part as a matrix without translation.
func (m Mat4) Rotation() Mat4 {
	return Mat4{
		m[0], m[1], m[2], 0,
		m[4], m[5], m[6], 0,
		m[8], m[9], m[10], 0,
		0, 0, 0, 1,
	}
}

// Inverse returns the inverse of the matrix.
// Returns the zero matrix if m is singular.
func (m Mat4) Inverse() Mat4 {
	return Mat4(mgl64.Mat4(m).Inv())
}

// Quat extracts the rotation of m as a quaternion. The rotation part must be
// orthonormal; scale is not removed.
func (m Mat4) Quat() Quat {
	q := mgl64.Mat4ToQuat(mgl64.Mat4(m.Rotation()))
	return Quat{X: q.X(), Y: q.Y(), Z: q.Z(), W: q.W}
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}
