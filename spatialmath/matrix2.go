package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant is zero.
var ErrSingularMatrix = errors.New("matrix is singular and cannot be inverted")

// Matrix2 is a row-major 2x2 matrix.
type Matrix2 [2][2]float64

// NewMatrix2 creates the matrix [[a, b], [c, d]].
func NewMatrix2(a, b, c, d float64) Matrix2 {
	return Matrix2{{a, b}, {c, d}}
}

// NewIdentityMatrix2 returns the 2x2 identity.
func NewIdentityMatrix2() Matrix2 {
	return Matrix2{{1, 0}, {0, 1}}
}

// NewRotationMatrix2 returns the matrix rotating vectors counterclockwise by theta.
func NewRotationMatrix2(theta float64) Matrix2 {
	sin, cos := math.Sincos(theta)
	return Matrix2{{cos, -sin}, {sin, cos}}
}

// Det returns the determinant of m.
func (m Matrix2) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Transpose returns the transpose of m.
func (m Matrix2) Transpose() Matrix2 {
	return Matrix2{{m[0][0], m[1][0]}, {m[0][1], m[1][1]}}
}

// Mul returns the product m*n.
func (m Matrix2) Mul(n Matrix2) Matrix2 {
	return Matrix2{
		{m[0][0]*n[0][0] + m[0][1]*n[1][0], m[0][0]*n[0][1] + m[0][1]*n[1][1]},
		{m[1][0]*n[0][0] + m[1][1]*n[1][0], m[1][0]*n[0][1] + m[1][1]*n[1][1]},
	}
}

// MulVec returns the product m*v with v treated as a column vector.
func (m Matrix2) MulVec(v r2.Point) r2.Point {
	return r2.Point{
		X: m[0][0]*v.X + m[0][1]*v.Y,
		Y: m[1][0]*v.X + m[1][1]*v.Y,
	}
}

// Inverse returns the inverse of m, or ErrSingularMatrix when the determinant is zero.
func (m Matrix2) Inverse() (Matrix2, error) {
	det := m.Det()
	if det == 0 || math.IsNaN(det) {
		return Matrix2{}, ErrSingularMatrix
	}
	return Matrix2{
		{m[1][1] / det, -m[0][1] / det},
		{-m[1][0] / det, m[0][0] / det},
	}, nil
}

// Matrix2AlmostEqual reports whether every element of a is within epsilon of the matching element of b.
func Matrix2AlmostEqual(a, b Matrix2, epsilon float64) bool {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !scalar.EqualWithinAbs(a[i][j], b[i][j], epsilon) {
				return false
			}
		}
	}
	return true
}
