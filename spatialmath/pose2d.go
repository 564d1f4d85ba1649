// Package spatialmath defines the planar poses, vectors and fixed-size matrices used by the maneuver planner.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats/scalar"
)

// Pose2D is a position on the plane plus a heading in radians measured counterclockwise from +x.
// Headings may hold any real value; they are wrapped with NormalizeAngle before being compared.
type Pose2D struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// NewPose2D creates a Pose2D from its components.
func NewPose2D(x, y, theta float64) Pose2D {
	return Pose2D{X: x, Y: y, Theta: theta}
}

// NewZeroPose2D returns a pose at the origin facing +x.
func NewZeroPose2D() Pose2D {
	return Pose2D{}
}

// Point returns the position of the pose.
func (p Pose2D) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Heading returns the pose heading wrapped to (-pi, pi].
func (p Pose2D) Heading() float64 {
	return NormalizeAngle(p.Theta)
}

func (p Pose2D) String() string {
	return fmt.Sprintf("{X:%.4f Y:%.4f Theta:%.4f}", p.X, p.Y, p.Theta)
}

// Rotate2D rotates the position of p about the origin by theta and adds theta to its heading.
func Rotate2D(p Pose2D, theta float64) Pose2D {
	sin, cos := math.Sincos(theta)
	return Pose2D{
		X:     cos*p.X - sin*p.Y,
		Y:     sin*p.X + cos*p.Y,
		Theta: NormalizeAngle(p.Theta + theta),
	}
}

// Translate2D offsets the position of p by v. The heading is unchanged.
func Translate2D(p Pose2D, v r2.Point) Pose2D {
	return Pose2D{X: p.X + v.X, Y: p.Y + v.Y, Theta: p.Theta}
}

// Compose expresses child, given in the frame of parent, in the frame parent is expressed in.
func Compose(parent, child Pose2D) Pose2D {
	return Translate2D(Rotate2D(child, parent.Theta), parent.Point())
}

// PoseBetween expresses to in the frame anchored at from. It is the inverse of Compose:
// Compose(from, PoseBetween(from, to)) == to.
func PoseBetween(from, to Pose2D) Pose2D {
	return Rotate2D(Translate2D(to, from.Point().Mul(-1)), -from.Theta)
}

// Pose2DAlmostEqual reports whether both poses lie within epsilon of one another in position and wrapped heading.
func Pose2DAlmostEqual(a, b Pose2D, epsilon float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, epsilon) &&
		scalar.EqualWithinAbs(a.Y, b.Y, epsilon) &&
		scalar.EqualWithinAbs(AngleDiff(a.Theta, b.Theta), 0, epsilon)
}
