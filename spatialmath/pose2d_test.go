package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestNormalizeAngle(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"pi stays pi", math.Pi, math.Pi},
		{"minus pi wraps to pi", -math.Pi, math.Pi},
		{"three pi", 3 * math.Pi, math.Pi},
		{"just past pi", math.Pi + 0.1, -math.Pi + 0.1},
		{"negative quarter", -math.Pi / 4, -math.Pi / 4},
		{"many turns", 10*math.Pi + 0.5, 0.5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, NormalizeAngle(tc.in), test.ShouldAlmostEqual, tc.expected, 1e-9)
		})
	}
}

func TestAngleDiff(t *testing.T) {
	test.That(t, AngleDiff(0.1, -0.1), test.ShouldAlmostEqual, -0.2)
	test.That(t, AngleDiff(math.Pi-0.1, -math.Pi+0.1), test.ShouldAlmostEqual, 0.2)
	test.That(t, AngleDiff(2*math.Pi, 0), test.ShouldAlmostEqual, 0)
}

func TestRotateTranslate(t *testing.T) {
	p := NewPose2D(1, 0, 0)

	rotated := Rotate2D(p, math.Pi/2)
	test.That(t, rotated.X, test.ShouldAlmostEqual, 0)
	test.That(t, rotated.Y, test.ShouldAlmostEqual, 1)
	test.That(t, rotated.Theta, test.ShouldAlmostEqual, math.Pi/2)

	translated := Translate2D(rotated, r2.Point{X: 2, Y: -1})
	test.That(t, translated.X, test.ShouldAlmostEqual, 2)
	test.That(t, translated.Y, test.ShouldAlmostEqual, 0)
	test.That(t, translated.Theta, test.ShouldAlmostEqual, math.Pi/2)

	// translation never touches the heading, even an unwrapped one
	test.That(t, Translate2D(NewPose2D(0, 0, 7), r2.Point{X: 1}).Theta, test.ShouldEqual, 7.)
}

func TestTransformRoundTrip(t *testing.T) {
	poses := []Pose2D{
		NewZeroPose2D(),
		NewPose2D(1.5, -2.25, 0.3),
		NewPose2D(-4, 3, -2.9),
		NewPose2D(0.01, 100, math.Pi),
		NewPose2D(7, 7, 12.5),
	}
	offsets := []struct {
		v     r2.Point
		theta float64
	}{
		{r2.Point{}, 0},
		{r2.Point{X: 1, Y: 2}, math.Pi / 3},
		{r2.Point{X: -3.5, Y: 0.25}, -2.2},
		{r2.Point{X: 10, Y: -10}, math.Pi},
	}
	for _, p := range poses {
		for _, o := range offsets {
			forward := Rotate2D(Translate2D(p, o.v), -o.theta)
			back := Translate2D(Rotate2D(forward, o.theta), o.v.Mul(-1))
			test.That(t, Pose2DAlmostEqual(p, back, 1e-9), test.ShouldBeTrue)
		}
	}
}

func TestComposeAndPoseBetween(t *testing.T) {
	start := NewPose2D(1, 2, math.Pi/2)
	goal := NewPose2D(0, 4, math.Pi)

	local := PoseBetween(start, goal)
	test.That(t, local.X, test.ShouldAlmostEqual, 2)
	test.That(t, local.Y, test.ShouldAlmostEqual, 1)
	test.That(t, local.Theta, test.ShouldAlmostEqual, math.Pi/2)

	test.That(t, Pose2DAlmostEqual(Compose(start, local), goal, 1e-9), test.ShouldBeTrue)

	// composing is associative for a full change of frame
	a := NewPose2D(-1, 0.5, 0.4)
	b := NewPose2D(2, -3, -1.1)
	c := NewPose2D(0.3, 0.3, 2.8)
	test.That(t, Pose2DAlmostEqual(Compose(Compose(a, b), c), Compose(a, Compose(b, c)), 1e-9), test.ShouldBeTrue)
}

func TestPose2DAlmostEqual(t *testing.T) {
	test.That(t, Pose2DAlmostEqual(NewPose2D(0, 0, math.Pi), NewPose2D(0, 0, -math.Pi), 1e-9), test.ShouldBeTrue)
	test.That(t, Pose2DAlmostEqual(NewPose2D(0, 0, 0), NewPose2D(0, 1e-3, 0), 1e-6), test.ShouldBeFalse)
	test.That(t, NewPose2D(1, 2, 3).Point(), test.ShouldResemble, r2.Point{X: 1, Y: 2})
}
