package spatialmath

import (
	"math"
)

// NormalizeAngle wraps theta into the half-open interval (-pi, pi].
func NormalizeAngle(theta float64) float64 {
	wrapped := math.Remainder(theta, 2*math.Pi)
	if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// AngleDiff returns the signed shortest rotation taking a onto b, in (-pi, pi].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}
