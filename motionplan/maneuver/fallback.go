package maneuver

import "go.viam.com/maneuver/spatialmath"

// FallbackStepFraction is the fraction of the start to goal displacement covered per fallback sample.
const FallbackStepFraction = 0.05

// fallbackSteps is the number of increments from start to goal. Counting in integers keeps the
// goal itself on the walk instead of losing it to accumulated rounding.
const fallbackSteps = 20

// PlanLinear walks from start toward goal in straight increments of FallbackStepFraction,
// interpolating the heading along the shorter direction. The walk stops before the first
// colliding sample, so the returned plan may be empty. FullyFree is set only if the goal itself
// was reached.
func PlanLinear(start, goal spatialmath.Pose2D, fp *Footprint, oracle CostOracle) *Plan {
	footprint := fp.Points()
	delta := goal.Point().Sub(start.Point())
	turn := spatialmath.AngleDiff(start.Theta, goal.Theta)

	plan := &Plan{Fallback: true, ReferencePoint: fp.ReferencePoint(ReferenceCenter)}
	for i := 0; i <= fallbackSteps; i++ {
		s := float64(i) * FallbackStepFraction
		position := start.Point().Add(delta.Mul(s))
		candidate := spatialmath.NewPose2D(position.X, position.Y, spatialmath.NormalizeAngle(start.Theta+s*turn))
		if inCollision(oracle, candidate, footprint) {
			return plan
		}
		plan.Poses = append(plan.Poses, candidate)
	}
	plan.FullyFree = true
	return plan
}
