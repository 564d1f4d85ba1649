package maneuver

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/maneuver/spatialmath"
)

type samplerPhase int

const (
	phaseStraightBefore samplerPhase = iota
	phaseTurning
	phaseStraightAfter
	phaseDone
)

// maxSamplerIterations bounds the sampling loop by the step count the curve parameters imply,
// plus slack for floating point accumulation and the terminal iteration.
func maxSamplerIterations(curve CurveParameters, goalYaw, stepSize float64) int {
	const slack = 8
	grid := stepSize / curve.SignedRadius
	bound := math.Ceil(curve.DistanceBeforeTurn/stepSize) +
		math.Ceil(curve.DistanceAfterTurn/stepSize) +
		math.Ceil(math.Abs(goalYaw/grid)) + slack
	if math.IsNaN(bound) || bound > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(bound)
}

// referenceTrajectory walks a reference point along straight, arc and straight segments in the
// frame of its start pose, one step at a time.
type referenceTrajectory struct {
	curve    CurveParameters
	goalYaw  float64
	stepSize float64
	grid     float64

	motion         r2.Point
	heading        float64
	distanceBefore float64
	distanceAfter  float64
}

func newReferenceTrajectory(curve CurveParameters, goalYaw, stepSize float64) *referenceTrajectory {
	return &referenceTrajectory{
		curve:    curve,
		goalYaw:  goalYaw,
		stepSize: stepSize,
		grid:     stepSize / curve.SignedRadius,
	}
}

// next advances one step and returns the phase that produced it. Phases are tried in order so a
// single call never skips past a segment that still has distance or angle left.
func (rt *referenceTrajectory) next() samplerPhase {
	switch {
	case rt.distanceBefore < rt.curve.DistanceBeforeTurn:
		rt.heading = 0
		rt.motion.X += rt.stepSize
		rt.distanceBefore += rt.stepSize
		return phaseStraightBefore
	case math.Abs(rt.goalYaw-rt.heading) > math.Abs(rt.grid/2):
		rt.heading += rt.grid
		sin, cos := math.Sincos(rt.heading)
		rt.motion = r2.Point{
			X: rt.curve.DistanceBeforeTurn + rt.curve.SignedRadius*sin,
			Y: rt.curve.SignedRadius * (1 - cos),
		}
		return phaseTurning
	case rt.distanceAfter < rt.curve.DistanceAfterTurn:
		rt.heading = rt.goalYaw
		sin, cos := math.Sincos(rt.heading)
		rt.motion = rt.motion.Add(r2.Point{X: cos, Y: sin}.Mul(rt.stepSize))
		rt.distanceAfter += rt.stepSize
		return phaseStraightAfter
	default:
		return phaseDone
	}
}

// SampleTrajectory drives the reference point of sel along its maneuver from start and records the
// rotation center's global pose after every step. Each pose, starting with start itself, is
// checked against oracle before it is recorded; the first colliding pose ends sampling with
// FullyFree unset.
func SampleTrajectory(
	start spatialmath.Pose2D,
	sel ReferenceSelection,
	fp *Footprint,
	stepSize float64,
	oracle CostOracle,
) (*Plan, error) {
	ref := sel.Reference
	footprint := fp.Points()
	plan := &Plan{Curve: sel.Curve, ReferencePoint: ref}

	if !sel.Curve.Feasible() {
		return nil, errors.Errorf("cannot sample an infeasible curve: %s", sel.Curve.Reason)
	}

	var jacobianInv spatialmath.Matrix2
	if !ref.OnRotationAxis() {
		var err error
		if jacobianInv, err = ref.Jacobian.Inverse(); err != nil {
			return nil, errors.Wrapf(err, "reference point %s", ref.Kind)
		}
	}

	// The center pose lives in the frame of the start reference pose, where the reference point
	// starts at the origin and the center sits behind it at -Offset.
	center := spatialmath.NewPose2D(-ref.Offset.X, -ref.Offset.Y, 0)
	toGlobal := func(c spatialmath.Pose2D) spatialmath.Pose2D {
		return spatialmath.Compose(start, spatialmath.Translate2D(c, ref.Offset))
	}

	trajectory := newReferenceTrajectory(sel.Curve, sel.Goal.Heading(), stepSize)
	maxIterations := maxSamplerIterations(sel.Curve, sel.Goal.Heading(), stepSize)
	previous := r2.Point{}
	global := toGlobal(center)
	for iteration := 0; ; iteration++ {
		if iteration > maxIterations {
			return nil, errors.Wrapf(ErrSamplerDiverged, "after %d iterations", iteration)
		}
		if inCollision(oracle, global, footprint) {
			return plan, nil
		}
		plan.Poses = append(plan.Poses, global)

		if trajectory.next() == phaseDone {
			break
		}
		velocity := trajectory.motion.Sub(previous)
		previous = trajectory.motion

		if ref.OnRotationAxis() {
			center = spatialmath.NewPose2D(
				trajectory.motion.X-ref.Offset.X,
				trajectory.motion.Y-ref.Offset.Y,
				trajectory.heading,
			)
		} else {
			// Reference velocity in the center's body frame, then through the inverse Jacobian to
			// forward speed and turn rate. Heading integrates first.
			local := spatialmath.NewRotationMatrix2(center.Theta).Transpose().MulVec(velocity)
			rates := jacobianInv.MulVec(local)
			heading := center.Theta + rates.Y
			sin, cos := math.Sincos(heading)
			center = spatialmath.NewPose2D(center.X+rates.X*cos, center.Y+rates.X*sin, heading)
		}
		global = toGlobal(center)
	}
	plan.FullyFree = true
	return plan, nil
}
