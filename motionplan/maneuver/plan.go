// Package maneuver synthesizes short maneuvers for a car-like vehicle with a rectangular
// footprint: one constant-radius turn between two straight segments,
// sampled at fixed arc-length steps and checked against a cost oracle. When no such arc exists
// it falls back to a straight "advance until blocked" walk.
package maneuver

import (
	"go.viam.com/maneuver/logging"
	"go.viam.com/maneuver/spatialmath"
	"go.viam.com/maneuver/utils"
)

const (
	// DefaultTurningRadius is the turning radius in meters used when none is configured.
	DefaultTurningRadius = 0.8
	// DefaultMinDistFromRobot is the default clearance guard in meters.
	DefaultMinDistFromRobot = 0.10
)

// Options tunes a single planning call.
type Options struct {
	// StepSize is the arc length in meters between consecutive samples.
	StepSize float64
	// TurningRadius is the unsigned radius of the turn in meters.
	TurningRadius float64
	// MinDistFromRobot is carried for configuration parity. Planning does not consult it.
	MinDistFromRobot float64
}

func (opts Options) validate() error {
	if !utils.IsFinite(opts.StepSize) || opts.StepSize <= 0 {
		return newInvalidOptionsError("step size", opts.StepSize)
	}
	if !utils.IsFinite(opts.TurningRadius) || opts.TurningRadius <= 0 {
		return newInvalidOptionsError("turning radius", opts.TurningRadius)
	}
	return nil
}

// Plan is an ordered list of rotation-center poses in the global frame, start side first.
type Plan struct {
	Poses []spatialmath.Pose2D `json:"poses"`
	// FullyFree is unset when sampling stopped at a colliding pose before the end of the maneuver.
	FullyFree bool `json:"fully_free"`
	// Fallback is set when the poses come from the linear fallback instead of an arc.
	Fallback bool `json:"fallback"`

	Curve          CurveParameters `json:"curve"`
	ReferencePoint ReferencePoint  `json:"-"`
}

// Last returns the final pose of the plan and whether there was one.
func (p *Plan) Last() (spatialmath.Pose2D, bool) {
	if len(p.Poses) == 0 {
		return spatialmath.Pose2D{}, false
	}
	return p.Poses[len(p.Poses)-1], true
}

// PlanManeuver plans from start to goal, both in the same global frame. It fits a single arc when
// one exists and otherwise falls back to PlanLinear. Blocked or empty plans are not errors; errors
// are returned only for unusable inputs.
func PlanManeuver(
	start, goal spatialmath.Pose2D,
	fp *Footprint,
	opts Options,
	oracle CostOracle,
	logger logging.Logger,
) (*Plan, error) {
	if fp == nil {
		return nil, ErrNotInitialized
	}
	if oracle == nil {
		return nil, NewNilOracleError()
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	for _, named := range []struct {
		name string
		pose spatialmath.Pose2D
	}{{"start", start}, {"goal", goal}} {
		if !utils.IsFinite(named.pose.X) || !utils.IsFinite(named.pose.Y) || !utils.IsFinite(named.pose.Theta) {
			return nil, NewNonFinitePoseError(named.name, named.pose)
		}
	}

	sel := SelectReferencePoint(start, goal, fp, opts.TurningRadius)
	if !sel.Curve.Feasible() {
		logger.Infow("no single-arc maneuver, advancing in a straight line",
			"reason", sel.Curve.Reason, "goal_in_start_frame", sel.Goal.String())
		plan := PlanLinear(start, goal, fp, oracle)
		plan.Curve = sel.Curve
		logger.Debugw("linear plan", "poses", len(plan.Poses), "fully_free", plan.FullyFree)
		return plan, nil
	}
	if sel.Reverted {
		logger.Debugf("%s turn infeasible about the offset reference point, using rotation center", sel.Curve.Type)
	}
	logger.Debugw("curve selected",
		"type", sel.Curve.Type.String(),
		"reference", sel.Reference.Kind.String(),
		"before", sel.Curve.DistanceBeforeTurn,
		"after", sel.Curve.DistanceAfterTurn,
		"radius", sel.Curve.SignedRadius,
		"turn_deg", utils.RadToDeg(sel.Goal.Heading()),
	)

	plan, err := SampleTrajectory(start, sel, fp, opts.StepSize, oracle)
	if err != nil {
		return nil, err
	}
	if !plan.FullyFree {
		last, _ := plan.Last()
		logger.Warnw("maneuver blocked", "poses", len(plan.Poses), "last", last.String())
	}
	return plan, nil
}
