package maneuver

import (
	"github.com/golang/geo/r2"

	"go.viam.com/maneuver/spatialmath"
)

// ReferencePointKind names a point on the footprint that an arc can be fitted about.
type ReferencePointKind int

const (
	// ReferenceCenter is the rotation center.
	ReferenceCenter ReferencePointKind = iota
	ReferenceTopLeft
	ReferenceTopRight
	ReferenceBottomLeft
	ReferenceBottomRight
	// ReferenceLeftSide sits just ahead of the rotation axis on the left edge.
	ReferenceLeftSide
	// ReferenceRightSide sits just ahead of the rotation axis on the right edge.
	ReferenceRightSide
)

func (k ReferencePointKind) String() string {
	switch k {
	case ReferenceCenter:
		return "Center"
	case ReferenceTopLeft:
		return "TopLeft"
	case ReferenceTopRight:
		return "TopRight"
	case ReferenceBottomLeft:
		return "BottomLeft"
	case ReferenceBottomRight:
		return "BottomRight"
	case ReferenceLeftSide:
		return "LeftSide"
	case ReferenceRightSide:
		return "RightSide"
	}
	return "Unknown"
}

// ReferencePoint is a fixed body-frame offset from the rotation center together with the steering
// Jacobian that maps its (forward, lateral) velocity to the center's (forward, angular) velocity.
type ReferencePoint struct {
	Kind     ReferencePointKind
	Offset   r2.Point
	Jacobian spatialmath.Matrix2
}

func newReferencePoint(kind ReferencePointKind, offset r2.Point) ReferencePoint {
	return ReferencePoint{
		Kind:     kind,
		Offset:   offset,
		Jacobian: spatialmath.NewMatrix2(1, -offset.Y, 0, offset.X),
	}
}

// OnRotationAxis reports whether the point has no forward offset, in which case its Jacobian is
// singular and its motion is copied to the center directly.
func (r ReferencePoint) OnRotationAxis() bool {
	return r.Offset.X == 0
}

// Anchor returns the pose of the reference point when the rotation center is at center. The
// heading is the center's heading.
func (r ReferencePoint) Anchor(center spatialmath.Pose2D) spatialmath.Pose2D {
	local := spatialmath.NewPose2D(r.Offset.X, r.Offset.Y, 0)
	return spatialmath.Translate2D(spatialmath.Rotate2D(local, center.Theta), center.Point())
}

// ReferenceSelection is the outcome of SelectReferencePoint. Goal is the goal reference pose
// expressed in the frame of the start reference pose, and Curve is solved against it.
type ReferenceSelection struct {
	Reference ReferencePoint
	Curve     CurveParameters
	Goal      spatialmath.Pose2D
	// Reverted is set when a candidate was tried and rejected in favor of the center.
	Reverted bool
}

// SelectReferencePoint solves the maneuver about the rotation center, then retries it about a
// turn-dependent candidate: the top right corner for left turns, the right side point for right
// turns. The candidate is kept only if its own solve is feasible. If the center solve is
// infeasible, the returned Curve is CurveNone and the caller should fall back.
func SelectReferencePoint(start, goal spatialmath.Pose2D, fp *Footprint, radius float64) ReferenceSelection {
	center := fp.ReferencePoint(ReferenceCenter)
	centerGoal := spatialmath.PoseBetween(start, goal)
	centerCurve := ComputeCurveParameters(centerGoal, radius)
	if !centerCurve.Feasible() {
		return ReferenceSelection{Reference: center, Curve: centerCurve, Goal: centerGoal}
	}

	kind := ReferenceTopRight
	if centerCurve.Type == CurveRightTurn {
		kind = ReferenceRightSide
	}
	candidate := fp.ReferencePoint(kind)
	candidateGoal := spatialmath.PoseBetween(candidate.Anchor(start), candidate.Anchor(goal))
	candidateCurve := ComputeCurveParameters(candidateGoal, radius)
	if !candidateCurve.Feasible() {
		return ReferenceSelection{Reference: center, Curve: centerCurve, Goal: centerGoal, Reverted: true}
	}
	return ReferenceSelection{Reference: candidate, Curve: candidateCurve, Goal: candidateGoal}
}
