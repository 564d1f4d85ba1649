package maneuver

import (
	"math"

	"go.viam.com/maneuver/spatialmath"
	"go.viam.com/maneuver/utils"
)

// CurveType names the direction of a single-arc maneuver.
type CurveType int

const (
	// CurveNone means no single arc connects start and goal.
	CurveNone CurveType = iota
	// CurveLeftTurn is a counterclockwise arc.
	CurveLeftTurn
	// CurveRightTurn is a clockwise arc.
	CurveRightTurn
)

func (c CurveType) String() string {
	switch c {
	case CurveNone:
		return "None"
	case CurveLeftTurn:
		return "LeftTurn"
	case CurveRightTurn:
		return "RightTurn"
	}
	return "Unknown"
}

// MarshalText encodes the curve type by name.
func (c CurveType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CurveParameters describes a straight-arc-straight maneuver in the frame of its start pose.
// SignedRadius is positive for left turns and negative for right turns.
type CurveParameters struct {
	Type               CurveType `json:"type"`
	DistanceBeforeTurn float64   `json:"distance_before_turn"`
	DistanceAfterTurn  float64   `json:"distance_after_turn"`
	SignedRadius       float64   `json:"signed_radius"`

	// Reason names the rule that rejected the goal when Type is CurveNone.
	Reason string `json:"reason,omitempty"`
}

// Feasible reports whether the parameters describe a maneuver.
func (c CurveParameters) Feasible() bool {
	return c.Type != CurveNone
}

func noCurve(reason string) CurveParameters {
	return CurveParameters{
		Type:               CurveNone,
		DistanceBeforeTurn: -1,
		DistanceAfterTurn:  -1,
		SignedRadius:       0,
		Reason:             reason,
	}
}

// ComputeCurveParameters decides whether goal, expressed in the frame of the start pose, can be
// reached by driving straight along +x, turning once with the given radius, and driving straight
// again along the goal heading.
func ComputeCurveParameters(goal spatialmath.Pose2D, radius float64) CurveParameters {
	yaw := goal.Heading()

	// Where the goal heading line crosses the start heading line.
	xIntersection := goal.X - goal.Y/math.Tan(yaw)
	if !utils.IsFinite(xIntersection) {
		return noCurve("goal heading is parallel to start heading")
	}
	if xIntersection <= 0 {
		return noCurve("heading lines do not intersect ahead of start")
	}
	distToIntersection := math.Hypot(goal.X-xIntersection, goal.Y)

	var curveType CurveType
	var signedRadius float64
	if goal.Y > 0 {
		if yaw < 0 || yaw > math.Pi {
			return noCurve("goal lies to the left but faces right")
		}
		curveType = CurveLeftTurn
		signedRadius = math.Abs(radius)
	} else {
		if yaw > 0 || yaw < -math.Pi {
			return noCurve("goal lies to the right but faces left")
		}
		curveType = CurveRightTurn
		signedRadius = -math.Abs(radius)
	}

	offset := signedRadius / math.Tan((math.Pi-yaw)/2)
	before := xIntersection - offset
	after := distToIntersection - offset
	if before < 0 || after < 0 || before > xIntersection {
		return noCurve("turning radius does not fit between start and goal")
	}

	return CurveParameters{
		Type:               curveType,
		DistanceBeforeTurn: before,
		DistanceAfterTurn:  after,
		SignedRadius:       signedRadius,
	}
}
