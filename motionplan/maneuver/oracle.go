package maneuver

import (
	"github.com/golang/geo/r2"

	"go.viam.com/maneuver/spatialmath"
)

// CostOracle scores a footprint placed at a rotation-center pose. A negative cost marks the pose
// as colliding or otherwise invalid.
type CostOracle interface {
	FootprintCost(x, y, theta float64, footprint []r2.Point) float64
}

// CostOracleFunc adapts a plain function to a CostOracle.
type CostOracleFunc func(x, y, theta float64, footprint []r2.Point) float64

// FootprintCost calls f.
func (f CostOracleFunc) FootprintCost(x, y, theta float64, footprint []r2.Point) float64 {
	return f(x, y, theta, footprint)
}

// FreeSpaceOracle reports every pose as free.
var FreeSpaceOracle = CostOracleFunc(func(float64, float64, float64, []r2.Point) float64 { return 0 })

func inCollision(oracle CostOracle, pose spatialmath.Pose2D, footprint []r2.Point) bool {
	return oracle.FootprintCost(pose.X, pose.Y, pose.Theta, footprint) < 0
}
