package maneuver

import (
	"github.com/pkg/errors"

	"go.viam.com/maneuver/spatialmath"
)

var (
	// ErrNotInitialized is returned when planning is requested without a valid footprint.
	ErrNotInitialized = errors.New("maneuver planner is not initialized")

	// ErrInvalidFootprint is wrapped by every footprint construction failure.
	ErrInvalidFootprint = errors.New("invalid footprint")

	// ErrSamplerDiverged is returned when the trajectory sampler exceeds the number of steps its
	// curve parameters allow for.
	ErrSamplerDiverged = errors.New("trajectory sampler did not terminate")
)

func newInvalidFootprintError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidFootprint, format, args...)
}

func newInvalidOptionsError(field string, value float64) error {
	return errors.Errorf("%s must be a positive finite number, got %v", field, value)
}

// NewNilOracleError is returned when no cost oracle is supplied.
func NewNilOracleError() error {
	return errors.New("cost oracle must not be nil")
}

// NewNonFinitePoseError is returned when a start or goal pose has a NaN or infinite component.
func NewNonFinitePoseError(name string, pose spatialmath.Pose2D) error {
	return errors.Errorf("%s pose must be finite, got %v", name, pose)
}
