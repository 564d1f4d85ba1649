package maneuverplanner

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/maneuver/motionplan/maneuver"
	"go.viam.com/maneuver/referenceframe"
)

// PointConfig is a footprint corner in meters, in the body frame of the vehicle.
type PointConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config describes how to configure the planner. Unset optional fields take their defaults when
// the planner is initialized.
type Config struct {
	// StepSize defaults to the resolution of the costmap.
	StepSize           *float64      `json:"step_size,omitempty"`
	MinDistFromRobot   *float64      `json:"min_dist_from_robot,omitempty"`
	TurningRadius      *float64      `json:"turning_radius,omitempty"`
	UseLastGoalAsStart bool          `json:"use_last_goal_as_start,omitempty"`
	GlobalFrame        string        `json:"global_frame,omitempty"`
	Footprint          []PointConfig `json:"footprint"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	var err error
	if len(conf.Footprint) == 0 {
		err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError(path, "footprint"))
	}
	positive := func(name string, value *float64) {
		if value != nil && !(*value > 0) {
			err = multierr.Append(err, utils.NewConfigValidationError(path,
				errors.Errorf("%q must be positive, got %v", name, *value)))
		}
	}
	positive("step_size", conf.StepSize)
	positive("turning_radius", conf.TurningRadius)
	if conf.MinDistFromRobot != nil && *conf.MinDistFromRobot < 0 {
		err = multierr.Append(err, utils.NewConfigValidationError(path,
			errors.Errorf("%q must not be negative, got %v", "min_dist_from_robot", *conf.MinDistFromRobot)))
	}
	return err
}

// NewConfigFromAttributes decodes a raw attribute map, as handed over by a host framework, into a Config.
func NewConfigFromAttributes(attributes map[string]interface{}) (*Config, error) {
	var conf Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      &conf,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "decoding maneuver planner attributes")
	}
	return &conf, nil
}

// FootprintPoints returns the configured corners as planar points.
func (conf *Config) FootprintPoints() []r2.Point {
	return lo.Map(conf.Footprint, func(p PointConfig, _ int) r2.Point {
		return r2.Point{X: p.X, Y: p.Y}
	})
}

// Options resolves the configured planning options, using resolution as the default step size.
func (conf *Config) Options(resolution float64) maneuver.Options {
	return maneuver.Options{
		StepSize:         lo.FromPtrOr(conf.StepSize, resolution),
		TurningRadius:    lo.FromPtrOr(conf.TurningRadius, maneuver.DefaultTurningRadius),
		MinDistFromRobot: lo.FromPtrOr(conf.MinDistFromRobot, maneuver.DefaultMinDistFromRobot),
	}
}

// Frame returns the configured global frame, or referenceframe.World if none is set.
func (conf *Config) Frame() string {
	return lo.Ternary(conf.GlobalFrame == "", referenceframe.World, conf.GlobalFrame)
}

func (conf *Config) String() string {
	return fmt.Sprintf("footprint=%v options=%+v frame=%s last_goal_as_start=%t",
		conf.Footprint, conf.Options(0), conf.Frame(), conf.UseLastGoalAsStart)
}
