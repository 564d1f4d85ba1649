// Package cli contains all business logic needed by the CLI command.
package cli

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/maneuver/costmap"
	"go.viam.com/maneuver/referenceframe"
	"go.viam.com/maneuver/services/maneuverplanner"
	"go.viam.com/maneuver/spatialmath"
	"go.viam.com/maneuver/utils"
)

// Obstacle is an axis aligned box of lethal cells, in meters.
type Obstacle struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// MapConfig describes the costmap a scene is planned against.
type MapConfig struct {
	Width           int                         `json:"width" jsonschema:"minimum=1"`
	Height          int                         `json:"height" jsonschema:"minimum=1"`
	Resolution      float64                     `json:"resolution" jsonschema:"description=cell edge length in meters"`
	Origin          maneuverplanner.PointConfig `json:"origin"`
	Obstacles       []Obstacle                  `json:"obstacles,omitempty"`
	InflationRadius float64                     `json:"inflation_radius,omitempty"`
}

// Scene is a single planning request read from a JSON file.
type Scene struct {
	Config maneuverplanner.Config `json:"config"`
	Start  spatialmath.Pose2D     `json:"start"`
	Goal   spatialmath.Pose2D     `json:"goal"`
	Map    MapConfig              `json:"map"`

	// Degrees marks start and goal headings as degrees instead of radians.
	Degrees bool `json:"degrees,omitempty"`
	// RelativeGoal places the goal relative to the start pose.
	RelativeGoal bool `json:"relative_goal,omitempty"`
}

// LoadScene reads and decodes a scene file.
func LoadScene(path string) (*Scene, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene %q", path)
	}
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, errors.Wrapf(err, "decoding scene %q", path)
	}
	return &scene, nil
}

// BuildGrid creates the costmap the scene describes, with its obstacles drawn and inflated.
func (s *Scene) BuildGrid() (*costmap.Grid, error) {
	grid, err := costmap.NewGrid(s.Map.Width, s.Map.Height, s.Map.Resolution,
		r2.Point{X: s.Map.Origin.X, Y: s.Map.Origin.Y})
	if err != nil {
		return nil, err
	}
	for _, o := range s.Map.Obstacles {
		grid.AddObstacle(o.MinX, o.MinY, o.MaxX, o.MaxY)
	}
	if s.Map.InflationRadius > 0 {
		grid.Inflate(s.Map.InflationRadius)
	}
	return grid, nil
}

func (s *Scene) inRadians(pose spatialmath.Pose2D) spatialmath.Pose2D {
	if s.Degrees {
		pose.Theta = utils.DegToRad(pose.Theta)
	}
	return pose
}

// StartPose returns the scene start in the configured global frame.
func (s *Scene) StartPose() *referenceframe.PoseInFrame {
	return referenceframe.NewPoseInFrame(s.Config.Frame(), s.inRadians(s.Start))
}

// GoalPose returns the scene goal in the configured global frame.
func (s *Scene) GoalPose() *referenceframe.PoseInFrame {
	goal := referenceframe.NewPoseInFrame(s.Config.Frame(), s.inRadians(s.Goal))
	if s.RelativeGoal {
		return goal.Transform(s.StartPose())
	}
	return goal
}
