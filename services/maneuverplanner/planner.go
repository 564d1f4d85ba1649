// Package maneuverplanner adapts the maneuver core to a host navigation framework: it owns the
// configuration, the footprint and the costmap, and accepts framed goal poses.
package maneuverplanner

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/maneuver/logging"
	"go.viam.com/maneuver/motionplan/maneuver"
	"go.viam.com/maneuver/referenceframe"
	"go.viam.com/maneuver/spatialmath"
)

// Costmap is what the planner needs from the host's costmap.
type Costmap interface {
	maneuver.CostOracle
	Resolution() float64
}

// PlanningContext carries state between planning calls. It is owned by the caller; callers that
// share one across goroutines must synchronize access themselves.
type PlanningContext struct {
	// LastGoal is the goal of the most recent successful call.
	LastGoal *referenceframe.PoseInFrame
}

// Result is the outcome of a successful MakePlan call.
type Result struct {
	// Path holds the planned rotation-center poses in the global frame, start side first.
	Path []*referenceframe.PoseInFrame
	// FullyFree is unset when the path stops short at an obstacle.
	FullyFree bool
	Plan      *maneuver.Plan
}

// Planner is the host-facing maneuver planner. The zero value is uninitialized and refuses to plan.
type Planner struct {
	name      string
	conf      Config
	footprint *maneuver.Footprint
	costmap   Costmap
	opts      maneuver.Options
	logger    logging.Logger
	// clock stamps planned poses.
	clock clock.Clock
}

// NewPlanner creates and initializes a planner.
func NewPlanner(name string, conf *Config, costmap Costmap, logger logging.Logger) (*Planner, error) {
	p := &Planner{}
	if err := p.Initialize(name, conf, costmap, logger); err != nil {
		return nil, err
	}
	return p, nil
}

// Initialize validates conf and builds the footprint. On failure the planner is left
// uninitialized. Initializing twice is a no-op.
func (p *Planner) Initialize(name string, conf *Config, costmap Costmap, logger logging.Logger) error {
	if p.Initialized() {
		p.logger.Warnw("planner already initialized, ignoring", "name", name)
		return nil
	}
	if conf == nil {
		return errors.New("maneuver planner config is nil")
	}
	if costmap == nil {
		return errors.New("maneuver planner needs a costmap")
	}
	if logger == nil {
		return errors.New("maneuver planner needs a logger")
	}
	if err := conf.Validate(name); err != nil {
		return err
	}
	footprint, err := maneuver.NewFootprint(conf.FootprintPoints())
	if err != nil {
		return err
	}
	opts := conf.Options(costmap.Resolution())
	if !(opts.StepSize > 0) {
		return errors.Errorf("step size must be positive, got %v from the costmap resolution", opts.StepSize)
	}

	p.name = name
	p.conf = *conf
	p.costmap = costmap
	p.opts = opts
	p.logger = logger.Sublogger(name)
	p.footprint = footprint
	if p.clock == nil {
		p.clock = clock.New()
	}
	p.logger.Infow("initialized", "config", conf.String())
	return nil
}

// Initialized reports whether Initialize has succeeded.
func (p *Planner) Initialized() bool {
	return p.footprint != nil
}

// Name returns the name the planner was initialized with.
func (p *Planner) Name() string {
	return p.name
}

// MakePlan plans from start to goal. The goal must be in the configured global frame. When the
// planner is configured to chain goals and pctx holds a previous goal, that goal replaces start.
// A blocked or empty path is still a successful plan; errors mean no plan was attempted. ctx only
// controls debug logging.
func (p *Planner) MakePlan(
	ctx context.Context,
	start, goal *referenceframe.PoseInFrame,
	pctx *PlanningContext,
) (*Result, error) {
	if !p.Initialized() {
		return nil, maneuver.ErrNotInitialized
	}
	if goal == nil {
		return nil, referenceframe.NewMissingPoseError("goal")
	}
	frame := p.conf.Frame()
	if goal.FrameName() != frame {
		p.logger.Errorw("rejecting goal", "expected_frame", frame, "goal_frame", goal.FrameName())
		return nil, referenceframe.NewFrameMismatchError(frame, goal.FrameName())
	}

	if p.conf.UseLastGoalAsStart && pctx != nil && pctx.LastGoal != nil {
		p.logger.CDebugw(ctx, "starting from previous goal", "previous_goal", pctx.LastGoal.String())
		start = pctx.LastGoal
	}
	if start == nil {
		return nil, referenceframe.NewMissingPoseError("start")
	}
	if start.FrameName() != frame {
		return nil, referenceframe.NewFrameMismatchError(frame, start.FrameName())
	}

	p.logger.CDebugw(ctx, "planning", "start", start.String(), "goal", goal.String())
	plan, err := maneuver.PlanManeuver(start.Pose(), goal.Pose(), p.footprint, p.opts, p.costmap, p.logger)
	if err != nil {
		return nil, err
	}
	if pctx != nil {
		pctx.LastGoal = goal
	}

	stamped := referenceframe.NewStampedPoseInFrame(frame, p.clock.Now(), spatialmath.Pose2D{})
	path := lo.Map(plan.Poses, func(pose spatialmath.Pose2D, _ int) *referenceframe.PoseInFrame {
		return stamped.WithPose(pose)
	})
	p.logger.CDebugw(ctx, "planned", "poses", len(path), "fully_free", plan.FullyFree, "fallback", plan.Fallback)
	return &Result{Path: path, FullyFree: plan.FullyFree, Plan: plan}, nil
}
