package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/maneuver/logging"
	"go.viam.com/maneuver/services/maneuverplanner"
	"go.viam.com/maneuver/utils"
)

// PlanAction is the corresponding Action for 'plan'.
func PlanAction(c *cli.Context, logger logging.Logger) error {
	scene, err := LoadScene(c.String(planFlagScene))
	if err != nil {
		return err
	}
	grid, err := scene.BuildGrid()
	if err != nil {
		return errors.Wrap(err, "building costmap")
	}
	planner, err := maneuverplanner.NewPlanner(c.String(planFlagName), &scene.Config, grid, logger)
	if err != nil {
		return err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Bool(generalFlagDebug) {
		ctx = logging.EnableDebugMode(ctx, "")
	}
	result, err := planner.MakePlan(ctx, scene.StartPose(), scene.GoalPose(), nil)
	if err != nil {
		return errors.Wrap(err, "could not plan maneuver")
	}

	if c.Bool(planFlagJSON) {
		if err := writePlanJSON(c.App.Writer, result); err != nil {
			return err
		}
	} else {
		printf(c.App.Writer, "%s", poseTable(result))
		printf(c.App.Writer, "%s", planSummary(result))
	}

	if out := c.String(planFlagPNG); out != "" {
		if err := renderPlan(grid, scene, result, c.Int(planFlagCellPixels)).SavePNG(out); err != nil {
			return errors.Wrapf(err, "writing %q", out)
		}
		logger.Infow("wrote rendering", "path", out)
	}
	if out := c.String(planFlagProfile); out != "" {
		if err := writeProfile(result, out); err != nil {
			return err
		}
		logger.Infow("wrote heading profile", "path", out)
	}
	return nil
}

func writePlanJSON(w io.Writer, result *maneuverplanner.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(result.Plan), "encoding plan")
}

// poseTable lists each planned pose with its heading in degrees.
func poseTable(result *maneuverplanner.Result) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "X", "Y", "Heading"})
	for i, pose := range result.Path {
		p := pose.Pose()
		t.AppendRow(table.Row{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.3f", p.X),
			fmt.Sprintf("%.3f", p.Y),
			fmt.Sprintf("%.1f", utils.RadToDeg(p.Heading())),
		})
	}
	return t.Render()
}

func planSummary(result *maneuverplanner.Result) string {
	kind := "arc"
	if result.Plan.Fallback {
		kind = "linear fallback"
	}
	curve := result.Plan.Curve
	summary := fmt.Sprintf("%d poses, %s, curve %s (before %.3f, after %.3f, radius %.3f), fully free: %t",
		len(result.Path), kind, curve.Type, curve.DistanceBeforeTurn, curve.DistanceAfterTurn,
		curve.SignedRadius, result.FullyFree)
	if ps, ok := computePathStats(result); ok {
		summary += fmt.Sprintf(", length %.3f m, mean step %.3f m, max step %.3f m", ps.Length, ps.MeanStep, ps.MaxStep)
	}
	return summary
}

// printf writes a formatted line to w.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
