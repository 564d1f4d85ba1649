package cli

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"

	"go.viam.com/maneuver/costmap"
	"go.viam.com/maneuver/services/maneuverplanner"
	"go.viam.com/maneuver/spatialmath"
)

var (
	pathColor      = color.RGBA{0, 128, 255, 255}
	footprintColor = color.RGBA{0, 160, 0, 255}
	goalColor      = color.RGBA{220, 0, 0, 255}
)

// footprintEvery is how many poses apart footprint outlines are drawn.
const footprintEvery = 10

// renderPlan draws the costmap with the planned path on top. Footprint outlines are drawn at the
// start, at regular intervals and at the end of the path; the goal is drawn as a red outline.
func renderPlan(grid *costmap.Grid, scene *Scene, result *maneuverplanner.Result, cellPixels int) *gg.Context {
	viewer := &costmap.GridViewer{Grid: grid, CellPixels: cellPixels}
	dc := viewer.Render()
	points := scene.Config.FootprintPoints()

	dc.SetColor(pathColor)
	dc.SetLineWidth(2)
	for i, pose := range result.Path {
		x, y := viewer.WorldToPixel(pose.Pose().Point())
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	dc.SetColor(footprintColor)
	dc.SetLineWidth(1)
	for i, pose := range result.Path {
		if i%footprintEvery == 0 || i == len(result.Path)-1 {
			drawFootprint(dc, viewer, pose.Pose(), points)
		}
	}

	dc.SetColor(goalColor)
	drawFootprint(dc, viewer, scene.Goal, points)
	return dc
}

func drawFootprint(dc *gg.Context, viewer *costmap.GridViewer, pose spatialmath.Pose2D, points []r2.Point) {
	for i, p := range points {
		x, y := viewer.WorldToPixel(spatialmath.Compose(pose, spatialmath.NewPose2D(p.X, p.Y, 0)).Point())
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.Stroke()
}
