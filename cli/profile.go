package cli

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/maneuver/services/maneuverplanner"
	"go.viam.com/maneuver/utils"
)

// pathStats summarizes the spacing of a planned path.
type pathStats struct {
	Length   float64
	MeanStep float64
	MaxStep  float64
}

// stepLengths returns the distance between consecutive poses.
func stepLengths(result *maneuverplanner.Result) stats.Float64Data {
	steps := make(stats.Float64Data, 0, len(result.Path))
	for i := 1; i < len(result.Path); i++ {
		steps = append(steps, result.Path[i].Pose().Point().Sub(result.Path[i-1].Pose().Point()).Norm())
	}
	return steps
}

// computePathStats returns false when the path has fewer than two poses.
func computePathStats(result *maneuverplanner.Result) (pathStats, bool) {
	steps := stepLengths(result)
	if steps.Len() == 0 {
		return pathStats{}, false
	}
	length, err := stats.Sum(steps)
	if err != nil {
		return pathStats{}, false
	}
	mean, err := stats.Mean(steps)
	if err != nil {
		return pathStats{}, false
	}
	maxStep, err := stats.Max(steps)
	if err != nil {
		return pathStats{}, false
	}
	return pathStats{Length: length, MeanStep: mean, MaxStep: maxStep}, true
}

// writeProfile plots heading against distance travelled along the path.
func writeProfile(result *maneuverplanner.Result, path string) error {
	if len(result.Path) == 0 {
		return errors.New("cannot plot an empty path")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Heading profile (%d poses)", len(result.Path))
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Heading (deg)"

	pts := make(plotter.XYs, 0, len(result.Path))
	travelled := 0.0
	for i, pose := range result.Path {
		if i > 0 {
			travelled += pose.Pose().Point().Sub(result.Path[i-1].Pose().Point()).Norm()
		}
		pts = append(pts, plotter.XY{X: travelled, Y: utils.RadToDeg(pose.Pose().Heading())})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "building heading line")
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving profile %q", path)
	}
	return nil
}
