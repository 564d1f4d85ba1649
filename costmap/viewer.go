package costmap

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
)

// GridViewer renders a Grid as an image with +y pointing up.
type GridViewer struct {
	Grid       *Grid
	CellPixels int
}

// Render draws the grid into a new drawing context that callers may draw overlays on.
func (gv *GridViewer) Render() *gg.Context {
	width, height := gv.Grid.Size()
	cellPixels := max(gv.CellPixels, 1)

	dc := gg.NewContext(width*cellPixels, height*cellPixels)
	dc.SetColor(color.White)
	dc.Clear()

	gv.Grid.View(func(grid MutableGrid) {
		grid.Iterate(func(mx, my int, cost uint8) bool {
			if cost == FreeSpace {
				return true
			}
			dc.SetColor(costColor(cost))
			dc.DrawRectangle(
				float64(mx*cellPixels),
				float64((height-1-my)*cellPixels),
				float64(cellPixels),
				float64(cellPixels),
			)
			dc.Fill()
			return true
		})
	})
	return dc
}

// WorldToPixel returns the image coordinates of a world point.
func (gv *GridViewer) WorldToPixel(p r2.Point) (float64, float64) {
	_, height := gv.Grid.Size()
	scale := float64(max(gv.CellPixels, 1)) / gv.Grid.Resolution()
	origin := gv.Grid.Origin()
	return (p.X - origin.X) * scale, float64(height*max(gv.CellPixels, 1)) - (p.Y-origin.Y)*scale
}

func costColor(cost uint8) color.Color {
	switch cost {
	case LethalObstacle:
		return color.Black
	case InscribedInflatedObstacle:
		return color.RGBA{96, 96, 96, 255}
	case NoInformation:
		return color.RGBA{0, 0, 160, 255}
	default:
		shade := 255 - cost/2
		return color.RGBA{255, shade, shade, 255}
	}
}
