package costmap

import (
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/maneuver/motionplan/maneuver"
)

var _ maneuver.CostOracle = (*Grid)(nil)

func countCells(g *Grid, cost uint8) int {
	count := 0
	g.View(func(grid MutableGrid) {
		grid.Iterate(func(_, _ int, c uint8) bool {
			if c == cost {
				count++
			}
			return true
		})
	})
	return count
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(10, 5, 0.1, r2.Point{X: -0.5, Y: -0.25})
	test.That(t, err, test.ShouldBeNil)
	w, h := g.Size()
	test.That(t, w, test.ShouldEqual, 10)
	test.That(t, h, test.ShouldEqual, 5)
	test.That(t, g.Resolution(), test.ShouldEqual, 0.1)
	test.That(t, g.Origin(), test.ShouldResemble, r2.Point{X: -0.5, Y: -0.25})
	test.That(t, countCells(g, FreeSpace), test.ShouldEqual, 50)

	_, err = NewGrid(0, 5, 0.1, r2.Point{})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewGrid(10, 5, 0, r2.Point{})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewGrid(10, 5, math.NaN(), r2.Point{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestWorldToMap(t *testing.T) {
	g, err := NewGrid(10, 5, 0.1, r2.Point{X: -0.5, Y: -0.25})
	test.That(t, err, test.ShouldBeNil)

	mx, my, ok := g.WorldToMap(0, 0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, mx, test.ShouldEqual, 5)
	test.That(t, my, test.ShouldEqual, 2)

	wx, wy := g.MapToWorld(5, 2)
	test.That(t, wx, test.ShouldAlmostEqual, 0.05)
	test.That(t, wy, test.ShouldAlmostEqual, 0.0)

	for _, pt := range []r2.Point{{X: -0.6, Y: 0}, {X: 0.5, Y: 0}, {X: 0, Y: 0.3}, {X: 0, Y: -0.3}, {X: math.NaN(), Y: 0}} {
		_, _, ok := g.WorldToMap(pt.X, pt.Y)
		test.That(t, ok, test.ShouldBeFalse)
	}
}

func TestSetCost(t *testing.T) {
	g, err := NewGrid(4, 4, 1, r2.Point{})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, g.SetCost(1, 2, 42), test.ShouldBeNil)
	test.That(t, g.Cost(1, 2), test.ShouldEqual, uint8(42))
	test.That(t, g.Cost(2, 1), test.ShouldEqual, FreeSpace)

	test.That(t, g.SetCost(4, 0, 1), test.ShouldNotBeNil)
	test.That(t, g.Cost(-1, 0), test.ShouldEqual, NoInformation)

	g.View(func(grid MutableGrid) {
		test.That(t, grid.SetCost(0, 0, 1), test.ShouldNotBeNil)
	})
	test.That(t, g.Cost(0, 0), test.ShouldEqual, FreeSpace)
}

func TestAddObstacle(t *testing.T) {
	g, err := NewGrid(20, 20, 0.1, r2.Point{})
	test.That(t, err, test.ShouldBeNil)

	g.AddObstacle(1.2, 1.15, 1.0, 1.0)
	test.That(t, countCells(g, LethalObstacle), test.ShouldEqual, 4)
	for _, cell := range [][2]int{{10, 10}, {11, 10}, {10, 11}, {11, 11}} {
		test.That(t, g.Cost(cell[0], cell[1]), test.ShouldEqual, LethalObstacle)
	}

	// Clipped to the grid.
	g.AddObstacle(-1, -1, 0.05, 0.05)
	test.That(t, countCells(g, LethalObstacle), test.ShouldEqual, 5)
	test.That(t, g.Cost(0, 0), test.ShouldEqual, LethalObstacle)

	g.AddObstacle(5, 5, 6, 6)
	test.That(t, countCells(g, LethalObstacle), test.ShouldEqual, 5)
}

func TestInflate(t *testing.T) {
	g, err := NewGrid(20, 20, 0.1, r2.Point{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.SetCost(10, 10, LethalObstacle), test.ShouldBeNil)
	test.That(t, g.SetCost(12, 10, 100), test.ShouldBeNil)

	g.Inflate(0.15)
	test.That(t, countCells(g, LethalObstacle), test.ShouldEqual, 1)
	test.That(t, countCells(g, InscribedInflatedObstacle), test.ShouldEqual, 8)
	test.That(t, g.Cost(11, 11), test.ShouldEqual, InscribedInflatedObstacle)
	test.That(t, g.Cost(12, 10), test.ShouldEqual, uint8(100))
}

// The footprint corners sit away from cell boundaries: columns 13 and 26, rows 15 and 24.
var testFootprint = []r2.Point{
	{X: 0.31, Y: 0.21},
	{X: 0.31, Y: -0.21},
	{X: -0.31, Y: -0.21},
	{X: -0.31, Y: 0.21},
}

func newFootprintGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(40, 40, 0.05, r2.Point{X: -1, Y: -1})
	test.That(t, err, test.ShouldBeNil)
	return g
}

func TestFootprintCost(t *testing.T) {
	t.Run("free", func(t *testing.T) {
		g := newFootprintGrid(t)
		test.That(t, g.FootprintCost(0, 0, 0, testFootprint), test.ShouldEqual, 0.0)
	})

	t.Run("highest outline cost", func(t *testing.T) {
		g := newFootprintGrid(t)
		test.That(t, g.SetCost(26, 20, 100), test.ShouldBeNil)
		test.That(t, g.SetCost(13, 18, 40), test.ShouldBeNil)
		// Only the outline is checked.
		test.That(t, g.SetCost(20, 20, LethalObstacle), test.ShouldBeNil)
		test.That(t, g.FootprintCost(0, 0, 0, testFootprint), test.ShouldEqual, 100.0)
	})

	t.Run("lethal", func(t *testing.T) {
		g := newFootprintGrid(t)
		test.That(t, g.SetCost(13, 15, LethalObstacle), test.ShouldBeNil)
		test.That(t, g.FootprintCost(0, 0, 0, testFootprint), test.ShouldEqual, CollisionCost)
	})

	t.Run("inscribed", func(t *testing.T) {
		g := newFootprintGrid(t)
		test.That(t, g.SetCost(18, 24, InscribedInflatedObstacle), test.ShouldBeNil)
		test.That(t, g.FootprintCost(0, 0, 0, testFootprint), test.ShouldEqual, CollisionCost)
	})

	t.Run("unknown", func(t *testing.T) {
		g := newFootprintGrid(t)
		test.That(t, g.SetCost(20, 24, NoInformation), test.ShouldBeNil)
		test.That(t, g.FootprintCost(0, 0, 0, testFootprint), test.ShouldEqual, UnknownCost)
	})

	t.Run("off the grid", func(t *testing.T) {
		g := newFootprintGrid(t)
		test.That(t, g.FootprintCost(0.9, 0, 0, testFootprint), test.ShouldEqual, CollisionCost)
		test.That(t, g.FootprintCost(5, 5, 0, testFootprint), test.ShouldEqual, CollisionCost)
	})

	t.Run("rotated", func(t *testing.T) {
		g := newFootprintGrid(t)
		test.That(t, g.SetCost(26, 20, LethalObstacle), test.ShouldBeNil)
		test.That(t, g.FootprintCost(0, 0, 0, testFootprint), test.ShouldEqual, CollisionCost)
		// Turned a quarter, the footprint is narrower along x and misses the cell.
		test.That(t, g.FootprintCost(0, 0, math.Pi/2, testFootprint), test.ShouldEqual, 0.0)

		test.That(t, g.SetCost(20, 26, LethalObstacle), test.ShouldBeNil)
		test.That(t, g.FootprintCost(0, 0, math.Pi/2, testFootprint), test.ShouldEqual, CollisionCost)
	})

	t.Run("degenerate footprint checks the center cell", func(t *testing.T) {
		g := newFootprintGrid(t)
		test.That(t, g.SetCost(20, 20, 7), test.ShouldBeNil)
		test.That(t, g.FootprintCost(0.01, 0.01, 0, nil), test.ShouldEqual, 7.0)
	})
}

func TestFootprintCostConcurrentWithEdits(t *testing.T) {
	g := newFootprintGrid(t)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.FootprintCost(0, 0, float64(j)*0.1, testFootprint)
			}
		}()
	}
	for j := 0; j < 20; j++ {
		g.AddObstacle(0.8, 0.8, 0.9, 0.9)
	}
	wg.Wait()
	test.That(t, g.FootprintCost(0, 0, 0, testFootprint), test.ShouldEqual, 0.0)
}

func TestBresenham(t *testing.T) {
	test.That(t, bresenham(0, 0, 3, 1), test.ShouldResemble, [][2]int{{0, 0}, {1, 0}, {2, 1}, {3, 1}})
	test.That(t, bresenham(2, 2, 2, 2), test.ShouldResemble, [][2]int{{2, 2}})
	test.That(t, bresenham(0, 3, 0, 0), test.ShouldResemble, [][2]int{{0, 3}, {0, 2}, {0, 1}, {0, 0}})
	test.That(t, bresenham(3, 3, 0, 0), test.ShouldResemble, [][2]int{{3, 3}, {2, 2}, {1, 1}, {0, 0}})
}

func TestGridViewer(t *testing.T) {
	g, err := NewGrid(4, 3, 0.5, r2.Point{X: 1, Y: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.SetCost(0, 0, LethalObstacle), test.ShouldBeNil)

	viewer := &GridViewer{Grid: g, CellPixels: 2}
	img := viewer.Render().Image()
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 8)
	test.That(t, img.Bounds().Dy(), test.ShouldEqual, 6)

	// Row zero is drawn at the bottom of the image.
	r, gr, b, _ := img.At(1, 5).RGBA()
	test.That(t, []uint32{r, gr, b}, test.ShouldResemble, []uint32{0, 0, 0})
	r, gr, b, _ = img.At(1, 1).RGBA()
	wr, wg, wb, _ := color.White.RGBA()
	test.That(t, []uint32{r, gr, b}, test.ShouldResemble, []uint32{wr, wg, wb})

	px, py := viewer.WorldToPixel(r2.Point{X: 1, Y: 1})
	test.That(t, px, test.ShouldEqual, 0.0)
	test.That(t, py, test.ShouldEqual, 6.0)
	px, py = viewer.WorldToPixel(r2.Point{X: 2, Y: 2})
	test.That(t, px, test.ShouldEqual, 4.0)
	test.That(t, py, test.ShouldEqual, 2.0)
}
