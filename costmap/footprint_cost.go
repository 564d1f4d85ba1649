package costmap

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/samber/lo"
)

const (
	// CollisionCost is returned for footprints that touch a lethal or inscribed cell or leave the grid.
	CollisionCost = -1.0
	// UnknownCost is returned for footprints that touch a cell with no information.
	UnknownCost = -2.0
)

// FootprintCost places the footprint, given in the body frame as a closed polygon, at the world
// pose (x, y, theta) and returns the highest cell cost along its outline. A negative result marks
// the pose as unusable.
func (g *Grid) FootprintCost(x, y, theta float64, footprint []r2.Point) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	grid := (*mutableGrid)(g)

	cx, cy, ok := g.WorldToMap(x, y)
	if !ok {
		return CollisionCost
	}
	if len(footprint) < 3 {
		return cellCost(grid.Cost(cx, cy))
	}

	sin, cos := math.Sincos(theta)
	world := lo.Map(footprint, func(p r2.Point, _ int) r2.Point {
		return r2.Point{X: x + cos*p.X - sin*p.Y, Y: y + sin*p.X + cos*p.Y}
	})

	maxCost := 0.0
	for i := range world {
		from, to := world[i], world[(i+1)%len(world)]
		x0, y0, ok0 := g.WorldToMap(from.X, from.Y)
		x1, y1, ok1 := g.WorldToMap(to.X, to.Y)
		if !ok0 || !ok1 {
			return CollisionCost
		}
		cost := lineCost(grid, x0, y0, x1, y1)
		if cost < 0 {
			return cost
		}
		maxCost = math.Max(maxCost, cost)
	}
	return maxCost
}

func cellCost(cost uint8) float64 {
	switch cost {
	case LethalObstacle, InscribedInflatedObstacle:
		return CollisionCost
	case NoInformation:
		return UnknownCost
	default:
		return float64(cost)
	}
}

// lineCost walks the cells between two cells with Bresenham's algorithm and returns the highest
// cost, or the first negative one.
func lineCost(grid *mutableGrid, x0, y0, x1, y1 int) float64 {
	maxCost := 0.0
	for _, cell := range bresenham(x0, y0, x1, y1) {
		cost := cellCost(grid.Cost(cell[0], cell[1]))
		if cost < 0 {
			return cost
		}
		maxCost = math.Max(maxCost, cost)
	}
	return maxCost
}

func bresenham(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	cells := make([][2]int, 0, max(dx, -dy)+1)
	for err := dx + dy; ; {
		cells = append(cells, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
