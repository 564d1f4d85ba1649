// Package costmap provides an occupancy grid that scores vehicle footprints for the maneuver planner.
package costmap

import (
	"math"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/maneuver/utils"
)

// Cell costs. Values between FreeSpace and InscribedInflatedObstacle are traversable with
// increasing cost.
const (
	FreeSpace                 uint8 = 0
	InscribedInflatedObstacle uint8 = 253
	LethalObstacle            uint8 = 254
	NoInformation             uint8 = 255
)

// NewGrid creates a width by height grid of free cells, each resolution meters square, whose
// lower left corner sits at origin in the world frame.
func NewGrid(width, height int, resolution float64, origin r2.Point) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	if !utils.IsFinite(resolution, origin.X, origin.Y) || resolution <= 0 {
		return nil, errors.Errorf("grid resolution must be positive and finite, got %v", resolution)
	}
	return &Grid{
		width:      width,
		height:     height,
		resolution: resolution,
		origin:     origin,
		cells:      make([]uint8, width*height),
	}, nil
}

// Grid is a fixed size occupancy grid. It is safe for concurrent use.
type Grid struct {
	mu         sync.RWMutex
	width      int
	height     int
	resolution float64
	origin     r2.Point
	cells      []uint8
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// Resolution returns the edge length of a cell in meters.
func (g *Grid) Resolution() float64 {
	return g.resolution
}

// Origin returns the world position of the lower left corner of the grid.
func (g *Grid) Origin() r2.Point {
	return g.origin
}

// WorldToMap returns the cell containing the world point, and false if it lies outside the grid.
func (g *Grid) WorldToMap(wx, wy float64) (int, int, bool) {
	fx := math.Floor((wx - g.origin.X) / g.resolution)
	fy := math.Floor((wy - g.origin.Y) / g.resolution)
	if !(fx >= 0 && fy >= 0 && fx < float64(g.width) && fy < float64(g.height)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// MapToWorld returns the world position of the center of a cell.
func (g *Grid) MapToWorld(mx, my int) (float64, float64) {
	return g.origin.X + (float64(mx)+0.5)*g.resolution, g.origin.Y + (float64(my)+0.5)*g.resolution
}

// Cost returns the cost of a cell. Cells outside the grid have no information.
func (g *Grid) Cost(mx, my int) uint8 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return (*mutableGrid)(g).Cost(mx, my)
}

// SetCost sets the cost of a single cell.
func (g *Grid) SetCost(mx, my int, cost uint8) error {
	var err error
	g.Mutate(func(grid MutableGrid) {
		err = grid.SetCost(mx, my, cost)
	})
	return err
}

// AddObstacle marks every cell overlapping the world rectangle as lethal. Parts of the rectangle
// outside the grid are ignored.
func (g *Grid) AddObstacle(minX, minY, maxX, maxY float64) {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	clamp := func(v float64, size int) int {
		return int(math.Max(0, math.Min(float64(size-1), v)))
	}
	loX := math.Floor((minX - g.origin.X) / g.resolution)
	hiX := math.Floor((maxX - g.origin.X) / g.resolution)
	loY := math.Floor((minY - g.origin.Y) / g.resolution)
	hiY := math.Floor((maxY - g.origin.Y) / g.resolution)
	if hiX < 0 || hiY < 0 || loX >= float64(g.width) || loY >= float64(g.height) {
		return
	}

	g.Mutate(func(grid MutableGrid) {
		for mx := clamp(loX, g.width); mx <= clamp(hiX, g.width); mx++ {
			for my := clamp(loY, g.height); my <= clamp(hiY, g.height); my++ {
				//nolint:errcheck
				grid.SetCost(mx, my, LethalObstacle)
			}
		}
	})
}

// Inflate marks free cells within radius meters of a lethal cell as inscribed.
func (g *Grid) Inflate(radius float64) {
	reach := int(math.Ceil(radius / g.resolution))
	g.Mutate(func(grid MutableGrid) {
		var lethal [][2]int
		grid.Iterate(func(mx, my int, cost uint8) bool {
			if cost == LethalObstacle {
				lethal = append(lethal, [2]int{mx, my})
			}
			return true
		})
		for _, cell := range lethal {
			for dx := -reach; dx <= reach; dx++ {
				for dy := -reach; dy <= reach; dy++ {
					if math.Hypot(float64(dx), float64(dy))*g.resolution > radius {
						continue
					}
					mx, my := cell[0]+dx, cell[1]+dy
					if grid.Cost(mx, my) < InscribedInflatedObstacle {
						//nolint:errcheck
						grid.SetCost(mx, my, InscribedInflatedObstacle)
					}
				}
			}
		}
	})
}

// MutableGrid is the view of a Grid handed to Mutate. It must not escape the mutator.
type MutableGrid interface {
	Iterate(visit func(mx, my int, cost uint8) bool)
	Cost(mx, my int) uint8
	SetCost(mx, my int, cost uint8) error
}

// Mutate runs mutator while holding the grid's write lock.
func (g *Grid) Mutate(mutator func(grid MutableGrid)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	mutator((*mutableGrid)(g))
}

// View runs visitor while holding the grid's read lock. SetCost on the view fails.
func (g *Grid) View(visitor func(grid MutableGrid)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	visitor((*readOnlyGrid)(g))
}

type mutableGrid Grid

func (mg *mutableGrid) inBounds(mx, my int) bool {
	return mx >= 0 && my >= 0 && mx < mg.width && my < mg.height
}

func (mg *mutableGrid) Iterate(visit func(mx, my int, cost uint8) bool) {
	for my := 0; my < mg.height; my++ {
		for mx := 0; mx < mg.width; mx++ {
			if !visit(mx, my, mg.cells[my*mg.width+mx]) {
				return
			}
		}
	}
}

func (mg *mutableGrid) Cost(mx, my int) uint8 {
	if !mg.inBounds(mx, my) {
		return NoInformation
	}
	return mg.cells[my*mg.width+mx]
}

func (mg *mutableGrid) SetCost(mx, my int, cost uint8) error {
	if !mg.inBounds(mx, my) {
		return errors.Errorf("cell (%d, %d) is outside the %dx%d grid", mx, my, mg.width, mg.height)
	}
	mg.cells[my*mg.width+mx] = cost
	return nil
}

type readOnlyGrid Grid

func (rg *readOnlyGrid) Iterate(visit func(mx, my int, cost uint8) bool) {
	(*mutableGrid)(rg).Iterate(visit)
}

func (rg *readOnlyGrid) Cost(mx, my int) uint8 {
	return (*mutableGrid)(rg).Cost(mx, my)
}

func (rg *readOnlyGrid) SetCost(int, int, uint8) error {
	return errors.New("grid view is read-only")
}
