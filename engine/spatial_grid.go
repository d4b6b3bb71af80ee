package engine

import (
	"math"

	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// SpatialIndex answers neighbor and cone queries over actor positions
type SpatialIndex interface {
	// ConeQuery returns occupants within rng of origin whose bearing is within
	// angleTolerance radians of direction
	ConeQuery(origin, direction core.Vec2, rng, angleTolerance float64) []core.Occupant

	// NeighborQuery returns occupants within the index's neighbor radius of point
	NeighborQuery(point core.Vec2) []core.Occupant
}

// SpatialGrid is a uniform bucket grid rebuilt once per tick
// Positions outside the bounds are clamped into edge cells
type SpatialGrid struct {
	bounds         core.Bounds
	cellSize       float64
	neighborRadius float64

	cols, rows int
	cells      [][]core.Occupant // 1D array: index = row*cols + col
	count      int
}

// NewSpatialGrid creates a grid covering bounds
func NewSpatialGrid(bounds core.Bounds, cellSize, neighborRadius float64) *SpatialGrid {
	cols := max(1, int(math.Ceil(bounds.Width()/cellSize)))
	rows := max(1, int(math.Ceil(bounds.Height()/cellSize)))
	return &SpatialGrid{
		bounds:         bounds,
		cellSize:       cellSize,
		neighborRadius: neighborRadius,
		cols:           cols,
		rows:           rows,
		cells:          make([][]core.Occupant, cols*rows),
	}
}

// Clear removes all occupants, keeping cell capacity
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.count = 0
}

// Add inserts an occupant at its position
func (g *SpatialGrid) Add(o core.Occupant) {
	col, row := g.cellOf(o.Pos)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], o)
	g.count++
}

// Rebuild replaces the grid contents
func (g *SpatialGrid) Rebuild(occupants []core.Occupant) {
	g.Clear()
	for _, o := range occupants {
		g.Add(o)
	}
}

// Len returns the number of indexed occupants
func (g *SpatialGrid) Len() int {
	return g.count
}

// NeighborRadius returns the radius used by NeighborQuery
func (g *SpatialGrid) NeighborRadius() float64 {
	return g.neighborRadius
}

// NeighborQuery implements SpatialIndex
func (g *SpatialGrid) NeighborQuery(point core.Vec2) []core.Occupant {
	return g.Within(point, g.neighborRadius)
}

// Within returns occupants within radius of point
func (g *SpatialGrid) Within(point core.Vec2, radius float64) []core.Occupant {
	var out []core.Occupant
	r2 := radius * radius
	g.visit(point, radius, func(o core.Occupant) {
		if o.Pos.DistSq(point) <= r2 {
			out = append(out, o)
		}
	})
	return out
}

// ConeQuery implements SpatialIndex
// Occupants exactly at origin are excluded; they have no bearing
func (g *SpatialGrid) ConeQuery(origin, direction core.Vec2, rng, angleTolerance float64) []core.Occupant {
	if direction.IsZero() || rng <= 0 {
		return nil
	}
	var out []core.Occupant
	r2 := rng * rng
	heading := direction.Angle()
	g.visit(origin, rng, func(o core.Occupant) {
		d := o.Pos.Sub(origin)
		dist2 := d.LenSq()
		if dist2 == 0 || dist2 > r2 {
			return
		}
		if vmath.AngleDiff(d.Angle(), heading) <= angleTolerance {
			out = append(out, o)
		}
	})
	return out
}

// visit calls fn for every occupant in cells overlapping the square around center
func (g *SpatialGrid) visit(center core.Vec2, radius float64, fn func(core.Occupant)) {
	minCol, minRow := g.cellOf(core.Vec2{X: center.X - radius, Y: center.Y - radius})
	maxCol, maxRow := g.cellOf(core.Vec2{X: center.X + radius, Y: center.Y + radius})
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, o := range g.cells[row*g.cols+col] {
				fn(o)
			}
		}
	}
}

func (g *SpatialGrid) cellOf(p core.Vec2) (int, int) {
	col := int((p.X - g.bounds.Min.X) / g.cellSize)
	row := int((p.Y - g.bounds.Min.Y) / g.cellSize)
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return col, row
}
