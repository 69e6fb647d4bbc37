package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase overlap queries over the arena.
// Items are inserted by the center of their bounding box, then candidates are
// found with a 3x3 neighborhood lookup.
//
// Cell size must be >= half the sum of the widest (and tallest) pair of boxes
// that can overlap, so every overlapping pair lands in adjacent cells. Positions
// outside the arena (objects inside the wraparound margin) are clamped to the
// edge cells, which keeps adjacent items adjacent.
type SpatialGrid struct {
	width       float64
	height      float64
	cellSize    float64
	invCellSize float64
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items whose center falls within the cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering width x height with the given cell size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{width: width, height: height}
	g.Reset(cellSize)
	return g
}

// Reset empties the grid and re-slices it for a new cell size.
// Cell storage is reused when the new layout needs no more cells than before.
func (g *SpatialGrid) Reset(cellSize float64) {
	if cellSize <= 0 {
		cellSize = math.Max(g.width, g.height)
	}
	cols := max(int(math.Ceil(g.width/cellSize)), 1)
	rows := max(int(math.Ceil(g.height/cellSize)), 1)

	g.cellSize = cellSize
	g.invCellSize = 1 / cellSize
	g.cols = cols
	g.rows = rows

	if cap(g.cells) < cols*rows {
		g.cells = make([]gridCell, cols*rows)
	}
	g.cells = g.cells[:cols*rows]
	g.Clear()
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// CellSize returns the current cell edge length.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(p Vec2, index int) {
	col, row := g.posToCell(p)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around p. The grid does not wrap: neighbors past the edge are skipped.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(p Vec2, fn func(index int) bool) {
	col, row := g.posToCell(p)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts a position to grid cell coordinates, clamping to the grid.
func (g *SpatialGrid) posToCell(p Vec2) (col, row int) {
	col = int(math.Floor(p.X * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(p.Y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
