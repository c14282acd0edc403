package buffer

// Coord is a grid position with its precomputed row-major index
type Coord struct {
	X, Y  int
	Index int
}

// Grid is a cols×rows field of cells backed by a row-major slice
// (index = x + y*cols). Length is always exactly cols*rows.
// All accessors are bounds-safe: reads outside the grid return the empty
// cell, writes outside the grid are no-ops
type Grid struct {
	cols, rows int
	cells      []Cell
}

// NewGrid creates a grid filled with empty cells
// Non-positive dimensions clamp to zero
func NewGrid(cols, rows int) *Grid {
	g := &Grid{}
	g.Resize(cols, rows)
	return g
}

// Cols returns the column count
func (g *Grid) Cols() int { return g.cols }

// Rows returns the row count
func (g *Grid) Rows() int { return g.rows }

// Len returns cols*rows
func (g *Grid) Len() int { return len(g.cells) }

// Size returns both dimensions
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// Cells exposes the backing slice for renderers
// Callers must treat it as read-only
func (g *Grid) Cells() []Cell { return g.cells }

// CoordOf expands a row-major index into a Coord
func (g *Grid) CoordOf(i int) Coord {
	if g.cols == 0 {
		return Coord{Index: i}
	}
	return Coord{X: i % g.cols, Y: i / g.cols, Index: i}
}

// In reports whether (x, y) lies inside the grid
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Get returns the cell at (x, y), or the empty cell out of bounds
func (g *Grid) Get(x, y int) Cell {
	if !g.In(x, y) {
		return Empty()
	}
	return g.cells[x+y*g.cols]
}

// Set overwrites the cell at (x, y); no-op out of bounds
func (g *Grid) Set(c Cell, x, y int) {
	if !g.In(x, y) {
		return
	}
	g.cells[x+y*g.cols] = c
}

// Merge applies the patch onto the cell at (x, y); no-op out of bounds
func (g *Grid) Merge(p Patch, x, y int) {
	if !g.In(x, y) {
		return
	}
	i := x + y*g.cols
	g.cells[i] = Merge(g.cells[i], p)
}

// SetRect overwrites every cell in the w×h rectangle anchored at (x, y)
// Out-of-bounds coordinates are skipped cell by cell
func (g *Grid) SetRect(c Cell, x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			g.Set(c, x+dx, y+dy)
		}
	}
}

// MergeRect merges the patch onto every cell in the rectangle
// Mutations are independent, so application order is irrelevant
func (g *Grid) MergeRect(p Patch, x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			g.Merge(p, x+dx, y+dy)
		}
	}
}

// Resize sets the grid to cols×rows with every cell empty
// No content carries over. Backing capacity is reused when possible
func (g *Grid) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	size := cols * rows
	if cap(g.cells) >= size {
		g.cells = g.cells[:size]
	} else {
		g.cells = make([]Cell, size)
	}
	g.cols = cols
	g.rows = rows
	g.Fill(Empty())
}

// Clear resets every cell to the empty cell
func (g *Grid) Clear() {
	g.Fill(Empty())
}

// Fill sets every cell to c using exponential copy
func (g *Grid) Fill(c Cell) {
	if len(g.cells) == 0 {
		return
	}
	g.cells[0] = c
	for filled := 1; filled < len(g.cells); filled *= 2 {
		copy(g.cells[filled:], g.cells[:filled])
	}
}
