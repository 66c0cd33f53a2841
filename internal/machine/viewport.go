package machine

// DefaultCellSize is the edge length of a cell in pixels for pixel-based
// front ends.
const DefaultCellSize = 64

// Viewport converts between grid coordinates and screen positions.
// Screen positions are computed on demand from the grid coordinate and
// the pan offset; nothing is cached per cell.
type Viewport struct {
	CellW  int
	CellH  int
	Offset Offset
}

// NewViewport returns a viewport with square cells of DefaultCellSize.
func NewViewport(offset Offset) Viewport {
	return Viewport{CellW: DefaultCellSize, CellH: DefaultCellSize, Offset: offset}
}

// ToScreen returns the top-left screen position of the cell at c.
func (v Viewport) ToScreen(c Coord) (sx, sy int) {
	return c.X*v.cellW() + v.Offset.X, c.Y*v.cellH() + v.Offset.Y
}

// ToGrid returns the grid coordinate under the screen position (sx, sy).
// Negative results clamp to 0; callers still bounds-check against the grid.
func (v Viewport) ToGrid(sx, sy int) Coord {
	x := floorDiv(sx-v.Offset.X, v.cellW())
	y := floorDiv(sy-v.Offset.Y, v.cellH())
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return C(x, y)
}

// Lookup returns the grid coordinate under (sx, sy) without clamping.
// ok is false for positions left of or above the grid origin.
func (v Viewport) Lookup(sx, sy int) (c Coord, ok bool) {
	x := floorDiv(sx-v.Offset.X, v.cellW())
	y := floorDiv(sy-v.Offset.Y, v.cellH())
	return C(x, y), x >= 0 && y >= 0
}

// Visible reports whether any part of the cell at c falls inside a
// screen of the given size.
func (v Viewport) Visible(c Coord, screenW, screenH int) bool {
	sx, sy := v.ToScreen(c)
	return sx+v.cellW() > 0 && sy+v.cellH() > 0 && sx < screenW && sy < screenH
}

func (v Viewport) cellW() int {
	if v.CellW <= 0 {
		return DefaultCellSize
	}
	return v.CellW
}

func (v Viewport) cellH() int {
	if v.CellH <= 0 {
		return DefaultCellSize
	}
	return v.CellH
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
