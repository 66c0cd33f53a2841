package machine

import "fmt"

// DefaultStepInterval is the number of frames between simulation steps.
const DefaultStepInterval = 10

// MaxSide is the largest grid width or height.
const MaxSide = 1024

// Offset is an integer pan offset in screen units. It is presentation
// metadata only and never affects simulation coordinates.
type Offset struct {
	X int
	Y int
}

// Census counts cells per kind.
type Census struct {
	Empty      int
	Movers     int
	Pushers    int
	Generators int
}

// Total returns the number of non-empty cells.
func (c Census) Total() int {
	return c.Movers + c.Pushers + c.Generators
}

// Grid is the simulation board: a fixed W×H array of cells stored in
// row-major order (index = y*W + x). Every slot always holds exactly one
// Cell. Stepping reads the front buffer and writes the back buffer, then
// swaps them, so no intermediate state is ever observable.
type Grid struct {
	w, h  int
	cells []Cell
	back  []Cell

	paused     bool
	pan        Offset
	interval   uint64
	generation uint64
}

// New creates a grid with all cells empty. Simulation starts paused.
// Dimensions are clamped to [1, MaxSide].
func New(w, h int) *Grid {
	w = min(max(w, 1), MaxSide)
	h = min(max(h, 1), MaxSide)
	return &Grid{
		w:        w,
		h:        h,
		cells:    make([]Cell, w*h),
		back:     make([]Cell, w*h),
		paused:   true,
		interval: DefaultStepInterval,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.w + c.X
}

// coord converts a flat array index back to a coordinate.
func (g *Grid) coord(i int) Coord {
	return C(i%g.w, i/g.w)
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

// Get returns the cell at the given coordinate.
// Returns an empty cell if out of bounds.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return Empty()
	}
	return g.cells[g.index(c)]
}

// At returns the cell at (x, y) or ErrOutOfBounds.
func (g *Grid) At(x, y int) (Cell, error) {
	c := C(x, y)
	if !g.InBounds(c) {
		return Cell{}, g.outOfBounds(c)
	}
	return g.cells[g.index(c)], nil
}

// Place overwrites the slot at (x, y) with cell, discarding whatever was
// there. Placement is immediate and meant to happen between steps.
func (g *Grid) Place(x, y int, cell Cell) error {
	return g.PlaceAt(C(x, y), cell)
}

// PlaceAt is Place addressed by Coord.
func (g *Grid) PlaceAt(c Coord, cell Cell) error {
	if !g.InBounds(c) {
		return g.outOfBounds(c)
	}
	if cell.kind > KindGenerator {
		return fmt.Errorf("%w: %d", ErrUnknownKind, cell.kind)
	}
	g.cells[g.index(c)] = cell
	return nil
}

func (g *Grid) outOfBounds(c Coord) error {
	return fmt.Errorf("%w: %v not in %dx%d", ErrOutOfBounds, c, g.w, g.h)
}

// Clear empties every slot. Pause state, pan and generation are kept.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty()
	}
}

// Paused reports whether stepping is suspended.
func (g *Grid) Paused() bool { return g.paused }

// SetPaused sets the pause flag.
func (g *Grid) SetPaused(p bool) { g.paused = p }

// TogglePause flips the pause flag and returns the new value.
func (g *Grid) TogglePause() bool {
	g.paused = !g.paused
	return g.paused
}

// PanOffset returns the current pan offset.
func (g *Grid) PanOffset() Offset { return g.pan }

// SetPanOffset replaces the pan offset.
func (g *Grid) SetPanOffset(dx, dy int) {
	g.pan = Offset{X: dx, Y: dy}
}

// Pan adds (dx, dy) to the pan offset.
func (g *Grid) Pan(dx, dy int) {
	g.pan.X += dx
	g.pan.Y += dy
}

// StepInterval returns the number of frames between steps.
func (g *Grid) StepInterval() uint64 { return g.interval }

// SetStepInterval changes the frame interval between steps.
// Zero resets it to DefaultStepInterval.
func (g *Grid) SetStepInterval(n uint64) {
	if n == 0 {
		n = DefaultStepInterval
	}
	g.interval = n
}

// Eligible reports whether a step issued on this frame would run.
func (g *Grid) Eligible(tick uint64) bool {
	return !g.paused && tick%g.interval == 0
}

// Generation returns the number of steps committed so far.
func (g *Grid) Generation() uint64 { return g.generation }

// Each calls fn for every coordinate in row-major order.
func (g *Grid) Each(fn func(Coord, Cell)) {
	for i, cell := range g.cells {
		fn(g.coord(i), cell)
	}
}

// Snapshot returns a row-major copy of all cells.
func (g *Grid) Snapshot() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Census counts cells per kind.
func (g *Grid) Census() Census {
	var c Census
	for _, cell := range g.cells {
		switch cell.kind {
		case KindMover:
			c.Movers++
		case KindPusher:
			c.Pushers++
		case KindGenerator:
			c.Generators++
		default:
			c.Empty++
		}
	}
	return c
}

// Clone returns a deep copy of the grid, including pause, pan and step state.
func (g *Grid) Clone() *Grid {
	clone := *g
	clone.cells = g.Snapshot()
	clone.back = make([]Cell, len(g.back))
	return &clone
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}
