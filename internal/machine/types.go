// Package machine implements the cell machine simulation engine.
// This package is UI-agnostic and deterministic: a Grid of typed cells
// that move, push and generate one another according to their facing.
package machine

import (
	"fmt"
	"math"
	"strings"
)

// Dir represents a facing direction.
type Dir uint8

const (
	DirRight Dir = iota
	DirDown
	DirLeft
	DirUp
)

// Dirs lists all directions in clockwise order starting from Right.
var Dirs = [...]Dir{DirRight, DirDown, DirLeft, DirUp}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Dir) Valid() bool {
	return d <= DirUp
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// RotateCW returns the direction a quarter turn clockwise.
func (d Dir) RotateCW() Dir {
	if !d.Valid() {
		return d
	}
	return (d + 1) % 4
}

// RotateCCW returns the direction a quarter turn counter-clockwise.
func (d Dir) RotateCCW() Dir {
	if !d.Valid() {
		return d
	}
	return (d + 3) % 4
}

// Degrees returns the clockwise rotation of a sprite facing this way,
// with Right as 0 (screen coordinates, so Down is 90).
func (d Dir) Degrees() float64 {
	switch d {
	case DirDown:
		return 90
	case DirLeft:
		return 180
	case DirUp:
		return 270
	default:
		return 0
	}
}

// Radians is Degrees converted to radians.
func (d Dir) Radians() float64 {
	return d.Degrees() * math.Pi / 180
}

// Glyph returns an arrow rune pointing in this direction.
func (d Dir) Glyph() rune {
	switch d {
	case DirUp:
		return '↑'
	case DirRight:
		return '→'
	case DirDown:
		return '↓'
	case DirLeft:
		return '←'
	default:
		return '?'
	}
}

// ParseDir parses a direction name (case-insensitive, single letters allowed).
func ParseDir(s string) (Dir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "north", "n":
		return DirUp, nil
	case "right", "r", "east", "e":
		return DirRight, nil
	case "down", "d", "south", "s":
		return DirDown, nil
	case "left", "l", "west", "w":
		return DirLeft, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDir, s)
}

// Kind identifies the variant of a Cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindMover
	KindPusher
	KindGenerator
)

// Kinds lists every non-empty kind in palette order.
var Kinds = [...]Kind{KindMover, KindPusher, KindGenerator}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindMover:
		return "mover"
	case KindPusher:
		return "pusher"
	case KindGenerator:
		return "generator"
	default:
		return "unknown"
	}
}

// Directional reports whether cells of this kind carry a facing.
func (k Kind) Directional() bool {
	return k == KindMover || k == KindGenerator
}

// Next returns the following kind in the placement palette
// (Mover -> Pusher -> Generator -> Mover). Empty maps to Mover.
func (k Kind) Next() Kind {
	switch k {
	case KindMover:
		return KindPusher
	case KindPusher:
		return KindGenerator
	default:
		return KindMover
	}
}

// Prev returns the preceding kind in the placement palette.
func (k Kind) Prev() Kind {
	switch k {
	case KindMover:
		return KindGenerator
	case KindGenerator:
		return KindPusher
	default:
		return KindMover
	}
}

// ParseKind parses a kind name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "":
		return KindEmpty, nil
	case "mover", "move":
		return KindMover, nil
	case "pusher", "push":
		return KindPusher, nil
	case "generator", "gen":
		return KindGenerator, nil
	}
	return KindEmpty, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// DefaultFacing is used for directional cells created without a facing.
const DefaultFacing = DirRight

// Cell is the occupant of a single grid slot. Cells are immutable values;
// moving or placing one replaces the slot contents wholesale.
// Only Mover and Generator cells carry a facing.
type Cell struct {
	kind Kind
	dir  Dir
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Mover returns a mover cell facing d.
func Mover(d Dir) Cell {
	return Cell{kind: KindMover, dir: d}
}

// Pusher returns a passive pusher cell.
func Pusher() Cell {
	return Cell{kind: KindPusher}
}

// Generator returns a generator cell facing d.
func Generator(d Dir) Cell {
	return Cell{kind: KindGenerator, dir: d}
}

// NewCell builds a cell of the given kind. The facing is ignored for
// kinds that do not carry one.
func NewCell(k Kind, d Dir) (Cell, error) {
	switch k {
	case KindEmpty:
		return Empty(), nil
	case KindPusher:
		return Pusher(), nil
	case KindMover, KindGenerator:
		if !d.Valid() {
			return Cell{}, fmt.Errorf("%w: %d", ErrUnknownDir, d)
		}
		return Cell{kind: k, dir: d}, nil
	}
	return Cell{}, fmt.Errorf("%w: %d", ErrUnknownKind, k)
}

// Kind returns the variant of the cell.
func (c Cell) Kind() Kind {
	return c.kind
}

// Facing returns the cell's direction and whether the kind carries one.
func (c Cell) Facing() (Dir, bool) {
	if !c.kind.Directional() {
		return 0, false
	}
	return c.dir, true
}

// IsEmpty returns true for Empty cells.
func (c Cell) IsEmpty() bool {
	return c.kind == KindEmpty
}

// Pushable returns true if the cell can be part of a push chain.
func (c Cell) Pushable() bool {
	return c.kind == KindMover || c.kind == KindPusher
}

// WithFacing returns a copy of a directional cell facing d.
// Non-directional cells are returned unchanged.
func (c Cell) WithFacing(d Dir) Cell {
	if !c.kind.Directional() {
		return c
	}
	return Cell{kind: c.kind, dir: d}
}

// String returns a compact description such as "mover:Right".
func (c Cell) String() string {
	if d, ok := c.Facing(); ok {
		return c.kind.String() + ":" + d.String()
	}
	return c.kind.String()
}
