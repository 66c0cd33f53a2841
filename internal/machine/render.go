package machine

import (
	"fmt"
	"strings"
)

// ASCII glyphs:
//
//	.        empty
//	#        pusher
//	^ > v <  mover facing up, right, down, left
//	U R D L  generator facing up, right, down, left

// Char returns the ASCII glyph for a cell.
func Char(c Cell) rune {
	switch c.kind {
	case KindPusher:
		return '#'
	case KindMover:
		switch c.dir {
		case DirUp:
			return '^'
		case DirDown:
			return 'v'
		case DirLeft:
			return '<'
		default:
			return '>'
		}
	case KindGenerator:
		switch c.dir {
		case DirUp:
			return 'U'
		case DirDown:
			return 'D'
		case DirLeft:
			return 'L'
		default:
			return 'R'
		}
	default:
		return '.'
	}
}

// ParseChar is the inverse of Char.
func ParseChar(r rune) (Cell, error) {
	switch r {
	case '.', ' ':
		return Empty(), nil
	case '#':
		return Pusher(), nil
	case '^':
		return Mover(DirUp), nil
	case '>':
		return Mover(DirRight), nil
	case 'v':
		return Mover(DirDown), nil
	case '<':
		return Mover(DirLeft), nil
	case 'U':
		return Generator(DirUp), nil
	case 'R':
		return Generator(DirRight), nil
	case 'D':
		return Generator(DirDown), nil
	case 'L':
		return Generator(DirLeft), nil
	}
	return Cell{}, fmt.Errorf("%w: glyph %q", ErrUnknownKind, r)
}

// ParseGrid builds a grid from rows of glyphs. All rows must have the
// same length. Handy for tests and the headless runner.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("machine: no rows")
	}
	w := len([]rune(rows[0]))
	if w == 0 {
		return nil, fmt.Errorf("machine: empty row")
	}
	g := New(w, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, fmt.Errorf("machine: row %d has width %d, want %d", y, len(runes), w)
		}
		for x, r := range runes {
			cell, err := ParseChar(r)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			g.cells[g.index(C(x, y))] = cell
		}
	}
	return g, nil
}

// RenderCompact returns a minimal string representation without borders.
func RenderCompact(g *Grid) string {
	var sb strings.Builder
	for _, line := range GridToLines(g) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderWithFrame renders the grid with a simple border frame.
func RenderWithFrame(g *Grid, title string) string {
	var sb strings.Builder

	borderWidth := g.w + 2
	if title != "" {
		padding := (borderWidth - len(title) - 2) / 2
		if padding < 0 {
			padding = 0
		}
		sb.WriteString(strings.Repeat("-", padding))
		sb.WriteString(" ")
		sb.WriteString(title)
		sb.WriteString(" ")
		if remaining := borderWidth - padding - len(title) - 2; remaining > 0 {
			sb.WriteString(strings.Repeat("-", remaining))
		}
	} else {
		sb.WriteString(strings.Repeat("-", borderWidth))
	}
	sb.WriteString("\n")

	for _, line := range GridToLines(g) {
		sb.WriteString("|")
		sb.WriteString(line)
		sb.WriteString("|\n")
	}

	sb.WriteString(strings.Repeat("-", borderWidth))
	sb.WriteString("\n")
	return sb.String()
}

// GridToLines converts the grid to a slice of strings (one per row).
func GridToLines(g *Grid) []string {
	lines := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var sb strings.Builder
		for x := 0; x < g.w; x++ {
			sb.WriteRune(Char(g.cells[g.index(C(x, y))]))
		}
		lines[y] = sb.String()
	}
	return lines
}
