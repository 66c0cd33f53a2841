package session

import (
	"fmt"

	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/machine"
)

// Glyph returns the terminal rune and color used to draw a cell.
func Glyph(c machine.Cell) (rune, core.Color) {
	switch c.Kind() {
	case machine.KindMover:
		d, _ := c.Facing()
		return d.Glyph(), core.ColorMover
	case machine.KindPusher:
		return '■', core.ColorPusher
	case machine.KindGenerator:
		d, _ := c.Facing()
		return generatorGlyph(d), core.ColorGenerator
	default:
		return '·', core.ColorEmpty
	}
}

func generatorGlyph(d machine.Dir) rune {
	switch d {
	case machine.DirUp:
		return '⇑'
	case machine.DirDown:
		return '⇓'
	case machine.DirLeft:
		return '⇐'
	default:
		return '⇒'
	}
}

// Render draws the HUD and the visible part of the board.
func (s *Session) Render(dst *core.Screen) {
	s.renderHUD(dst)

	frame := core.NewRect(0, HUDHeight, dst.Width(), dst.Height()-HUDHeight)
	dst.DrawBox(frame, core.ColorBorder)
	if title := " " + s.title + " "; len(title) < frame.W-2 {
		dst.DrawTextColor(2, frame.Y, title, core.ColorHUD)
	}

	inner := boardRect(dst.Width(), dst.Height())
	if inner.Empty() {
		return
	}

	vp := s.Viewport()
	s.grid.Each(func(c machine.Coord, cell machine.Cell) {
		if !vp.Visible(c, inner.W, inner.H) {
			return
		}
		r, col := Glyph(cell)
		s.drawCell(dst, inner, vp, c, r, col)
	})

	// Cursor: the selected cell as a ghost over empty slots, the occupant
	// highlighted otherwise.
	if vp.Visible(s.cursor, inner.W, inner.H) {
		under := s.grid.Get(s.cursor)
		if under.IsEmpty() {
			r, _ := Glyph(s.ghost())
			s.drawCell(dst, inner, vp, s.cursor, r, core.ColorGhost)
		} else {
			r, _ := Glyph(under)
			s.drawCell(dst, inner, vp, s.cursor, r, core.ColorCursor)
		}
	}
}

// drawCell puts the glyph in the first column of the cell's screen box;
// the rest of the box stays blank.
func (s *Session) drawCell(dst *core.Screen, inner core.Rect, vp machine.Viewport, c machine.Coord, r rune, col core.Color) {
	sx, sy := vp.ToScreen(c)
	x, y := inner.X+sx, inner.Y+sy
	if inner.Contains(x, y) {
		dst.SetColor(x, y, r, col)
	}
}

func (s *Session) renderHUD(dst *core.Screen) {
	st := s.State()

	x := 0
	x = hudField(dst, x, 0, "Paused", fmt.Sprintf("%t", st.Paused))
	x = hudField(dst, x, 0, "Tick", fmt.Sprintf("%d", st.Frame))
	x = hudField(dst, x, 0, "Step frame", yesNo(st.Eligible))
	hudField(dst, x, 0, "Gen", fmt.Sprintf("%d", st.Generation))

	census := s.grid.Census()
	kindGlyph, _ := Glyph(s.ghost())

	x = 0
	x = hudField(dst, x, 1, "Movers", fmt.Sprintf("%d", census.Movers))
	x = hudField(dst, x, 1, "Pushers", fmt.Sprintf("%d", census.Pushers))
	x = hudField(dst, x, 1, "Generators", fmt.Sprintf("%d", census.Generators))
	x = hudField(dst, x, 1, "Place", fmt.Sprintf("%s %c", s.kind, kindGlyph))
	hudField(dst, x, 1, "At", s.cursor.String())
}

// ghost returns the cell that Place would put down.
func (s *Session) ghost() machine.Cell {
	c, err := machine.NewCell(s.kind, s.facing)
	if err != nil {
		return machine.Empty()
	}
	return c
}

func hudField(dst *core.Screen, x, y int, label, value string) int {
	x = dst.DrawTextColor(x, y, label+": ", core.ColorHUD)
	x = dst.DrawTextColor(x, y, value, core.ColorHUDValue)
	return x + 2
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
