package tui

import (
	"strings"

	"github.com/vovakirdan/cellmachine/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string using the
// current theme. Adjacent cells with the same color are grouped to
// minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return RenderScreenTheme(s, currentTheme)
}

// RenderScreenTheme is RenderScreen with an explicit theme.
func RenderScreenTheme(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(theme.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
