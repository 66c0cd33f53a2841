package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cellmachine/internal/core"
)

// Theme contains all configurable visual styles for the simulator.
type Theme struct {
	// Cell styles
	Mover     lipgloss.Style
	Pusher    lipgloss.Style
	Generator lipgloss.Style
	EmptyCell lipgloss.Style
	Cursor    lipgloss.Style
	Ghost     lipgloss.Style // Preview of the cell under the cursor

	// HUD styles
	HUDLabel  lipgloss.Style
	HUDValue  lipgloss.Style
	Sparkline lipgloss.Style
	Warning   lipgloss.Style
	Border    lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Mover:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // Bright cyan
		Pusher:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")), // Bright yellow
		Generator: lipgloss.NewStyle().Foreground(lipgloss.Color("205")), // Hot pink
		EmptyCell: lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		Cursor:    lipgloss.NewStyle().Reverse(true).Bold(true),
		Ghost:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true),

		HUDLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Sparkline: lipgloss.NewStyle().Foreground(lipgloss.Color("46")), // Lime green
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Mover = lipgloss.NewStyle().Foreground(lipgloss.Color("87"))      // Neon cyan
	theme.Pusher = lipgloss.NewStyle().Foreground(lipgloss.Color("227"))    // Neon yellow
	theme.Generator = lipgloss.NewStyle().Foreground(lipgloss.Color("199")) // Neon pink
	theme.Sparkline = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))
	return theme
}

// PastelTheme returns a softer pastel theme.
func PastelTheme() Theme {
	theme := DefaultTheme()
	theme.Mover = lipgloss.NewStyle().Foreground(lipgloss.Color("123"))
	theme.Pusher = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	theme.Generator = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	theme.Sparkline = lipgloss.NewStyle().Foreground(lipgloss.Color("157"))
	return theme
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Mover = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.Pusher = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Generator = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	theme.Sparkline = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Warning = lipgloss.NewStyle().Bold(true)
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	return theme
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"neon":    NeonTheme,
	"pastel":  PastelTheme,
	"mono":    MonochromeTheme,
}

// ThemeNames lists the selectable theme names.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName looks up a theme. Unknown names report false.
func ThemeByName(name string) (Theme, bool) {
	f, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DefaultTheme(), false
	}
	return f(), true
}

// Style returns the style for a screen color tag.
func (t Theme) Style(c core.Color) lipgloss.Style {
	switch c {
	case core.ColorMover:
		return t.Mover
	case core.ColorPusher:
		return t.Pusher
	case core.ColorGenerator:
		return t.Generator
	case core.ColorEmpty:
		return t.EmptyCell
	case core.ColorCursor:
		return t.Cursor
	case core.ColorGhost:
		return t.Ghost
	case core.ColorHUD:
		return t.HUDLabel
	case core.ColorHUDValue:
		return t.HUDValue
	case core.ColorSparkline:
		return t.Sparkline
	case core.ColorWarning:
		return t.Warning
	case core.ColorBorder:
		return t.Border
	default:
		return lipgloss.NewStyle()
	}
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return currentTheme
}
