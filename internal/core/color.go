package core

// Color is a foreground color tag for a screen cell. The platform layer
// maps each tag to a terminal style; core never imports a styling library.
type Color uint8

const (
	ColorDefault Color = iota
	ColorMover
	ColorPusher
	ColorGenerator
	ColorEmpty
	ColorCursor
	ColorGhost // preview of the cell that would be placed
	ColorHUD
	ColorHUDValue
	ColorSparkline
	ColorWarning
	ColorBorder
)

// String returns a short name, used in screenshots and debug logs.
func (c Color) String() string {
	switch c {
	case ColorMover:
		return "mover"
	case ColorPusher:
		return "pusher"
	case ColorGenerator:
		return "generator"
	case ColorEmpty:
		return "empty"
	case ColorCursor:
		return "cursor"
	case ColorGhost:
		return "ghost"
	case ColorHUD:
		return "hud"
	case ColorHUDValue:
		return "hud-value"
	case ColorSparkline:
		return "sparkline"
	case ColorWarning:
		return "warning"
	case ColorBorder:
		return "border"
	default:
		return "default"
	}
}
