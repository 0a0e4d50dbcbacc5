package core

// Color is a foreground color for a screen cell. The platform maps each
// one to an ANSI 256-color code.
type Color uint8

// Basic terminal colors first, then the extended shades the arena uses.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorGold    // unique loot, gold gems
	ColorPurple  // purple gems
	ColorCrimson // bleeding enemies

	colorCount
)

// Valid reports whether c is a known color.
func (c Color) Valid() bool {
	return c < colorCount
}
