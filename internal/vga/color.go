package vga

import (
	"fmt"
	"strings"
)

// Color is one of the 16 colors the VGA text mode attribute byte can encode.
// The numeric values are the hardware encoding and must not be reordered.
type Color uint8

// The standard VGA palette, codes 0 through 15.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	Pink
	Yellow
	White
)

// colorNames holds the canonical lowercase name for each color code.
var colorNames = [...]string{
	"black", "blue", "green", "cyan",
	"red", "magenta", "brown", "lightgray",
	"darkgray", "lightblue", "lightgreen", "lightcyan",
	"lightred", "pink", "yellow", "white",
}

// String returns the canonical lowercase name of the color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor maps a case-insensitive color name to its Color.
// Returns an error for names outside the 16-color palette.
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range colorNames {
		if n == cn {
			return Color(i), nil
		}
	}
	return Black, fmt.Errorf("vga: unknown color %q", name)
}

// ColorCode is a full attribute byte: background color in the high nibble,
// foreground color in the low nibble.
type ColorCode uint8

// NewColorCode combines a foreground and a background color into one
// attribute byte.
func NewColorCode(fg, bg Color) ColorCode {
	return ColorCode(uint8(bg)<<4 | uint8(fg))
}

// Foreground returns the foreground color encoded in the low nibble.
func (c ColorCode) Foreground() Color {
	return Color(c & 0x0f)
}

// Background returns the background color encoded in the high nibble.
func (c ColorCode) Background() Color {
	return Color(c >> 4)
}
