package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vgasim/internal/vga"
)

// ansiColor maps a driver color to the matching ANSI 16-color slot. The two
// palettes hold the same colors in a different order: ANSI swaps the red
// and blue bits, and puts the bright set at 8-15 instead of using a
// brightness nibble.
var ansiColor = [16]lipgloss.Color{
	vga.Black:      lipgloss.Color("0"),
	vga.Blue:       lipgloss.Color("4"),
	vga.Green:      lipgloss.Color("2"),
	vga.Cyan:       lipgloss.Color("6"),
	vga.Red:        lipgloss.Color("1"),
	vga.Magenta:    lipgloss.Color("5"),
	vga.Brown:      lipgloss.Color("3"),
	vga.LightGray:  lipgloss.Color("7"),
	vga.DarkGray:   lipgloss.Color("8"),
	vga.LightBlue:  lipgloss.Color("12"),
	vga.LightGreen: lipgloss.Color("10"),
	vga.LightCyan:  lipgloss.Color("14"),
	vga.LightRed:   lipgloss.Color("9"),
	vga.Pink:       lipgloss.Color("13"),
	vga.Yellow:     lipgloss.Color("11"),
	vga.White:      lipgloss.Color("15"),
}

// ANSIColor returns the terminal color slot matching a driver color.
func ANSIColor(c vga.Color) lipgloss.Color {
	return ansiColor[c]
}

// attrStyles holds one lipgloss style per attribute byte, built up front so
// concurrent SSH sessions can render without touching shared state.
var attrStyles = func() (s [256]lipgloss.Style) {
	for attr := 0; attr < 256; attr++ {
		code := vga.ColorCode(attr)
		s[attr] = lipgloss.NewStyle().
			Foreground(ansiColor[code.Foreground()]).
			Background(ansiColor[code.Background()])
	}
	return s
}()

// RenderFrame converts one frame of cell words to a styled string for
// display. Groups adjacent cells with the same attribute to minimize ANSI
// escape sequences.
func RenderFrame(cells []uint16, table *[256]rune) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(len(cells)*2 + vga.Rows)

	for row := 0; row < vga.Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		base := row * vga.Cols

		// Group consecutive cells with the same attribute for efficiency
		col := 0
		for col < vga.Cols {
			attr := byte(cells[base+col] >> 8)

			var run strings.Builder
			for col < vga.Cols && byte(cells[base+col]>>8) == attr {
				run.WriteRune(table[byte(cells[base+col])])
				col++
			}

			sb.WriteString(attrStyles[attr].Render(run.String()))
		}
	}
	return sb.String()
}

// PlainFrame converts one frame of cell words to an unstyled string,
// dropping the attributes. Used for text snapshots and tests.
func PlainFrame(cells []uint16, table *[256]rune) string {
	var sb strings.Builder
	sb.Grow(len(cells) + vga.Rows)

	for row := 0; row < vga.Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		base := row * vga.Cols
		for col := 0; col < vga.Cols; col++ {
			sb.WriteRune(table[byte(cells[base+col])])
		}
	}
	return sb.String()
}
