// Package colors paints the full attribute matrix: every foreground on
// every background.
package colors

import (
	"fmt"

	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/vga"
)

// beatTicks is how many display ticks pass between matrix rows.
const beatTicks = 4

// Demo draws one background row of the 16x16 attribute matrix per beat.
type Demo struct {
	w   *vga.Writer
	row int
}

// New creates the attribute matrix demo.
func New() *Demo {
	return &Demo{}
}

func init() {
	registry.Register("colors", func() registry.Demo {
		return New()
	})
}

// ID returns the demo identifier.
func (d *Demo) ID() string { return "colors" }

// Title returns the display name.
func (d *Demo) Title() string { return "Attribute Matrix" }

// Reset rewinds the matrix.
func (d *Demo) Reset(w *vga.Writer) {
	d.w = w
	d.row = 0
}

// Step draws the header, then one background row per beat. Each sample is
// the attribute byte's own hex value drawn in that attribute.
func (d *Demo) Step(tick uint64) bool {
	if d.row > 17 {
		return false
	}
	if tick%beatTicks != 0 {
		return true
	}

	switch {
	case d.row == 0:
		d.w.SetColor(vga.White, vga.Black)
		d.w.WriteString("attribute matrix: row = background, column = foreground\n\n")
	case d.row <= 16:
		bg := vga.Color(d.row - 1)
		for fg := vga.Color(0); fg < 16; fg++ {
			d.w.SetColor(fg, bg)
			fmt.Fprintf(d.w, " %X%X ", uint8(bg), uint8(fg))
		}
		d.w.SetColor(vga.LightGray, vga.Black)
		d.w.WriteString("\n")
	default:
		d.w.SetColor(vga.DarkGray, vga.Black)
		d.w.WriteString("\n256 attributes, two nibbles each\n")
	}

	d.row++
	return true
}
