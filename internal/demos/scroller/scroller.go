// Package scroller feeds the writer an endless stream of numbered lines,
// exercising the scroll path until the viewer quits.
package scroller

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/vga"
)

// beatTicks is how many display ticks pass between lines.
const beatTicks = 2

// barMax is the widest the sawtooth bar gets before wrapping around.
const barMax = 56

// Demo prints numbered lines with a sawtooth bar forever.
type Demo struct {
	w *vga.Writer
	n int
}

// New creates the scroller demo.
func New() *Demo {
	return &Demo{}
}

func init() {
	registry.Register("scroller", func() registry.Demo {
		return New()
	})
}

// ID returns the demo identifier.
func (d *Demo) ID() string { return "scroller" }

// Title returns the display name.
func (d *Demo) Title() string { return "Scroller" }

// Reset rewinds the line counter.
func (d *Demo) Reset(w *vga.Writer) {
	d.w = w
	d.n = 0
}

// rowColors is the palette the scroller cycles through.
var rowColors = []vga.Color{
	vga.LightGray, vga.LightCyan, vga.LightGreen, vga.Yellow, vga.LightRed, vga.Pink,
}

// Step prints the next line on each beat. The scroller never finishes.
func (d *Demo) Step(tick uint64) bool {
	if tick%beatTicks != 0 {
		return true
	}

	d.w.SetColor(rowColors[d.n%len(rowColors)], vga.Black)
	fmt.Fprintf(d.w, "line %04d %s\n", d.n, strings.Repeat("=", 1+d.n%barMax))
	d.n++
	return true
}
