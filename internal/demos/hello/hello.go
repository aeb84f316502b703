// Package hello is the boot banner demo: the first thing anyone makes a
// text mode driver print.
package hello

import (
	"fmt"

	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/vga"
)

// beatTicks is how many display ticks pass between banner lines.
const beatTicks = 8

// Demo prints the classic banner one line per beat, then holds the frame.
type Demo struct {
	w    *vga.Writer
	line int
}

// New creates the banner demo.
func New() *Demo {
	return &Demo{}
}

func init() {
	registry.Register("hello", func() registry.Demo {
		return New()
	})
}

// ID returns the demo identifier.
func (d *Demo) ID() string { return "hello" }

// Title returns the display name.
func (d *Demo) Title() string { return "Hello World" }

// Reset rewinds the banner.
func (d *Demo) Reset(w *vga.Writer) {
	d.w = w
	d.line = 0
}

// script holds the banner lines, one writer call per beat.
var script = []func(w *vga.Writer){
	func(w *vga.Writer) {
		w.SetColor(vga.Yellow, vga.Black)
		w.WriteString("Hello World!\n")
	},
	func(w *vga.Writer) {
		w.SetColor(vga.White, vga.Black)
		fmt.Fprintf(w, "%dx%d text mode, %d cells at %#x\n", vga.Cols, vga.Rows, vga.Rows*vga.Cols, vga.PhysAddr)
	},
	func(w *vga.Writer) {
		w.WriteString("every cell is a glyph byte and an attribute byte\n")
	},
	func(w *vga.Writer) {
		w.SetColor(vga.LightGreen, vga.Black)
		fmt.Fprintf(w, "formatted output works too: %d == %#x == %b\n", 42, 42, 42)
	},
	func(w *vga.Writer) {
		w.SetColor(vga.LightGray, vga.Black)
		w.WriteString("bytes outside printable ASCII render as the fallback glyph: \x01\x02\x03\n")
	},
}

// Step prints the next banner line on each beat and reports false once the
// banner is complete.
func (d *Demo) Step(tick uint64) bool {
	if d.line >= len(script) {
		return false
	}
	if tick%beatTicks != 0 {
		return true
	}
	script[d.line](d.w)
	d.line++
	return true
}
