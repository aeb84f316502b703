// Package typewriter types a canned text one byte per tick, showing line
// wrap at column 80 and the fallback glyph for bytes the driver refuses.
package typewriter

import (
	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/vga"
)

// text is typed byte by byte. The long paragraph has no newlines, so the
// writer wraps it at the right edge; the accented and control bytes come
// out as the fallback glyph.
const text = "TYPEWRITER\n\n" +
	"The quick brown fox jumps over the lazy dog. " +
	"Sphinx of black quartz, judge my vow. " +
	"Pack my box with five dozen liquor jugs. " +
	"How vexingly quick daft zebras jump. " +
	"The five boxing wizards jump quickly.\n\n" +
	"This driver is byte oriented: caf\xc3\xa9 loses its accent, " +
	"a bell byte \x07 makes no sound, and a tab \t is just another stranger.\n\n" +
	"done.\n"

// Demo types the canned text one byte per tick.
type Demo struct {
	w   *vga.Writer
	pos int
}

// New creates the typewriter demo.
func New() *Demo {
	return &Demo{}
}

func init() {
	registry.Register("typewriter", func() registry.Demo {
		return New()
	})
}

// ID returns the demo identifier.
func (d *Demo) ID() string { return "typewriter" }

// Title returns the display name.
func (d *Demo) Title() string { return "Typewriter" }

// Reset rewinds to the first byte.
func (d *Demo) Reset(w *vga.Writer) {
	d.w = w
	d.pos = 0
	w.SetColor(vga.LightGray, vga.Black)
}

// Step types one byte and reports false once the text is out.
func (d *Demo) Step(tick uint64) bool {
	if d.pos >= len(text) {
		return false
	}
	d.w.WriteString(text[d.pos : d.pos+1])
	d.pos++
	return true
}
