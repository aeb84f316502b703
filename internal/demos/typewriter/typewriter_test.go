package typewriter

import (
	"strings"
	"testing"

	"github.com/vovakirdan/vgasim/internal/device"
	"github.com/vovakirdan/vgasim/internal/vga"
)

func TestTypesWholeText(t *testing.T) {
	sim := device.NewSim()
	d := New()
	d.Reset(vga.NewWriter(sim.Buffer()))

	var tick uint64
	for d.Step(tick) {
		tick++
		if tick > uint64(len(text))+10 {
			t.Fatal("typewriter never finished")
		}
	}

	rows := make([]string, vga.Rows)
	for row := 0; row < vga.Rows; row++ {
		rows[row] = sim.Buffer().Row(row)
	}
	screen := strings.Join(rows, "\n")

	if !strings.Contains(screen, "The quick brown fox") {
		t.Errorf("screen is missing the pangram:\n%q", screen)
	}

	// The UTF-8 accent is two bytes, so it became two fallback glyphs.
	if !strings.Contains(screen, "caf\xfe\xfe") {
		t.Errorf("screen is missing the substituted accent:\n%q", screen)
	}

	if !strings.Contains(screen, "done.") {
		t.Errorf("screen is missing the closing line:\n%q", screen)
	}
}

func TestParagraphWraps(t *testing.T) {
	sim := device.NewSim()
	d := New()
	d.Reset(vga.NewWriter(sim.Buffer()))

	var tick uint64
	for d.Step(tick) {
		tick++
	}

	// The pangram paragraph carries no newlines, so the writer must have
	// broken it at the right edge: some row is filled through the last
	// column with a letter mid-word.
	full := false
	for row := 0; row < vga.Rows; row++ {
		last := sim.Buffer().Row(row)[vga.Cols-1]
		if last != ' ' && last != 0 {
			full = true
			break
		}
	}
	if !full {
		t.Error("no row is filled to the right edge; the paragraph never wrapped")
	}
}
