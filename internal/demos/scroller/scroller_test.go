package scroller

import (
	"strings"
	"testing"

	"github.com/vovakirdan/vgasim/internal/device"
	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/vga"
)

func TestRegistered(t *testing.T) {
	if !registry.Exists("scroller") {
		t.Error("scroller demo is not registered")
	}
}

func TestNeverFinishes(t *testing.T) {
	sim := device.NewSim()
	d := New()
	d.Reset(vga.NewWriter(sim.Buffer()))

	for tick := uint64(0); tick < 500; tick++ {
		if !d.Step(tick) {
			t.Fatalf("Step(%d) = false, the scroller should run forever", tick)
		}
	}
}

func TestOldLinesScrollOff(t *testing.T) {
	sim := device.NewSim()
	d := New()
	d.Reset(vga.NewWriter(sim.Buffer()))

	// Beats land on even ticks, so 200 ticks print lines 0000 through 0099.
	for tick := uint64(0); tick < 200; tick++ {
		d.Step(tick)
	}

	// Each line ends in a newline, so the newest line sits one above the
	// blank bottom row and the screen holds exactly the last 24 lines.
	if got := sim.Buffer().Row(vga.Rows - 2); !strings.HasPrefix(got, "line 0099") {
		t.Errorf("Row(%d) = %q, expected the newest line", vga.Rows-2, got)
	}
	if got := sim.Buffer().Row(0); !strings.HasPrefix(got, "line 0076") {
		t.Errorf("Row(0) = %q, expected the oldest surviving line", got)
	}

	rows := make([]string, vga.Rows)
	for row := 0; row < vga.Rows; row++ {
		rows[row] = sim.Buffer().Row(row)
	}
	if screen := strings.Join(rows, "\n"); strings.Contains(screen, "line 0000") {
		t.Error("line 0000 is still on screen, expected it to have scrolled off")
	}
}

func TestRowColorsCycle(t *testing.T) {
	sim := device.NewSim()
	d := New()
	d.Reset(vga.NewWriter(sim.Buffer()))

	for tick := uint64(0); tick < 200; tick++ {
		d.Step(tick)
	}

	// Line 0099 was drawn with rowColors[99 % len(rowColors)].
	want := vga.NewColorCode(rowColors[99%len(rowColors)], vga.Black)
	if got := sim.Buffer().ReadCell(vga.Rows-2, 0).Attr; got != want {
		t.Errorf("newest line attr = 0x%02x, expected 0x%02x", uint8(got), uint8(want))
	}
}
