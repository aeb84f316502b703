package hello

import (
	"strings"
	"testing"

	"github.com/vovakirdan/vgasim/internal/device"
	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/vga"
)

func TestRegistered(t *testing.T) {
	if !registry.Exists("hello") {
		t.Error("hello demo is not registered")
	}
}

func TestBannerCompletes(t *testing.T) {
	sim := device.NewSim()
	d := New()
	d.Reset(vga.NewWriter(sim.Buffer()))

	var tick uint64
	for d.Step(tick) {
		tick++
		if tick > 1000 {
			t.Fatal("banner never finished")
		}
	}

	rows := make([]string, vga.Rows)
	for row := 0; row < vga.Rows; row++ {
		rows[row] = sim.Buffer().Row(row)
	}
	screen := strings.Join(rows, "\n")

	if !strings.Contains(screen, "Hello World!") {
		t.Errorf("screen is missing the banner line:\n%q", screen)
	}
	if !strings.Contains(screen, "80x25 text mode, 2000 cells") {
		t.Errorf("screen is missing the mode line:\n%q", screen)
	}
	if !strings.Contains(screen, "\xfe\xfe\xfe") {
		t.Errorf("screen is missing the fallback glyphs:\n%q", screen)
	}
}

func TestResetRewinds(t *testing.T) {
	sim := device.NewSim()
	d := New()
	d.Reset(vga.NewWriter(sim.Buffer()))

	for tick := uint64(0); tick < 100; tick++ {
		d.Step(tick)
	}

	d.Reset(vga.NewWriter(sim.Buffer()))
	if !d.Step(0) {
		t.Error("Step(0) after Reset() = false, expected the banner to restart")
	}
}
