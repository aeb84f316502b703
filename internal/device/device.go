// Package device provides the memory the vga driver writes into: a
// simulated adapter held in ordinary RAM, a frame codec for persisting raw
// cell words, and, on Linux, the real legacy text window mapped from
// /dev/mem.
package device

import (
	"fmt"

	"github.com/vovakirdan/vgasim/internal/vga"
)

// Sim emulates the character memory of a VGA text adapter in ordinary RAM.
// The driver writes through Buffer while the display side reads frames with
// Snapshot, the same two-party arrangement as real hardware.
type Sim struct {
	cells []uint16
	buf   *vga.Buffer
}

// NewSim allocates a zeroed device.
func NewSim() *Sim {
	cells := make([]uint16, vga.Rows*vga.Cols)
	buf, err := vga.MapRegion(cells)
	if err != nil {
		panic(fmt.Sprintf("device: %v", err))
	}
	return &Sim{cells: cells, buf: buf}
}

// Buffer returns the driver-side view of the device memory.
func (s *Sim) Buffer() *vga.Buffer {
	return s.buf
}

// Region returns the raw cell words backing the device.
func (s *Sim) Region() []uint16 {
	return s.cells
}

// Snapshot copies the current frame into dst, which must hold
// vga.Rows*vga.Cols words. This is the display-side scanout.
func (s *Sim) Snapshot(dst []uint16) {
	s.buf.Snapshot(dst)
}
