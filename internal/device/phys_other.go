//go:build !linux

package device

import (
	"errors"

	"github.com/vovakirdan/vgasim/internal/vga"
)

// Phys is only usable on Linux, where /dev/mem exposes the physical address
// space. This stub keeps the rest of the toolkit building elsewhere.
type Phys struct{}

// OpenPhysical always fails on this platform.
func OpenPhysical(path string, addr uintptr) (*Phys, error) {
	return nil, errors.New("device: physical mapping requires linux")
}

// Buffer is never reachable on this platform.
func (p *Phys) Buffer() *vga.Buffer {
	return nil
}

// Region is never reachable on this platform.
func (p *Phys) Region() []uint16 {
	return nil
}

// Snapshot is never reachable on this platform.
func (p *Phys) Snapshot(dst []uint16) {}

// Close is a no-op.
func (p *Phys) Close() error {
	return nil
}
