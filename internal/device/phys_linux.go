//go:build linux

package device

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/vovakirdan/vgasim/internal/vga"
)

// Phys is the real adapter's text window mapped from physical memory.
// Writing through its Buffer shows up on the attached monitor.
type Phys struct {
	f     *os.File
	mem   []byte
	cells []uint16
	buf   *vga.Buffer
}

// OpenPhysical maps the text window at addr from a physical memory device,
// normally /dev/mem. The mapping needs a page-aligned address; the legacy
// window at vga.PhysAddr is.
func OpenPhysical(path string, addr uintptr) (*Phys, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("device: cannot open %s: %w", path, err)
	}

	mem, err := unix.Mmap(int(f.Fd()), int64(addr), vga.Rows*vga.Cols*2,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("device: cannot map %s at %#x: %w", path, addr, err)
	}

	cells := unsafe.Slice((*uint16)(unsafe.Pointer(&mem[0])), vga.Rows*vga.Cols)
	buf, err := vga.MapRegion(cells)
	if err != nil {
		_ = unix.Munmap(mem)
		f.Close()
		return nil, err
	}

	return &Phys{f: f, mem: mem, cells: cells, buf: buf}, nil
}

// Buffer returns the driver-side view of the mapped window.
func (p *Phys) Buffer() *vga.Buffer {
	return p.buf
}

// Region returns the mapped cell words.
func (p *Phys) Region() []uint16 {
	return p.cells
}

// Snapshot copies the current frame into dst.
func (p *Phys) Snapshot(dst []uint16) {
	p.buf.Snapshot(dst)
}

// Close unmaps the window and closes the memory device.
func (p *Phys) Close() error {
	if err := unix.Munmap(p.mem); err != nil {
		p.f.Close()
		return fmt.Errorf("device: cannot unmap: %w", err)
	}
	return p.f.Close()
}
