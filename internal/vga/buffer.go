// Package vga models the classic VGA text mode: a fixed 80x25 grid of
// two-byte character cells living at physical address 0xB8000, driven
// through a column-tracking writer that scrolls the grid upward one line at
// a time. The package has no external dependencies so the same driver code
// can run against real adapter memory, an mmap'd window, or an in-memory
// device.
package vga

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"unsafe"
)

// Text mode geometry. The grid is fixed by the hardware mode; there is no
// runtime resizing.
const (
	Rows = 25
	Cols = 80
)

// PhysAddr is the physical address of the text-mode frame buffer.
const PhysAddr uintptr = 0xb8000

// Buffer is the character grid overlaid on device memory. Cell access is
// atomic, but sync/atomic has no 16-bit operations, so every load and store
// goes through the aligned 32-bit word covering the cell's pair; writes
// merge their half in with a compare-and-swap. Every access reaches memory,
// is never torn, and is safe against the display side observing the same
// memory concurrently. Cell pairs sit on 4-byte boundaries because the
// region itself must be 4-byte aligned.
//
// Row and column bounds are the caller's contract. The writer below stays in
// bounds by construction; direct callers must do the same.
type Buffer struct {
	cells []uint16
}

// MapPhysical overlays the grid on raw memory at the given physical address.
// Only valid where that address is identity-mapped, such as a freestanding
// target or a deliberately crafted test mapping. The address must be 4-byte
// aligned; the legacy window at PhysAddr is.
func MapPhysical(addr uintptr) *Buffer {
	return &Buffer{
		cells: unsafe.Slice((*uint16)(unsafe.Pointer(addr)), Rows*Cols),
	}
}

// MapRegion overlays the grid on a caller-supplied cell region, such as a
// simulated device or an mmap'd window. The region must hold exactly
// Rows*Cols cells and start on a 4-byte boundary.
func MapRegion(cells []uint16) (*Buffer, error) {
	if len(cells) != Rows*Cols {
		return nil, fmt.Errorf("vga: region holds %d cells, need %d", len(cells), Rows*Cols)
	}
	if uintptr(unsafe.Pointer(&cells[0]))%4 != 0 {
		return nil, errors.New("vga: region is not 4-byte aligned")
	}
	return &Buffer{cells: cells}, nil
}

// word returns the aligned 32-bit word holding cell i, and which half of it
// the cell is.
func (b *Buffer) word(i int) (*uint32, int) {
	return (*uint32)(unsafe.Pointer(&b.cells[i&^1])), i & 1
}

// halves views a 32-bit cell pair as its two cell words, in address order
// whatever the host byte order.
func halves(w *uint32) *[2]uint16 {
	return (*[2]uint16)(unsafe.Pointer(w))
}

// ReadCell returns the cell at the given position.
func (b *Buffer) ReadCell(row, col int) Cell {
	return unpack(b.load(row*Cols + col))
}

// WriteCell stores the cell at the given position.
func (b *Buffer) WriteCell(row, col int, c Cell) {
	b.store(row*Cols+col, c.pack())
}

// load reads one cell word out of its pair.
func (b *Buffer) load(i int) uint16 {
	word, half := b.word(i)
	w := atomic.LoadUint32(word)
	return halves(&w)[half]
}

// store merges one cell word into its pair. The compare-and-swap retries
// when the neighbouring cell changes between the read and the write, so
// neither cell's update is ever lost.
func (b *Buffer) store(i int, v uint16) {
	word, half := b.word(i)
	for {
		old := atomic.LoadUint32(word)
		next := old
		halves(&next)[half] = v
		if atomic.CompareAndSwapUint32(word, old, next) {
			return
		}
	}
}

// Fill stores the same cell in every position of the grid, a pair at a time.
func (b *Buffer) Fill(c Cell) {
	var w uint32
	halves(&w)[0] = c.pack()
	halves(&w)[1] = c.pack()
	for i := 0; i < len(b.cells); i += 2 {
		word, _ := b.word(i)
		atomic.StoreUint32(word, w)
	}
}

// Snapshot copies the current cell words into dst, which must hold Rows*Cols
// elements. Cells are read a pair at a time; the copy as a whole is not a
// single point-in-time picture, the same way a real scanout races the CPU.
func (b *Buffer) Snapshot(dst []uint16) {
	for i := 0; i < len(b.cells); i += 2 {
		word, _ := b.word(i)
		w := atomic.LoadUint32(word)
		dst[i] = halves(&w)[0]
		dst[i+1] = halves(&w)[1]
	}
}

// Row returns the glyph bytes of one row as a string. Attributes are
// dropped; this is a debugging and test helper.
func (b *Buffer) Row(row int) string {
	var sb strings.Builder
	sb.Grow(Cols)
	for col := 0; col < Cols; col++ {
		sb.WriteByte(b.ReadCell(row, col).Char)
	}
	return sb.String()
}
