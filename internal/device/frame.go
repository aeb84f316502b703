package device

import (
	"encoding/binary"
	"fmt"

	"github.com/vovakirdan/vgasim/internal/vga"
)

// FrameBytes is the serialized size of one full frame: one little-endian
// 16-bit word per cell.
const FrameBytes = vga.Rows * vga.Cols * 2

// EncodeFrame serializes cell words for storage.
func EncodeFrame(cells []uint16) []byte {
	data := make([]byte, 0, len(cells)*2)
	for _, w := range cells {
		data = binary.LittleEndian.AppendUint16(data, w)
	}
	return data
}

// DecodeFrame parses a stored frame back into cell words. The data must
// describe exactly one full grid.
func DecodeFrame(data []byte) ([]uint16, error) {
	if len(data) != FrameBytes {
		return nil, fmt.Errorf("device: frame is %d bytes, need %d", len(data), FrameBytes)
	}
	cells := make([]uint16, vga.Rows*vga.Cols)
	for i := range cells {
		cells[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return cells, nil
}
