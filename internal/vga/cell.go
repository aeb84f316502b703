package vga

// Cell is one character cell of the text buffer: a glyph byte from the
// active code page plus the attribute byte that colors it. In device memory
// a cell occupies exactly two bytes, glyph at the lower address.
type Cell struct {
	Char byte
	Attr ColorCode
}

// pack encodes the cell as the 16-bit word the adapter stores: attribute in
// the high byte, glyph in the low byte. On the little-endian machines VGA
// hardware lives in, that puts the glyph byte first in memory.
func (c Cell) pack() uint16 {
	return uint16(c.Attr)<<8 | uint16(c.Char)
}

// unpack decodes a 16-bit cell word back into its glyph and attribute.
func unpack(v uint16) Cell {
	return Cell{
		Char: byte(v),
		Attr: ColorCode(v >> 8),
	}
}
