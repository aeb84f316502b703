package vga

// FallbackGlyph is stored in place of any byte outside printable ASCII and
// newline. Code page 437 renders 0xFE as the filled square.
const FallbackGlyph byte = 0xfe

// DefaultAttr is the attribute a fresh Writer starts with: yellow text on a
// black background, the driver's traditional boot colors.
const DefaultAttr = ColorCode(uint8(Black)<<4 | uint8(Yellow))

// Writer appends text to the bottom row of a Buffer. The cursor never
// leaves the bottom row: a newline, or running out of columns, scrolls the
// whole grid up one line and the top row falls off. Rendered output
// therefore always reads oldest at the top.
//
// A Writer is not safe for concurrent use. Share output across goroutines
// through the package-level console instead.
type Writer struct {
	column int
	attr   ColorCode
	buf    *Buffer
}

// NewWriter creates a writer over buf, starting at column zero with
// DefaultAttr.
func NewWriter(buf *Buffer) *Writer {
	return &Writer{attr: DefaultAttr, buf: buf}
}

// SetColor changes the attribute used for subsequent output. Rows cleared
// by scrolling also take the current attribute.
func (w *Writer) SetColor(fg, bg Color) {
	w.attr = NewColorCode(fg, bg)
}

// Attr returns the attribute currently applied to output.
func (w *Writer) Attr() ColorCode {
	return w.attr
}

// Column returns the cursor column on the bottom row.
func (w *Writer) Column() int {
	return w.column
}

// WriteByte stores one glyph byte at the cursor. A newline prints nothing
// and scrolls; any other byte that would not fit on the row triggers the
// same scroll before it is stored. The glyph is stored as-is, without the
// printable filter applied by WriteString and Write.
//
// The error is always nil; the signature matches io.ByteWriter.
func (w *Writer) WriteByte(c byte) error {
	w.writeByte(c)
	return nil
}

// WriteString writes s byte by byte. Printable ASCII (0x20 through 0x7e)
// and newline pass through; every other byte is stored as FallbackGlyph.
//
// The returned count is always len(s) with a nil error; the signature
// matches io.StringWriter.
func (w *Writer) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		w.writeGlyph(s[i])
	}
	return len(s), nil
}

// Write writes p under the same byte filter as WriteString, so the writer
// can sit behind fmt. The returned count is always len(p) with a nil error.
func (w *Writer) Write(p []byte) (int, error) {
	for _, c := range p {
		w.writeGlyph(c)
	}
	return len(p), nil
}

// printable reports whether c is inside the ASCII range every code page
// glyph table covers.
func printable(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

// writeGlyph forwards printable bytes and newline, substituting
// FallbackGlyph for everything else.
func (w *Writer) writeGlyph(c byte) {
	if c == '\n' || printable(c) {
		w.writeByte(c)
		return
	}
	w.writeByte(FallbackGlyph)
}

// writeByte places c at the cursor, scrolling first when the row is full.
func (w *Writer) writeByte(c byte) {
	if c == '\n' {
		w.newLine()
		return
	}
	if w.column >= Cols {
		w.newLine()
	}
	w.buf.WriteCell(Rows-1, w.column, Cell{Char: c, Attr: w.attr})
	w.column++
}

// newLine shifts every row up by one, dropping the top row, then clears the
// bottom row and resets the cursor column.
func (w *Writer) newLine() {
	for row := 1; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			w.buf.WriteCell(row-1, col, w.buf.ReadCell(row, col))
		}
	}
	w.clearRow(Rows - 1)
	w.column = 0
}

// clearRow fills a row with spaces in the writer's current attribute.
func (w *Writer) clearRow(row int) {
	blank := Cell{Char: ' ', Attr: w.attr}
	for col := 0; col < Cols; col++ {
		w.buf.WriteCell(row, col, blank)
	}
}
