package vga

import (
	"strings"
	"testing"
)

func TestWriterPrintableText(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	w.WriteString("Hello, world!")

	text := "Hello, world!"
	for i := 0; i < len(text); i++ {
		cell := buf.ReadCell(Rows-1, i)
		if cell.Char != text[i] {
			t.Errorf("cell %d glyph = %q, expected %q", i, cell.Char, text[i])
		}
		if cell.Attr != DefaultAttr {
			t.Errorf("cell %d attr = 0x%02x, expected 0x%02x", i, uint8(cell.Attr), uint8(DefaultAttr))
		}
	}
	if w.Column() != len(text) {
		t.Errorf("Column() = %d, expected %d", w.Column(), len(text))
	}
}

func TestWriterFallbackGlyph(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	// Printable ASCII and newline pass; everything else becomes the
	// fallback glyph. 0x20 and 0x7e are the range edges, 0x1f and 0x7f
	// sit just outside.
	w.WriteString(string([]byte{'a', 0x1f, ' ', 0x7f, '~', 0x00, 0xff}))

	want := []byte{'a', FallbackGlyph, ' ', FallbackGlyph, '~', FallbackGlyph, FallbackGlyph}
	for i, c := range want {
		if got := buf.ReadCell(Rows-1, i).Char; got != c {
			t.Errorf("cell %d glyph = 0x%02x, expected 0x%02x", i, got, c)
		}
	}
}

func TestWriterNewlineResetsColumn(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	w.WriteString("abc")
	if w.Column() != 3 {
		t.Errorf("Column() = %d, expected 3", w.Column())
	}

	w.WriteString("\n")
	if w.Column() != 0 {
		t.Errorf("Column() after newline = %d, expected 0", w.Column())
	}
	if !strings.HasPrefix(buf.Row(Rows-2), "abc") {
		t.Errorf("Row(%d) = %q, expected to start with %q", Rows-2, buf.Row(Rows-2), "abc")
	}
}

func TestWriterScrollsBeforeOverflow(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	// Fill the bottom row to the last column. No scroll yet: the row is
	// exactly full.
	fullRow := strings.Repeat("A", Cols-1) + "B"
	w.WriteString(fullRow)
	if w.Column() != Cols {
		t.Errorf("Column() = %d, expected %d", w.Column(), Cols)
	}
	if buf.Row(Rows-1) != fullRow {
		t.Errorf("Row(%d) = %q, expected %q", Rows-1, buf.Row(Rows-1), fullRow)
	}

	// The next glyph does not fit: the grid scrolls first, then the glyph
	// lands at column zero of the fresh bottom row.
	w.WriteString("C")
	if w.Column() != 1 {
		t.Errorf("Column() after overflow = %d, expected 1", w.Column())
	}
	if buf.Row(Rows-2) != fullRow {
		t.Errorf("Row(%d) = %q, expected %q", Rows-2, buf.Row(Rows-2), fullRow)
	}
	wantBottom := "C" + strings.Repeat(" ", Cols-1)
	if buf.Row(Rows-1) != wantBottom {
		t.Errorf("Row(%d) = %q, expected %q", Rows-1, buf.Row(Rows-1), wantBottom)
	}
}

func TestWriterWrapsLongText(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	text := make([]byte, Cols+20)
	for i := range text {
		text[i] = 'a' + byte(i%26)
	}
	w.WriteString(string(text))

	if buf.Row(Rows-2) != string(text[:Cols]) {
		t.Errorf("Row(%d) = %q, expected first %d bytes", Rows-2, buf.Row(Rows-2), Cols)
	}
	wantBottom := string(text[Cols:]) + strings.Repeat(" ", Cols-20)
	if buf.Row(Rows-1) != wantBottom {
		t.Errorf("Row(%d) = %q, expected %q", Rows-1, buf.Row(Rows-1), wantBottom)
	}
	if w.Column() != 20 {
		t.Errorf("Column() = %d, expected 20", w.Column())
	}
}

func TestWriterTopRowFallsOff(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	w.WriteString("oldest\n")
	w.WriteString("middle\n")

	// Push "oldest" to the top row.
	for i := 0; i < Rows-3; i++ {
		w.WriteString("\n")
	}
	if !strings.HasPrefix(buf.Row(0), "oldest") {
		t.Errorf("Row(0) = %q, expected to start with %q", buf.Row(0), "oldest")
	}

	// One more newline and it is gone for good.
	w.WriteString("\n")
	for row := 0; row < Rows; row++ {
		if strings.Contains(buf.Row(row), "oldest") {
			t.Errorf("Row(%d) still contains %q after scrolling off", row, "oldest")
		}
	}
	if !strings.HasPrefix(buf.Row(0), "middle") {
		t.Errorf("Row(0) = %q, expected to start with %q", buf.Row(0), "middle")
	}
}

func TestWriterTextStaysOnBottomRow(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	for i := 0; i < Rows-1; i++ {
		w.WriteString("\n")
	}
	w.WriteString("bottom")

	if !strings.HasPrefix(buf.Row(Rows-1), "bottom") {
		t.Errorf("Row(%d) = %q, expected to start with %q", Rows-1, buf.Row(Rows-1), "bottom")
	}

	// No glyph ever lands above the bottom row: the rows above hold only
	// scrolled newline clears, with the untouched zero row on top.
	if got, zero := buf.Row(0), strings.Repeat("\x00", Cols); got != zero {
		t.Errorf("Row(0) = %q, expected untouched zero cells", got)
	}
	blank := strings.Repeat(" ", Cols)
	for row := 1; row < Rows-1; row++ {
		if got := buf.Row(row); got != blank {
			t.Errorf("Row(%d) = %q, expected all spaces", row, got)
		}
	}
}

func TestWriterScrollClearsWithCurrentColor(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	w.SetColor(Red, Blue)
	w.WriteString("\n")

	want := Cell{Char: ' ', Attr: NewColorCode(Red, Blue)}
	for _, col := range []int{0, Cols / 2, Cols - 1} {
		if got := buf.ReadCell(Rows-1, col); got != want {
			t.Errorf("ReadCell(%d, %d) = %+v, expected %+v", Rows-1, col, got, want)
		}
	}
}

func TestWriterSetColor(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	w.SetColor(LightCyan, DarkGray)
	if w.Attr() != NewColorCode(LightCyan, DarkGray) {
		t.Errorf("Attr() = 0x%02x, expected 0x%02x", uint8(w.Attr()), uint8(NewColorCode(LightCyan, DarkGray)))
	}

	w.WriteString("x")
	if got := buf.ReadCell(Rows-1, 0).Attr; got != NewColorCode(LightCyan, DarkGray) {
		t.Errorf("glyph attr = 0x%02x, expected 0x%02x", uint8(got), uint8(NewColorCode(LightCyan, DarkGray)))
	}
}

func TestWriterNeverFails(t *testing.T) {
	_, buf := testRegion(t)
	w := NewWriter(buf)

	n, err := w.Write([]byte("some bytes\nwith\x00junk"))
	if err != nil {
		t.Errorf("Write() error = %v, expected nil", err)
	}
	if n != 20 {
		t.Errorf("Write() = %d, expected 20", n)
	}

	n, err = w.WriteString("more")
	if err != nil {
		t.Errorf("WriteString() error = %v, expected nil", err)
	}
	if n != 4 {
		t.Errorf("WriteString() = %d, expected 4", n)
	}

	if err := w.WriteByte('\n'); err != nil {
		t.Errorf("WriteByte() error = %v, expected nil", err)
	}
}
