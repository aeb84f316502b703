package device

import (
	"testing"

	"github.com/vovakirdan/vgasim/internal/vga"
)

func TestSimDriverAndScanout(t *testing.T) {
	sim := NewSim()

	w := vga.NewWriter(sim.Buffer())
	if _, err := w.WriteString("scanout"); err != nil {
		t.Fatalf("WriteString() failed: %v", err)
	}

	frame := make([]uint16, vga.Rows*vga.Cols)
	sim.Snapshot(frame)

	// The driver wrote on the bottom row; the scanout sees the same words
	// the device holds.
	for i, c := range []byte("scanout") {
		idx := (vga.Rows-1)*vga.Cols + i
		if byte(frame[idx]) != c {
			t.Errorf("frame cell %d glyph = %q, expected %q", idx, byte(frame[idx]), c)
		}
		if frame[idx] != sim.Region()[idx] {
			t.Errorf("frame cell %d = 0x%04x, device holds 0x%04x", idx, frame[idx], sim.Region()[idx])
		}
	}
}

func TestFrameCodecRoundTrip(t *testing.T) {
	sim := NewSim()
	w := vga.NewWriter(sim.Buffer())
	w.SetColor(vga.White, vga.Blue)
	if _, err := w.WriteString("frame codec\n"); err != nil {
		t.Fatalf("WriteString() failed: %v", err)
	}

	data := EncodeFrame(sim.Region())
	if len(data) != FrameBytes {
		t.Fatalf("EncodeFrame() produced %d bytes, expected %d", len(data), FrameBytes)
	}

	cells, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() failed: %v", err)
	}
	for i := range cells {
		if cells[i] != sim.Region()[i] {
			t.Fatalf("cell %d = 0x%04x, expected 0x%04x", i, cells[i], sim.Region()[i])
		}
	}
}

func TestDecodeFrameRejectsBadSize(t *testing.T) {
	if _, err := DecodeFrame(make([]byte, 10)); err == nil {
		t.Error("DecodeFrame() with a truncated frame should fail")
	}
	if _, err := DecodeFrame(nil); err == nil {
		t.Error("DecodeFrame(nil) should fail")
	}
}
