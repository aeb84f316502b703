package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestRecordingRoundTrip(t *testing.T) {
	store := testStore(t)

	id, err := store.BeginRecording("hello", "alice")
	if err != nil {
		t.Fatalf("BeginRecording() failed: %v", err)
	}

	// Append three frames with distinct payloads.
	for seq := 0; seq < 3; seq++ {
		cells := []byte{byte(seq), 0x0e, byte(seq + 1), 0x0e}
		if err := store.AppendFrame(id, seq, int64(seq*33), cells); err != nil {
			t.Fatalf("AppendFrame(%d) failed: %v", seq, err)
		}
	}

	if err := store.FinishRecording(id); err != nil {
		t.Fatalf("FinishRecording() failed: %v", err)
	}

	frames, err := store.Frames(id)
	if err != nil {
		t.Fatalf("Frames() failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if f.Seq != i {
			t.Errorf("frame %d has seq %d, expected %d", i, f.Seq, i)
		}
		if f.CapturedMS != int64(i*33) {
			t.Errorf("frame %d captured at %dms, expected %dms", i, f.CapturedMS, i*33)
		}
		if len(f.Cells) != 4 || f.Cells[0] != byte(i) {
			t.Errorf("frame %d cells = %v, expected payload starting with %d", i, f.Cells, i)
		}
	}

	info, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if info == nil {
		t.Fatal("Recording() returned nil for an existing recording")
	}
	if info.DemoID != "hello" {
		t.Errorf("DemoID = %q, expected %q", info.DemoID, "hello")
	}
	if info.User != "alice" {
		t.Errorf("User = %q, expected %q", info.User, "alice")
	}
	if !info.Finished {
		t.Error("Finished = false after FinishRecording()")
	}
	if info.Frames != 3 {
		t.Errorf("Frames = %d, expected 3", info.Frames)
	}
	if info.DurationMS != 66 {
		t.Errorf("DurationMS = %d, expected 66", info.DurationMS)
	}
}

func TestRecordingsNewestFirst(t *testing.T) {
	store := testStore(t)

	first, err := store.BeginRecording("hello", "")
	if err != nil {
		t.Fatalf("BeginRecording() failed: %v", err)
	}
	second, err := store.BeginRecording("scroller", "")
	if err != nil {
		t.Fatalf("BeginRecording() failed: %v", err)
	}

	infos, err := store.Recordings(10)
	if err != nil {
		t.Fatalf("Recordings() failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 recordings, got %d", len(infos))
	}

	// Same-second timestamps fall back to the ID tiebreak: newest first.
	if infos[0].ID != second || infos[1].ID != first {
		t.Errorf("Recordings() order = [%d %d], expected [%d %d]",
			infos[0].ID, infos[1].ID, second, first)
	}

	// A recording with no frames aggregates to zero.
	if infos[0].Frames != 0 || infos[0].DurationMS != 0 {
		t.Errorf("empty recording aggregates = (%d frames, %dms), expected zeros",
			infos[0].Frames, infos[0].DurationMS)
	}
}

func TestRecordingsLimit(t *testing.T) {
	store := testStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.BeginRecording("typewriter", ""); err != nil {
			t.Fatalf("BeginRecording() failed: %v", err)
		}
	}

	infos, err := store.Recordings(3)
	if err != nil {
		t.Fatalf("Recordings() failed: %v", err)
	}
	if len(infos) != 3 {
		t.Errorf("Expected 3 recordings with limit, got %d", len(infos))
	}
}

func TestRecordingMissing(t *testing.T) {
	store := testStore(t)

	info, err := store.Recording(12345)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if info != nil {
		t.Errorf("Recording() = %+v, expected nil for a missing ID", info)
	}
}

func TestDeleteRecording(t *testing.T) {
	store := testStore(t)

	id, err := store.BeginRecording("colors", "")
	if err != nil {
		t.Fatalf("BeginRecording() failed: %v", err)
	}
	if err := store.AppendFrame(id, 0, 0, []byte{1, 2}); err != nil {
		t.Fatalf("AppendFrame() failed: %v", err)
	}

	if err := store.DeleteRecording(id); err != nil {
		t.Fatalf("DeleteRecording() failed: %v", err)
	}

	info, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if info != nil {
		t.Error("Recording still present after DeleteRecording()")
	}

	frames, err := store.Frames(id)
	if err != nil {
		t.Fatalf("Frames() failed: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("Expected 0 frames after delete, got %d", len(frames))
	}
}

func TestAppendFrameDuplicateSeq(t *testing.T) {
	store := testStore(t)

	id, err := store.BeginRecording("hello", "")
	if err != nil {
		t.Fatalf("BeginRecording() failed: %v", err)
	}
	if err := store.AppendFrame(id, 0, 0, []byte{1}); err != nil {
		t.Fatalf("AppendFrame() failed: %v", err)
	}

	if err := store.AppendFrame(id, 0, 10, []byte{2}); err == nil {
		t.Error("AppendFrame() with a duplicate seq should fail")
	}
}

// testStore opens a store on a throwaway database.
func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
