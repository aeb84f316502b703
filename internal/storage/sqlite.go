// Package storage provides SQLite-based persistence for recorded frame
// streams. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for recording persistence.
type Store struct {
	db *sql.DB
}

// RecordingInfo describes one stored recording. Frames and DurationMS are
// aggregated from the frame rows: the count and the capture time of the
// last frame.
type RecordingInfo struct {
	ID         int64
	DemoID     string
	User       string
	StartedAt  time.Time
	Finished   bool
	Frames     int
	DurationMS int64
}

// Frame is one stored frame of a recording: the sequence number, the
// capture time in milliseconds since the recording started, and the encoded
// cell words.
type Frame struct {
	Seq        int
	CapturedMS int64
	Cells      []byte
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			demo_id TEXT NOT NULL,
			user TEXT NOT NULL DEFAULT '',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_demo_id ON recordings(demo_id);
		CREATE INDEX IF NOT EXISTS idx_recordings_recent ON recordings(started_at DESC);

		CREATE TABLE IF NOT EXISTS frames (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recording_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			captured_ms INTEGER NOT NULL,
			cells BLOB NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_frames_recording_seq ON frames(recording_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRecording creates a new recording row and returns its ID.
func (s *Store) BeginRecording(demoID, user string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO recordings (demo_id, user) VALUES (?, ?)",
		demoID, user,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin recording: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// AppendFrame stores one captured frame. Sequence numbers must be unique
// within a recording; the caller assigns them in capture order.
func (s *Store) AppendFrame(recordingID int64, seq int, capturedMS int64, cells []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO frames (recording_id, seq, captured_ms, cells) VALUES (?, ?, ?, ?)",
		recordingID, seq, capturedMS, cells,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append frame: %w", err)
	}
	return nil
}

// FinishRecording marks a recording as complete. Unfinished recordings are
// still replayable; the flag only records that the capture ended cleanly.
func (s *Store) FinishRecording(recordingID int64) error {
	_, err := s.db.Exec(
		"UPDATE recordings SET finished = 1 WHERE id = ?",
		recordingID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish recording: %w", err)
	}
	return nil
}

// Recordings retrieves the most recent recordings with their frame counts
// and durations, newest first.
func (s *Store) Recordings(limit int) ([]RecordingInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.demo_id, r.user, r.started_at, r.finished,
		        COUNT(f.id), COALESCE(MAX(f.captured_ms), 0)
		 FROM recordings r
		 LEFT JOIN frames f ON f.recording_id = r.id
		 GROUP BY r.id
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var infos []RecordingInfo
	for rows.Next() {
		var info RecordingInfo
		var startedAt any
		var finished int
		if err := rows.Scan(&info.ID, &info.DemoID, &info.User, &startedAt,
			&finished, &info.Frames, &info.DurationMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.StartedAt = parseTime(startedAt)
		info.Finished = finished != 0
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// Recording retrieves one recording by ID. Returns nil without error when
// the recording does not exist.
func (s *Store) Recording(id int64) (*RecordingInfo, error) {
	var info RecordingInfo
	var startedAt any
	var finished int

	err := s.db.QueryRow(
		`SELECT r.id, r.demo_id, r.user, r.started_at, r.finished,
		        COUNT(f.id), COALESCE(MAX(f.captured_ms), 0)
		 FROM recordings r
		 LEFT JOIN frames f ON f.recording_id = r.id
		 WHERE r.id = ?
		 GROUP BY r.id`,
		id,
	).Scan(&info.ID, &info.DemoID, &info.User, &startedAt,
		&finished, &info.Frames, &info.DurationMS)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}

	info.StartedAt = parseTime(startedAt)
	info.Finished = finished != 0
	return &info, nil
}

// Frames retrieves every frame of a recording in capture order.
func (s *Store) Frames(recordingID int64) ([]Frame, error) {
	rows, err := s.db.Query(
		`SELECT seq, captured_ms, cells
		 FROM frames
		 WHERE recording_id = ?
		 ORDER BY seq ASC`,
		recordingID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		if err := rows.Scan(&f.Seq, &f.CapturedMS, &f.Cells); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return frames, nil
}

// DeleteRecording removes a recording and all of its frames.
func (s *Store) DeleteRecording(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM frames WHERE recording_id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles the datetime forms the driver hands back: time.Time or
// its string rendering.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
