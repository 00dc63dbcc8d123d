// Package history records completed generation runs in a local SQLite
// database so past runs can be listed and compared. History is a
// convenience layer: failures here never fail a generation run.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at    TEXT NOT NULL,
    root_dir      TEXT NOT NULL,
    output_dir    TEXT NOT NULL,
    format        TEXT NOT NULL,
    preset        TEXT NOT NULL DEFAULT '',
    files_scanned INTEGER NOT NULL DEFAULT 0,
    chunks        INTEGER NOT NULL DEFAULT 0,
    total_tokens  INTEGER NOT NULL DEFAULT 0,
    duration_ms   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// Run is one recorded generation run.
type Run struct {
	ID           int64
	StartedAt    time.Time
	RootDir      string
	OutputDir    string
	Format       string
	Preset       string
	FilesScanned int
	Chunks       int
	TotalTokens  int
	Duration     time.Duration
}

// Store persists run history.
type Store struct {
	db *sql.DB
}

// DefaultPath places the history database under the user config
// directory, falling back to the working directory when it is unknown.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".repoprompt/history.db"
	}
	return filepath.Join(base, "repoprompt", "history.db")
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run and returns its assigned id.
func (s *Store) Record(run Run) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO runs (started_at, root_dir, output_dir, format, preset, files_scanned, chunks, total_tokens, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.RootDir,
		run.OutputDir,
		run.Format,
		run.Preset,
		run.FilesScanned,
		run.Chunks,
		run.TotalTokens,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, started_at, root_dir, output_dir, format, preset, files_scanned, chunks, total_tokens, duration_ms
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&r.ID, &startedAt, &r.RootDir, &r.OutputDir, &r.Format, &r.Preset,
			&r.FilesScanned, &r.Chunks, &r.TotalTokens, &durationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = t
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Count returns the total number of recorded runs.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}
