// Package history persists a log of build runs in a local SQLite database.
// It is entirely optional; the builder works without it.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	id          TEXT PRIMARY KEY,
	config_path TEXT NOT NULL,
	output_dir  TEXT NOT NULL,
	chapters    INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	status      TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// Build is one recorded build run.
type Build struct {
	ID         string
	ConfigPath string
	OutputDir  string
	Chapters   int
	Duration   time.Duration
	Status     string // success|failed
	CreatedAt  time.Time
}

// Store wraps the SQLite database holding build history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record inserts one build row. A missing ID or timestamp is filled in.
func (s *Store) Record(b Build) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO builds (id, config_path, output_dir, chapters, duration_ms, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ConfigPath, b.OutputDir, b.Chapters, b.Duration.Milliseconds(), b.Status,
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record build: %w", err)
	}
	return nil
}

// Recent returns up to n builds, newest first.
func (s *Store) Recent(n int) ([]Build, error) {
	rows, err := s.db.Query(
		`SELECT id, config_path, output_dir, chapters, duration_ms, status, created_at
		 FROM builds ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var b Build
		var durationMS int64
		var createdAt string
		if err := rows.Scan(&b.ID, &b.ConfigPath, &b.OutputDir, &b.Chapters, &durationMS, &b.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan build row: %w", err)
		}
		b.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			b.CreatedAt = t
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}
