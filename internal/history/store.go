// Package history persists per-action outcomes to a local SQLite store so
// developers can inspect how check durations drift across runs. Recording is
// strictly best-effort: a broken store never fails a run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one action outcome within one run.
type Record struct {
	RunID     string
	Mode      string
	Shard     string
	Action    string
	Status    string // success|failed|skipped
	ExitCode  int
	Duration  time.Duration
	StartedAt time.Time
}

// Store appends action outcomes to SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the history database. Use ":memory:" for tests.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS action_outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		shard TEXT NOT NULL,
		action TEXT NOT NULL,
		status TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		started_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_run_id ON action_outcomes(run_id);
	CREATE INDEX IF NOT EXISTS idx_action ON action_outcomes(action);
	CREATE INDEX IF NOT EXISTS idx_started_at ON action_outcomes(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds one action outcome.
func (s *Store) Append(ctx context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO action_outcomes (run_id, mode, shard, action, status, exit_code, duration_ms, started_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		r.RunID, r.Mode, r.Shard, r.Action, r.Status, r.ExitCode, r.Duration.Milliseconds(), r.StartedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert action outcome: %w", err)
	}

	return nil
}

// ByRunID retrieves all outcomes for a specific run in insertion order.
func (s *Store) ByRunID(ctx context.Context, runID string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, mode, shard, action, status, exit_code, duration_ms, started_at FROM action_outcomes WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ByAction retrieves past outcomes of one action across runs, newest first,
// limited to n rows.
func (s *Store) ByAction(ctx context.Context, action string, n int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, mode, shard, action, status, exit_code, duration_ms, started_at FROM action_outcomes WHERE action = ? ORDER BY id DESC LIMIT ?",
		action, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var durationMS int64
		var startedUnix int64

		err := rows.Scan(&r.RunID, &r.Mode, &r.Shard, &r.Action, &r.Status, &r.ExitCode, &durationMS, &startedUnix)
		if err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}

		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.StartedAt = time.Unix(startedUnix, 0)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
