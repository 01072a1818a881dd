/*
Package sqlite persists reconciliation run history.

PURPOSE:
  Every processed upload batch produces one immutable run record: the day,
  the shift, the headline numbers, and the full result JSON. The history
  powers the "previous runs" list in the dashboard and lets a reviewer
  re-download yesterday's exports without re-uploading yesterday's files.

KEY TABLES:
  runs: One row per reconciliation run. Append-only; a re-run of the same
        day is a new row, never an update, so the history shows exactly
        what was reported when.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened in WAL mode so
  readers do not block the single writer.

USAGE:
  store, err := sqlite.New("./attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/phoenix/attendance-engine/reconcile"
)

// Store persists run history in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Runs (append-only history)
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		day TEXT NOT NULL,
		shift TEXT NOT NULL,
		expected INTEGER NOT NULL,
		present INTEGER NOT NULL,
		show_rate_pct INTEGER NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_day ON runs(day);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RUN HISTORY
// =============================================================================

// Run is one persisted reconciliation run. Result is only populated by
// GetRun; the list view carries the summary columns alone.
type Run struct {
	ID          string            `json:"id"`
	Day         string            `json:"day"`
	Shift       string            `json:"shift"`
	Expected    int               `json:"expected"`
	Present     int               `json:"present"`
	ShowRatePct int               `json:"show_rate_pct"`
	Result      *reconcile.Result `json:"result,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// SaveRun persists a completed run and returns its generated id.
func (s *Store) SaveRun(ctx context.Context, result *reconcile.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, day, shift, expected, present, show_rate_pct, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		result.Day,
		result.Shift,
		result.Rows[reconcile.CohortRegularExpected].SumTotals(),
		result.Rows[reconcile.CohortRegularPresent].SumTotals(),
		result.ShowRatePct,
		string(resultJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day, shift, expected, present, show_rate_pct, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Day, &r.Shift, &r.Expected, &r.Present, &r.ShowRatePct, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its full result, or nil when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r Run
	var resultJSON, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, day, shift, expected, present, show_rate_pct, result_json, created_at
		FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Day, &r.Shift, &r.Expected, &r.Present, &r.ShowRatePct, &resultJSON, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result reconcile.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	r.Result = &result
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	return err
}
