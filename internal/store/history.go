// Package store persists batch run history in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"docsort/internal/models"
	"docsort/pkg/taxonomy"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	root_dir    TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS outcomes (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id            TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	original_filename TEXT NOT NULL,
	category          TEXT NOT NULL,
	renamed_to        TEXT,
	error             TEXT
);
CREATE INDEX IF NOT EXISTS idx_outcomes_run ON outcomes(run_id);
`

// HistoryStore records completed runs and their per-file outcomes.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore opens (creating if needed) the SQLite database at path.
func NewHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// SaveRun stores a run summary and all its outcomes in one transaction.
func (s *HistoryStore) SaveRun(ctx context.Context, summary models.RunSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, root_dir, started_at, finished_at) VALUES (?, ?, ?, ?)`,
		summary.ID, summary.RootDir, summary.StartedAt, summary.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, o := range summary.Outcomes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, original_filename, category, renamed_to, error)
			 VALUES (?, ?, ?, ?, ?)`,
			summary.ID, o.OriginalFilename, string(o.Category), o.RenamedTo, o.Error)
		if err != nil {
			return fmt.Errorf("insert outcome: %w", err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first, with their
// per-category counts and outcomes loaded.
func (s *HistoryStore) ListRuns(ctx context.Context, limit int) ([]models.RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root_dir, started_at, finished_at FROM runs
		 ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var run models.RunSummary
		if err := rows.Scan(&run.ID, &run.RootDir, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if err := s.loadOutcomes(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *HistoryStore) loadOutcomes(ctx context.Context, run *models.RunSummary) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT original_filename, category, renamed_to, error FROM outcomes
		 WHERE run_id = ? ORDER BY id`, run.ID)
	if err != nil {
		return fmt.Errorf("query outcomes for run %s: %w", run.ID, err)
	}
	defer rows.Close()

	run.Counts = make(map[taxonomy.Category]int)
	for rows.Next() {
		var o models.ProcessingOutcome
		var category string
		if err := rows.Scan(&o.OriginalFilename, &category, &o.RenamedTo, &o.Error); err != nil {
			return fmt.Errorf("scan outcome: %w", err)
		}
		o.Category = taxonomy.Category(category)
		run.Counts[o.Category]++
		run.Outcomes = append(run.Outcomes, o)
	}
	return rows.Err()
}

// Ping checks database connectivity.
func (s *HistoryStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
