// Package history persists per-run task outcomes in a local SQLite database,
// so consecutive builds can report the violation delta against the previous
// run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"lintgate/internal/core/usecases"
	"lintgate/internal/platform/logx"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_at     TIMESTAMP NOT NULL,
	files      INTEGER NOT NULL,
	violations INTEGER NOT NULL,
	outcome    TEXT NOT NULL
);
`

// Store is a SQLite-backed implementation of usecases.History.
type Store struct {
	db     *sql.DB
	logger logx.Logger
}

// Open opens (or creates) the history database at path.
func Open(logger logx.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With("component", "history"),
	}, nil
}

// Record implements usecases.History.
func (s *Store) Record(ctx context.Context, rec usecases.HistoryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_at, files, violations, outcome) VALUES (?, ?, ?, ?)`,
		rec.RunAt.UTC(), rec.Files, rec.Violations, rec.Outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Debug("run recorded",
		"violations", rec.Violations,
		"outcome", rec.Outcome,
	)
	return nil
}

// Last implements usecases.History.
func (s *Store) Last(ctx context.Context) (usecases.HistoryRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_at, files, violations, outcome FROM runs ORDER BY id DESC LIMIT 1`,
	)

	var rec usecases.HistoryRecord
	var runAt time.Time
	err := row.Scan(&runAt, &rec.Files, &rec.Violations, &rec.Outcome)
	if err == sql.ErrNoRows {
		return usecases.HistoryRecord{}, false, nil
	}
	if err != nil {
		return usecases.HistoryRecord{}, false, fmt.Errorf("failed to read last run: %w", err)
	}

	rec.RunAt = runAt
	return rec, true, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
