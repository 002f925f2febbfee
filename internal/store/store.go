package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"shotline/internal/config"
	"shotline/internal/pipeline"
	"shotline/internal/shot"
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one persisted pipeline run.
type Run struct {
	ID         string
	Pipeline   string
	Project    string
	Shot       string
	FirstFrame int
	LastFrame  int
	Status     shot.Status
	Duration   time.Duration
	StartedAt  time.Time
}

// StageRow is one persisted stage outcome.
type StageRow struct {
	Stage      string
	Skipped    bool
	SkipReason string
	Success    bool
	Kind       string
	Message    string
	Errors     []string
	Warnings   []string
	Duration   time.Duration
}

// Open initializes or connects to the run history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.LogDir, "runs.db"))
}

// OpenPath opens the database at an explicit path and applies the schema.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SaveSummary persists one run and its stage outcomes atomically.
func (s *Store) SaveSummary(ctx context.Context, project string, summary *pipeline.Summary) error {
	if summary == nil {
		return fmt.Errorf("nil summary")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, pipeline, project, shot, first_frame, last_frame, status, duration_ms, started_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.Pipeline,
		project,
		summary.Shot,
		summary.FirstFrame,
		summary.LastFrame,
		string(summary.Status),
		summary.Duration.Milliseconds(),
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for position, outcome := range summary.Outcomes {
		row := stageRowFromOutcome(outcome)
		errorsJSON, err := json.Marshal(row.Errors)
		if err != nil {
			return fmt.Errorf("encode stage errors: %w", err)
		}
		warningsJSON, err := json.Marshal(row.Warnings)
		if err != nil {
			return fmt.Errorf("encode stage warnings: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_stages (run_id, position, stage, skipped, skip_reason, success, kind, message, errors, warnings, duration_ms)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			summary.RunID,
			position,
			row.Stage,
			boolToInt(row.Skipped),
			row.SkipReason,
			boolToInt(row.Success),
			row.Kind,
			row.Message,
			string(errorsJSON),
			string(warningsJSON),
			row.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert stage %s: %w", row.Stage, err)
		}
	}

	return tx.Commit()
}

func stageRowFromOutcome(outcome pipeline.StageOutcome) StageRow {
	row := StageRow{
		Stage:      outcome.Stage,
		Skipped:    outcome.Skipped,
		SkipReason: outcome.SkipReason,
	}
	if outcome.Result != nil {
		row.Success = outcome.Result.Success
		row.Kind = string(outcome.Result.Kind)
		row.Message = outcome.Result.Message
		row.Errors = outcome.Result.Errors
		row.Warnings = outcome.Result.Warnings
		row.Duration = outcome.Result.Duration
	}
	return row
}

// ListRuns returns the most recent runs, newest first. When shotName is
// non-empty only that shot's runs are returned.
func (s *Store) ListRuns(ctx context.Context, shotName string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, pipeline, project, shot, first_frame, last_frame, status, duration_ms, started_at
              FROM runs`
	args := []any{}
	if shotName != "" {
		query += " WHERE shot = ?"
		args = append(args, shotName)
	}
	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			status     string
			durationMS int64
			startedAt  string
		)
		if err := rows.Scan(&run.ID, &run.Pipeline, &run.Project, &run.Shot,
			&run.FirstFrame, &run.LastFrame, &status, &durationMS, &startedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Status = shot.Status(status)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			run.StartedAt = ts
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunStages returns the stage outcomes of one run in execution order.
func (s *Store) RunStages(ctx context.Context, runID string) ([]StageRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stage, skipped, skip_reason, success, kind, message, errors, warnings, duration_ms
         FROM run_stages WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run stages: %w", err)
	}
	defer rows.Close()

	var stages []StageRow
	for rows.Next() {
		var (
			row          StageRow
			skipped      int
			success      int
			errorsJSON   string
			warningsJSON string
			durationMS   int64
		)
		if err := rows.Scan(&row.Stage, &skipped, &row.SkipReason, &success,
			&row.Kind, &row.Message, &errorsJSON, &warningsJSON, &durationMS); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		row.Skipped = skipped != 0
		row.Success = success != 0
		row.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(errorsJSON), &row.Errors); err != nil {
			return nil, fmt.Errorf("decode stage errors: %w", err)
		}
		if err := json.Unmarshal([]byte(warningsJSON), &row.Warnings); err != nil {
			return nil, fmt.Errorf("decode stage warnings: %w", err)
		}
		stages = append(stages, row)
	}
	return stages, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
