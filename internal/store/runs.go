package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"textparser/internal/frequency"
)

// BeginRun inserts a new run in the running state.
func (s *Store) BeginRun(ctx context.Context, id, root string, startedAt time.Time) (*Run, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("run id is required")
	}
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, root, status, started_at) VALUES (?, ?, ?, ?)`,
		id, root, RunRunning, formatTime(startedAt),
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s.GetRun(ctx, id)
}

// FinishRun stores the final counters and status of a run.
func (s *Store) FinishRun(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if run.FinishedAt == nil {
		now := time.Now().UTC()
		run.FinishedAt = &now
	}
	res, err := s.execWithRetry(ctx,
		`UPDATE runs
         SET status = ?, finished_at = ?, documents_processed = ?, documents_failed = ?,
             tokens = ?, chunks = ?, unknown_words = ?, reports = ?, bytes_read = ?, error_message = ?
         WHERE id = ?`,
		run.Status,
		nullableTime(run.FinishedAt),
		run.DocumentsProcessed,
		run.DocumentsFailed,
		run.Tokens,
		run.Chunks,
		run.UnknownWords,
		run.Reports,
		run.BytesRead,
		nullableString(run.ErrorMessage),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run: run %s not found", run.ID)
	}
	return nil
}

// GetRun fetches a run by identifier. A missing run returns nil without error.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// LatestRun returns the most recently started run, or nil when the ledger is empty.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return runs[0], nil
}

// ListRuns returns runs newest first. A limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ReapRunning marks runs left in the running state by a crashed process as
// failed. Callers hold the scan lock, so no live run can be affected.
func (s *Store) ReapRunning(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx,
		`UPDATE runs SET status = ?, finished_at = ?, error_message = ? WHERE status = ?`,
		RunFailed,
		formatTime(time.Now()),
		"interrupted before completion",
		RunRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("reap running runs: %w", err)
	}
	return res.RowsAffected()
}

// SaveSnapshot replaces the stored frequency snapshot of a run with entries.
func (s *Store) SaveSnapshot(ctx context.Context, runID string, entries []frequency.Entry) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin snapshot tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM frequency_snapshots WHERE run_id = ?`, runID); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO frequency_snapshots (run_id, rank, word, count, taken_at) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare snapshot insert: %w", err)
		}
		defer stmt.Close()

		takenAt := formatTime(time.Now())
		for i, entry := range entries {
			if _, err := stmt.ExecContext(ctx, runID, i+1, entry.Word, entry.Count, takenAt); err != nil {
				return fmt.Errorf("insert snapshot entry: %w", err)
			}
		}
		return tx.Commit()
	})
}

// Snapshot returns the stored frequency snapshot of a run in rank order.
// A limit <= 0 returns the whole snapshot.
func (s *Store) Snapshot(ctx context.Context, runID string, limit int) ([]frequency.Entry, error) {
	query := `SELECT word, count FROM frequency_snapshots WHERE run_id = ? ORDER BY rank`
	args := []any{runID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var entries []frequency.Entry
	for rows.Next() {
		var entry frequency.Entry
		if err := rows.Scan(&entry.Word, &entry.Count); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
