package store

import (
	"database/sql"
	"errors"
	"time"
)

const runColumns = "id, root, status, started_at, finished_at, documents_processed, documents_failed, tokens, chunks, unknown_words, reports, bytes_read, error_message"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		statusStr   string
		startedRaw  string
		finishedRaw sql.NullString
		errorMsg    sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Root,
		&statusStr,
		&startedRaw,
		&finishedRaw,
		&run.DocumentsProcessed,
		&run.DocumentsFailed,
		&run.Tokens,
		&run.Chunks,
		&run.UnknownWords,
		&run.Reports,
		&run.BytesRead,
		&errorMsg,
	); err != nil {
		return nil, err
	}
	run.Status = RunStatus(statusStr)
	run.ErrorMessage = errorMsg.String
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		value = time.Now()
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
