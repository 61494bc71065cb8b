package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"textparser/internal/chunk"
)

// RecordDocument persists the outcome of one document together with its
// chunks. The document ID is assigned on doc.
func (s *Store) RecordDocument(ctx context.Context, doc *Document, chunks []chunk.Chunk) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin document tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			`INSERT INTO documents (
                run_id, path, rel_path, bytes, tokens, chunks, status, error_kind, error_message, processed_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.RunID,
			doc.Path,
			doc.RelPath,
			doc.Bytes,
			doc.Tokens,
			doc.Chunks,
			doc.Status,
			nullableString(doc.ErrorKind),
			nullableString(doc.ErrorMessage),
			formatTime(doc.ProcessedAt),
		)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}

		if len(chunks) > 0 {
			stmt, err := tx.PrepareContext(ctx,
				`INSERT INTO chunks (document_id, seq, text, start_offset, end_offset) VALUES (?, ?, ?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("prepare chunk insert: %w", err)
			}
			defer stmt.Close()
			for i, c := range chunks {
				if _, err := stmt.ExecContext(ctx, id, i, c.Text, c.Start, c.End); err != nil {
					return fmt.Errorf("insert chunk: %w", err)
				}
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit document: %w", err)
		}
		doc.ID = id
		return nil
	})
}

// Documents lists the documents of a run in processing order. An empty
// status matches every document.
func (s *Store) Documents(ctx context.Context, runID string, status DocumentStatus) ([]*Document, error) {
	query := `SELECT id, run_id, path, rel_path, bytes, tokens, chunks, status, error_kind, error_message, processed_at
              FROM documents WHERE run_id = ?`
	args := []any{runID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var (
			doc          Document
			statusStr    string
			errorKind    sql.NullString
			errorMessage sql.NullString
			processedRaw string
		)
		if err := rows.Scan(
			&doc.ID, &doc.RunID, &doc.Path, &doc.RelPath, &doc.Bytes, &doc.Tokens, &doc.Chunks,
			&statusStr, &errorKind, &errorMessage, &processedRaw,
		); err != nil {
			return nil, err
		}
		doc.Status = DocumentStatus(statusStr)
		doc.ErrorKind = errorKind.String
		doc.ErrorMessage = errorMessage.String
		if processed, err := parseTimeString(processedRaw); err == nil {
			doc.ProcessedAt = processed
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// Chunks lists recorded chunks in document and emission order.
func (s *Store) Chunks(ctx context.Context, q ChunkQuery) ([]ChunkRecord, error) {
	query := `SELECT c.id, c.document_id, d.rel_path, c.seq, c.text, c.start_offset, c.end_offset
              FROM chunks c JOIN documents d ON d.id = c.document_id WHERE 1 = 1`
	var args []any
	if q.RunID != "" {
		query += ` AND d.run_id = ?`
		args = append(args, q.RunID)
	}
	if q.RelPath != "" {
		query += ` AND d.rel_path = ?`
		args = append(args, q.RelPath)
	}
	query += ` ORDER BY d.id, c.seq`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var out []ChunkRecord
	for rows.Next() {
		var rec ChunkRecord
		if err := rows.Scan(&rec.ID, &rec.DocumentID, &rec.RelPath, &rec.Seq, &rec.Text, &rec.Start, &rec.End); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
