package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"textparser/internal/chunk"
	"textparser/internal/corpus"
	"textparser/internal/frequency"
	"textparser/internal/logging"
	"textparser/internal/scanerr"
	"textparser/internal/store"
	"textparser/internal/tokenize"
)

// ErrLocked indicates another scan holds the scan lock.
var ErrLocked = errors.New("another scan is already running")

// Ledger records run progress. *store.Store satisfies it.
type Ledger interface {
	BeginRun(ctx context.Context, id, root string, startedAt time.Time) (*store.Run, error)
	RecordDocument(ctx context.Context, doc *store.Document, chunks []chunk.Chunk) error
	SaveSnapshot(ctx context.Context, runID string, entries []frequency.Entry) error
	FinishRun(ctx context.Context, run *store.Run) error
	ReapRunning(ctx context.Context) (int64, error)
}

// Scanner runs scans against one vocabulary, report sink, and ledger.
type Scanner struct {
	opts   Options
	vocab  chunk.Lookup
	ledger Ledger
	sink   io.Writer
	logger *slog.Logger
}

// New constructs a Scanner. The ledger may be nil.
func New(opts Options, vocab chunk.Lookup, ledger Ledger, sink io.Writer, logger *slog.Logger) (*Scanner, error) {
	if vocab == nil {
		return nil, errors.New("scan requires a vocabulary")
	}
	if sink == nil {
		return nil, errors.New("scan requires a report sink")
	}
	return &Scanner{
		opts:   opts,
		vocab:  vocab,
		ledger: ledger,
		sink:   sink,
		logger: logging.NewComponentLogger(logger, "scan"),
	}, nil
}

// run holds the mutable state of one scan.
type run struct {
	summary     Summary
	counter     *frequency.Counter
	logger      *slog.Logger
	reportedAt  int
	hasReported bool
}

// Run scans every document below root. Per-document failures are logged,
// recorded, and skipped. The returned error is non-nil when the root is
// missing, the lock is held, the ledger cannot start the run, or ctx is
// canceled; the summary is populated as far as the run progressed.
func (s *Scanner) Run(ctx context.Context, root string) (Summary, error) {
	if s.opts.LockPath != "" {
		lock := flock.New(s.opts.LockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return Summary{}, fmt.Errorf("acquire scan lock: %w", err)
		}
		if !ok {
			return Summary{}, fmt.Errorf("%w (lock %s)", ErrLocked, s.opts.LockPath)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				s.logger.Warn("failed to release scan lock", logging.Error(err))
			}
		}()
	}

	runID := uuid.NewString()
	r := &run{
		summary: Summary{
			RunID:     runID,
			Root:      root,
			Status:    store.RunRunning,
			StartedAt: time.Now().UTC(),
		},
		counter: frequency.NewCounter(),
		logger:  logging.WithRunID(s.logger, runID),
	}

	// Ledger writes land even after ctx is canceled so the run is closed out.
	ledgerCtx := context.WithoutCancel(ctx)

	if s.ledger != nil {
		if reaped, err := s.ledger.ReapRunning(ledgerCtx); err != nil {
			r.logger.Warn("failed to reap interrupted runs", logging.Error(err))
		} else if reaped > 0 {
			r.logger.Info("marked interrupted runs as failed", logging.Int64("count", reaped))
		}
		if _, err := s.ledger.BeginRun(ledgerCtx, runID, root, r.summary.StartedAt); err != nil {
			return r.summary, fmt.Errorf("begin run: %w", err)
		}
	}

	r.logger.Info("scan started",
		logging.String(logging.FieldEventType, "scan_started"),
		logging.String("root", root),
		logging.Int("report_every", s.opts.ReportEvery),
		logging.Int("top_n", s.opts.TopN),
	)

	walkErr := corpus.Walk(ctx, root, s.opts.Extensions, r.logger, func(_ context.Context, entry corpus.Entry) error {
		s.processDocument(ledgerCtx, r, entry)
		return nil
	})

	switch {
	case walkErr == nil:
		r.summary.Status = store.RunCompleted
	case errors.Is(walkErr, context.Canceled), errors.Is(walkErr, context.DeadlineExceeded):
		r.summary.Status = store.RunCanceled
	default:
		r.summary.Status = store.RunFailed
	}

	if s.opts.FinalReport && r.summary.Status != store.RunFailed && r.counter.Len() > 0 && r.pendingFinal() {
		s.report(ledgerCtx, r)
	}

	r.summary.UnknownWords = r.counter.Len()
	r.summary.Duration = time.Since(r.summary.StartedAt)
	s.finish(ledgerCtx, r, walkErr)

	if walkErr != nil {
		if r.summary.Status == store.RunFailed {
			logging.ErrorWithContext(r.logger, "scan failed", "scan_failed",
				logging.Error(walkErr),
				logging.String(logging.FieldErrorHint, "check that the corpus root exists and is a readable directory"),
			)
		} else {
			r.logger.Warn("scan canceled",
				logging.String(logging.FieldEventType, "scan_canceled"),
				logging.Int("documents_processed", r.summary.DocumentsProcessed),
			)
		}
		return r.summary, walkErr
	}

	r.logger.Info("scan completed",
		logging.String(logging.FieldEventType, "scan_completed"),
		logging.Int("documents_processed", r.summary.DocumentsProcessed),
		logging.Int("documents_failed", r.summary.DocumentsFailed),
		logging.Int("chunks", r.summary.Chunks),
		logging.Int("unknown_words", r.summary.UnknownWords),
		logging.Int("reports", r.summary.Reports),
		logging.Duration("duration", r.summary.Duration),
	)
	return r.summary, nil
}

func (s *Scanner) processDocument(ctx context.Context, r *run, entry corpus.Entry) {
	docLogger := r.logger.With(logging.String(logging.FieldDocument, entry.Rel))

	doc, err := corpus.ReadDocument(entry.Path, s.opts.Encoding)
	if err != nil {
		r.summary.DocumentsFailed++
		logging.WarnWithContext(docLogger, "document skipped", "document_skipped",
			logging.Error(err),
			logging.String("error_kind", scanerr.Kind(err)),
			logging.String(logging.FieldErrorHint, "check the file encoding and permissions"),
			logging.String(logging.FieldImpact, "document not scanned; scan continues"),
		)
		s.record(ctx, r, &store.Document{
			RunID:        r.summary.RunID,
			Path:         entry.Path,
			RelPath:      entry.Rel,
			Bytes:        entry.Size,
			Status:       store.DocumentFailed,
			ErrorKind:    scanerr.Kind(err),
			ErrorMessage: err.Error(),
		}, nil)
		return
	}

	tokens := tokenize.Tokenize(doc.Text)
	chunks := chunk.SegmentMin(tokens, s.vocab, r.counter, s.opts.minChunkSize())

	r.summary.Tokens += len(tokens)
	r.summary.Chunks += len(chunks)
	r.summary.BytesRead += int64(doc.Bytes)

	docLogger.Debug("document scanned",
		logging.Int("tokens", len(tokens)),
		logging.Int("chunks", len(chunks)),
		logging.Int("bytes", doc.Bytes),
	)

	recorded := chunks
	if !s.opts.RecordChunks {
		recorded = nil
	}
	s.record(ctx, r, &store.Document{
		RunID:   r.summary.RunID,
		Path:    entry.Path,
		RelPath: entry.Rel,
		Bytes:   int64(doc.Bytes),
		Tokens:  len(tokens),
		Chunks:  len(chunks),
		Status:  store.DocumentProcessed,
	}, recorded)

	due := s.opts.reportDue(r.summary.DocumentsProcessed)
	r.summary.DocumentsProcessed++
	if due {
		s.report(ctx, r)
	}
}

func (s *Scanner) record(ctx context.Context, r *run, doc *store.Document, chunks []chunk.Chunk) {
	if s.ledger == nil {
		return
	}
	doc.ProcessedAt = time.Now().UTC()
	if err := s.ledger.RecordDocument(ctx, doc, chunks); err != nil {
		logging.WarnWithContext(r.logger, "failed to record document", "ledger_write_failed",
			logging.String(logging.FieldDocument, doc.RelPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "document missing from run ledger; report output unaffected"),
		)
	}
}

func (s *Scanner) report(ctx context.Context, r *run) {
	entries, err := frequency.Report(r.counter, s.opts.TopN, s.sink)
	r.summary.Reports++
	r.reportedAt = r.counter.Total()
	r.hasReported = true
	if err != nil {
		r.summary.ReportFailures++
		logging.WarnWithContext(r.logger, "frequency report incomplete", "report_write_failed",
			logging.Error(err),
			logging.Int("lines_written", len(entries)),
			logging.String(logging.FieldErrorHint, "check free space and permissions of the report file"),
		)
	} else {
		r.logger.Info("frequency report written",
			logging.String(logging.FieldEventType, "report_written"),
			logging.Int("lines", len(entries)),
			logging.Int("documents_processed", r.summary.DocumentsProcessed),
			logging.Int("unknown_words", r.counter.Len()),
		)
	}

	if s.ledger == nil {
		return
	}
	if err := s.ledger.SaveSnapshot(ctx, r.summary.RunID, r.counter.Top(s.opts.TopN)); err != nil {
		logging.WarnWithContext(r.logger, "failed to save frequency snapshot", "ledger_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "top command shows an older snapshot"),
		)
	}
}

// pendingFinal reports whether the counter changed since the last report.
func (r *run) pendingFinal() bool {
	return !r.hasReported || r.counter.Total() != r.reportedAt
}

func (s *Scanner) finish(ctx context.Context, r *run, walkErr error) {
	if s.ledger == nil {
		return
	}
	rec := r.summary.run()
	if walkErr != nil {
		rec.ErrorMessage = walkErr.Error()
	}
	if err := s.ledger.FinishRun(ctx, rec); err != nil {
		logging.WarnWithContext(r.logger, "failed to finish run in ledger", "ledger_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run remains marked running until the next scan"),
		)
	}
}
