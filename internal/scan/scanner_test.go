package scan_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"textparser/internal/logging"
	"textparser/internal/scan"
	"textparser/internal/scanerr"
	"textparser/internal/store"
	"textparser/internal/testsupport"
	"textparser/internal/vocab"
)

var known = vocab.New("hello", "world", "known", "forest")

func newScanner(t *testing.T, opts scan.Options, ledger scan.Ledger, sink *bytes.Buffer) *scan.Scanner {
	t.Helper()
	scanner, err := scan.New(opts, known, ledger, sink, logging.NewNop())
	if err != nil {
		t.Fatalf("scan.New: %v", err)
	}
	return scanner
}

func cadenceCorpus(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "corpus")
	testsupport.WriteCorpus(t, root, map[string]string{
		"a.txt": "zeta",
		"b.txt": "beta beta",
		"c.txt": "zeta",
		"d.txt": "alpha",
		"e.txt": "gamma",
	})
	return root
}

func TestRunReportsAfterFirstAndEveryKthDocument(t *testing.T) {
	root := cadenceCorpus(t)
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 2, TopN: 10}, nil, &sink)

	summary, err := scanner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Reports fire after processed documents 0, 2 and 4.
	want := "zeta\n" + "beta\nzeta\n" + "beta\nzeta\nalpha\ngamma\n"
	if sink.String() != want {
		t.Fatalf("report output = %q, want %q", sink.String(), want)
	}
	if summary.Reports != 3 || summary.DocumentsProcessed != 5 {
		t.Fatalf("unexpected summary %#v", summary)
	}
	if summary.Status != store.RunCompleted || summary.UnknownWords != 4 {
		t.Fatalf("unexpected summary %#v", summary)
	}
	if summary.RunID == "" {
		t.Fatal("expected run id")
	}
}

func TestRunFinalReportSkippedWhenUnchanged(t *testing.T) {
	root := cadenceCorpus(t)
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 2, TopN: 10, FinalReport: true}, nil, &sink)

	summary, err := scanner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Reports != 3 {
		t.Fatalf("expected no extra final report, got %d reports", summary.Reports)
	}
}

func TestRunFinalReportAppendsLatestCounts(t *testing.T) {
	root := cadenceCorpus(t)
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 3, TopN: 2, FinalReport: true}, nil, &sink)

	summary, err := scanner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// After document 0, after document 3, then the final report.
	want := "zeta\n" + "beta\nzeta\n" + "beta\nzeta\n"
	if sink.String() != want {
		t.Fatalf("report output = %q, want %q", sink.String(), want)
	}
	if summary.Reports != 3 {
		t.Fatalf("expected 3 reports, got %d", summary.Reports)
	}
}

func TestRunDisabledCadenceWritesNothing(t *testing.T) {
	root := cadenceCorpus(t)
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 0, TopN: 10}, nil, &sink)

	summary, err := scanner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sink.Len() != 0 || summary.Reports != 0 {
		t.Fatalf("expected no reports, got %q (%d)", sink.String(), summary.Reports)
	}
}

func TestRunSkipsUndecodableDocuments(t *testing.T) {
	root := filepath.Join(t.TempDir(), "corpus")
	testsupport.WriteCorpus(t, root, map[string]string{
		"a.txt": "zeta",
		"b.txt": "bad \xff\xfe bytes",
		"c.txt": "omega",
	})
	cfg := testsupport.NewConfig(t)
	ledger := testsupport.MustOpenStore(t, cfg)
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 2, TopN: 10}, ledger, &sink)

	summary, err := scanner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.DocumentsProcessed != 2 || summary.DocumentsFailed != 1 {
		t.Fatalf("unexpected counts %#v", summary)
	}
	// The failed document does not advance the cadence, so c.txt is index 1.
	if sink.String() != "zeta\n" {
		t.Fatalf("report output = %q", sink.String())
	}

	failed, err := ledger.Documents(context.Background(), summary.RunID, store.DocumentFailed)
	if err != nil {
		t.Fatalf("Documents failed: %v", err)
	}
	if len(failed) != 1 || failed[0].RelPath != "b.txt" || failed[0].ErrorKind != "decode" {
		t.Fatalf("unexpected failed documents %#v", failed)
	}
}

func TestRunRecordsLedger(t *testing.T) {
	root := filepath.Join(t.TempDir(), "corpus")
	testsupport.WriteCorpus(t, root, map[string]string{
		"nested/doc.txt": "Hello, world known zeta forest",
	})
	cfg := testsupport.NewConfig(t)
	ledger := testsupport.MustOpenStore(t, cfg)
	var sink bytes.Buffer
	opts := scan.Options{ReportEvery: 1, TopN: 5, RecordChunks: true}
	scanner := newScanner(t, opts, ledger, &sink)

	summary, err := scanner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Chunks != 1 || summary.Tokens != 5 {
		t.Fatalf("unexpected summary %#v", summary)
	}

	ctx := context.Background()
	run, err := ledger.GetRun(ctx, summary.RunID)
	if err != nil || run == nil {
		t.Fatalf("GetRun: %v (%v)", run, err)
	}
	if run.Status != store.RunCompleted || run.DocumentsProcessed != 1 || run.Reports != 1 || run.FinishedAt == nil {
		t.Fatalf("unexpected run %#v", run)
	}

	chunks, err := ledger.Chunks(ctx, store.ChunkQuery{RunID: summary.RunID})
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Text != "hello world known" || chunks[0].Start != 0 || chunks[0].End != 17 {
		t.Fatalf("unexpected chunks %#v", chunks)
	}
	if chunks[0].RelPath != "nested/doc.txt" {
		t.Fatalf("unexpected rel path %q", chunks[0].RelPath)
	}

	snapshot, err := ledger.Snapshot(ctx, summary.RunID, 0)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snapshot) != 1 || snapshot[0].Word != "zeta" || snapshot[0].Count != 1 {
		t.Fatalf("unexpected snapshot %#v", snapshot)
	}
}

func TestRunWithoutChunkRecording(t *testing.T) {
	root := filepath.Join(t.TempDir(), "corpus")
	testsupport.WriteCorpus(t, root, map[string]string{"doc.txt": "hello world known"})
	ledger := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{TopN: 5}, ledger, &sink)

	summary, err := scanner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Chunks != 1 {
		t.Fatalf("expected chunk to be counted, got %d", summary.Chunks)
	}
	chunks, err := ledger.Chunks(context.Background(), store.ChunkQuery{RunID: summary.RunID})
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no stored chunks, got %d", len(chunks))
	}
}

func TestRunMissingRoot(t *testing.T) {
	ledger := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 1, TopN: 5, FinalReport: true}, ledger, &sink)

	summary, err := scanner.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, scanerr.ErrRootMissing) {
		t.Fatalf("expected ErrRootMissing, got %v", err)
	}
	if summary.Status != store.RunFailed || summary.Chunks != 0 || sink.Len() != 0 {
		t.Fatalf("unexpected summary %#v", summary)
	}
	run, err := ledger.GetRun(context.Background(), summary.RunID)
	if err != nil || run == nil {
		t.Fatalf("GetRun: %v (%v)", run, err)
	}
	if run.Status != store.RunFailed || run.ErrorMessage == "" {
		t.Fatalf("unexpected run %#v", run)
	}
}

func TestRunCanceled(t *testing.T) {
	root := cadenceCorpus(t)
	ledger := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 1, TopN: 5}, ledger, &sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := scanner.Run(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Status != store.RunCanceled || summary.DocumentsProcessed != 0 {
		t.Fatalf("unexpected summary %#v", summary)
	}
	run, _ := ledger.GetRun(context.Background(), summary.RunID)
	if run == nil || run.Status != store.RunCanceled {
		t.Fatalf("expected canceled run, got %#v", run)
	}
}

func TestRunFailsWhenLocked(t *testing.T) {
	root := cadenceCorpus(t)
	lockPath := filepath.Join(t.TempDir(), "textparser.lock")
	holder := flock.New(lockPath)
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: %v %v", ok, err)
	}
	defer holder.Unlock()

	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 1, TopN: 5, LockPath: lockPath}, nil, &sink)
	if _, err := scanner.Run(context.Background(), root); !errors.Is(err, scan.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if sink.Len() != 0 {
		t.Fatalf("expected no output while locked, got %q", sink.String())
	}
}

func TestRunReleasesLock(t *testing.T) {
	root := cadenceCorpus(t)
	lockPath := filepath.Join(t.TempDir(), "textparser.lock")
	var sink bytes.Buffer
	scanner := newScanner(t, scan.Options{ReportEvery: 1, TopN: 5, LockPath: lockPath}, nil, &sink)
	for i := 0; i < 2; i++ {
		if _, err := scanner.Run(context.Background(), root); err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRunContinuesAfterReportWriteFailure(t *testing.T) {
	root := cadenceCorpus(t)
	scanner, err := scan.New(scan.Options{ReportEvery: 1, TopN: 5}, known, nil, failingWriter{}, logging.NewNop())
	if err != nil {
		t.Fatalf("scan.New: %v", err)
	}
	summary, err := scanner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.DocumentsProcessed != 5 || summary.Reports != 5 || summary.ReportFailures != 5 {
		t.Fatalf("unexpected summary %#v", summary)
	}
}

func TestNewRequiresVocabularyAndSink(t *testing.T) {
	if _, err := scan.New(scan.Options{}, nil, nil, &bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected error without vocabulary")
	}
	if _, err := scan.New(scan.Options{}, known, nil, nil, nil); err == nil {
		t.Fatal("expected error without sink")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithReport(7, 42))
	opts := scan.OptionsFromConfig(cfg)
	if opts.ReportEvery != 7 || opts.TopN != 42 || !opts.FinalReport {
		t.Fatalf("unexpected report options %#v", opts)
	}
	if opts.LockPath != cfg.LockPath() || opts.MinChunkSize != 10 || opts.Encoding != "utf-8" {
		t.Fatalf("unexpected options %#v", opts)
	}
}

func TestSummaryString(t *testing.T) {
	s := scan.Summary{Status: store.RunCompleted, DocumentsProcessed: 1200, BytesRead: 2048, Reports: 2}
	out := s.String()
	for _, want := range []string{"completed", "1,200 documents", "2.0 kB", "2 reports"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary %q missing %q", out, want)
		}
	}
}
