package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"textparser/internal/config"
	"textparser/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from test")

	if got := readLog(t, cfg.LogPath()); !strings.Contains(got, "hello from test") {
		t.Fatalf("expected message in log file, got %q", got)
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "scan").Info("document processed",
		logging.String(logging.FieldDocument, "a b.txt"),
		logging.Int("chunks", 3),
	)

	got := readLog(t, logPath)
	for _, want := range []string{"INFO ", "[scan] document processed", `document="a b.txt"`, "chunks=3"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", got)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")

	if got := readLog(t, logPath); !strings.Contains(got, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", got)
	}
}

func TestJSONLoggerAddsRunID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.json")
	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
		RunID:       "run-123",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("scan started", logging.Int("documents", 2))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["run_id"] != "run-123" || record["msg"] != "scan started" || record["level"] != "info" {
		t.Fatalf("unexpected record: %#v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %#v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "document skipped", "document_failed",
		logging.String(logging.FieldImpact, "document ignored"),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record[logging.FieldEventType] != "document_failed" {
		t.Fatalf("expected event type, got %#v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected error hint default, got %#v", record)
	}
	if record[logging.FieldImpact] != "document ignored" {
		t.Fatalf("expected caller impact preserved, got %#v", record)
	}
}

func TestWithRunIDAndNop(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.WithRunID(slog.New(slog.NewTextHandler(&buf, nil)), "abc")
	logger.Info("tagged")
	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Fatalf("expected run id, got %q", buf.String())
	}

	nop := logging.NewNop()
	nop.Error("discarded")
	if logging.WithRunID(nil, "x") == nil {
		t.Fatal("expected non-nil logger")
	}
}
