package corpus

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"textparser/internal/logging"
	"textparser/internal/scanerr"
)

// DefaultExtensions lists the document extensions scanned when none are configured.
var DefaultExtensions = []string{".txt"}

// Entry describes a document found by Walk.
type Entry struct {
	Path string
	Rel  string
	Size int64
}

// VisitFunc handles one document. Returning an error stops the walk.
type VisitFunc func(ctx context.Context, entry Entry) error

// Walk recursively visits documents below root. Unreadable subdirectories are
// logged and skipped. A missing root, or a root that is not a directory,
// yields an error wrapping scanerr.ErrRootMissing.
func Walk(ctx context.Context, root string, extensions []string, logger *slog.Logger, visit VisitFunc) error {
	logger = logging.NewComponentLogger(logger, "corpus")
	info, err := os.Stat(root)
	if err != nil {
		return scanerr.Wrap(scanerr.ErrRootMissing, "corpus", "stat root", root, err)
	}
	if !info.IsDir() {
		return scanerr.Wrap(scanerr.ErrRootMissing, "corpus", "stat root", root+" is not a directory", nil)
	}

	allowed := extensionSet(extensions)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return scanerr.Wrap(scanerr.ErrRootMissing, "corpus", "read root", root, walkErr)
			}
			logging.WarnWithContext(logger, "corpus path skipped", "corpus_path_skipped",
				logging.String("path", path),
				logging.Error(walkErr),
				logging.String(logging.FieldImpact, "documents below this path are not scanned"),
			)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		entry := Entry{Path: path, Rel: relPath(root, path)}
		if fi, err := d.Info(); err == nil {
			entry.Size = fi.Size()
		}
		return visit(ctx, entry)
	})
}

// Collect returns every document Walk would visit.
func Collect(ctx context.Context, root string, extensions []string) ([]Entry, error) {
	var entries []Entry
	err := Walk(ctx, root, extensions, nil, func(_ context.Context, entry Entry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	return entries, err
}

func extensionSet(extensions []string) map[string]struct{} {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
