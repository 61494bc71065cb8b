package frequency

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"textparser/internal/scanerr"
)

// Report appends the topN most frequent words of counter to sink, one word
// per line with counts omitted. Each line is handed to sink in a single
// Write call. It returns the entries written.
func Report(counter *Counter, topN int, sink io.Writer) ([]Entry, error) {
	if counter == nil || topN <= 0 {
		return nil, nil
	}
	top := counter.Top(topN)
	for i, entry := range top {
		if _, err := io.WriteString(sink, entry.Word+"\n"); err != nil {
			return top[:i], scanerr.Wrap(scanerr.ErrReportWrite, "report", "write", fmt.Sprintf("line %d", i+1), err)
		}
	}
	return top, nil
}

// OpenSink opens path for appending, creating it and its parent directory
// when absent. Existing content is never truncated.
func OpenSink(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, scanerr.Wrap(scanerr.ErrReportWrite, "report", "open", path, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, scanerr.Wrap(scanerr.ErrReportWrite, "report", "open", path, err)
	}
	return file, nil
}
