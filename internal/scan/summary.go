package scan

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"textparser/internal/store"
)

// Summary describes a finished run.
type Summary struct {
	RunID              string          `json:"run_id"`
	Root               string          `json:"root"`
	Status             store.RunStatus `json:"status"`
	DocumentsProcessed int             `json:"documents_processed"`
	DocumentsFailed    int             `json:"documents_failed"`
	Tokens             int             `json:"tokens"`
	Chunks             int             `json:"chunks"`
	UnknownWords       int             `json:"unknown_words"`
	Reports            int             `json:"reports"`
	ReportFailures     int             `json:"report_failures"`
	BytesRead          int64           `json:"bytes_read"`
	StartedAt          time.Time       `json:"started_at"`
	Duration           time.Duration   `json:"duration_ns"`
}

// String renders a one-line human readable summary.
func (s Summary) String() string {
	return fmt.Sprintf("%s: %s documents (%s failed), %s read, %s tokens, %s chunks, %s unknown words, %d reports in %s",
		s.Status,
		humanize.Comma(int64(s.DocumentsProcessed)),
		humanize.Comma(int64(s.DocumentsFailed)),
		humanize.Bytes(uint64(s.BytesRead)),
		humanize.Comma(int64(s.Tokens)),
		humanize.Comma(int64(s.Chunks)),
		humanize.Comma(int64(s.UnknownWords)),
		s.Reports,
		s.Duration.Round(time.Millisecond),
	)
}

func (s Summary) run() *store.Run {
	finished := s.StartedAt.Add(s.Duration)
	return &store.Run{
		ID:                 s.RunID,
		Root:               s.Root,
		Status:             s.Status,
		StartedAt:          s.StartedAt,
		FinishedAt:         &finished,
		DocumentsProcessed: s.DocumentsProcessed,
		DocumentsFailed:    s.DocumentsFailed,
		Tokens:             s.Tokens,
		Chunks:             s.Chunks,
		UnknownWords:       s.UnknownWords,
		Reports:            s.Reports,
		BytesRead:          s.BytesRead,
	}
}
