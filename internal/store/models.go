package store

import "time"

// RunStatus is the lifecycle state of a scan run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunCanceled  RunStatus = "canceled"
	RunFailed    RunStatus = "failed"
)

// DocumentStatus records whether a document was processed or skipped.
type DocumentStatus string

const (
	DocumentProcessed DocumentStatus = "processed"
	DocumentFailed    DocumentStatus = "failed"
)

// Run is a persisted scan run.
type Run struct {
	ID                 string     `json:"id"`
	Root               string     `json:"root"`
	Status             RunStatus  `json:"status"`
	StartedAt          time.Time  `json:"started_at"`
	FinishedAt         *time.Time `json:"finished_at,omitempty"`
	DocumentsProcessed int        `json:"documents_processed"`
	DocumentsFailed    int        `json:"documents_failed"`
	Tokens             int        `json:"tokens"`
	Chunks             int        `json:"chunks"`
	UnknownWords       int        `json:"unknown_words"`
	Reports            int        `json:"reports"`
	BytesRead          int64      `json:"bytes_read"`
	ErrorMessage       string     `json:"error_message,omitempty"`
}

// Document is the outcome of one visited corpus file.
type Document struct {
	ID           int64
	RunID        string
	Path         string
	RelPath      string
	Bytes        int64
	Tokens       int
	Chunks       int
	Status       DocumentStatus
	ErrorKind    string
	ErrorMessage string
	ProcessedAt  time.Time
}

// ChunkRecord is a persisted chunk joined with its document path.
type ChunkRecord struct {
	ID         int64
	DocumentID int64
	RelPath    string
	Seq        int
	Text       string
	Start      int
	End        int
}

// ChunkQuery filters Chunks. Zero values match everything.
type ChunkQuery struct {
	RunID   string
	RelPath string
	Limit   int
}
