package scan

import (
	"textparser/internal/chunk"
	"textparser/internal/config"
)

// Options controls a scan run.
type Options struct {
	Encoding     string
	Extensions   []string
	MinChunkSize int
	// ReportEvery is the report cadence K. Values <= 0 disable periodic reports.
	ReportEvery int
	TopN        int
	// FinalReport appends one more report once the walk ends.
	FinalReport  bool
	RecordChunks bool
	// LockPath, when set, is locked exclusively for the duration of a run.
	LockPath string
}

// OptionsFromConfig derives scan options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{MinChunkSize: chunk.SizeMin}
	}
	return Options{
		Encoding:     cfg.Scan.Encoding,
		Extensions:   append([]string(nil), cfg.Scan.Extensions...),
		MinChunkSize: cfg.Scan.MinChunkSize,
		ReportEvery:  cfg.Report.Every,
		TopN:         cfg.Report.TopN,
		FinalReport:  cfg.Report.Final,
		RecordChunks: cfg.Scan.RecordChunks,
		LockPath:     cfg.LockPath(),
	}
}

func (o Options) minChunkSize() int {
	if o.MinChunkSize <= 0 {
		return chunk.SizeMin
	}
	return o.MinChunkSize
}

// reportDue reports whether a report fires after the document with zero-based
// processed index n.
func (o Options) reportDue(n int) bool {
	return o.ReportEvery > 0 && n%o.ReportEvery == 0
}
