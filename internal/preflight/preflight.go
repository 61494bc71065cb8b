package preflight

import (
	"textparser/internal/config"
)

// CorpusCheck names the corpus root check.
const CorpusCheck = "Corpus directory"

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Fatal marks checks whose failure prevents a scan from starting.
	Fatal bool
}

// RunAll executes all preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, fatal(CheckReadableDirectory(CorpusCheck, cfg.Paths.CorpusDir)))
	results = append(results, fatal(CheckDirectoryAccess("Data directory", cfg.Paths.DataDir)))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, fatal(CheckReportSink(cfg.Paths.ReportFile)))
	results = append(results, fatal(CheckEncoding(cfg.Scan.Encoding)))

	for _, source := range cfg.VocabularyPaths() {
		results = append(results, CheckVocabularySource(source))
	}

	return results
}

// Blocking returns the fatal checks that failed.
func Blocking(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Fatal && !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func fatal(r Result) Result {
	r.Fatal = true
	return r
}
