package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"textparser/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CorpusDir = filepath.Join(base, "corpus")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ReportFile = filepath.Join(base, "data", "output.txt")
	cfgVal.Vocabulary.Dir = filepath.Join(base, "vocabulary")
	cfgVal.Vocabulary.Sources = []string{"words.txt"}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithVocabulary writes words to the first vocabulary source.
func WithVocabulary(words ...string) ConfigOption {
	return func(b *configBuilder) {
		b.t.Helper()
		paths := b.cfg.VocabularyPaths()
		if len(paths) == 0 {
			b.t.Fatalf("config has no vocabulary sources")
		}
		WriteLines(b.t, paths[0], words...)
	}
}

// WithReport overrides report cadence and size.
func WithReport(every, topN int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.Every = every
		b.cfg.Report.TopN = topN
	}
}

// WithCorpusDir creates the corpus directory so walks succeed even when empty.
func WithCorpusDir() ConfigOption {
	return func(b *configBuilder) {
		b.t.Helper()
		if err := os.MkdirAll(b.cfg.Paths.CorpusDir, 0o755); err != nil {
			b.t.Fatalf("mkdir corpus: %v", err)
		}
	}
}

