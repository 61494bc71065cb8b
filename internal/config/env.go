package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// envOverrides holds settings that may be supplied through the environment.
// Zero values leave the file or default value untouched.
type envOverrides struct {
	CorpusDir     string `env:"TEXTPARSER_CORPUS_DIR"`
	DataDir       string `env:"TEXTPARSER_DATA_DIR"`
	LogDir        string `env:"TEXTPARSER_LOG_DIR"`
	ReportFile    string `env:"TEXTPARSER_REPORT_FILE"`
	VocabularyDir string `env:"TEXTPARSER_VOCABULARY_DIR"`
	Encoding      string `env:"TEXTPARSER_ENCODING"`
	ReportEvery   int    `env:"TEXTPARSER_REPORT_EVERY"`
	ReportTopN    int    `env:"TEXTPARSER_REPORT_TOP_N"`
	LogLevel      string `env:"TEXTPARSER_LOG_LEVEL"`
	LogFormat     string `env:"TEXTPARSER_LOG_FORMAT"`
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	setString(&c.Paths.CorpusDir, overrides.CorpusDir)
	setString(&c.Paths.DataDir, overrides.DataDir)
	setString(&c.Paths.LogDir, overrides.LogDir)
	setString(&c.Paths.ReportFile, overrides.ReportFile)
	setString(&c.Vocabulary.Dir, overrides.VocabularyDir)
	setString(&c.Scan.Encoding, overrides.Encoding)
	setString(&c.Logging.Level, overrides.LogLevel)
	setString(&c.Logging.Format, overrides.LogFormat)
	if overrides.ReportEvery != 0 {
		c.Report.Every = overrides.ReportEvery
	}
	if overrides.ReportTopN != 0 {
		c.Report.TopN = overrides.ReportTopN
	}
	return nil
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
