package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeVocabulary(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.CorpusDir, err = expandPath(strings.TrimSpace(c.Paths.CorpusDir)); err != nil {
		return fmt.Errorf("paths.corpus_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportFile) == "" {
		c.Paths.ReportFile = defaultReportFile
	}
	if c.Paths.ReportFile, err = expandPath(c.Paths.ReportFile); err != nil {
		return fmt.Errorf("paths.report_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeVocabulary() error {
	var err error
	if c.Vocabulary.Dir, err = expandPath(strings.TrimSpace(c.Vocabulary.Dir)); err != nil {
		return fmt.Errorf("vocabulary.dir: %w", err)
	}
	sources := make([]string, 0, len(c.Vocabulary.Sources))
	for _, source := range c.Vocabulary.Sources {
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}
		if strings.HasPrefix(source, "~") {
			if source, err = expandPath(source); err != nil {
				return fmt.Errorf("vocabulary.sources: %w", err)
			}
		}
		sources = append(sources, source)
	}
	c.Vocabulary.Sources = sources
	return nil
}

func (c *Config) normalizeScan() {
	seen := make(map[string]struct{}, len(c.Scan.Extensions))
	exts := make([]string, 0, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, exists := seen[ext]; exists {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = []string{".txt"}
	}
	c.Scan.Extensions = exts
	c.Scan.Encoding = strings.ToLower(strings.TrimSpace(c.Scan.Encoding))
	if c.Scan.Encoding == "" {
		c.Scan.Encoding = defaultEncoding
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
