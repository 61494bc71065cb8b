package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/htmlindex"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVocabulary(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateVocabulary() error {
	if len(c.Vocabulary.Sources) == 0 {
		return errors.New("vocabulary.sources must list at least one file")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.MinChunkSize <= 0 {
		return errors.New("scan.min_chunk_size must be positive")
	}
	if _, err := htmlindex.Get(c.Scan.Encoding); err != nil {
		return fmt.Errorf("scan.encoding: unsupported value %q", c.Scan.Encoding)
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.Every < 0 {
		return errors.New("report.every must be zero (disabled) or positive")
	}
	if c.Report.TopN <= 0 {
		return errors.New("report.top_n must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
