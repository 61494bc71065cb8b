package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"textparser/internal/config"
	"textparser/internal/logging"
	"textparser/internal/store"
	"textparser/internal/vocab"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.configErr = fmt.Errorf("load .env: %w", err)
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// loggerFor returns the process logger, falling back to a stderr console
// logger when the log file cannot be opened.
func (c *commandContext) loggerFor(cfg *config.Config) *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: cfg.Logging.Level, Format: "console"})
			logging.WarnWithContext(logger, "log file unavailable", "log_file_unavailable",
				logging.Error(err),
				logging.String(logging.FieldImpact, "logs are written to stderr only"),
			)
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open run ledger: %w", err)
	}
	return st, nil
}

func (c *commandContext) loadVocabulary(cfg *config.Config) *vocab.Store {
	logger := c.loggerFor(cfg)
	words, errs := vocab.Load(cfg.VocabularyPaths(), vocab.Options{
		Normalize: cfg.Vocabulary.Normalize,
		Logger:    logger,
	})
	if words.Len() == 0 {
		logging.WarnWithContext(logger, "vocabulary is empty", "vocabulary_empty",
			logging.Int("sources", len(cfg.Vocabulary.Sources)),
			logging.Int("failed_sources", len(errs)),
			logging.String(logging.FieldErrorHint, "run `textparser check` to inspect vocabulary sources"),
			logging.String(logging.FieldImpact, "every word is treated as unknown and no chunks are produced"),
		)
	}
	return words
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
