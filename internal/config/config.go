package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file locations.
type Paths struct {
	CorpusDir  string `toml:"corpus_dir"`
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
	ReportFile string `toml:"report_file"`
}

// Vocabulary lists the reference word sources.
type Vocabulary struct {
	Dir       string   `toml:"dir"`
	Sources   []string `toml:"sources"`
	Normalize bool     `toml:"normalize"`
}

// Scan contains document discovery and segmentation settings.
type Scan struct {
	Extensions   []string `toml:"extensions"`
	Encoding     string   `toml:"encoding"`
	MinChunkSize int      `toml:"min_chunk_size"`
	RecordChunks bool     `toml:"record_chunks"`
}

// Report contains frequency report settings.
type Report struct {
	Every int  `toml:"every"`
	TopN  int  `toml:"top_n"`
	Final bool `toml:"final"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for textparser.
//
// Configuration sections:
//   - Paths: corpus root, data/log directories, report file
//   - Vocabulary: ordered reference word lists
//   - Scan: document extensions, encoding, chunk threshold
//   - Report: cadence and size of frequency reports
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Vocabulary Vocabulary `toml:"vocabulary"`
	Scan       Scan       `toml:"scan"`
	Report     Report     `toml:"report"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. Environment
// overrides are applied after the file is decoded. The returned config has
// all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("textparser.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories plus the parent of
// the report file.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.LogDir}
	if c.Paths.ReportFile != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.ReportFile))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// VocabularyPaths returns the vocabulary sources in load order with relative
// entries resolved against Vocabulary.Dir.
func (c *Config) VocabularyPaths() []string {
	paths := make([]string, 0, len(c.Vocabulary.Sources))
	for _, source := range c.Vocabulary.Sources {
		if filepath.IsAbs(source) || c.Vocabulary.Dir == "" {
			paths = append(paths, source)
			continue
		}
		paths = append(paths, filepath.Join(c.Vocabulary.Dir, source))
	}
	return paths
}

// LedgerPath returns the SQLite run ledger location.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.DataDir, "textparser.db")
}

// LockPath returns the scan lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "textparser.lock")
}

// LogPath returns the persistent log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "textparser.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
