package config

const (
	defaultConfigPath    = "~/.config/textparser/config.toml"
	defaultDataDir       = "~/.local/share/textparser"
	defaultLogDir        = "~/.local/share/textparser/logs"
	defaultReportFile    = "~/.local/share/textparser/output.txt"
	defaultVocabularyDir = "~/.local/share/textparser/vocabulary"
	defaultEncoding      = "utf-8"
	defaultMinChunkSize  = 10
	defaultReportEvery   = 100
	defaultReportTopN    = 300
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

func defaultVocabularySources() []string {
	return []string{
		"lemmas_all.txt",
		"cities.txt",
		"countries.txt",
		"extra.txt",
		"f_names.txt",
		"s_names.txt",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			ReportFile: defaultReportFile,
		},
		Vocabulary: Vocabulary{
			Dir:       defaultVocabularyDir,
			Sources:   defaultVocabularySources(),
			Normalize: true,
		},
		Scan: Scan{
			Extensions:   []string{".txt"},
			Encoding:     defaultEncoding,
			MinChunkSize: defaultMinChunkSize,
			RecordChunks: true,
		},
		Report: Report{
			Every: defaultReportEvery,
			TopN:  defaultReportTopN,
			Final: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
