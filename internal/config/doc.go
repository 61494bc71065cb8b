// Package config loads textparser settings from TOML, applies TEXTPARSER_*
// environment overrides, expands paths, and validates the result.
//
// Search order: the --config flag, ~/.config/textparser/config.toml, then
// ./textparser.toml. Missing files fall back to Default().
package config
