package config

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateSource(cfg *Config) error {
	src := cfg.Source
	if utf8.RuneCountInString(src.Delimiter) != 1 {
		return fmt.Errorf("source.delimiter must be a single character, got %q", src.Delimiter)
	}
	switch src.Comma() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("source.delimiter %q cannot be used as a field separator", src.Delimiter)
	}
	if src.HeaderRows < 0 {
		return fmt.Errorf("source.header_rows must be >= 0, got %d", src.HeaderRows)
	}
	if src.MinFields < 3 {
		return fmt.Errorf("source.min_fields must be >= 3, got %d", src.MinFields)
	}

	re, err := regexp.Compile(src.VersionPattern)
	if err != nil {
		return fmt.Errorf("source.version_pattern is invalid: %w", err)
	}
	if re.NumSubexp() != 1 {
		return fmt.Errorf("source.version_pattern must have exactly one capture group, got %d", re.NumSubexp())
	}
	return nil
}

func validateLog(cfg *Config) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("log.level must be one of: debug, info, warn, error")
}
