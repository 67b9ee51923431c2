package config

import (
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// Parse decodes a TOML configuration document, fills defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateSource(&cfg); err != nil {
		return nil, err
	}
	if err := validateLog(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if cfg.Source.Delimiter == "" {
		cfg.Source.Delimiter = ";"
	}
	if cfg.Source.HeaderRows == 0 {
		cfg.Source.HeaderRows = 2
	}
	if cfg.Source.MinFields == 0 {
		cfg.Source.MinFields = 3
	}
	if strings.TrimSpace(cfg.Source.VersionPattern) == "" {
		cfg.Source.VersionPattern = `-([0-9]+\.[0-9]+\.[0-9]+)\.txt$`
	}
	if strings.TrimSpace(cfg.Source.DistributionMarker) == "" {
		cfg.Source.DistributionMarker = "~"
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// SlogLevel maps the configured level name onto a slog level.
func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
