package config

import (
	_ "embed"
	"sync"
)

//go:embed defaults.toml
var defaultsTOML []byte

type Config struct {
	Version int    `toml:"version"`
	Source  Source `toml:"source"`
	Log     Log    `toml:"log"`
}

// Source describes the layout of the exported function table.
type Source struct {
	Delimiter          string `toml:"delimiter"`
	HeaderRows         int    `toml:"header_rows"`
	MinFields          int    `toml:"min_fields"`
	VersionPattern     string `toml:"version_pattern"`
	DistributionMarker string `toml:"distribution_marker"`
}

type Log struct {
	Level string `toml:"level"`
}

// Comma returns the delimiter as the rune expected by encoding/csv.
func (s Source) Comma() rune {
	for _, r := range s.Delimiter {
		return r
	}
	return ';'
}

var defaults = sync.OnceValues(func() (*Config, error) {
	return Parse(defaultsTOML)
})

// Default returns the built-in configuration. The embedded document is
// validated by tests, so a decode failure here is a programming error.
func Default() *Config {
	cfg, err := defaults()
	if err != nil {
		panic("config: embedded defaults: " + err.Error())
	}
	clone := *cfg
	return &clone
}
