package config

import "time"

// SamplerConfig controls how the tick source is polled.
type SamplerConfig struct {
	// Source is one of "monotonic", "host" or "process".
	Source string `yaml:"source"`
	// Interval between samples. Must stay below the 32-bit wrap period.
	Interval time.Duration `yaml:"interval"`
	// OffsetMs shifts raw ticks, e.g. to force an early counter wrap.
	OffsetMs int `yaml:"offset_ms"`
	// Resume seeds the accumulator from the last database checkpoint.
	Resume bool `yaml:"resume"`
}

// DatabaseConfig controls the sample history store.
type DatabaseConfig struct {
	// Path of the SQLite file. Empty disables history and checkpoints.
	Path string `yaml:"path"`
	// MaxSamples bounds the history table (default: 10000).
	MaxSamples int `yaml:"max_samples"`
	// CheckpointEvery persists the accumulator every N samples (default: 60).
	CheckpointEvery int `yaml:"checkpoint_every"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level"`
	Structured       bool              `yaml:"structured"`
	StructuredFormat string            `yaml:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields,omitempty"`
}

// APIConfig contains REST API settings.
//
// Note: APIKey is a secret and is never returned by API endpoints.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	APIKey  string `yaml:"api_key,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Sampler  SamplerConfig  `yaml:"sampler"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	API      APIConfig      `yaml:"api"`
}
