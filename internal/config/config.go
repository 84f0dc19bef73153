// Package config provides configuration types, YAML loading and validation
// for the uptime daemon.
//
// Load starts from compiled defaults, overlays an optional YAML file and then
// validates and normalizes the result. Command line flags are applied by the
// caller on top of the loaded Config.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jroosing/apphelpers/internal/uptime"
)

// EnvConfigPath names the environment variable consulted by ResolveConfigPath.
const EnvConfigPath = "UPTIMED_CONFIG"

// Default returns the compiled default configuration.
func Default() *Config {
	return &Config{
		Sampler: SamplerConfig{
			Source:   uptime.SourceMonotonic,
			Interval: time.Second,
		},
		Database: DatabaseConfig{
			MaxSamples:      10000,
			CheckpointEvery: 60,
		},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
			ExtraFields:      map[string]string{},
		},
		API: APIConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    8080,
		},
	}
}

// ResolveConfigPath returns the flag value if set, otherwise the value of
// UPTIMED_CONFIG. An empty result means "use defaults".
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	// Normalize sampler
	cfg.Sampler.Source = strings.ToLower(strings.TrimSpace(cfg.Sampler.Source))
	if cfg.Sampler.Source == "" {
		cfg.Sampler.Source = uptime.SourceMonotonic
	}
	switch cfg.Sampler.Source {
	case uptime.SourceMonotonic, uptime.SourceHost, uptime.SourceProcess:
	default:
		return fmt.Errorf("sampler.source %q must be monotonic, host or process", cfg.Sampler.Source)
	}
	if cfg.Sampler.Interval <= 0 {
		return errors.New("sampler.interval must be greater than 0")
	}
	if cfg.Sampler.Interval >= uptime.WrapPeriod {
		return fmt.Errorf("sampler.interval must be shorter than %s or counter wraps go unnoticed", uptime.WrapPeriod)
	}
	if cfg.Sampler.OffsetMs < 0 || cfg.Sampler.OffsetMs > math.MaxUint32 {
		return errors.New("sampler.offset_ms must be 0..4294967295")
	}

	// Normalize database
	if cfg.Database.MaxSamples <= 0 {
		cfg.Database.MaxSamples = 10000
	}
	if cfg.Database.CheckpointEvery <= 0 {
		cfg.Database.CheckpointEvery = 60
	}
	if cfg.Sampler.Resume && cfg.Database.Path == "" {
		return errors.New("sampler.resume requires database.path")
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	// Normalize API
	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	return nil
}
