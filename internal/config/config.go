// Package config provides configuration loading and structs for the Hitung server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Lookup LookupConfig `yaml:"lookup"`
	Search SearchConfig `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// MaxSessions bounds how many per-session lookup slots are kept.
	MaxSessions int `yaml:"max_sessions"`
}

// LookupConfig holds the external lookup services.
type LookupConfig struct {
	PostalBaseURL string        `yaml:"postal_base_url"`
	IFSCBaseURL   string        `yaml:"ifsc_base_url"`
	QRBaseURL     string        `yaml:"qr_base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	// CacheSize is the number of responses kept; 0 disables caching.
	CacheSize int           `yaml:"cache_size"`
	Breaker   BreakerConfig `yaml:"breaker"`
}

// BreakerConfig holds circuit breaker settings shared by every lookup service.
type BreakerConfig struct {
	MaxRequests  uint32        `yaml:"max_requests"`
	Interval     time.Duration `yaml:"interval"`
	Timeout      time.Duration `yaml:"timeout"`
	MinRequests  uint32        `yaml:"min_requests"`
	FailureRatio float64       `yaml:"failure_ratio"`
}

// SearchConfig holds catalog search settings.
type SearchConfig struct {
	MaxResults     int   `yaml:"max_results"`
	Fuzzy          *bool `yaml:"fuzzy"`
	Fuzziness      int   `yaml:"fuzziness"`
	MaxSuggestions int   `yaml:"max_suggestions"`
}

// FuzzyOrDefault returns whether fuzzy fallback is enabled; defaults to true when unset.
func (s *SearchConfig) FuzzyOrDefault() bool {
	if s.Fuzzy != nil {
		return *s.Fuzzy
	}
	return true
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port %d out of range", c.Server.Port)
	}
	if c.Lookup.CacheSize < 0 {
		return fmt.Errorf("invalid config: lookup.cache_size must not be negative")
	}
	if r := c.Lookup.Breaker.FailureRatio; r <= 0 || r > 1 {
		return fmt.Errorf("invalid config: lookup.breaker.failure_ratio %v must be in (0, 1]", r)
	}
	if c.Search.Fuzziness < 0 || c.Search.Fuzziness > 2 {
		return fmt.Errorf("invalid config: search.fuzziness %d must be 0, 1 or 2", c.Search.Fuzziness)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
