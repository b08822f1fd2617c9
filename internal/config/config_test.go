package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
  cors_origins: ["https://calc.example.com"]
lookup:
  timeout: 3s
  cache_size: 128
  breaker:
    failure_ratio: 0.5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://calc.example.com" {
		t.Errorf("cors origins: got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Lookup.Timeout != 3*time.Second {
		t.Errorf("lookup timeout: got %v", cfg.Lookup.Timeout)
	}
	if cfg.Lookup.CacheSize != 128 {
		t.Errorf("cache size: got %d", cfg.Lookup.CacheSize)
	}
	if cfg.Lookup.Breaker.FailureRatio != 0.5 || cfg.Lookup.Breaker.MinRequests != 5 {
		t.Errorf("breaker: got %+v", cfg.Lookup.Breaker)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	tests := []struct {
		name, content, want string
	}{
		{"bad yaml", "server: [", "failed to parse config"},
		{"bad port", "server:\n  port: 70000\n", "server.port"},
		{"bad ratio", "lookup:\n  breaker:\n    failure_ratio: 1.5\n", "failure_ratio"},
		{"bad fuzziness", "search:\n  fuzziness: 3\n", "fuzziness"},
		{"negative cache", "lookup:\n  cache_size: -1\n", "cache_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("default cors origins: got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Lookup.PostalBaseURL != "https://api.postalpincode.in" {
		t.Errorf("default postal url: got %s", cfg.Lookup.PostalBaseURL)
	}
	if cfg.Lookup.CacheSize != 0 {
		t.Errorf("cache should stay disabled by default, got %d", cfg.Lookup.CacheSize)
	}
	if cfg.Search.MaxResults != 8 || cfg.Search.Fuzziness != 2 || cfg.Search.MaxSuggestions != 3 {
		t.Errorf("search defaults: got %+v", cfg.Search)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSearchConfig_FuzzyOrDefault(t *testing.T) {
	t.Run("nil_returns_true", func(t *testing.T) {
		s := &SearchConfig{}
		if got := s.FuzzyOrDefault(); !got {
			t.Errorf("FuzzyOrDefault() = %v, want true", got)
		}
	})
	t.Run("false_returns_false", func(t *testing.T) {
		f := false
		s := &SearchConfig{Fuzzy: &f}
		if got := s.FuzzyOrDefault(); got {
			t.Errorf("FuzzyOrDefault() = %v, want false", got)
		}
	})
	t.Run("false_survives_load", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "search:\n  fuzzy: false\n"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Search.FuzzyOrDefault() {
			t.Error("explicit fuzzy: false was overridden by defaults")
		}
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := Default()
	cfg.Server.Port = 9090
	cfg.Lookup.Timeout = 2500 * time.Millisecond
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
	if loaded.Lookup.Timeout != 2500*time.Millisecond {
		t.Errorf("loaded timeout: got %v", loaded.Lookup.Timeout)
	}
}
