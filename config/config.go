// Package config loads client configuration from a YAML file with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	str2duration "github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

// Config is the client configuration. Durations are written in the
// extended form str2duration accepts ("1d2h", "30m").
type Config struct {
	// BaseURL is the remote API root.
	BaseURL string `yaml:"base_url"`
	// RedisURL, when set, selects the Redis session store instead of the
	// file store.
	RedisURL string `yaml:"redis_url"`
	// SessionDir is where the file session store keeps its entries.
	// Defaults to the user config dir.
	SessionDir string `yaml:"session_dir"`
	// CacheTTL bounds the age of cached query results. Zero means
	// results stay cached until invalidated.
	CacheTTL string `yaml:"cache_ttl"`
	// SnapshotPath, when set, persists the entity cache between runs.
	SnapshotPath string `yaml:"snapshot_path"`
	// LogLevel overrides SHOPFRONT_LOG_LEVEL when set.
	LogLevel string `yaml:"log_level"`
}

// DefaultPath returns the conventional config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "shopfront", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "shopfront", "config.yaml")
}

// Load reads the config file at path, then applies SHOPFRONT_* environment
// overrides. A missing file is not an error; the environment alone can
// configure the client.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env
	case err != nil:
		return nil, errors.Wrapf(err, "reading config %s", path)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	}

	applyEnv(&cfg)

	if cfg.BaseURL == "" {
		return nil, errors.New("base_url is required (set it in the config file or SHOPFRONT_BASE_URL)")
	}
	if _, err := cfg.ParsedCacheTTL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	for _, override := range []struct {
		env string
		dst *string
	}{
		{"SHOPFRONT_BASE_URL", &cfg.BaseURL},
		{"SHOPFRONT_REDIS_URL", &cfg.RedisURL},
		{"SHOPFRONT_SESSION_DIR", &cfg.SessionDir},
		{"SHOPFRONT_CACHE_TTL", &cfg.CacheTTL},
		{"SHOPFRONT_SNAPSHOT_PATH", &cfg.SnapshotPath},
		{"SHOPFRONT_LOG_LEVEL", &cfg.LogLevel},
	} {
		if v := os.Getenv(override.env); v != "" {
			*override.dst = v
		}
	}
}

// ParsedCacheTTL parses CacheTTL. Empty means zero.
func (c *Config) ParsedCacheTTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	d, err := str2duration.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing cache_ttl %q", c.CacheTTL)
	}
	return d, nil
}
