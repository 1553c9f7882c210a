// Package config loads trainerdex settings from TOML with TRAINERDEX_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Store   StoreConfig   `toml:"store"`
	Latency LatencyConfig `toml:"latency"`
	PokeAPI PokeAPIConfig `toml:"pokeapi"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
	Export  ExportConfig  `toml:"export"`
}

type StoreConfig struct {
	Driver      string `toml:"driver"` // memory, sqlite or postgres
	SQLitePath  string `toml:"sqlite_path"`
	PostgresDSN string `toml:"postgres_dsn"`
}

type LatencyConfig struct {
	Mode string        `toml:"mode"` // none, fixed or random
	Min  time.Duration `toml:"min"`
	Max  time.Duration `toml:"max"`
}

type PokeAPIConfig struct {
	BaseURL           string        `toml:"base_url"`
	RequestsPerSecond float64       `toml:"requests_per_second"`
	Burst             int           `toml:"burst"`
	Timeout           time.Duration `toml:"timeout"`
	ListLimit         int           `toml:"list_limit"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type MetricsConfig struct {
	Namespace string `toml:"namespace"`
}

type ExportConfig struct {
	Driver      string `toml:"driver"` // fs, memory or s3
	FSRoot      string `toml:"fs_root"`
	S3Bucket    string `toml:"s3_bucket"`
	S3Region    string `toml:"s3_region"`
	S3Endpoint  string `toml:"s3_endpoint"`
	S3PathStyle bool   `toml:"s3_path_style"`
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns an in-memory, zero-latency configuration.
func Defaults() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:     "memory",
			SQLitePath: "trainerdex.db",
		},
		Latency: LatencyConfig{
			Mode: "none",
			Min:  300 * time.Millisecond,
			Max:  800 * time.Millisecond,
		},
		PokeAPI: PokeAPIConfig{
			BaseURL:           "https://pokeapi.co/api/v2",
			RequestsPerSecond: 10,
			Burst:             5,
			Timeout:           10 * time.Second,
			ListLimit:         151,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Namespace: "trainerdex",
		},
		Export: ExportConfig{
			Driver:   "fs",
			FSRoot:   "./snapshots",
			S3Region: "us-east-1",
		},
	}
}

// ApplyEnv overlays TRAINERDEX_* variables found by lookup onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("TRAINERDEX_STORE_DRIVER", &cfg.Store.Driver)
	str("TRAINERDEX_SQLITE_PATH", &cfg.Store.SQLitePath)
	str("TRAINERDEX_POSTGRES_DSN", &cfg.Store.PostgresDSN)
	str("TRAINERDEX_LATENCY_MODE", &cfg.Latency.Mode)
	str("TRAINERDEX_POKEAPI_BASE_URL", &cfg.PokeAPI.BaseURL)
	str("TRAINERDEX_LOG_LEVEL", &cfg.Logging.Level)
	str("TRAINERDEX_LOG_FORMAT", &cfg.Logging.Format)
	str("TRAINERDEX_METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	str("TRAINERDEX_EXPORT_DRIVER", &cfg.Export.Driver)
	str("TRAINERDEX_EXPORT_FS_ROOT", &cfg.Export.FSRoot)
	str("TRAINERDEX_EXPORT_S3_BUCKET", &cfg.Export.S3Bucket)
	str("TRAINERDEX_EXPORT_S3_REGION", &cfg.Export.S3Region)
	str("TRAINERDEX_EXPORT_S3_ENDPOINT", &cfg.Export.S3Endpoint)

	for key, dst := range map[string]*time.Duration{
		"TRAINERDEX_LATENCY_MIN":     &cfg.Latency.Min,
		"TRAINERDEX_LATENCY_MAX":     &cfg.Latency.Max,
		"TRAINERDEX_POKEAPI_TIMEOUT": &cfg.PokeAPI.Timeout,
	} {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	if v, ok := lookup("TRAINERDEX_EXPORT_S3_PATH_STYLE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRAINERDEX_EXPORT_S3_PATH_STYLE: %w", err)
		}
		cfg.Export.S3PathStyle = b
	}
	return nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !oneOf(c.Store.Driver, "memory", "sqlite", "postgres") {
		return fmt.Errorf("store.driver %q: want memory, sqlite or postgres", c.Store.Driver)
	}
	if c.Store.Driver == "postgres" && c.Store.PostgresDSN == "" {
		return fmt.Errorf("store.postgres_dsn required for postgres driver")
	}
	if !oneOf(c.Latency.Mode, "none", "fixed", "random") {
		return fmt.Errorf("latency.mode %q: want none, fixed or random", c.Latency.Mode)
	}
	if c.Latency.Min < 0 || c.Latency.Max < 0 {
		return fmt.Errorf("latency bounds must not be negative")
	}
	if !oneOf(c.Export.Driver, "fs", "memory", "s3") {
		return fmt.Errorf("export.driver %q: want fs, memory or s3", c.Export.Driver)
	}
	if c.Export.Driver == "s3" && c.Export.S3Bucket == "" {
		return fmt.Errorf("export.s3_bucket required for s3 driver")
	}
	if c.PokeAPI.RequestsPerSecond < 0 {
		return fmt.Errorf("pokeapi.requests_per_second must not be negative")
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
