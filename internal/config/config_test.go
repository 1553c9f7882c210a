package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Store.Driver != "memory" || cfg.Latency.Mode != "none" || cfg.PokeAPI.ListLimit != 151 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainerdex.toml")
	doc := `
[store]
driver = "sqlite"
sqlite_path = "/tmp/dex.db"

[latency]
mode = "random"
min = "10ms"
max = "20ms"

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.SQLitePath != "/tmp/dex.db" {
		t.Fatalf("unexpected store config %+v", cfg.Store)
	}
	if cfg.Latency.Min != 10*time.Millisecond || cfg.Latency.Max != 20*time.Millisecond {
		t.Fatalf("unexpected latency %+v", cfg.Latency)
	}
	if cfg.Logging.Format != "json" || cfg.PokeAPI.BaseURL != "https://pokeapi.co/api/v2" {
		t.Fatalf("expected untouched sections to keep defaults, got %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TRAINERDEX_STORE_DRIVER":         "postgres",
		"TRAINERDEX_POSTGRES_DSN":         "postgres://dex@localhost/dex",
		"TRAINERDEX_LATENCY_MIN":          "1ms",
		"TRAINERDEX_EXPORT_DRIVER":        "s3",
		"TRAINERDEX_EXPORT_S3_BUCKET":     "dex-snapshots",
		"TRAINERDEX_EXPORT_S3_PATH_STYLE": "true",
	}
	cfg := Defaults()
	if err := ApplyEnv(cfg, func(k string) (string, bool) { v, ok := env[k]; return v, ok }); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Store.Driver != "postgres" || cfg.Store.PostgresDSN == "" || cfg.Latency.Min != time.Millisecond {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !cfg.Export.S3PathStyle || cfg.Export.S3Bucket != "dex-snapshots" {
		t.Fatalf("export env not applied: %+v", cfg.Export)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	for key, value := range map[string]string{
		"TRAINERDEX_LATENCY_MAX":          "soon",
		"TRAINERDEX_EXPORT_S3_PATH_STYLE": "maybe",
	} {
		cfg := Defaults()
		err := ApplyEnv(cfg, func(k string) (string, bool) {
			if k == key {
				return value, true
			}
			return "", false
		})
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Fatalf("%s: expected error naming the variable, got %v", key, err)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"store driver":  func(c *Config) { c.Store.Driver = "mongo" },
		"postgres dsn":  func(c *Config) { c.Store.Driver = "postgres" },
		"latency mode":  func(c *Config) { c.Latency.Mode = "jitter" },
		"latency bound": func(c *Config) { c.Latency.Min = -time.Second },
		"export driver": func(c *Config) { c.Export.Driver = "ftp" },
		"s3 bucket":     func(c *Config) { c.Export.Driver = "s3" },
		"rate":          func(c *Config) { c.PokeAPI.RequestsPerSecond = -1 },
	}
	for name, mutate := range cases {
		cfg := Defaults()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
