package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad_Defaults verifies defaults apply with no file and no env.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	// Run from a directory with no config.yaml.
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5050" {
		t.Errorf("expected default port 5050, got %q", cfg.Port)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("unexpected log defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.QueryRatePerSec != 5 || cfg.QueryBurst != 10 {
		t.Errorf("unexpected limiter defaults: %v %v", cfg.QueryRatePerSec, cfg.QueryBurst)
	}
}

// TestLoad_YAMLFileWithEnvOverride verifies the file is read and the
// environment wins over it.
func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
port: "8080"
database_url: postgres://file-dsn/cadastre
log_level: debug
allowed_origins:
  - https://cadastre.example
query_rate_per_sec: 2
query_burst: 4
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected env to override file, got %q", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://file-dsn/cadastre" {
		t.Errorf("expected file DSN kept, got %q", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug from file, got %q", cfg.LogLevel)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://cadastre.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.QueryRatePerSec != 2 || cfg.QueryBurst != 4 {
		t.Errorf("unexpected limiter settings: %v %v", cfg.QueryRatePerSec, cfg.QueryBurst)
	}
}

// TestLoad_OriginListFromEnv verifies comma-separated origins are split and
// trimmed.
func TestLoad_OriginListFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("expected trimmed origin, got %q", cfg.AllowedOrigins[1])
	}
}
