package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config holds process configuration. Values come from an optional YAML file
// (path in CONFIG_FILE, or config.yaml next to the binary when present),
// overridden by environment variables.
type Config struct {
	Port           string   `yaml:"port"`
	DatabaseURL    string   `yaml:"database_url"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Token bucket for the raw-statement endpoint.
	QueryRatePerSec float64 `yaml:"query_rate_per_sec"`
	QueryBurst      int     `yaml:"query_burst"`
}

// Load reads the YAML file (if any) and then applies environment overrides.
//
// Environment variables:
//   - PORT
//   - DATABASE_URL
//   - LOG_LEVEL:  "debug", "info", "warn", "error" (default: "info")
//   - LOG_FORMAT: "json" or "console" (default: "json")
//   - ALLOWED_ORIGINS: comma-separated origin list
//   - QUERY_RATE_PER_SEC, QUERY_BURST
func Load() (Config, error) {
	cfg := Config{
		Port:            "5050",
		LogLevel:        "info",
		LogFormat:       "json",
		QueryRatePerSec: 5,
		QueryBurst:      10,
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := os.Getenv("QUERY_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.QueryRatePerSec = f
		}
	}
	if v := os.Getenv("QUERY_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.QueryBurst = n
		}
	}

	return cfg, nil
}
