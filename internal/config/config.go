package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	PostgresDSN     string // empty: filter snapshots and shared links stay in memory
	CSVSource       string // file path or http(s) URL
	PublicBaseURL   string
	DisplayTimezone *time.Location
	LogLevel        string
	FetchTimeout    time.Duration
	SessionTTL      time.Duration
}

// Load reads the environment, after applying a .env file when one exists.
// Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		HTTPAddr:      get("HTTP_ADDR", ":8080"),
		PostgresDSN:   get("POSTGRES_DSN", ""),
		CSVSource:     get("CSV_SOURCE", "DataFiles/FMSCA_records.csv"),
		PublicBaseURL: strings.TrimSuffix(get("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		LogLevel:      strings.ToLower(get("LOG_LEVEL", "info")),
	}

	loc, err := time.LoadLocation(get("DISPLAY_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	cfg.DisplayTimezone = loc

	if cfg.FetchTimeout, err = time.ParseDuration(get("FETCH_TIMEOUT", "15s")); err != nil {
		return Config{}, fmt.Errorf("FETCH_TIMEOUT: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}

	return cfg, nil
}
