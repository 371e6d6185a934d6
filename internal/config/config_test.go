package config

import (
	"testing"
	"time"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.CSVSource != "DataFiles/FMSCA_records.csv" {
		t.Fatalf("unexpected csv source %s", cfg.CSVSource)
	}
	if cfg.PostgresDSN != "" {
		t.Fatalf("expected empty dsn, got %s", cfg.PostgresDSN)
	}
	if cfg.DisplayTimezone != time.UTC {
		t.Fatalf("expected UTC, got %v", cfg.DisplayTimezone)
	}
	if cfg.FetchTimeout != 15*time.Second || cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected durations: %v %v", cfg.FetchTimeout, cfg.SessionTTL)
	}
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"HTTP_ADDR":       ":9090",
		"PUBLIC_BASE_URL": "https://carriers.example.com/",
		"LOG_LEVEL":       "DEBUG",
		"FETCH_TIMEOUT":   "2s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.PublicBaseURL != "https://carriers.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.PublicBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug, got %s", cfg.LogLevel)
	}
	if cfg.FetchTimeout != 2*time.Second {
		t.Fatalf("expected 2s, got %v", cfg.FetchTimeout)
	}
}

func TestFromLookup_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad_timezone", map[string]string{"DISPLAY_TIMEZONE": "Mars/Olympus"}},
		{"bad_fetch_timeout", map[string]string{"FETCH_TIMEOUT": "soon"}},
		{"bad_session_ttl", map[string]string{"SESSION_TTL": "forever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromLookup(lookupFrom(tt.env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
