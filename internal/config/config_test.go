// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Server defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}

	// Database defaults
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Database.MaxOpenConns = %d, want 25", cfg.Database.MaxOpenConns)
	}

	// Redis defaults (disabled)
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled should be false by default")
	}
	if cfg.Redis.PlanTTL != time.Minute {
		t.Errorf("Redis.PlanTTL = %v, want 1m", cfg.Redis.PlanTTL)
	}

	// Ranking defaults track the engine's own defaults
	if cfg.Ranking.DefaultLimit != 50 {
		t.Errorf("Ranking.DefaultLimit = %d, want 50", cfg.Ranking.DefaultLimit)
	}
	if cfg.Ranking.MaxLimit != 200 {
		t.Errorf("Ranking.MaxLimit = %d, want 200", cfg.Ranking.MaxLimit)
	}
	if cfg.Ranking.Weights.ManualOverride != 20000 {
		t.Errorf("Ranking.Weights.ManualOverride = %v, want 20000", cfg.Ranking.Weights.ManualOverride)
	}

	// API defaults
	if cfg.API.RateLimitReqs != 100 {
		t.Errorf("API.RateLimitReqs = %d, want 100", cfg.API.RateLimitReqs)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "*" {
		t.Errorf("API.CORSOrigins = %v, want [*]", cfg.API.CORSOrigins)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

// TestDefaultConfigValidates verifies that the built-in defaults pass
// validation without any overrides.
func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PASSWORD", "supersecretvalue")
	t.Setenv("RANKING_MAX_LIMIT", "500")
	t.Setenv("RANKING_WEIGHT_SPONSORSHIP", "12000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Ranking.MaxLimit != 500 {
		t.Errorf("Ranking.MaxLimit = %d, want 500", cfg.Ranking.MaxLimit)
	}
	if cfg.Ranking.Weights.Sponsorship != 12000 {
		t.Errorf("Ranking.Weights.Sponsorship = %v, want 12000", cfg.Ranking.Weights.Sponsorship)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7070
redis:
  enabled: true
  addr: cache.internal:6379
ranking:
  default_limit: 25
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis.Enabled = false, want true")
	}
	if cfg.Redis.Addr != "cache.internal:6379" {
		t.Errorf("Redis.Addr = %q, want cache.internal:6379", cfg.Redis.Addr)
	}
	if cfg.Ranking.DefaultLimit != 25 {
		t.Errorf("Ranking.DefaultLimit = %d, want 25", cfg.Ranking.DefaultLimit)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env should beat file)", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad port", key: "HTTP_PORT", value: "99999"},
		{name: "bad environment", key: "ENVIRONMENT", value: "staging"},
		{name: "bad log level", key: "LOG_LEVEL", value: "verbose"},
		{name: "bad log format", key: "LOG_FORMAT", value: "xml"},
		{name: "broken weight precedence", key: "RANKING_WEIGHT_SPONSORSHIP", value: "30000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded, want error", tt.key, tt.value)
			}
		})
	}
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.API.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
	for i := range want {
		if cfg.API.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.API.CORSOrigins[i], want[i])
		}
	}
}

func TestEnvTransformSkipsUnknownKeys(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("envTransformFunc(PATH) = %q, want empty", got)
	}
	if got := envTransformFunc("POSTGRES_HOST"); got != "database.host" {
		t.Errorf("envTransformFunc(POSTGRES_HOST) = %q, want database.host", got)
	}
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "rank", Password: "pw",
		Name: "tradrank", SSLMode: "disable",
	}

	dsn := cfg.DSN()
	for _, part := range []string{"host=localhost", "port=5432", "user=rank", "dbname=tradrank", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN() missing %q: %s", part, dsn)
		}
	}
}

func TestLogSummaryMasksSecrets(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.Password = "hunter2hunter2"
	cfg.Redis.Password = "short"

	summary := cfg.LogSummary()

	masked, ok := summary["postgres_password"].(string)
	if !ok || strings.Contains(masked, "hunter2hunter2") {
		t.Error("postgres password leaked in log summary")
	}
	if summary["postgres_password"] != "hunt****" {
		t.Errorf("postgres_password = %q, want hunt****", summary["postgres_password"])
	}
	if summary["redis_password"] != "****" {
		t.Errorf("redis_password = %q, want ****", summary["redis_password"])
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "<not set>"},
		{name: "short", input: "abc", want: "****"},
		{name: "exactly eight", input: "12345678", want: "1234****"},
		{name: "long", input: "verylongsecretvalue", want: "very****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskSecret(tt.input); got != tt.want {
				t.Errorf("maskSecret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
