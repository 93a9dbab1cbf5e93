// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "trace", level: "trace", want: zerolog.TraceLevel},
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "info", level: "info", want: zerolog.InfoLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "warning alias", level: "warning", want: zerolog.WarnLevel},
		{name: "error", level: "error", want: zerolog.ErrorLevel},
		{name: "fatal", level: "fatal", want: zerolog.FatalLevel},
		{name: "uppercase", level: "DEBUG", want: zerolog.DebugLevel},
		{name: "unknown defaults to info", level: "verbose", want: zerolog.InfoLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.level); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("DefaultConfig().Level = %q, want %q", cfg.Level, "info")
	}
	if cfg.Format != "json" {
		t.Errorf("DefaultConfig().Format = %q, want %q", cfg.Format, "json")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)

	SetLogger(NewTestLogger(&buf))

	logger := WithComponent("ranking")
	logger.Info().Msg("component test")

	out := buf.String()
	if !strings.Contains(out, `"component":"ranking"`) {
		t.Errorf("expected component field in output: %s", out)
	}
	if !strings.Contains(out, "component test") {
		t.Errorf("expected message in output: %s", out)
	}
}

func TestSetLoggerRedirectsGlobalEvents(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)

	SetLogger(NewTestLogger(&buf))

	Info().Str("key", "value").Msg("redirected")

	out := buf.String()
	if !strings.Contains(out, "redirected") {
		t.Errorf("expected message in output: %s", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected field in output: %s", out)
	}
}

func TestNewTestLoggerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Debug().Msg("debug visible")

	if !strings.Contains(buf.String(), "debug visible") {
		t.Errorf("expected debug output from test logger: %s", buf.String())
	}
}
