// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewSlogHandlerWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	slogger := slog.New(NewSlogHandlerWithLogger(logger))
	slogger.Info("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected 'test message' in output: %s", buf.String())
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{name: "debug logger enables debug", zerologLevel: zerolog.DebugLevel, slogLevel: slog.LevelDebug, want: true},
		{name: "info logger disables debug", zerologLevel: zerolog.InfoLevel, slogLevel: slog.LevelDebug, want: false},
		{name: "info logger enables info", zerologLevel: zerolog.InfoLevel, slogLevel: slog.LevelInfo, want: true},
		{name: "info logger enables warn", zerologLevel: zerolog.InfoLevel, slogLevel: slog.LevelWarn, want: true},
		{name: "warn logger disables info", zerologLevel: zerolog.WarnLevel, slogLevel: slog.LevelInfo, want: false},
		{name: "error logger disables warn", zerologLevel: zerolog.ErrorLevel, slogLevel: slog.LevelWarn, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger := zerolog.New(nil).Level(tt.zerologLevel)
			handler := NewSlogHandlerWithLogger(logger)

			if got := handler.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.slogLevel, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		logFn     func(*slog.Logger)
		wantLevel string
	}{
		{name: "debug", logFn: func(l *slog.Logger) { l.Debug("m") }, wantLevel: "debug"},
		{name: "info", logFn: func(l *slog.Logger) { l.Info("m") }, wantLevel: "info"},
		{name: "warn", logFn: func(l *slog.Logger) { l.Warn("m") }, wantLevel: "warn"},
		{name: "error", logFn: func(l *slog.Logger) { l.Error("m") }, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

			tt.logFn(slogger)

			if !strings.Contains(buf.String(), `"level":"`+tt.wantLevel+`"`) {
				t.Errorf("expected level %q in output: %s", tt.wantLevel, buf.String())
			}
		})
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	slogger.Info("attrs",
		slog.String("str", "value"),
		slog.Int("int", 42),
		slog.Bool("flag", true),
	)

	out := buf.String()
	for _, want := range []string{`"str":"value"`, `"int":42`, `"flag":true`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output: %s", want, out)
		}
	}
}

func TestSlogHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))
	slogger = slogger.With(slog.String("service", "ranking"))

	slogger.Info("bound attrs")

	if !strings.Contains(buf.String(), `"service":"ranking"`) {
		t.Errorf("expected bound attribute in output: %s", buf.String())
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))
	slogger = slogger.WithGroup("http")

	slogger.Info("grouped", slog.String("method", "GET"))

	if !strings.Contains(buf.String(), `"http.method":"GET"`) {
		t.Errorf("expected group-prefixed key in output: %s", buf.String())
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)

	SetLogger(NewTestLogger(&buf))

	slogger := NewSlogLogger()
	slogger.Info("global sink")

	if !strings.Contains(buf.String(), "global sink") {
		t.Errorf("expected message via global logger: %s", buf.String())
	}
}
