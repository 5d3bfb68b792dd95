package logger

import (
	"log/slog"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLevel maps names to zap levels.
func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestInstallRoutesSlogThroughZap sends slog records to the zap core.
func TestInstallRoutesSlogThroughZap(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	core, logs := observer.New(zapcore.InfoLevel)
	Install(zap.New(core))

	slog.Info("rack_loaded", "week", "2026-10-12")
	slog.Debug("ignored")

	entries := logs.All()
	if len(entries) != 1 || entries[0].Message != "rack_loaded" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].ContextMap()["week"] != "2026-10-12" {
		t.Errorf("fields = %v", entries[0].ContextMap())
	}
}

// TestNewBuilds checks the level applies to a production logger.
func TestNewBuilds(t *testing.T) {
	l, err := New("karting-console", "production", "warn")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
}
