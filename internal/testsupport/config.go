// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"podium/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// All sources stay enabled; tests narrow them down via options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.ExportPath = filepath.Join(base, "data", "feed.json")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithSources toggles which source adapters the config enables.
func WithSources(wigmore, proms, southbank bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sources.Wigmore.Enabled = wigmore
		cfg.Sources.Proms.Enabled = proms
		cfg.Sources.Southbank.Enabled = southbank
	}
}

// WithBaseURLs points every source at the given origin, typically an
// httptest server.
func WithBaseURLs(origin string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sources.Wigmore.BaseURL = origin
		cfg.Sources.Proms.SeriesURL = origin + "/events/series"
		cfg.Sources.Southbank.BaseURL = origin
	}
}

// Logger returns a logger that discards all output.
func Logger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
