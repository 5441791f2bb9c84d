package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleFormatPromotesSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.With("source", "wigmore").Info("scan complete", "entries", 42)

	line := buf.String()
	if !strings.Contains(line, "INFO wigmore: scan complete") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "entries=42") {
		t.Fatalf("missing attribute in %q", line)
	}
	if strings.Contains(line, "source=") {
		t.Fatalf("source attr should be promoted, got %q", line)
	}
}

func TestConsoleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info record should be filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("warn record missing: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("run finished", slog.Int("concerts", 7))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal json record: %v", err)
	}
	if record["msg"] != "run finished" {
		t.Fatalf("unexpected message: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["concerts"] != float64(7) {
		t.Fatalf("unexpected attr: %v", record["concerts"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLogDirDuplication(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf, LogDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("persisted")

	data, err := os.ReadFile(filepath.Join(dir, "podium.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "persisted") {
		t.Fatalf("log file missing record: %q", data)
	}
}
