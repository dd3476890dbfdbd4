package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stride/internal/logging"
)

func TestCLILogsShowsRecentLines(t *testing.T) {
	cfg := newTestConfig(t)
	configPath := writeTestConfig(t, cfg)

	logPath := logging.FilePath(cfg)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		t.Fatalf("mkdir log dir: %v", err)
	}
	if err := os.WriteFile(logPath, []byte("first\nsecond\nthird\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "second")
	requireContains(t, out, "third")
	if strings.Contains(out, "first") {
		t.Fatalf("expected only the last two lines, got %q", out)
	}
}

func TestCLILogsEmpty(t *testing.T) {
	cfg := newTestConfig(t)
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"logs"}, configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "No log entries available")
}
