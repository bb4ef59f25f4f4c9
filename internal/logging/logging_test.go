package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "logsift.log")

	logger, c, err := Open(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Info("loaded", "lines", 3)
	logger.Debug("hidden")
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "msg=loaded lines=3") {
		t.Fatalf("log = %q, want the info record", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("log = %q, debug record should be filtered", data)
	}
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	logger, c, err := Open("", slog.LevelDebug)
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	logger.Info("dropped")
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpen_UnopenablePathFallsBack(t *testing.T) {
	dir := t.TempDir()
	logger, c, err := Open(dir, slog.LevelInfo)
	if err == nil {
		t.Fatalf("Open(directory) returned nil error")
	}
	if logger == nil || c == nil {
		t.Fatalf("Open(directory) returned nil logger or closer")
	}
	logger.Info("still safe")
}
