package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/logging"
	"github.com/TimelordUK/logsift/internal/settings"
	"github.com/TimelordUK/logsift/internal/source"
)

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "app.log")
	if err := os.WriteFile(in, []byte("ERROR db down\ninfo ok\nerror disk\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out := filepath.Join(dir, "out.txt")

	info, err := runExport(exportRequest{
		Config:      config.DefaultConfig(),
		Logger:      logging.Discard(),
		File:        in,
		Out:         out,
		WithNumbers: true,
		AndFilters:  []string{"error"},
		IgnoreCase:  true,
	})
	if err != nil {
		t.Fatalf("runExport: %v", err)
	}
	if info.Lines != 2 {
		t.Fatalf("Lines = %d, want 2", info.Lines)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "      1 | ERROR db down\n      3 | error disk"
	if string(data) != want {
		t.Fatalf("exported %q, want %q", data, want)
	}
}

func TestRunExport_UsesSavedSettings(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "app.log")
	if err := os.WriteFile(in, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	st := filepath.Join(dir, "settings.yaml")
	if err := settings.Save(st, settings.Settings{
		OrFilters: []settings.FilterEntry{{Term: "b", IsChecked: true}},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := runExport(exportRequest{
		Config:       config.DefaultConfig(),
		SettingsPath: st,
		File:         in,
		Out:          filepath.Join(dir, "out.txt"),
	})
	if err != nil {
		t.Fatalf("runExport: %v", err)
	}
	if info.Lines != 1 {
		t.Fatalf("Lines = %d, want 1", info.Lines)
	}
}

func TestRunExport_LoadErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	_, err := runExport(exportRequest{
		Config: config.DefaultConfig(),
		File:   filepath.Join(dir, "missing.log"),
		Out:    out,
	})
	var loadErr *source.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("runExport error = %v, want *source.LoadError", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output exists after load error: %v", err)
	}
}

func TestRunExport_DuplicateFilterFails(t *testing.T) {
	_, err := runExport(exportRequest{
		Config:     config.DefaultConfig(),
		File:       "unused",
		Out:        "unused",
		AndFilters: []string{"x", "x"},
	})
	if err == nil {
		t.Fatalf("runExport with duplicate filter returned nil error")
	}
}
