package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Display.ShowLineNumbers {
		t.Fatalf("ShowLineNumbers = false, want default true")
	}
	if !strings.HasSuffix(cfg.Paths.SettingsFile, filepath.Join("logsift", "settings.json")) {
		t.Fatalf("SettingsFile = %q, want it under logsift/", cfg.Paths.SettingsFile)
	}
}

func TestLoad_OverridesAndExpandsPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[display]
show_line_numbers = false
panel_width = 0

[paths]
settings_file = "~/state/settings.yaml"
log_file = "~/logsift.log"

[keybindings]
quit = ["x"]
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Display.ShowLineNumbers {
		t.Fatalf("ShowLineNumbers = true, want false")
	}
	if cfg.Display.PanelWidth != DefaultConfig().Display.PanelWidth {
		t.Fatalf("PanelWidth = %d, want default", cfg.Display.PanelWidth)
	}
	if cfg.Paths.SettingsFile != filepath.Join(home, "state/settings.yaml") {
		t.Fatalf("SettingsFile = %q, want it under HOME %q", cfg.Paths.SettingsFile, home)
	}
	if cfg.Paths.LogFile != filepath.Join(home, "logsift.log") {
		t.Fatalf("LogFile = %q", cfg.Paths.LogFile)
	}
	if len(cfg.Keybindings.Quit) != 1 || cfg.Keybindings.Quit[0] != "x" {
		t.Fatalf("Quit = %v, want [x]", cfg.Keybindings.Quit)
	}
	// Untouched sections keep their defaults
	if len(cfg.Keybindings.Search) == 0 {
		t.Fatalf("Search keybinding lost its default")
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`[display`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Display.PanelWidth = 50
	cfg.Paths.SettingsFile = filepath.Join(t.TempDir(), "s.json")

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Display.PanelWidth != 50 || got.Paths.SettingsFile != cfg.Paths.SettingsFile {
		t.Fatalf("Load = %+v", got.Display)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "a/b"); got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
	if got, _ := ExpandPath("  "); got != "" {
		t.Fatalf("ExpandPath(blank) = %q, want empty", got)
	}
}
