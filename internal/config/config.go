package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Theme       ThemeConfig      `toml:"theme"`
	LogLevels   LogLevelConfig   `toml:"log_levels"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Display     DisplayConfig    `toml:"display"`
	Paths       PathConfig       `toml:"paths"`
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	LineNumbers      string         `toml:"line_numbers"`
	StatusBar        string         `toml:"status_bar"`
	StatusBarText    string         `toml:"status_bar_text"`
	CurrentMatch     string         `toml:"current_match"`
	CurrentMatchText string         `toml:"current_match_text"`
	PanelBorder      string         `toml:"panel_border"`
	DisabledRule     string         `toml:"disabled_rule"`
	SyntheticLine    string         `toml:"synthetic_line"`
	Levels           LogLevelColors `toml:"levels"`
}

// LogLevelColors defines colors for each log level
type LogLevelColors struct {
	Trace string `toml:"trace"`
	Debug string `toml:"debug"`
	Info  string `toml:"info"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
	Fatal string `toml:"fatal"`
}

// LogLevelConfig defines log level detection patterns
type LogLevelConfig struct {
	TracePatterns []string `toml:"trace_patterns"`
	DebugPatterns []string `toml:"debug_patterns"`
	InfoPatterns  []string `toml:"info_patterns"`
	WarnPatterns  []string `toml:"warn_patterns"`
	ErrorPatterns []string `toml:"error_patterns"`
	FatalPatterns []string `toml:"fatal_patterns"`
}

// KeybindingConfig allows customizing keybindings
type KeybindingConfig struct {
	Quit          []string `toml:"quit"`
	ScrollUp      []string `toml:"scroll_up"`
	ScrollDown    []string `toml:"scroll_down"`
	PageUp        []string `toml:"page_up"`
	PageDown      []string `toml:"page_down"`
	Top           []string `toml:"top"`
	Bottom        []string `toml:"bottom"`
	Search        []string `toml:"search"`
	NextMatch     []string `toml:"next_match"`
	PrevMatch     []string `toml:"prev_match"`
	ToggleCase    []string `toml:"toggle_case"`
	ClearSearch   []string `toml:"clear_search"`
	GotoLine      []string `toml:"goto_line"`
	OpenFile      []string `toml:"open_file"`
	AddAndFilter  []string `toml:"add_and_filter"`
	AddOrFilter   []string `toml:"add_or_filter"`
	AddHighlight  []string `toml:"add_highlight"`
	FocusPanel    []string `toml:"focus_panel"`
	Export        []string `toml:"export"`
	Memo          []string `toml:"memo"`
	CopyLine      []string `toml:"copy_line"`
	ToggleNumbers []string `toml:"toggle_numbers"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	SyntaxHighlight bool `toml:"syntax_highlight"`
	ShowPanel       bool `toml:"show_panel"`
	PanelWidth      int  `toml:"panel_width"`
}

// PathConfig holds file locations; a leading ~ is expanded
type PathConfig struct {
	SettingsFile string `toml:"settings_file"`
	LogFile      string `toml:"log_file"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			LineNumbers:      "#888888",
			StatusBar:        "236",
			StatusBarText:    "252",
			CurrentMatch:     "#00ff00",
			CurrentMatchText: "#000000",
			PanelBorder:      "240",
			DisabledRule:     "240",
			SyntheticLine:    "244",
			Levels: LogLevelColors{
				Trace: "240", // Dark gray
				Debug: "244", // Medium gray
				Info:  "250", // Light gray (default)
				Warn:  "214", // Orange
				Error: "167", // Soft red
				Fatal: "196", // Bright red
			},
		},
		LogLevels: LogLevelConfig{
			TracePatterns: []string{"[TRC]", "[TRACE]", "TRACE", "TRC"},
			DebugPatterns: []string{"[DBG]", "[DEBUG]", "DEBUG", "DBG"},
			InfoPatterns:  []string{"[INF]", "[INFO]", "INFO", "INF"},
			WarnPatterns:  []string{"[WRN]", "[WARN]", "[WARNING]", "WARN", "WRN", "WARNING"},
			ErrorPatterns: []string{"[ERR]", "[ERROR]", "ERROR", "ERR"},
			FatalPatterns: []string{"[FTL]", "[FATAL]", "FATAL", "FTL", "[CRIT]", "CRITICAL"},
		},
		Keybindings: KeybindingConfig{
			Quit:          []string{"q", "ctrl+c"},
			ScrollUp:      []string{"k", "up"},
			ScrollDown:    []string{"j", "down"},
			PageUp:        []string{"b", "pgup", "ctrl+u"},
			PageDown:      []string{"f", "pgdown", "ctrl+d", " "},
			Top:           []string{"g", "home"},
			Bottom:        []string{"G", "end"},
			Search:        []string{"/"},
			NextMatch:     []string{"n"},
			PrevMatch:     []string{"N"},
			ToggleCase:    []string{"i"},
			ClearSearch:   []string{"esc"},
			GotoLine:      []string{":"},
			OpenFile:      []string{"o"},
			AddAndFilter:  []string{"&"},
			AddOrFilter:   []string{"|"},
			AddHighlight:  []string{"h"},
			FocusPanel:    []string{"tab"},
			Export:        []string{"e"},
			Memo:          []string{"m"},
			CopyLine:      []string{"y"},
			ToggleNumbers: []string{"l"},
		},
		Display: DisplayConfig{
			ShowLineNumbers: true,
			SyntaxHighlight: false,
			ShowPanel:       true,
			PanelWidth:      36,
		},
		Paths: PathConfig{
			SettingsFile: filepath.Join(configDir(), "settings.json"),
		},
	}
}

// Load loads config from path, or from the default location when path is
// empty, falling back to defaults if the file does not exist
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = getConfigPath()
	}
	if path == "" {
		return cfg, nil
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Paths.SettingsFile, err = ExpandPath(cfg.Paths.SettingsFile); err != nil {
		return nil, err
	}
	if cfg.Paths.LogFile, err = ExpandPath(cfg.Paths.LogFile); err != nil {
		return nil, err
	}
	if cfg.Display.PanelWidth <= 0 {
		cfg.Display.PanelWidth = DefaultConfig().Display.PanelWidth
	}

	return cfg, nil
}

// Save saves config to path, or to the default location when path is empty
func Save(cfg *Config, path string) error {
	if path == "" {
		path = getConfigPath()
	}
	if path == "" {
		return fmt.Errorf("no config path")
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ExpandPath resolves a leading ~ to the home directory. Empty stays empty.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return trimmed, nil
}

func configDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "logsift")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "logsift")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
