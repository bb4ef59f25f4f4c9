package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/settings"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(runes(string(r)))
	}
}

func displayedCount(m *Model) int {
	return m.pane.Session().Provider().LineCount()
}

func TestNewModel_CLIFiltersAndLine(t *testing.T) {
	path := writeLog(t, "ERROR a", "info b", "error c", "debug d")

	m := NewModel(Options{
		File:       path,
		AndFilters: []string{"error"},
		IgnoreCase: true,
		Line:       2,
	})
	send(m, tea.WindowSizeMsg{Width: 120, Height: 20})

	if got := displayedCount(m); got != 2 {
		t.Fatalf("displayed = %d, want 2", got)
	}
	// Line 2 is hidden so the nearest preceding line is marked
	if got := m.pane.Viewport().MarkedRow(); got != 0 {
		t.Fatalf("MarkedRow = %d, want 0", got)
	}
	if m.err != nil {
		t.Fatalf("unexpected error %v", m.err)
	}
}

func TestModel_AddFilterThroughKeys(t *testing.T) {
	m := NewModel(Options{File: writeLog(t, "keep 1", "drop", "keep 2")})
	send(m, tea.WindowSizeMsg{Width: 120, Height: 20})

	send(m, runes("|"))
	if m.mode != ModeAddOr {
		t.Fatalf("mode = %v, want ModeAddOr", m.mode)
	}
	typeText(m, "keep")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != ModeNormal {
		t.Fatalf("mode after enter = %v, want ModeNormal", m.mode)
	}
	if got := displayedCount(m); got != 2 {
		t.Fatalf("displayed = %d, want 2", got)
	}

	// Toggle the rule off from the panel
	send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := displayedCount(m); got != 3 {
		t.Fatalf("displayed after toggle = %d, want 3", got)
	}
}

func TestModel_SearchReport(t *testing.T) {
	m := NewModel(Options{File: writeLog(t, "x one", "y", "x two")})
	send(m, tea.WindowSizeMsg{Width: 120, Height: 20})

	send(m, runes("/"))
	typeText(m, "x")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.report.Current != 1 || m.report.Total != 2 {
		t.Fatalf("report = %+v, want 1/2", m.report)
	}
	send(m, runes("n"))
	if m.report.Current != 2 {
		t.Fatalf("report after n = %+v, want 2/2", m.report)
	}
	if !strings.Contains(m.statusLine(), `"x" (2/2)`) {
		t.Fatalf("statusLine = %q", m.statusLine())
	}
}

func TestModel_OpenFailureShowsError(t *testing.T) {
	m := NewModel(Options{})
	missing := filepath.Join(t.TempDir(), "nope.log")
	m.open(missing)
	if m.err == nil {
		t.Fatalf("err is nil after failed open")
	}
	if displayedCount(m) == 0 {
		t.Fatalf("placeholder lines missing after failed open")
	}
}

func TestModel_SettingsRestoredAndSavedOnQuit(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "settings.json")
	if err := settings.Save(settingsPath, settings.Settings{
		AndFilters: []settings.FilterEntry{{Term: "ERROR", IsChecked: true}},
		Memo:       "remember",
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := NewModel(Options{SettingsPath: settingsPath, File: writeLog(t, "ERROR a", "info")})
	if got := displayedCount(m); got != 1 {
		t.Fatalf("displayed = %d, want 1 from restored filter", got)
	}
	if m.memo.Value() != "remember" {
		t.Fatalf("memo = %q", m.memo.Value())
	}

	send(m, runes("h"))
	typeText(m, "info #ff0000")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("quit returned nil cmd")
	}
	st, err := settings.Load(settingsPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Highlights) != 1 || st.Highlights[0].Color != "#ff0000" || st.Memo != "remember" {
		t.Fatalf("saved settings = %+v", st)
	}
}

func TestParseHighlightInput(t *testing.T) {
	tests := []struct {
		in, term, color string
	}{
		{"warn", "warn", ""},
		{"disk full #ff0000", "disk full", "#ff0000"},
		{"  timeout  ", "timeout", ""},
		{"#tag", "#tag", ""},
	}
	for _, tc := range tests {
		term, color := parseHighlightInput(tc.in)
		if term != tc.term || color != tc.color {
			t.Errorf("parseHighlightInput(%q) = (%q, %q), want (%q, %q)", tc.in, term, color, tc.term, tc.color)
		}
	}
}

func TestKeymap_FirstBindingWins(t *testing.T) {
	kb := config.DefaultConfig().Keybindings
	kb.Memo = []string{"q"}
	km := NewKeymap(kb)
	if got := km.Lookup("q"); got != ActionQuit {
		t.Fatalf("Lookup(q) = %v, want ActionQuit", got)
	}
	if got := km.Lookup("unbound"); got != ActionNone {
		t.Fatalf("Lookup(unbound) = %v, want ActionNone", got)
	}
}
