package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/filter"
	"github.com/TimelordUK/logsift/internal/logging"
	"github.com/TimelordUK/logsift/internal/search"
	"github.com/TimelordUK/logsift/internal/session"
	"github.com/TimelordUK/logsift/internal/settings"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeGoto
	ModeOpen
	ModeAddAnd
	ModeAddOr
	ModeHighlight
	ModeRecolor
	ModeExport
	ModeMemo
)

// Options configures the model at startup
type Options struct {
	Config       *config.Config
	Logger       *slog.Logger
	SettingsPath string

	File       string
	Line       int // 1-based, 0 for none
	AndFilters []string
	OrFilters  []string
	IgnoreCase bool
}

// Model is the main application model
type Model struct {
	pane   *Pane
	panel  *Panel
	keys   Keymap
	config *config.Config
	logger *slog.Logger

	input textinput.Model
	memo  textarea.Model

	mode   Mode
	width  int
	height int

	settingsPath  string
	ignoreCase    bool
	exportNumbers bool
	searchTerm    string
	report        search.Report

	// Status
	status string
	err    error
}

// NewModel creates a new application model. Settings are restored before
// the file loads so saved filters apply to it; a load failure is shown in
// the pane and the status bar rather than returned.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.CharLimit = 1024

	ta := textarea.New()
	ta.Placeholder = "Notes about this log..."
	ta.ShowLineNumbers = false

	m := &Model{
		pane:         NewPane(cfg, logger),
		panel:        NewPanel(cfg),
		keys:         NewKeymap(cfg.Keybindings),
		config:       cfg,
		logger:       logger,
		input:        ti,
		memo:         ta,
		settingsPath: opts.SettingsPath,
		ignoreCase:   opts.IgnoreCase,
	}

	m.restoreSettings()
	for _, term := range opts.AndFilters {
		m.addFilter(filter.ListAnd, term)
	}
	for _, term := range opts.OrFilters {
		m.addFilter(filter.ListOr, term)
	}
	if opts.File != "" {
		m.open(opts.File)
	}
	if opts.Line > 0 {
		m.gotoLine(opts.Line)
	}
	return m
}

func (m *Model) restoreSettings() {
	if m.settingsPath == "" {
		return
	}
	st, err := settings.Load(m.settingsPath)
	if err != nil {
		m.logger.Warn("settings not restored", "path", m.settingsPath, "err", err)
		m.setError(err)
		return
	}
	m.pane.Session().ApplySettings(st)
	m.pane.sync()
	m.memo.SetValue(st.Memo)
}

// SaveSettings writes the session's rules and memo to the settings file
func (m *Model) SaveSettings() error {
	if m.settingsPath == "" {
		return nil
	}
	if err := settings.Save(m.settingsPath, m.pane.Session().Settings()); err != nil {
		m.logger.Warn("settings not saved", "path", m.settingsPath, "err", err)
		return err
	}
	m.logger.Info("settings saved", "path", m.settingsPath)
	return nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	}

	return m, nil
}

// layout reserves 2 lines for the status bar and help, plus the panel
func (m *Model) layout() {
	contentHeight := m.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.pane.SetSize(m.contentWidth(), contentHeight)
	m.memo.SetWidth(m.contentWidth())
	m.memo.SetHeight(contentHeight)
}

func (m *Model) contentWidth() int {
	w := m.width
	if m.config.Display.ShowPanel {
		w -= m.panel.Width()
	}
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeMemo {
		return m.handleMemoKey(msg)
	}
	if m.mode != ModeNormal {
		return m.handleInputKey(msg)
	}

	m.status = ""
	m.err = nil

	if m.panel.focused {
		if handled := m.handlePanelKey(msg); handled {
			return m, nil
		}
	}

	vp := m.pane.Viewport()
	switch m.keys.Lookup(msg.String()) {
	case ActionQuit:
		if err := m.SaveSettings(); err != nil {
			m.setError(err)
		}
		return m, tea.Quit

	case ActionScrollDown:
		vp.ScrollDown(1)
	case ActionScrollUp:
		vp.ScrollUp(1)
	case ActionPageDown:
		vp.PageDown()
	case ActionPageUp:
		vp.PageUp()
	case ActionTop:
		vp.GotoTop()
	case ActionBottom:
		vp.GotoBottom()

	case ActionSearch:
		return m, m.prompt(ModeSearch, "Search...", "")
	case ActionGotoLine:
		return m, m.prompt(ModeGoto, "Line number...", "")
	case ActionOpenFile:
		return m, m.prompt(ModeOpen, "File path...", "")
	case ActionAddAndFilter:
		return m, m.prompt(ModeAddAnd, "Every line must contain...", "")
	case ActionAddOrFilter:
		return m, m.prompt(ModeAddOr, "Lines containing any of...", "")
	case ActionAddHighlight:
		return m, m.prompt(ModeHighlight, "term [#color]", "")
	case ActionExport:
		m.exportNumbers = vp.ShowLineNumbers()
		return m, m.prompt(ModeExport, "Export to file...", "")

	case ActionNextMatch:
		m.search(false)
	case ActionPrevMatch:
		m.search(true)
	case ActionToggleCase:
		m.ignoreCase = !m.ignoreCase
		if m.searchTerm != "" {
			m.search(false)
		}
	case ActionClearSearch:
		m.searchTerm = ""
		m.report = search.Report{}
		m.apply(session.SearchCleared{})

	case ActionFocusPanel:
		if m.config.Display.ShowPanel {
			m.panel.focused = true
		}
	case ActionMemo:
		m.mode = ModeMemo
		m.memo.SetValue(m.pane.Session().Memo())
		return m, m.memo.Focus()
	case ActionCopyLine:
		m.copyLine()
	case ActionToggleNumbers:
		vp.SetShowLineNumbers(!vp.ShowLineNumbers())
	}

	return m, nil
}

func (m *Model) handlePanelKey(msg tea.KeyMsg) bool {
	s := m.pane.Session()
	switch msg.String() {
	case "tab", "esc":
		m.panel.focused = false
	case "j", "down":
		m.panel.Move(1, s)
	case "k", "up":
		m.panel.Move(-1, s)
	case " ", "space", "enter":
		m.panelCommand(session.OpToggle, "")
	case "c":
		m.panelCommand(session.OpSetCase, "")
	case "d", "delete", "x":
		m.panelCommand(session.OpRemove, "")
		m.panel.Move(0, s)
	case "C":
		if it, ok := m.panel.Selected(s); ok && it.kind == itemHighlight {
			m.prompt(ModeRecolor, "#rrggbb", it.color)
		}
	default:
		return false
	}
	return true
}

func (m *Model) panelCommand(op session.RuleOp, color string) {
	if cmd, ok := m.panel.Command(m.pane.Session(), op, color); ok {
		m.apply(cmd)
	}
}

func (m *Model) prompt(mode Mode, placeholder, value string) tea.Cmd {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		mode := m.mode
		m.closeInput()
		m.submit(mode, value)
		return m, nil

	case "esc":
		m.closeInput()
		return m, nil

	case "ctrl+n":
		if m.mode == ModeExport {
			m.exportNumbers = !m.exportNumbers
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = ModeNormal
	m.input.Blur()
}

func (m *Model) submit(mode Mode, value string) {
	switch mode {
	case ModeSearch:
		m.searchTerm = value
		if value == "" {
			m.apply(session.SearchCleared{})
			m.report = search.Report{}
			return
		}
		m.search(false)
	case ModeGoto:
		line, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || line < 1 {
			m.status = fmt.Sprintf("not a line number: %q", value)
			return
		}
		m.gotoLine(line)
	case ModeOpen:
		if strings.TrimSpace(value) != "" {
			m.open(strings.TrimSpace(value))
		}
	case ModeAddAnd:
		m.addFilter(filter.ListAnd, value)
	case ModeAddOr:
		m.addFilter(filter.ListOr, value)
	case ModeHighlight:
		term, color := parseHighlightInput(value)
		m.apply(session.HighlightChanged{Op: session.OpAdd, Term: term, Color: color, CaseInsensitive: m.ignoreCase})
	case ModeRecolor:
		m.panelCommand(session.OpSetColor, strings.TrimSpace(value))
	case ModeExport:
		m.export(strings.TrimSpace(value))
	}
}

func (m *Model) handleMemoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+s":
		m.apply(session.MemoChanged{Text: m.memo.Value()})
		m.memo.Blur()
		m.mode = ModeNormal
		m.status = "memo saved"
		return m, nil
	}

	var cmd tea.Cmd
	m.memo, cmd = m.memo.Update(msg)
	return m, cmd
}

func (m *Model) open(path string) {
	if err := m.pane.Load(path); err != nil {
		m.setError(err)
		return
	}
	m.report = search.Report{}
	m.status = fmt.Sprintf("loaded %s", m.pane.Filename())
}

func (m *Model) addFilter(list filter.List, term string) {
	m.apply(session.FilterChanged{Op: session.OpAdd, List: list, Term: term, CaseInsensitive: m.ignoreCase})
	m.report = search.Report{}
}

func (m *Model) search(backward bool) {
	if m.searchTerm == "" {
		return
	}
	res, ok := m.apply(session.SearchNext{Term: m.searchTerm, CaseInsensitive: m.ignoreCase, Backward: backward})
	if !ok {
		return
	}
	m.report = res.Search
	if res.Search.Total == 0 {
		m.status = fmt.Sprintf("pattern not found: %s", m.searchTerm)
	}
}

func (m *Model) gotoLine(line int) {
	if _, ok := m.apply(session.GoToLine{Line: line}); ok {
		m.status = fmt.Sprintf("line %d", line)
	}
}

func (m *Model) export(path string) {
	res, ok := m.apply(session.ExportRequested{Path: path, WithNumbers: m.exportNumbers})
	if ok && res.Export != nil {
		m.status = fmt.Sprintf("exported %d lines to %s", res.Export.Lines, res.Export.Path)
	}
}

func (m *Model) copyLine() {
	text, ok := m.pane.CurrentLineText()
	if !ok {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Warn("clipboard copy failed", "err", err)
		m.setError(err)
		return
	}
	m.status = "copied line"
}

// apply dispatches through the pane and reports failures in the status bar
func (m *Model) apply(cmd session.Command) (session.Result, bool) {
	res, err := m.pane.Apply(cmd)
	if err != nil {
		m.setError(err)
		return res, false
	}
	return res, true
}

func (m *Model) setError(err error) {
	m.err = err
	m.status = ""
}

// parseHighlightInput splits "term #color"; a term alone gets the default
// color
func parseHighlightInput(value string) (term, color string) {
	value = strings.TrimSpace(value)
	i := strings.LastIndex(value, " ")
	if i > 0 && strings.HasPrefix(value[i+1:], "#") {
		return strings.TrimSpace(value[:i]), value[i+1:]
	}
	return value, ""
}

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	// Main content
	content := m.pane.Render()
	if m.mode == ModeMemo {
		content = m.memo.View()
	}
	content = lipgloss.NewStyle().Width(m.contentWidth()).MaxWidth(m.contentWidth()).Render(content)
	if m.config.Display.ShowPanel {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.panel.Render(m.pane.Session(), m.pane.Viewport().Height()))
	}
	builder.WriteString(content)
	builder.WriteString("\n")

	// Status bar
	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.config.Theme.StatusBar)).
		Foreground(lipgloss.Color(m.config.Theme.StatusBarText)).
		Width(m.width)

	var status string
	switch m.mode {
	case ModeSearch:
		status = "/" + m.input.View()
	case ModeGoto:
		status = ":" + m.input.View()
	case ModeOpen:
		status = "open: " + m.input.View()
	case ModeAddAnd:
		status = "and: " + m.input.View()
	case ModeAddOr:
		status = "or: " + m.input.View()
	case ModeHighlight:
		status = "highlight: " + m.input.View()
	case ModeRecolor:
		status = "color: " + m.input.View()
	case ModeExport:
		numbers := "off"
		if m.exportNumbers {
			numbers = "on"
		}
		status = fmt.Sprintf("export (numbers %s, ctrl+n): %s", numbers, m.input.View())
	case ModeMemo:
		status = " memo (esc to save)"
	default:
		status = m.statusLine()
	}

	builder.WriteString(statusStyle.Render(status))
	builder.WriteString("\n")

	// Help line
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	help := "j/k:scroll  /:search  n/N:next/prev  &/|:filter  h:highlight  tab:rules  e:export  m:memo  y:copy  q:quit"
	if m.panel.focused {
		help = "j/k:select  space:toggle  c:case  C:color  d:delete  tab:back"
	}
	builder.WriteString(helpStyle.Render(help))

	return builder.String()
}

func (m *Model) statusLine() string {
	vp := m.pane.Viewport()
	provider := m.pane.Session().Provider()

	name := m.pane.Filename()
	if name == "" {
		name = "[no file]"
	}
	lineInfo := fmt.Sprintf("L%d/%d", vp.CurrentLine()+1, provider.LineCount())
	if m.pane.Session().Filters().IsFiltered() {
		lineInfo += fmt.Sprintf(" of %d", provider.Source().LineCount())
	}
	percent := fmt.Sprintf("%.0f%%", vp.PercentScrolled())

	var extra []string
	if m.ignoreCase {
		extra = append(extra, "[i]")
	}
	if m.searchTerm != "" {
		extra = append(extra, fmt.Sprintf("%q (%d/%d)", m.searchTerm, m.report.Current, m.report.Total))
	}
	if m.err != nil {
		extra = append(extra, "error: "+m.err.Error())
	} else if m.status != "" {
		extra = append(extra, m.status)
	}

	return strings.TrimRight(fmt.Sprintf(" %s  %s  %s  %s", name, lineInfo, percent, strings.Join(extra, "  ")), " ")
}
