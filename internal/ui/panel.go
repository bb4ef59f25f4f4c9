package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/filter"
	"github.com/TimelordUK/logsift/internal/session"
)

type itemKind int

const (
	itemAnd itemKind = iota
	itemOr
	itemHighlight
)

// panelItem is one row of the side panel
type panelItem struct {
	kind            itemKind
	term            string
	color           string
	caseInsensitive bool
	enabled         bool
}

// Panel lists the filter and highlight rules and lets the user toggle,
// re-case, recolor and remove them
type Panel struct {
	selected int
	focused  bool
	width    int

	border   lipgloss.Style
	heading  lipgloss.Style
	disabled lipgloss.Style
	cursor   lipgloss.Style
}

// NewPanel creates a side panel styled from the theme
func NewPanel(cfg *config.Config) *Panel {
	return &Panel{
		width: cfg.Display.PanelWidth,
		border: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(cfg.Theme.PanelBorder)).
			PaddingLeft(1),
		heading:  lipgloss.NewStyle().Bold(true),
		disabled: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.DisabledRule)).Strikethrough(true),
		cursor:   lipgloss.NewStyle().Reverse(true),
	}
}

// Width is the panel's outer width including the border
func (p *Panel) Width() int {
	return p.width + 1
}

func items(s *session.Session) []panelItem {
	var out []panelItem
	for _, r := range s.Filters().And.All() {
		out = append(out, panelItem{kind: itemAnd, term: r.Term, caseInsensitive: r.CaseInsensitive, enabled: r.Enabled})
	}
	for _, r := range s.Filters().Or.All() {
		out = append(out, panelItem{kind: itemOr, term: r.Term, caseInsensitive: r.CaseInsensitive, enabled: r.Enabled})
	}
	for _, r := range s.Highlights().All() {
		out = append(out, panelItem{kind: itemHighlight, term: r.Term, color: r.Color, caseInsensitive: r.CaseInsensitive, enabled: r.Enabled})
	}
	return out
}

// Move shifts the selection, staying within the item list
func (p *Panel) Move(delta int, s *session.Session) {
	n := len(items(s))
	p.selected += delta
	if p.selected >= n {
		p.selected = n - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

// Selected returns the highlighted row
func (p *Panel) Selected(s *session.Session) (panelItem, bool) {
	all := items(s)
	if len(all) == 0 {
		return panelItem{}, false
	}
	if p.selected >= len(all) {
		p.selected = len(all) - 1
	}
	return all[p.selected], true
}

// Command builds the session command that applies op to the selected row.
// OpSetCase flips the row's case rule; color is only read by OpSetColor.
func (p *Panel) Command(s *session.Session, op session.RuleOp, color string) (session.Command, bool) {
	it, ok := p.Selected(s)
	if !ok {
		return nil, false
	}
	if it.kind == itemHighlight {
		return session.HighlightChanged{Op: op, Term: it.term, Color: color, CaseInsensitive: !it.caseInsensitive}, true
	}
	if op == session.OpSetColor {
		return nil, false
	}
	list := filter.ListAnd
	if it.kind == itemOr {
		list = filter.ListOr
	}
	return session.FilterChanged{Op: op, List: list, Term: it.term, CaseInsensitive: !it.caseInsensitive}, true
}

// Render draws the panel at the given height
func (p *Panel) Render(s *session.Session, height int) string {
	all := items(s)

	var lines []string
	section := func(title string, kind itemKind) {
		lines = append(lines, p.heading.Render(title))
		empty := true
		for i, it := range all {
			if it.kind != kind {
				continue
			}
			empty = false
			lines = append(lines, p.row(i, it))
		}
		if empty {
			lines = append(lines, p.disabled.UnsetStrikethrough().Render("  (none)"))
		}
		lines = append(lines, "")
	}
	section("AND filters", itemAnd)
	section("OR filters", itemOr)
	section("Highlights", itemHighlight)

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return p.border.Width(p.width).Height(height).Render(strings.Join(lines, "\n"))
}

func (p *Panel) row(i int, it panelItem) string {
	check := "[x]"
	if !it.enabled {
		check = "[ ]"
	}
	flag := "  "
	if it.caseInsensitive {
		flag = "i "
	}
	text := ansi.Truncate(fmt.Sprintf("%s %s%s", check, flag, it.term), p.width-1, "…")

	style := lipgloss.NewStyle()
	if it.kind == itemHighlight {
		style = style.Foreground(lipgloss.Color(it.color))
	}
	if !it.enabled {
		style = p.disabled
	}
	if p.focused && i == p.selected {
		style = style.Inherit(p.cursor)
	}
	return " " + style.Render(text)
}
