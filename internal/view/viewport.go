package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/logsift/internal/export"
	"github.com/TimelordUK/logsift/internal/highlight"
	"github.com/TimelordUK/logsift/internal/render"
	"github.com/TimelordUK/logsift/internal/search"
	"github.com/TimelordUK/logsift/internal/source"
)

// Viewport manages the visible portion of content
// It knows nothing about filters or file sources
// It only knows how to display lines from a LineProvider
type Viewport struct {
	provider source.LineProvider
	overlay  *render.Overlay

	// Dimensions
	width  int
	height int

	// Scroll position
	scrollOffset int

	// Styling
	lineNumberStyle lipgloss.Style
	markerStyle     lipgloss.Style

	// Options
	showLineNumbers bool

	// Decorations
	matchers []highlight.Matcher
	match    *search.Match

	// Marked row (displayed position, -1 for none)
	markedRow int
}

// NewViewport creates a new viewport
func NewViewport(width, height int, overlay *render.Overlay, lineNumberColor string) *Viewport {
	return &Viewport{
		width:           width,
		height:          height,
		overlay:         overlay,
		showLineNumbers: true,
		lineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(lineNumberColor)),
		markerStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		markedRow:       -1,
	}
}

// SetOverlay replaces the renderer, e.g. when a new file type loads
func (v *Viewport) SetOverlay(o *render.Overlay) {
	v.overlay = o
}

// SetProvider sets the line provider and keeps the scroll position in range
func (v *Viewport) SetProvider(provider source.LineProvider) {
	v.provider = provider
	v.markedRow = -1
	v.clampScroll()
}

// SetHighlights sets the compiled highlight rules to paint
func (v *Viewport) SetHighlights(matchers []highlight.Matcher) {
	v.matchers = matchers
}

// SetMatch sets the current search match, nil for none
func (v *Viewport) SetMatch(m *search.Match) {
	v.match = m
}

// Mark remembers a displayed row, e.g. a goto target
func (v *Viewport) Mark(row int) {
	v.markedRow = row
}

// MarkedRow returns the marked row, or the top row when nothing is marked
func (v *Viewport) MarkedRow() int {
	if v.markedRow >= 0 {
		return v.markedRow
	}
	return v.scrollOffset
}

// SetSize updates viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// Height returns the number of content rows
func (v *Viewport) Height() int {
	return v.height
}

// ScrollDown scrolls down by n lines
func (v *Viewport) ScrollDown(n int) {
	v.scrollOffset += n
	v.clampScroll()
}

// ScrollUp scrolls up by n lines
func (v *Viewport) ScrollUp(n int) {
	v.scrollOffset -= n
	v.clampScroll()
}

// PageDown scrolls down by one page
func (v *Viewport) PageDown() {
	v.ScrollDown(v.height - 1)
}

// PageUp scrolls up by one page
func (v *Viewport) PageUp() {
	v.ScrollUp(v.height - 1)
}

// GotoTop scrolls to the beginning
func (v *Viewport) GotoTop() {
	v.scrollOffset = 0
}

// GotoBottom scrolls to the end
func (v *Viewport) GotoBottom() {
	if v.provider == nil {
		return
	}
	v.scrollOffset = v.provider.LineCount() - v.height
	v.clampScroll()
}

// CenterOn scrolls so row sits in the middle of the window and marks it
func (v *Viewport) CenterOn(row int) {
	v.markedRow = row
	v.scrollOffset = row - v.height/2
	v.clampScroll()
}

// EnsureVisible scrolls the least needed to show row
func (v *Viewport) EnsureVisible(row int) {
	switch {
	case row < v.scrollOffset:
		v.scrollOffset = row
	case row >= v.scrollOffset+v.height:
		v.scrollOffset = row - v.height + 1
	}
	v.clampScroll()
}

// CurrentLine returns the current top line number
func (v *Viewport) CurrentLine() int {
	return v.scrollOffset
}

// clampScroll ensures scroll offset is within valid bounds
func (v *Viewport) clampScroll() {
	if v.provider == nil {
		v.scrollOffset = 0
		return
	}

	maxScroll := v.provider.LineCount() - v.height
	if maxScroll < 0 {
		maxScroll = 0
	}

	if v.scrollOffset > maxScroll {
		v.scrollOffset = maxScroll
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// Render returns the viewport content as a string
func (v *Viewport) Render() string {
	if v.provider == nil {
		return ""
	}

	lines := v.provider.GetLines(v.scrollOffset, v.height)

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		row := v.scrollOffset + i

		available := v.width
		if v.showLineNumbers {
			gutter := export.Gutter(line.OriginalIndex)
			available -= len(gutter)
			if row == v.markedRow {
				builder.WriteString(v.markerStyle.Render(gutter))
			} else {
				builder.WriteString(v.lineNumberStyle.Render(gutter))
			}
		}

		content := v.overlay.Render(line, highlight.Spans(line.Content, v.matchers), v.matchRange(row))
		if available > 0 {
			content = ansi.Truncate(content, available, "")
		}
		builder.WriteString(content)
	}

	// Pad with empty lines if needed
	for i := len(lines); i < v.height; i++ {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("~")
	}

	return builder.String()
}

func (v *Viewport) matchRange(row int) *render.Range {
	if v.match == nil || v.match.Row != row {
		return nil
	}
	return &render.Range{Start: v.match.Col, End: v.match.Col + v.match.Length}
}

// PercentScrolled returns how far through the file we are
func (v *Viewport) PercentScrolled() float64 {
	if v.provider == nil || v.provider.LineCount() == 0 {
		return 0
	}

	total := v.provider.LineCount()
	if total <= v.height {
		return 100
	}

	return float64(v.scrollOffset) / float64(total-v.height) * 100
}

// SetShowLineNumbers toggles line numbers
func (v *Viewport) SetShowLineNumbers(show bool) {
	v.showLineNumbers = show
}

// ShowLineNumbers reports whether the gutter is drawn
func (v *Viewport) ShowLineNumbers() bool {
	return v.showLineNumbers
}
