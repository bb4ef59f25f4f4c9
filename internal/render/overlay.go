package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/highlight"
	"github.com/TimelordUK/logsift/internal/source"
)

// Range is a byte range [Start, End) of a line's content
type Range struct {
	Start int
	End   int
}

// Overlay paints highlight spans and the current search match over a
// line. Text outside them keeps the base renderer's style.
type Overlay struct {
	base       Renderer
	matchStyle lipgloss.Style
	spanText   lipgloss.Color
}

// NewOverlay wraps base
func NewOverlay(base Renderer, cfg *config.Config) *Overlay {
	return &Overlay{
		base: base,
		matchStyle: lipgloss.NewStyle().
			Background(lipgloss.Color(cfg.Theme.CurrentMatch)).
			Foreground(lipgloss.Color(cfg.Theme.CurrentMatchText)).
			Bold(true),
		spanText: lipgloss.Color("#000000"),
	}
}

// Render draws line with spans and, when match is non-nil, the match
func (o *Overlay) Render(line *source.Line, spans []highlight.Span, match *Range) string {
	text := line.Content
	if len(spans) == 0 && (match == nil || match.End <= match.Start) {
		return o.base.Render(line)
	}

	baseStyle := lipgloss.NewStyle()
	if s, ok := o.base.(Styler); ok {
		baseStyle = s.Style(line)
	}

	cuts := []int{0, len(text)}
	for _, sp := range spans {
		cuts = append(cuts, sp.Start, sp.End)
	}
	if match != nil {
		cuts = append(cuts, clamp(match.Start, len(text)), clamp(match.End, len(text)))
	}
	sort.Ints(cuts)

	var b strings.Builder
	si := 0
	for i := 0; i+1 < len(cuts); i++ {
		start, end := cuts[i], cuts[i+1]
		if start == end {
			continue
		}
		segment := text[start:end]

		for si < len(spans) && spans[si].End <= start {
			si++
		}
		switch {
		case match != nil && start >= match.Start && end <= match.End:
			b.WriteString(o.matchStyle.Render(segment))
		case si < len(spans) && spans[si].Start <= start:
			style := lipgloss.NewStyle().
				Background(lipgloss.Color(spans[si].Color)).
				Foreground(o.spanText)
			b.WriteString(style.Render(segment))
		default:
			b.WriteString(baseStyle.Render(segment))
		}
	}
	return b.String()
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
