package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/source"
)

// Renderer applies styling to lines
type Renderer interface {
	Render(line *source.Line) string
}

// Styler picks the base style of a line, used under highlight overlays
type Styler interface {
	Style(line *source.Line) lipgloss.Style
}

// LogLevelRenderer colors lines based on log level. The level is expected
// on the line already; the provider detects it once per line.
type LogLevelRenderer struct {
	styles    map[source.LogLevel]lipgloss.Style
	synthetic lipgloss.Style
}

// NewLogLevelRenderer creates a renderer with config
func NewLogLevelRenderer(cfg *config.Config) *LogLevelRenderer {
	levels := cfg.Theme.Levels
	styles := map[source.LogLevel]lipgloss.Style{
		source.LevelUnknown: lipgloss.NewStyle(),
		source.LevelTrace:   lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Trace)),
		source.LevelDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Debug)),
		source.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Info)),
		source.LevelWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Warn)),
		source.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Error)),
		source.LevelFatal:   lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Fatal)).Bold(true),
	}

	return &LogLevelRenderer{
		styles:    styles,
		synthetic: syntheticStyle(cfg),
	}
}

// Style returns the level style of a line
func (r *LogLevelRenderer) Style(line *source.Line) lipgloss.Style {
	if line.Synthetic {
		return r.synthetic
	}
	return r.styles[line.Level]
}

// Render applies log level styling to a line
func (r *LogLevelRenderer) Render(line *source.Line) string {
	return r.Style(line).Render(line.Content)
}

// PlainRenderer renders without styling
type PlainRenderer struct {
	synthetic lipgloss.Style
}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer(cfg *config.Config) *PlainRenderer {
	return &PlainRenderer{synthetic: syntheticStyle(cfg)}
}

// Style returns an empty style except for loader notices
func (r *PlainRenderer) Style(line *source.Line) lipgloss.Style {
	if line.Synthetic {
		return r.synthetic
	}
	return lipgloss.NewStyle()
}

// Render returns the line content as-is
func (r *PlainRenderer) Render(line *source.Line) string {
	if line.Synthetic {
		return r.synthetic.Render(line.Content)
	}
	return line.Content
}

func syntheticStyle(cfg *config.Config) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.SyntheticLine)).Italic(true)
}
