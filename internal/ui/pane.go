package ui

import (
	"log/slog"
	"path/filepath"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/render"
	"github.com/TimelordUK/logsift/internal/session"
	"github.com/TimelordUK/logsift/internal/view"
	"github.com/TimelordUK/logsift/pkg/logformat"
)

// Pane is the file view: a session and the viewport that draws it
type Pane struct {
	session  *session.Session
	viewport *view.Viewport
	config   *config.Config

	filename string
}

// NewPane creates a pane with nothing loaded
func NewPane(cfg *config.Config, logger *slog.Logger) *Pane {
	detector := logformat.NewLevelDetector(&cfg.LogLevels)
	s := session.New(session.Options{Logger: logger, Detector: detector.Detect})

	viewport := view.NewViewport(80, 24, render.NewOverlay(render.NewLogLevelRenderer(cfg), cfg), cfg.Theme.LineNumbers)
	viewport.SetShowLineNumbers(cfg.Display.ShowLineNumbers)

	p := &Pane{
		session:  s,
		viewport: viewport,
		config:   cfg,
	}
	p.sync()
	return p
}

// Load opens path. On failure the pane shows the failure and the error is
// returned for the status bar.
func (p *Pane) Load(path string) error {
	p.filename = filepath.Base(path)
	p.viewport.SetOverlay(render.NewOverlay(p.rendererFor(path), p.config))

	_, err := p.session.Dispatch(session.LoadFile{Path: path})
	p.viewport.GotoTop()
	p.sync()
	return err
}

func (p *Pane) rendererFor(path string) render.Renderer {
	levels := render.NewLogLevelRenderer(p.config)
	if p.config.Display.SyntaxHighlight && render.IsSyntaxHighlightable(path) {
		return render.NewSyntaxRenderer(path, levels)
	}
	return levels
}

// Apply dispatches cmd and brings any resulting position into view
func (p *Pane) Apply(cmd session.Command) (session.Result, error) {
	res, err := p.session.Dispatch(cmd)
	p.sync()
	if err == nil && res.HasPosition {
		p.viewport.CenterOn(res.Position)
	}
	return res, err
}

// sync pushes session state the viewport draws
func (p *Pane) sync() {
	p.viewport.SetProvider(p.session.Provider())
	p.viewport.SetHighlights(p.session.Matchers())
	if m, ok := p.session.CurrentMatch(); ok {
		p.viewport.SetMatch(&m)
	} else {
		p.viewport.SetMatch(nil)
	}
}

// CurrentLineText returns the content of the marked row, or the top row
func (p *Pane) CurrentLineText() (string, bool) {
	line := p.session.Provider().GetLine(p.viewport.MarkedRow())
	if line == nil {
		return "", false
	}
	return line.Content, true
}

// SetSize sets the viewport size
func (p *Pane) SetSize(width, height int) {
	p.viewport.SetSize(width, height)
}

// Render returns the rendered viewport content
func (p *Pane) Render() string {
	return p.viewport.Render()
}

// Viewport returns the viewport
func (p *Pane) Viewport() *view.Viewport {
	return p.viewport
}

// Session returns the session
func (p *Pane) Session() *session.Session {
	return p.session
}

// Filename returns the base name of the loaded file
func (p *Pane) Filename() string {
	return p.filename
}
