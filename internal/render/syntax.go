package render

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/logsift/internal/source"
)

// SyntaxRenderer applies syntax highlighting based on file type. Lines it
// cannot highlight fall back to the wrapped renderer.
type SyntaxRenderer struct {
	lexerName   string
	syntaxTheme string
	fallback    Renderer
}

// NewSyntaxRenderer creates a syntax highlighting renderer for the given
// filename. Compression suffixes are ignored when picking the lexer.
func NewSyntaxRenderer(filename string, fallback Renderer) *SyntaxRenderer {
	lexerName := "plaintext"
	if lexer := lexers.Match(filepath.Base(stripCompression(filename))); lexer != nil {
		lexerName = lexer.Config().Name
	}

	return &SyntaxRenderer{
		lexerName:   lexerName,
		syntaxTheme: "monokai",
		fallback:    fallback,
	}
}

// Render applies syntax highlighting to a line
func (r *SyntaxRenderer) Render(line *source.Line) string {
	if line.Synthetic || line.Content == "" {
		return r.fallback.Render(line)
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, line.Content, r.lexerName, "terminal16m", r.syntaxTheme); err != nil {
		return r.fallback.Render(line)
	}

	// quick.Highlight may end the line
	highlighted := strings.NewReplacer("\n", "", "\r", "").Replace(buf.String())
	return lipgloss.NewStyle().Render(highlighted)
}

// Style defers to the fallback so overlays keep a readable base
func (r *SyntaxRenderer) Style(line *source.Line) lipgloss.Style {
	if s, ok := r.fallback.(Styler); ok {
		return s.Style(line)
	}
	return lipgloss.NewStyle()
}

// IsSyntaxHighlightable returns true if the file type supports syntax highlighting
func IsSyntaxHighlightable(filename string) bool {
	name := stripCompression(filename)
	ext := strings.ToLower(filepath.Ext(name))

	// Common source code extensions
	syntaxExts := map[string]bool{
		".go": true, ".rs": true, ".py": true, ".js": true, ".ts": true,
		".c": true, ".cpp": true, ".h": true, ".java": true, ".rb": true,
		".cs": true, ".lua": true, ".sh": true, ".bash": true,
		".yaml": true, ".yml": true, ".json": true, ".toml": true, ".xml": true,
		".html": true, ".css": true, ".sql": true, ".md": true,
		".ini": true, ".conf": true, ".properties": true,
	}

	if syntaxExts[ext] {
		return true
	}

	base := strings.ToLower(filepath.Base(name))
	return base == "makefile" || base == "dockerfile"
}

func stripCompression(filename string) string {
	lower := strings.ToLower(filename)
	for _, suffix := range []string{".gz", ".zst", ".zip", ".tgz", ".tar"} {
		if strings.HasSuffix(lower, suffix) {
			filename = filename[:len(filename)-len(suffix)]
			lower = lower[:len(lower)-len(suffix)]
		}
	}
	return filename
}
