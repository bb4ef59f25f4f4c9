package export

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/TimelordUK/logsift/internal/filter"
)

// gutterSep ends the line-number gutter of every displayed line
const gutterSep = " | "

// Gutter returns the line-number prefix for a 0-based original index:
// a space, the 1-based number right-aligned in six columns, then " | ".
// Numbers wider than six digits widen the prefix.
func Gutter(original int) string {
	return fmt.Sprintf(" %6d%s", original+1, gutterSep)
}

// FormatLine renders one displayed line
func FormatLine(e filter.Entry, withNumbers bool) string {
	if !withNumbers {
		return e.Text
	}
	return Gutter(e.Index) + e.Text
}

// Format renders the displayed sequence as text, one entry per line
func Format(entries []filter.Entry, withNumbers bool) string {
	var builder strings.Builder
	for i, e := range entries {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(FormatLine(e, withNumbers))
	}
	return builder.String()
}

// StripPrefix removes a gutter prefix from an already rendered line
func StripPrefix(line string) string {
	i := strings.Index(line, gutterSep)
	if i < 0 {
		return line
	}
	if strings.TrimSpace(line[:i]) == "" {
		return line
	}
	for _, r := range line[:i] {
		if r != ' ' && (r < '0' || r > '9') {
			return line
		}
	}
	return line[i+len(gutterSep):]
}

// Info describes a finished export
type Info struct {
	Path        string
	Lines       int
	WithNumbers bool
}

// Write saves the displayed sequence to path. The file is removed again
// if writing fails part way.
func Write(path string, entries []filter.Entry, withNumbers bool) (*Info, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("export path is empty")
	}

	outFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}

	w := bufio.NewWriter(outFile)
	for i, e := range entries {
		if i > 0 {
			if _, err := w.WriteString("\n"); err != nil {
				return nil, abort(outFile, path, fmt.Errorf("failed to write newline: %w", err))
			}
		}
		if _, err := w.WriteString(FormatLine(e, withNumbers)); err != nil {
			return nil, abort(outFile, path, fmt.Errorf("failed to write line %d: %w", e.Index+1, err))
		}
	}
	if err := w.Flush(); err != nil {
		return nil, abort(outFile, path, fmt.Errorf("failed to flush export: %w", err))
	}
	if err := outFile.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close export file: %w", err)
	}

	return &Info{Path: path, Lines: len(entries), WithNumbers: withNumbers}, nil
}

func abort(f *os.File, path string, err error) error {
	f.Close()
	os.Remove(path)
	return err
}
