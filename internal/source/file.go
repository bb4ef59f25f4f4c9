package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/TimelordUK/logsift/internal/index"
)

// LoadError reports why a log could not be loaded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FileSource holds every line of one loaded file. It is replaced
// wholesale on each load and never appended to.
type FileSource struct {
	lines  []Line
	origin Origin
}

// NewFileSource loads path, decompressing it according to its extension.
// Failures are returned as *LoadError; see PlaceholderSource for the
// content shown in their place.
func NewFileSource(path string) (*FileSource, error) {
	format := DetectFormat(path)
	raw, member, err := readRaw(path, format)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	texts := index.BuildLineIndex(decode(raw)).Strings()

	src := &FileSource{
		origin: Origin{Path: path, Format: format, Member: member},
	}
	if member != "" {
		src.lines = make([]Line, 0, len(texts)+1)
		src.lines = append(src.lines, Line{Content: extractedNotice(member, path), Synthetic: true})
	} else {
		src.lines = make([]Line, 0, len(texts))
	}
	for _, text := range texts {
		src.lines = append(src.lines, Line{Content: text})
	}
	for i := range src.lines {
		src.lines[i].OriginalIndex = i
	}

	return src, nil
}

// NewStringSource builds a source from in-memory lines
func NewStringSource(name string, texts []string) *FileSource {
	src := &FileSource{
		lines:  make([]Line, len(texts)),
		origin: Origin{Path: name, Format: FormatPlain},
	}
	for i, text := range texts {
		src.lines[i] = Line{Content: text, OriginalIndex: i}
	}
	return src
}

// PlaceholderSource describes a failed load as displayable content
func PlaceholderSource(path string, err error) *FileSource {
	texts := []string{
		fmt.Sprintf("[logsift] could not load %s", path),
		fmt.Sprintf("[logsift] %v", err),
	}
	src := NewStringSource(path, texts)
	for i := range src.lines {
		src.lines[i].Synthetic = true
	}
	return src
}

// decode converts raw bytes to UTF-8 text, dropping a BOM and replacing
// invalid sequences rather than failing
func decode(raw []byte) []byte {
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return []byte(strings.ToValidUTF8(string(raw), "�"))
	}
	return out
}

// LineCount returns total number of lines
func (s *FileSource) LineCount() int {
	return len(s.lines)
}

// GetLine returns line at index
func (s *FileSource) GetLine(idx int) *Line {
	if idx < 0 || idx >= len(s.lines) {
		return nil
	}
	line := s.lines[idx]
	return &line
}

// GetLines returns a range of lines
func (s *FileSource) GetLines(start, count int) []*Line {
	if start < 0 {
		start = 0
	}
	if start >= len(s.lines) || count <= 0 {
		return nil
	}
	if start+count > len(s.lines) {
		count = len(s.lines) - start
	}

	lines := make([]*Line, count)
	for i := range lines {
		lines[i] = s.GetLine(start + i)
	}
	return lines
}

// Texts returns the content of every line in order
func (s *FileSource) Texts() []string {
	texts := make([]string, len(s.lines))
	for i, line := range s.lines {
		texts[i] = line.Content
	}
	return texts
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.origin.Path
}

// Origin returns where the lines came from
func (s *FileSource) Origin() Origin {
	return s.origin
}
