package source

import (
	"github.com/TimelordUK/logsift/internal/filter"
	"github.com/TimelordUK/logsift/internal/index"
)

// LevelDetectFunc detects log level from content
type LevelDetectFunc func(content string) LogLevel

// FilteredProvider exposes the lines of a FileSource that pass a filter set,
// in file order, and keeps the original-to-displayed index map in step
type FilteredProvider struct {
	source   *FileSource
	detector LevelDetectFunc

	entries []filter.Entry
	viewMap *index.ViewMap
	levels  map[int]LogLevel // detected level per original index
}

// NewFilteredProvider creates a provider that shows every line of source
func NewFilteredProvider(source *FileSource, detector LevelDetectFunc) *FilteredProvider {
	f := &FilteredProvider{
		source:   source,
		detector: detector,
		levels:   make(map[int]LogLevel),
	}
	f.Apply(nil)
	return f
}

// Apply rebuilds the displayed sequence and the index map from set.
// A nil set shows everything.
func (f *FilteredProvider) Apply(set *filter.Set) {
	texts := f.source.Texts()
	if set == nil {
		f.entries = filter.Apply(texts, nil, nil)
	} else {
		f.entries = set.Apply(texts)
	}
	f.viewMap = index.Build(f.entries)
}

// Source returns the underlying file source
func (f *FilteredProvider) Source() *FileSource {
	return f.source
}

// Entries returns the displayed sequence
func (f *FilteredProvider) Entries() []filter.Entry {
	return f.entries
}

// ViewMap returns the index map for the current displayed sequence
func (f *FilteredProvider) ViewMap() *index.ViewMap {
	return f.viewMap
}

// LineCount returns total number of displayed lines
func (f *FilteredProvider) LineCount() int {
	return len(f.entries)
}

// GetLine returns line at displayed position
func (f *FilteredProvider) GetLine(pos int) *Line {
	if pos < 0 || pos >= len(f.entries) {
		return nil
	}

	line := f.source.GetLine(f.entries[pos].Index)
	if line == nil {
		return nil
	}
	line.Level = f.level(line)
	return line
}

// GetLines returns a range of displayed lines
func (f *FilteredProvider) GetLines(start, count int) []*Line {
	if start < 0 {
		start = 0
	}
	var lines []*Line
	for i := start; i < start+count && i < len(f.entries); i++ {
		if line := f.GetLine(i); line != nil {
			lines = append(lines, line)
		}
	}
	return lines
}

// OriginalLineNumber returns the original 0-based index for a displayed
// position, or -1
func (f *FilteredProvider) OriginalLineNumber(pos int) int {
	original, ok := f.viewMap.Original(pos)
	if !ok {
		return -1
	}
	return original
}

func (f *FilteredProvider) level(line *Line) LogLevel {
	if f.detector == nil || line.Synthetic {
		return LevelUnknown
	}
	if level, ok := f.levels[line.OriginalIndex]; ok {
		return level
	}
	level := f.detector(line.Content)
	f.levels[line.OriginalIndex] = level
	return level
}
