package index

import (
	"bytes"
)

// LineIndex stores byte offsets for each line in a decoded buffer
type LineIndex struct {
	offsets []int
	data    []byte
}

// BuildLineIndex scans data and records where every line starts.
// A trailing newline does not open an extra empty line.
func BuildLineIndex(data []byte) *LineIndex {
	if len(data) == 0 {
		return &LineIndex{data: data}
	}

	// Estimate initial capacity (assume ~100 bytes per line)
	offsets := make([]int, 0, len(data)/100+1)
	offsets = append(offsets, 0)

	pos := 0
	for {
		idx := bytes.IndexByte(data[pos:], '\n')
		if idx == -1 {
			break
		}
		lineStart := pos + idx + 1
		if lineStart >= len(data) {
			break
		}
		offsets = append(offsets, lineStart)
		pos = lineStart
	}

	return &LineIndex{
		offsets: offsets,
		data:    data,
	}
}

// LineCount returns the total number of lines
func (idx *LineIndex) LineCount() int {
	return len(idx.offsets)
}

// GetLine returns the content of line at given index (0-based), without
// its line terminator
func (idx *LineIndex) GetLine(lineNum int) []byte {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return nil
	}

	start := idx.offsets[lineNum]
	end := len(idx.data)
	if lineNum+1 < len(idx.offsets) {
		end = idx.offsets[lineNum+1]
	}

	content := idx.data[start:end]
	content = bytes.TrimSuffix(content, []byte("\n"))
	content = bytes.TrimSuffix(content, []byte("\r"))
	return content
}

// Strings returns every line as a string
func (idx *LineIndex) Strings() []string {
	lines := make([]string, len(idx.offsets))
	for i := range idx.offsets {
		lines[i] = string(idx.GetLine(i))
	}
	return lines
}
