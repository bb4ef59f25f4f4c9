package index

import (
	"sort"

	"github.com/TimelordUK/logsift/internal/filter"
)

// ViewMap maps original line indices to positions in the displayed sequence.
// It is rebuilt whenever the displayed sequence changes; positions resolved
// against an older map are not valid after a rebuild.
type ViewMap struct {
	keys      []int // original indices, ascending
	positions map[int]int
}

// Build maps every displayed entry's original index to its position.
// Entries must be in file order, as filter.Apply returns them.
func Build(entries []filter.Entry) *ViewMap {
	m := &ViewMap{
		keys:      make([]int, len(entries)),
		positions: make(map[int]int, len(entries)),
	}
	for pos, e := range entries {
		m.keys[pos] = e.Index
		m.positions[e.Index] = pos
	}
	return m
}

// Len returns the number of mapped lines
func (m *ViewMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Position returns the displayed position of an original 0-based index
func (m *ViewMap) Position(original int) (int, bool) {
	if m == nil {
		return 0, false
	}
	pos, ok := m.positions[original]
	return pos, ok
}

// Original returns the original index shown at a displayed position
func (m *ViewMap) Original(pos int) (int, bool) {
	if m == nil || pos < 0 || pos >= len(m.keys) {
		return 0, false
	}
	return m.keys[pos], true
}

// Resolve finds the displayed position for a 1-based original line number.
// When the line is filtered out the nearest preceding displayed line is
// used; when nothing precedes it, the first displayed line. It fails only
// when nothing is displayed.
func (m *ViewMap) Resolve(lineNumber int) (int, bool) {
	if m.Len() == 0 {
		return 0, false
	}

	target := lineNumber - 1
	if pos, ok := m.positions[target]; ok {
		return pos, true
	}

	// First key >= target; the one before it is the largest key < target
	i := sort.SearchInts(m.keys, target)
	if i == 0 {
		return m.positions[m.keys[0]], true
	}
	return m.positions[m.keys[i-1]], true
}
