package index

import (
	"reflect"
	"testing"

	"github.com/TimelordUK/logsift/internal/filter"
)

func TestBuildLineIndex(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{name: "empty", data: "", want: []string{}},
		{name: "trailing newline", data: "a\nb\nc\n", want: []string{"a", "b", "c"}},
		{name: "no trailing newline", data: "a\nb", want: []string{"a", "b"}},
		{name: "crlf", data: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines kept", data: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "single newline", data: "\n", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildLineIndex([]byte(tt.data))
			got := idx.Strings()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Strings() = %q, want %q", got, tt.want)
			}
			if idx.LineCount() != len(tt.want) {
				t.Errorf("LineCount() = %d, want %d", idx.LineCount(), len(tt.want))
			}
		})
	}
}

func entriesAt(indices ...int) []filter.Entry {
	entries := make([]filter.Entry, len(indices))
	for i, idx := range indices {
		entries[i] = filter.Entry{Index: idx}
	}
	return entries
}

func TestResolve(t *testing.T) {
	// Displayed original indices 5, 10, 20 sit at positions 0, 1, 2
	m := Build(entriesAt(5, 10, 20))

	tests := []struct {
		name   string
		line   int // 1-based
		want   int
		wantOK bool
	}{
		{name: "between keys takes nearest smaller", line: 8, want: 0, wantOK: true},
		{name: "before everything takes first", line: 3, want: 0, wantOK: true},
		{name: "exact hit", line: 11, want: 1, wantOK: true},
		{name: "exact last", line: 21, want: 2, wantOK: true},
		{name: "past the end takes last", line: 500, want: 2, wantOK: true},
		{name: "just after key", line: 12, want: 1, wantOK: true},
		{name: "zero line number", line: 0, want: 0, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Resolve(tt.line)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%d) = %d, %v; want %d, %v", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_ExactRoundTrip(t *testing.T) {
	m := Build(entriesAt(0, 3, 4, 9, 17, 18, 40))
	for pos := 0; pos < m.Len(); pos++ {
		original, ok := m.Original(pos)
		if !ok {
			t.Fatalf("Original(%d) not found", pos)
		}
		got, ok := m.Resolve(original + 1)
		if !ok || got != pos {
			t.Errorf("Resolve(%d) = %d, %v; want %d, true", original+1, got, ok, pos)
		}
	}
}

func TestResolve_EmptyMapFails(t *testing.T) {
	m := Build(nil)
	if _, ok := m.Resolve(1); ok {
		t.Fatalf("Resolve on empty map succeeded, want failure")
	}
	var nilMap *ViewMap
	if _, ok := nilMap.Resolve(1); ok {
		t.Fatalf("Resolve on nil map succeeded, want failure")
	}
}

func TestPositionAndOriginal(t *testing.T) {
	m := Build(entriesAt(2, 7))
	if pos, ok := m.Position(7); !ok || pos != 1 {
		t.Fatalf("Position(7) = %d, %v; want 1, true", pos, ok)
	}
	if _, ok := m.Position(3); ok {
		t.Fatalf("Position(3) found, want missing")
	}
	if _, ok := m.Original(2); ok {
		t.Fatalf("Original(2) found, want out of range")
	}
}
