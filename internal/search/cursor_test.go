package search

import (
	"reflect"
	"testing"

	"github.com/TimelordUK/logsift/internal/filter"
)

func entries(texts ...string) []filter.Entry {
	out := make([]filter.Entry, len(texts))
	for i, text := range texts {
		out[i] = filter.Entry{Index: i * 2, Text: text}
	}
	return out
}

func TestFindAll(t *testing.T) {
	lines := entries("foo bar foo", "BAR", "nothing", "Foo")

	tests := []struct {
		name            string
		term            string
		caseInsensitive bool
		want            []Match
	}{
		{
			name: "case sensitive",
			term: "foo",
			want: []Match{{Row: 0, Col: 0, Length: 3}, {Row: 0, Col: 8, Length: 3}},
		},
		{
			name:            "case insensitive",
			term:            "FOO",
			caseInsensitive: true,
			want: []Match{
				{Row: 0, Col: 0, Length: 3},
				{Row: 0, Col: 8, Length: 3},
				{Row: 3, Col: 0, Length: 3},
			},
		},
		{
			name: "empty term",
			term: "",
			want: nil,
		},
		{
			name: "no match",
			term: "zzz",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAll(tt.term, tt.caseInsensitive, lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestFindAll_FoldingChangesLength(t *testing.T) {
	// U+0130 lower-cases to two runes, so offsets must come from the source text
	got := FindAll("ok", true, entries("İ OK"))
	want := []Match{{Row: 0, Col: 3, Length: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAll = %v, want %v", got, want)
	}
}

func TestCursor_NextCycles(t *testing.T) {
	lines := entries("a x", "x", "b x")
	var c Cursor

	want := []Report{{1, 3}, {2, 3}, {3, 3}, {1, 3}}
	for i, w := range want {
		if got := c.Next("x", false, lines); got != w {
			t.Fatalf("call %d: Next = %+v, want %+v", i+1, got, w)
		}
	}

	m, ok := c.Current()
	if !ok || m.Row != 0 {
		t.Fatalf("Current = %+v, %v; want row 0", m, ok)
	}
}

func TestCursor_NoMatches(t *testing.T) {
	var c Cursor
	if got := c.Next("zzz", false, entries("a", "b")); got != (Report{}) {
		t.Fatalf("Next = %+v, want zero report", got)
	}
	if _, ok := c.Current(); ok {
		t.Fatalf("Current found a match, want none")
	}
}

func TestCursor_TermChangeRecomputes(t *testing.T) {
	lines := entries("a b", "a")
	var c Cursor

	c.Next("a", false, lines)
	c.Next("a", false, lines)
	if got := c.Next("b", false, lines); got != (Report{1, 1}) {
		t.Fatalf("Next after term change = %+v, want {1 1}", got)
	}
}

func TestCursor_CaseChangeRecomputes(t *testing.T) {
	lines := entries("A", "a")
	var c Cursor

	if got := c.Next("a", false, lines); got != (Report{1, 1}) {
		t.Fatalf("case sensitive Next = %+v, want {1 1}", got)
	}
	if got := c.Next("a", true, lines); got != (Report{1, 2}) {
		t.Fatalf("case insensitive Next = %+v, want {1 2}", got)
	}
}

func TestCursor_InvalidateUsesNewLines(t *testing.T) {
	var c Cursor
	c.Next("x", false, entries("x", "x"))
	c.Invalidate()
	if got := c.Next("x", false, entries("x")); got != (Report{1, 1}) {
		t.Fatalf("Next after Invalidate = %+v, want {1 1}", got)
	}
}

func TestCursor_Prev(t *testing.T) {
	lines := entries("x", "x", "x")
	var c Cursor

	if got := c.Prev("x", false, lines); got != (Report{3, 3}) {
		t.Fatalf("first Prev = %+v, want {3 3}", got)
	}
	c.Prev("x", false, lines)
	c.Prev("x", false, lines)
	if got := c.Prev("x", false, lines); got != (Report{3, 3}) {
		t.Fatalf("wrapped Prev = %+v, want {3 3}", got)
	}
}
