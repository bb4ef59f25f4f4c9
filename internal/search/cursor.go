// Package search finds a term in the displayed lines and cycles through
// the hits.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/TimelordUK/logsift/internal/filter"
)

// Match is one occurrence of the term
type Match struct {
	Row    int // displayed position
	Col    int // byte offset in the line content
	Length int
}

// Report is the cursor position among all matches, 1-based. A zero
// report means nothing matched.
type Report struct {
	Current int
	Total   int
}

// Cursor caches the matches of the last term and walks them cyclically
type Cursor struct {
	term            string
	caseInsensitive bool
	matches         []Match
	index           int
	valid           bool
}

// Next moves to the following match, recomputing matches when the term or
// case rule changed or the cache was invalidated
func (c *Cursor) Next(term string, caseInsensitive bool, entries []filter.Entry) Report {
	return c.step(term, caseInsensitive, entries, 1)
}

// Prev moves to the preceding match
func (c *Cursor) Prev(term string, caseInsensitive bool, entries []filter.Entry) Report {
	return c.step(term, caseInsensitive, entries, -1)
}

func (c *Cursor) step(term string, caseInsensitive bool, entries []filter.Entry, dir int) Report {
	if !c.valid || term != c.term || caseInsensitive != c.caseInsensitive || len(c.matches) == 0 {
		c.term = term
		c.caseInsensitive = caseInsensitive
		c.matches = FindAll(term, caseInsensitive, entries)
		c.valid = true
		// Start before the first match so Next lands on it, and after the
		// last so Prev lands on that
		if dir > 0 {
			c.index = -1
		} else {
			c.index = len(c.matches)
		}
	}

	n := len(c.matches)
	if n == 0 {
		return Report{}
	}
	c.index = ((c.index+dir)%n + n) % n
	return Report{Current: c.index + 1, Total: n}
}

// Current returns the selected match
func (c *Cursor) Current() (Match, bool) {
	if !c.valid || c.index < 0 || c.index >= len(c.matches) {
		return Match{}, false
	}
	return c.matches[c.index], true
}

// Matches returns every cached match
func (c *Cursor) Matches() []Match {
	return c.matches
}

// Term returns the term of the cached matches
func (c *Cursor) Term() string {
	return c.term
}

// Invalidate forces recomputation on the next step; call it whenever the
// displayed lines change
func (c *Cursor) Invalidate() {
	c.valid = false
	c.matches = nil
	c.index = -1
}

// Clear forgets the term and its matches
func (c *Cursor) Clear() {
	c.Invalidate()
	c.term = ""
	c.caseInsensitive = false
}

// FindAll returns every non-overlapping occurrence of term in entries
func FindAll(term string, caseInsensitive bool, entries []filter.Entry) []Match {
	if term == "" {
		return nil
	}

	needle := term
	if caseInsensitive {
		needle = strings.ToLower(term)
	}

	var matches []Match
	for row, e := range entries {
		hay := e.Text
		if caseInsensitive {
			hay = strings.ToLower(hay)
			// Lower-casing can change byte lengths; fall back to rune-safe
			// offsets only when it did
			if len(hay) != len(e.Text) {
				matches = append(matches, foldMatches(row, e.Text, term)...)
				continue
			}
		}
		for col := 0; ; {
			i := strings.Index(hay[col:], needle)
			if i < 0 {
				break
			}
			matches = append(matches, Match{Row: row, Col: col + i, Length: len(needle)})
			col += i + len(needle)
		}
	}
	return matches
}

// foldMatches finds case-insensitive matches with offsets into the
// original text
func foldMatches(row int, text, term string) []Match {
	var matches []Match
	for col := 0; col < len(text); {
		if end, ok := prefixFold(text[col:], term); ok {
			matches = append(matches, Match{Row: row, Col: col, Length: end})
			col += end
			continue
		}
		_, size := decodeRune(text[col:])
		col += size
	}
	return matches
}

// prefixFold reports whether s starts with term under simple case folding
// and how many bytes of s that prefix spans
func prefixFold(s, term string) (int, bool) {
	i := 0
	for _, tr := range term {
		if i >= len(s) {
			return 0, false
		}
		sr, size := decodeRune(s[i:])
		if !strings.EqualFold(string(sr), string(tr)) {
			return 0, false
		}
		i += size
	}
	return i, true
}

func decodeRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}
