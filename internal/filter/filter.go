// Package filter selects which lines of a loaded log are displayed.
//
// A line passes when it contains every AND predicate and, if any OR
// predicates are configured, at least one of them. Matching is literal
// substring containment, never regex.
package filter

import "strings"

// Predicate is a single substring test
type Predicate struct {
	Term            string
	CaseInsensitive bool
}

// Match reports whether text contains the predicate term
func (p Predicate) Match(text string) bool {
	if p.CaseInsensitive {
		return strings.Contains(strings.ToLower(text), strings.ToLower(p.Term))
	}
	return strings.Contains(text, p.Term)
}

// Entry is a displayed line tagged with its position in the original file
type Entry struct {
	Index int
	Text  string
}

// Apply returns the lines passing the AND and OR predicates, in original order.
// With no predicates at all every line is returned.
func Apply(lines []string, and, or []Predicate) []Entry {
	entries := make([]Entry, 0, len(lines))

	if len(and) == 0 && len(or) == 0 {
		for i, line := range lines {
			entries = append(entries, Entry{Index: i, Text: line})
		}
		return entries
	}

	// Lower-case the terms once rather than per line
	and = prepare(and)
	or = prepare(or)

	for i, line := range lines {
		if passes(line, and, or) {
			entries = append(entries, Entry{Index: i, Text: line})
		}
	}
	return entries
}

func passes(line string, and, or []Predicate) bool {
	var lowered string
	var haveLowered bool
	match := func(p Predicate) bool {
		if !p.CaseInsensitive {
			return strings.Contains(line, p.Term)
		}
		if !haveLowered {
			lowered = strings.ToLower(line)
			haveLowered = true
		}
		return strings.Contains(lowered, p.Term)
	}

	for _, p := range and {
		if !match(p) {
			return false
		}
	}

	if len(or) == 0 {
		return true
	}
	for _, p := range or {
		if match(p) {
			return true
		}
	}
	return false
}

// prepare copies predicates with case-insensitive terms already lowered
func prepare(preds []Predicate) []Predicate {
	if len(preds) == 0 {
		return nil
	}
	out := make([]Predicate, len(preds))
	for i, p := range preds {
		if p.CaseInsensitive {
			p.Term = strings.ToLower(p.Term)
		}
		out[i] = p
	}
	return out
}
