package filter

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyTerm is returned when adding a rule without a term
	ErrEmptyTerm = errors.New("filter term is empty")
	// ErrDuplicateTerm is returned when a rule with the same term exists
	ErrDuplicateTerm = errors.New("filter term already exists")
	// ErrNoSuchTerm is returned when a rule lookup fails
	ErrNoSuchTerm = errors.New("no filter with that term")
)

// Rule is a user-configured predicate that can be switched off
// without being removed
type Rule struct {
	Term            string
	CaseInsensitive bool
	Enabled         bool
}

// Predicate returns the matching part of the rule
func (r Rule) Predicate() Predicate {
	return Predicate{Term: r.Term, CaseInsensitive: r.CaseInsensitive}
}

// Rules is an ordered collection of rules keyed by term
type Rules struct {
	items []Rule
}

// Add appends an enabled rule
func (r *Rules) Add(term string, caseInsensitive bool) error {
	return r.Put(Rule{Term: term, CaseInsensitive: caseInsensitive, Enabled: true})
}

// Put appends a rule as given
func (r *Rules) Put(rule Rule) error {
	if strings.TrimSpace(rule.Term) == "" {
		return ErrEmptyTerm
	}
	if r.find(rule.Term) >= 0 {
		return ErrDuplicateTerm
	}
	r.items = append(r.items, rule)
	return nil
}

// Remove deletes the rule with term
func (r *Rules) Remove(term string) error {
	i := r.find(term)
	if i < 0 {
		return ErrNoSuchTerm
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

// Toggle flips whether the rule takes part in filtering and returns the new state
func (r *Rules) Toggle(term string) (bool, error) {
	i := r.find(term)
	if i < 0 {
		return false, ErrNoSuchTerm
	}
	r.items[i].Enabled = !r.items[i].Enabled
	return r.items[i].Enabled, nil
}

// SetCaseInsensitive changes the case rule of an existing term
func (r *Rules) SetCaseInsensitive(term string, on bool) error {
	i := r.find(term)
	if i < 0 {
		return ErrNoSuchTerm
	}
	r.items[i].CaseInsensitive = on
	return nil
}

// Get returns the rule with term
func (r *Rules) Get(term string) (Rule, bool) {
	i := r.find(term)
	if i < 0 {
		return Rule{}, false
	}
	return r.items[i], true
}

// All returns a copy of every rule in insertion order
func (r *Rules) All() []Rule {
	out := make([]Rule, len(r.items))
	copy(out, r.items)
	return out
}

// Active returns predicates for enabled rules only
func (r *Rules) Active() []Predicate {
	var preds []Predicate
	for _, rule := range r.items {
		if rule.Enabled {
			preds = append(preds, rule.Predicate())
		}
	}
	return preds
}

// Len returns the number of rules
func (r *Rules) Len() int {
	return len(r.items)
}

// Clear removes every rule
func (r *Rules) Clear() {
	r.items = nil
}

func (r *Rules) find(term string) int {
	for i, rule := range r.items {
		if rule.Term == term {
			return i
		}
	}
	return -1
}

// List selects one of the two predicate groups of a Set
type List int

const (
	ListAnd List = iota
	ListOr
)

func (l List) String() string {
	if l == ListAnd {
		return "AND"
	}
	return "OR"
}

// Set holds the AND and OR rule groups
type Set struct {
	And Rules
	Or  Rules
}

// Rules returns the group for l
func (s *Set) Rules(l List) *Rules {
	if l == ListAnd {
		return &s.And
	}
	return &s.Or
}

// Apply filters lines with the currently enabled rules
func (s *Set) Apply(lines []string) []Entry {
	return Apply(lines, s.And.Active(), s.Or.Active())
}

// IsFiltered reports whether any enabled rule would restrict the view
func (s *Set) IsFiltered() bool {
	return len(s.And.Active()) > 0 || len(s.Or.Active()) > 0
}
