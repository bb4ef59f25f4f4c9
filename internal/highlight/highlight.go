// Package highlight holds the user's highlight rules and works out which
// spans of a line they color. It never affects which lines are displayed.
package highlight

import (
	"errors"
	"regexp"
	"strings"
)

// DefaultColor is used when a rule is added without one
const DefaultColor = "#ffff00"

var (
	ErrEmptyTerm     = errors.New("highlight term is empty")
	ErrDuplicateTerm = errors.New("highlight term already exists")
	ErrNoSuchTerm    = errors.New("no highlight with that term")
	ErrBadColor      = errors.New("color must be #rgb or #rrggbb")
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Rule colors every occurrence of Term
type Rule struct {
	Term            string
	Color           string
	CaseInsensitive bool
	Enabled         bool
}

// Rules is an ordered collection keyed by term. Later rules win where
// matches overlap.
type Rules struct {
	items []Rule
}

// Add appends an enabled rule; an empty color means DefaultColor
func (r *Rules) Add(term, color string, caseInsensitive bool) error {
	return r.Put(Rule{Term: term, Color: color, CaseInsensitive: caseInsensitive, Enabled: true})
}

// Put appends a rule as given
func (r *Rules) Put(rule Rule) error {
	if strings.TrimSpace(rule.Term) == "" {
		return ErrEmptyTerm
	}
	if r.find(rule.Term) >= 0 {
		return ErrDuplicateTerm
	}
	color, err := normalizeColor(rule.Color)
	if err != nil {
		return err
	}
	rule.Color = color
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

// Toggle flips whether the rule is rendered and returns the new state
func (r *Rules) Toggle(term string) (bool, error) {
	i := r.find(term)
	if i < 0 {
		return false, ErrNoSuchTerm
	}
	r.items[i].Enabled = !r.items[i].Enabled
	return r.items[i].Enabled, nil
}

// SetColor recolors an existing rule
func (r *Rules) SetColor(term, color string) error {
	i := r.find(term)
	if i < 0 {
		return ErrNoSuchTerm
	}
	c, err := normalizeColor(color)
	if err != nil {
		return err
	}
	r.items[i].Color = c
	return nil
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

// All returns a copy of every rule in order
func (r *Rules) All() []Rule {
	out := make([]Rule, len(r.items))
	copy(out, r.items)
	return out
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

func normalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultColor, nil
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	if !hexColor.MatchString(color) {
		return "", ErrBadColor
	}
	return strings.ToLower(color), nil
}

// Matcher is a compiled enabled rule
type Matcher struct {
	re    *regexp.Regexp
	Color string
}

// Compile turns enabled rules into matchers. Terms are matched literally.
func (r *Rules) Compile() []Matcher {
	var matchers []Matcher
	for _, rule := range r.items {
		if !rule.Enabled {
			continue
		}
		pattern := regexp.QuoteMeta(rule.Term)
		if rule.CaseInsensitive {
			pattern = "(?i)" + pattern
		}
		matchers = append(matchers, Matcher{re: regexp.MustCompile(pattern), Color: rule.Color})
	}
	return matchers
}

// Span is a colored byte range [Start, End) of a line
type Span struct {
	Start int
	End   int
	Color string
}

// Spans returns the disjoint colored ranges of text in order. Where
// matchers overlap the later one wins.
func Spans(text string, matchers []Matcher) []Span {
	if len(matchers) == 0 || text == "" {
		return nil
	}

	// Color slot per byte, -1 for none
	owner := make([]int, len(text))
	for i := range owner {
		owner[i] = -1
	}
	found := false
	for mi, m := range matchers {
		for _, loc := range m.re.FindAllStringIndex(text, -1) {
			for b := loc[0]; b < loc[1]; b++ {
				owner[b] = mi
			}
			found = found || loc[1] > loc[0]
		}
	}
	if !found {
		return nil
	}

	var spans []Span
	for i := 0; i < len(owner); {
		if owner[i] < 0 {
			i++
			continue
		}
		j := i
		for j < len(owner) && owner[j] == owner[i] {
			j++
		}
		spans = append(spans, Span{Start: i, End: j, Color: matchers[owner[i]].Color})
		i = j
	}
	return spans
}
