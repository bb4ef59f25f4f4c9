package session

import "github.com/TimelordUK/logsift/internal/filter"

// Command is one user action. Commands are handled synchronously, one at
// a time, by Session.Dispatch.
type Command interface {
	command()
}

// RuleOp is an edit applied to a rule collection
type RuleOp int

const (
	OpAdd RuleOp = iota
	OpRemove
	OpToggle
	OpSetCase
	OpSetColor
)

func (o RuleOp) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpToggle:
		return "toggle"
	case OpSetCase:
		return "set-case"
	case OpSetColor:
		return "set-color"
	default:
		return "unknown"
	}
}

// LoadFile replaces the line store with the contents of Path
type LoadFile struct {
	Path string
}

// FilterChanged edits the AND or OR rule group
type FilterChanged struct {
	Op              RuleOp
	List            filter.List
	Term            string
	CaseInsensitive bool
}

// HighlightChanged edits the highlight rules
type HighlightChanged struct {
	Op              RuleOp
	Term            string
	Color           string
	CaseInsensitive bool
}

// SearchNext moves to the next (or previous) occurrence of Term
type SearchNext struct {
	Term            string
	CaseInsensitive bool
	Backward        bool
}

// SearchCleared drops the current search
type SearchCleared struct{}

// ExportRequested writes the displayed lines to Path
type ExportRequested struct {
	Path        string
	WithNumbers bool
}

// GoToLine jumps to a 1-based original line number
type GoToLine struct {
	Line int
}

// MemoChanged replaces the free-text memo
type MemoChanged struct {
	Text string
}

func (LoadFile) command()         {}
func (FilterChanged) command()    {}
func (HighlightChanged) command() {}
func (SearchNext) command()       {}
func (SearchCleared) command()    {}
func (ExportRequested) command()  {}
func (GoToLine) command()         {}
func (MemoChanged) command()      {}
