// Package session owns the state of one viewer: the loaded lines, the
// filter and highlight rules, the memo, the displayed sequence with its
// index map, and the search cursor. Every change arrives as a Command.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/TimelordUK/logsift/internal/export"
	"github.com/TimelordUK/logsift/internal/filter"
	"github.com/TimelordUK/logsift/internal/highlight"
	"github.com/TimelordUK/logsift/internal/search"
	"github.com/TimelordUK/logsift/internal/settings"
	"github.com/TimelordUK/logsift/internal/source"
)

var (
	// ErrNothingDisplayed is returned by GoToLine when no line is shown
	ErrNothingDisplayed = errors.New("no lines displayed")
	// ErrUnknownCommand is returned for commands the session cannot handle
	ErrUnknownCommand = errors.New("unknown command")
)

// Result carries what a command produced for the display layer
type Result struct {
	// Position is the displayed row to bring into view, valid when HasPosition
	Position    int
	HasPosition bool

	Search  search.Report
	Export  *export.Info
	LoadErr error
}

// Options configures a Session
type Options struct {
	Logger   *slog.Logger
	Detector source.LevelDetectFunc
}

// Session is a single-actor state owner; it is not safe for concurrent use
type Session struct {
	logger   *slog.Logger
	detector source.LevelDetectFunc

	provider   *source.FilteredProvider
	filters    filter.Set
	highlights highlight.Rules
	matchers   []highlight.Matcher
	memo       string
	cursor     search.Cursor
	searchCI   bool
}

// New creates a session with nothing loaded
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		logger:   logger,
		detector: opts.Detector,
	}
	s.provider = source.NewFilteredProvider(source.NewStringSource("", nil), s.detector)
	return s
}

// Dispatch applies cmd
func (s *Session) Dispatch(cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case LoadFile:
		return s.load(c)
	case FilterChanged:
		return Result{}, s.changeFilter(c)
	case HighlightChanged:
		return Result{}, s.changeHighlight(c)
	case SearchNext:
		return s.searchNext(c), nil
	case SearchCleared:
		s.cursor.Clear()
		return Result{}, nil
	case ExportRequested:
		info, err := export.Write(c.Path, s.provider.Entries(), c.WithNumbers)
		if err != nil {
			s.logger.Warn("export failed", "path", c.Path, "err", err)
			return Result{}, err
		}
		s.logger.Info("exported", "path", info.Path, "lines", info.Lines, "numbers", info.WithNumbers)
		return Result{Export: info}, nil
	case GoToLine:
		pos, ok := s.provider.ViewMap().Resolve(c.Line)
		if !ok {
			return Result{}, ErrNothingDisplayed
		}
		return Result{Position: pos, HasPosition: true}, nil
	case MemoChanged:
		s.memo = c.Text
		return Result{}, nil
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// load replaces the line store. A failed load still replaces it, with
// lines describing the failure, and reports the error.
func (s *Session) load(c LoadFile) (Result, error) {
	src, err := source.NewFileSource(c.Path)
	if err != nil {
		s.logger.Warn("load failed", "path", c.Path, "err", err)
		src = source.PlaceholderSource(c.Path, err)
	} else {
		origin := src.Origin()
		s.logger.Info("loaded", "path", origin.Path, "format", origin.Format, "member", origin.Member, "lines", src.LineCount())
	}

	s.provider = source.NewFilteredProvider(src, s.detector)
	s.refilter()

	if err != nil {
		return Result{LoadErr: err}, err
	}
	return Result{}, nil
}

func (s *Session) refilter() {
	s.provider.Apply(&s.filters)
	s.cursor.Invalidate()
}

func (s *Session) changeFilter(c FilterChanged) error {
	rules := s.filters.Rules(c.List)

	var err error
	switch c.Op {
	case OpAdd:
		err = rules.Add(c.Term, c.CaseInsensitive)
	case OpRemove:
		err = rules.Remove(c.Term)
	case OpToggle:
		_, err = rules.Toggle(c.Term)
	case OpSetCase:
		err = rules.SetCaseInsensitive(c.Term, c.CaseInsensitive)
	default:
		err = fmt.Errorf("%w: filter %s", ErrUnknownCommand, c.Op)
	}
	if err != nil {
		return err
	}

	s.logger.Debug("filter changed", "op", c.Op, "list", c.List, "term", c.Term)
	s.refilter()
	return nil
}

func (s *Session) changeHighlight(c HighlightChanged) error {
	var err error
	switch c.Op {
	case OpAdd:
		err = s.highlights.Add(c.Term, c.Color, c.CaseInsensitive)
	case OpRemove:
		err = s.highlights.Remove(c.Term)
	case OpToggle:
		_, err = s.highlights.Toggle(c.Term)
	case OpSetCase:
		err = s.highlights.SetCaseInsensitive(c.Term, c.CaseInsensitive)
	case OpSetColor:
		err = s.highlights.SetColor(c.Term, c.Color)
	default:
		err = fmt.Errorf("%w: highlight %s", ErrUnknownCommand, c.Op)
	}
	if err != nil {
		return err
	}

	s.logger.Debug("highlight changed", "op", c.Op, "term", c.Term)
	s.matchers = s.highlights.Compile()
	return nil
}

func (s *Session) searchNext(c SearchNext) Result {
	s.searchCI = c.CaseInsensitive
	var report search.Report
	if c.Backward {
		report = s.cursor.Prev(c.Term, c.CaseInsensitive, s.provider.Entries())
	} else {
		report = s.cursor.Next(c.Term, c.CaseInsensitive, s.provider.Entries())
	}

	res := Result{Search: report}
	if m, ok := s.cursor.Current(); ok {
		res.Position = m.Row
		res.HasPosition = true
	}
	return res
}

// Provider returns the displayed sequence as a line provider
func (s *Session) Provider() *source.FilteredProvider {
	return s.provider
}

// Filters returns the filter rules; mutate them through Dispatch
func (s *Session) Filters() *filter.Set {
	return &s.filters
}

// Highlights returns the highlight rules; mutate them through Dispatch
func (s *Session) Highlights() *highlight.Rules {
	return &s.highlights
}

// Matchers returns the compiled enabled highlight rules
func (s *Session) Matchers() []highlight.Matcher {
	return s.matchers
}

// Memo returns the memo text
func (s *Session) Memo() string {
	return s.memo
}

// CurrentMatch returns the selected search match, if any
func (s *Session) CurrentMatch() (search.Match, bool) {
	return s.cursor.Current()
}

// SearchTerm returns the active search term and its case rule
func (s *Session) SearchTerm() (string, bool) {
	return s.cursor.Term(), s.searchCI
}

// Settings snapshots everything that persists between runs
func (s *Session) Settings() settings.Settings {
	return settings.Capture(&s.filters, &s.highlights, s.memo)
}

// ApplySettings replaces rules and memo with st and refilters. It returns
// the terms that could not be restored.
func (s *Session) ApplySettings(st settings.Settings) []string {
	skipped := st.Restore(&s.filters, &s.highlights)
	s.memo = st.Memo
	s.matchers = s.highlights.Compile()
	s.refilter()
	if len(skipped) > 0 {
		s.logger.Warn("skipped settings entries", "terms", skipped)
	}
	return skipped
}
