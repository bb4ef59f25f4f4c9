package plugin

import (
	"errors"
	"testing"

	"github.com/TimelordUK/logsift/internal/filter"
	"github.com/TimelordUK/logsift/internal/session"
)

type memHost map[string]string

func (h memHost) Value(key string) (string, bool) {
	v, ok := h[key]
	return v, ok
}

func (h memHost) SetValue(key, value string) {
	h[key] = value
}

func TestPlugin_SaveRestore(t *testing.T) {
	host := memHost{}

	p := New(session.Options{})
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	first := p.Session()
	if err := p.Init(); err != nil || p.Session() != first {
		t.Fatalf("second Init replaced the session")
	}

	if _, err := p.Dispatch(session.FilterChanged{Op: session.OpAdd, List: filter.ListOr, Term: "foo"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if _, err := p.Dispatch(session.MemoChanged{Text: "memo"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := p.SaveSettings(host); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	saved := host[SettingsKey]
	if err := p.SaveSettings(host); err != nil || host[SettingsKey] != saved {
		t.Fatalf("second SaveSettings changed stored state")
	}

	q := New(session.Options{})
	if err := q.RestoreSettings(host); err != nil {
		t.Fatalf("RestoreSettings: %v", err)
	}
	if err := q.RestoreSettings(host); err != nil {
		t.Fatalf("second RestoreSettings: %v", err)
	}
	if q.Session().Filters().Or.Len() != 1 || q.Session().Memo() != "memo" {
		t.Fatalf("restored filters=%d memo=%q", q.Session().Filters().Or.Len(), q.Session().Memo())
	}
}

func TestPlugin_RestoreWithoutState(t *testing.T) {
	p := New(session.Options{})
	if err := p.RestoreSettings(memHost{}); err != nil {
		t.Fatalf("RestoreSettings with empty host: %v", err)
	}
	if err := p.RestoreSettings(memHost{SettingsKey: "{"}); err == nil {
		t.Fatalf("RestoreSettings with corrupt state returned nil error")
	}
}

func TestPlugin_ShutdownIdempotent(t *testing.T) {
	p := New(session.Options{})
	_ = p.Init()
	p.Shutdown()
	p.Shutdown()

	if err := p.Init(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Init after Shutdown error = %v, want ErrClosed", err)
	}
	if err := p.SaveSettings(memHost{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("SaveSettings after Shutdown error = %v, want ErrClosed", err)
	}
	if _, err := p.Dispatch(session.SearchCleared{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("Dispatch after Shutdown error = %v, want ErrClosed", err)
	}
}
