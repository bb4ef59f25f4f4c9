// Package plugin embeds a viewer session inside a host application that
// owns the window and the process lifecycle. The host calls the lifecycle
// hooks; every hook is idempotent.
package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/TimelordUK/logsift/internal/session"
	"github.com/TimelordUK/logsift/internal/settings"
)

// SettingsKey is the host key the plugin stores its state under
const SettingsKey = "logsift.settings"

// ErrClosed is returned by hooks called after Shutdown
var ErrClosed = errors.New("plugin is shut down")

// Host is the key/value store an embedding framework provides per plugin
// instance
type Host interface {
	Value(key string) (string, bool)
	SetValue(key, value string)
}

// Plugin adapts a session to host-driven lifecycle hooks
type Plugin struct {
	logger  *slog.Logger
	session *session.Session
	opts    session.Options
	closed  bool
}

// New creates an uninitialised plugin
func New(opts session.Options) *Plugin {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Plugin{logger: logger, opts: opts}
}

// Init creates the session; repeated calls keep the existing one
func (p *Plugin) Init() error {
	if p.closed {
		return ErrClosed
	}
	if p.session == nil {
		p.session = session.New(p.opts)
		p.logger.Debug("plugin initialised")
	}
	return nil
}

// Session returns the embedded session, nil before Init
func (p *Plugin) Session() *session.Session {
	return p.session
}

// Dispatch forwards a command to the session
func (p *Plugin) Dispatch(cmd session.Command) (session.Result, error) {
	if err := p.Init(); err != nil {
		return session.Result{}, err
	}
	return p.session.Dispatch(cmd)
}

// SaveSettings writes the session's persistent state to the host
func (p *Plugin) SaveSettings(host Host) error {
	if err := p.Init(); err != nil {
		return err
	}
	data, err := json.Marshal(p.session.Settings())
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	host.SetValue(SettingsKey, string(data))
	return nil
}

// RestoreSettings replaces the session's rules and memo with the host's
// stored state. Missing state leaves the session unchanged.
func (p *Plugin) RestoreSettings(host Host) error {
	if err := p.Init(); err != nil {
		return err
	}
	raw, ok := host.Value(SettingsKey)
	if !ok {
		return nil
	}
	st, err := settings.Decode([]byte(raw), false)
	if err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}
	p.session.ApplySettings(st)
	return nil
}

// Shutdown releases the session. Calling it again does nothing.
func (p *Plugin) Shutdown() {
	if p.closed {
		return
	}
	p.closed = true
	p.session = nil
	p.logger.Debug("plugin shut down")
}
