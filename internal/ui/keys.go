package ui

import (
	"github.com/TimelordUK/logsift/internal/config"
)

// Action is something a key can trigger in normal mode
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionTop
	ActionBottom
	ActionSearch
	ActionNextMatch
	ActionPrevMatch
	ActionToggleCase
	ActionClearSearch
	ActionGotoLine
	ActionOpenFile
	ActionAddAndFilter
	ActionAddOrFilter
	ActionAddHighlight
	ActionFocusPanel
	ActionExport
	ActionMemo
	ActionCopyLine
	ActionToggleNumbers
)

// Keymap resolves key strings to actions. The first binding wins when a
// key is listed twice.
type Keymap map[string]Action

// NewKeymap builds a keymap from config
func NewKeymap(kb config.KeybindingConfig) Keymap {
	km := Keymap{}
	bind := func(a Action, keys []string) {
		for _, k := range keys {
			if _, taken := km[k]; !taken {
				km[k] = a
			}
		}
	}

	bind(ActionQuit, kb.Quit)
	bind(ActionScrollUp, kb.ScrollUp)
	bind(ActionScrollDown, kb.ScrollDown)
	bind(ActionPageUp, kb.PageUp)
	bind(ActionPageDown, kb.PageDown)
	bind(ActionTop, kb.Top)
	bind(ActionBottom, kb.Bottom)
	bind(ActionSearch, kb.Search)
	bind(ActionNextMatch, kb.NextMatch)
	bind(ActionPrevMatch, kb.PrevMatch)
	bind(ActionToggleCase, kb.ToggleCase)
	bind(ActionClearSearch, kb.ClearSearch)
	bind(ActionGotoLine, kb.GotoLine)
	bind(ActionOpenFile, kb.OpenFile)
	bind(ActionAddAndFilter, kb.AddAndFilter)
	bind(ActionAddOrFilter, kb.AddOrFilter)
	bind(ActionAddHighlight, kb.AddHighlight)
	bind(ActionFocusPanel, kb.FocusPanel)
	bind(ActionExport, kb.Export)
	bind(ActionMemo, kb.Memo)
	bind(ActionCopyLine, kb.CopyLine)
	bind(ActionToggleNumbers, kb.ToggleNumbers)

	return km
}

// Lookup returns the action bound to key
func (km Keymap) Lookup(key string) Action {
	return km[key]
}
