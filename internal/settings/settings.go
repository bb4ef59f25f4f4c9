// Package settings persists filter, highlight and memo state between runs.
// The file is JSON unless its name ends in .yaml or .yml.
package settings

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/TimelordUK/logsift/internal/filter"
	"github.com/TimelordUK/logsift/internal/highlight"
)

// FilterEntry is one persisted filter rule
type FilterEntry struct {
	Term      string `json:"term" yaml:"term"`
	IsCaseI   bool   `json:"is_case_i" yaml:"is_case_i"`
	IsChecked bool   `json:"is_checked" yaml:"is_checked"`
}

// HighlightEntry is one persisted highlight rule
type HighlightEntry struct {
	Term      string `json:"term" yaml:"term"`
	Color     string `json:"color" yaml:"color"`
	IsCaseI   bool   `json:"is_case_i" yaml:"is_case_i"`
	IsChecked bool   `json:"is_checked" yaml:"is_checked"`
}

// Settings is the persisted record
type Settings struct {
	OrFilters  []FilterEntry    `json:"or_filters" yaml:"or_filters"`
	AndFilters []FilterEntry    `json:"and_filters" yaml:"and_filters"`
	Highlights []HighlightEntry `json:"highlights" yaml:"highlights"`
	Memo       string           `json:"memo" yaml:"memo"`
}

// fileSettings accepts the older key spellings on read
type fileSettings struct {
	Settings   `yaml:",inline"`
	AddFilters []FilterEntry `json:"add_filters" yaml:"add_filters"`
	Filters    []FilterEntry `json:"filters" yaml:"filters"`
}

func (f fileSettings) resolve() Settings {
	s := f.Settings
	if len(s.AndFilters) == 0 {
		s.AndFilters = f.AddFilters
	}
	// The single-list format only had OR filters, all of them active
	for _, e := range f.Filters {
		e.IsChecked = true
		s.OrFilters = append(s.OrFilters, e)
	}
	return s
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads settings from path. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, errors.Wrapf(err, "failed to read settings from %s", path)
	}
	return Decode(data, isYAML(path))
}

// Decode parses settings data
func Decode(data []byte, asYAML bool) (Settings, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Settings{}, nil
	}

	var raw fileSettings
	var err error
	if asYAML {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return Settings{}, errors.Wrap(err, "failed to parse settings")
	}
	return raw.resolve(), nil
}

// Save writes settings to path, creating its directory
func Save(path string, s Settings) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "    ")
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal settings")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}

	err = os.WriteFile(path, data, 0o644)
	return errors.Wrapf(err, "failed to write settings to %s", path)
}

// Capture snapshots the live rule collections
func Capture(set *filter.Set, rules *highlight.Rules, memo string) Settings {
	s := Settings{Memo: memo}
	for _, r := range set.Or.All() {
		s.OrFilters = append(s.OrFilters, FilterEntry{Term: r.Term, IsCaseI: r.CaseInsensitive, IsChecked: r.Enabled})
	}
	for _, r := range set.And.All() {
		s.AndFilters = append(s.AndFilters, FilterEntry{Term: r.Term, IsCaseI: r.CaseInsensitive, IsChecked: r.Enabled})
	}
	for _, r := range rules.All() {
		s.Highlights = append(s.Highlights, HighlightEntry{
			Term:      r.Term,
			Color:     r.Color,
			IsCaseI:   r.CaseInsensitive,
			IsChecked: r.Enabled,
		})
	}
	return s
}

// Restore replaces the live rule collections with the persisted ones and
// returns the terms it had to skip (empty, duplicated or badly colored)
func (s Settings) Restore(set *filter.Set, rules *highlight.Rules) []string {
	var skipped []string

	restoreFilters := func(dst *filter.Rules, entries []FilterEntry) {
		dst.Clear()
		for _, e := range entries {
			rule := filter.Rule{Term: e.Term, CaseInsensitive: e.IsCaseI, Enabled: e.IsChecked}
			if err := dst.Put(rule); err != nil {
				skipped = append(skipped, e.Term)
			}
		}
	}
	restoreFilters(&set.Or, s.OrFilters)
	restoreFilters(&set.And, s.AndFilters)

	rules.Clear()
	for _, e := range s.Highlights {
		rule := highlight.Rule{Term: e.Term, Color: e.Color, CaseInsensitive: e.IsCaseI, Enabled: e.IsChecked}
		if err := rules.Put(rule); err != nil {
			skipped = append(skipped, e.Term)
		}
	}
	return skipped
}
