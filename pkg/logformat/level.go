package logformat

import (
	"strings"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/source"
)

type levelPatterns struct {
	level    source.LogLevel
	patterns []string
}

// LevelDetector detects log levels from line content
type LevelDetector struct {
	// most severe first, so "ERROR ... INFO" reads as an error
	order []levelPatterns
}

// NewLevelDetector creates a detector from config
func NewLevelDetector(cfg *config.LogLevelConfig) *LevelDetector {
	return &LevelDetector{
		order: []levelPatterns{
			{source.LevelFatal, cfg.FatalPatterns},
			{source.LevelError, cfg.ErrorPatterns},
			{source.LevelWarn, cfg.WarnPatterns},
			{source.LevelInfo, cfg.InfoPatterns},
			{source.LevelDebug, cfg.DebugPatterns},
			{source.LevelTrace, cfg.TracePatterns},
		},
	}
}

// Detect returns the log level for a line
func (d *LevelDetector) Detect(line string) source.LogLevel {
	for _, lp := range d.order {
		for _, pattern := range lp.patterns {
			if pattern != "" && strings.Contains(line, pattern) {
				return lp.level
			}
		}
	}
	return source.LevelUnknown
}
