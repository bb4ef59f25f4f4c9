package logformat

import (
	"testing"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/source"
)

func TestLevelDetector_Detect(t *testing.T) {
	d := NewLevelDetector(&config.DefaultConfig().LogLevels)

	tests := []struct {
		line string
		want source.LogLevel
	}{
		{"2024-01-01 [INF] started", source.LevelInfo},
		{"2024-01-01 [WRN] disk low", source.LevelWarn},
		{"2024-01-01 ERROR connection refused", source.LevelError},
		{"FATAL out of memory", source.LevelFatal},
		{"[DBG] cache miss", source.LevelDebug},
		{"TRACE enter handler", source.LevelTrace},
		{"INFO retry after ERROR", source.LevelError},
		{"nothing to see", source.LevelUnknown},
		{"", source.LevelUnknown},
	}

	for _, tc := range tests {
		if got := d.Detect(tc.line); got != tc.want {
			t.Errorf("Detect(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestLevelDetector_EmptyPatternsIgnored(t *testing.T) {
	d := NewLevelDetector(&config.LogLevelConfig{InfoPatterns: []string{""}})
	if got := d.Detect("anything"); got != source.LevelUnknown {
		t.Fatalf("Detect with empty pattern = %v, want LevelUnknown", got)
	}
}
