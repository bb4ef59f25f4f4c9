// Package logging opens the log destination. The terminal belongs to the
// viewer, so logs go to a file or nowhere.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Open returns a logger writing to path. An empty or unopenable path
// discards output; the returned error says why in the second case.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	w, err := openWriter(path)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closer{w}, err
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openWriter(path string) (io.Writer, error) {
	if path == "" {
		return io.Discard, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, err
	}
	return file, nil
}

type closer struct {
	w io.Writer
}

func (c closer) Close() error {
	if f, ok := c.w.(*os.File); ok {
		return f.Close()
	}
	return nil
}
