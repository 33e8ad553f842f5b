// Package logging builds the structured loggers used across conpane.
//
// The terminal belongs to the console view while the program runs, so
// logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error").
func New(w io.Writer, level string) (*clog.Logger, error) {
	lvl := clog.InfoLevel
	if level != "" {
		parsed, err := clog.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		lvl = parsed
	}
	return clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Level:           lvl,
	}), nil
}

// Open returns a logger appending to the file at path. An empty path
// yields a discarding logger. The returned closer must be closed on exit.
func Open(path, level string) (*clog.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *clog.Logger {
	return clog.NewWithOptions(io.Discard, clog.Options{Level: clog.FatalLevel})
}

// Component returns l tagged with a component name, or a discarding
// logger when l is nil.
func Component(l *clog.Logger, name string) *clog.Logger {
	if l == nil {
		l = Discard()
	}
	return l.With("component", name)
}
