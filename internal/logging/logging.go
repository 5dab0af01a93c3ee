// Package logging builds the file logger shared by the engine and the TUI.
// The terminal belongs to bubbletea, so nothing is written to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "lifesim",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

// Open appends to the log file at path. An empty path discards everything.
// Close the returned file when done.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		logger, err := New(io.Discard, level)
		return logger, io.NopCloser(nil), err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
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
