// Package logging configures the logrus logger shared by the UI and engine.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// New returns a logger at the given level. The terminal belongs to the UI, so
// without a path log lines are dropped; with a path they are appended to it.
// The returned close function releases the file.
func New(level, path string) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})

	if path == "" {
		log.SetOutput(io.Discard)
		return log, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(file)
	return log, file.Close, nil
}

// ParseLevel accepts logrus level names; empty means DefaultLevel.
func ParseLevel(level string) (logrus.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
