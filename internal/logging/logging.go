// Package logging builds the logrus logger shared by the storefront commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger at level writing to w.
func New(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	return log, nil
}

// Open returns a logger for a command. With an empty path the logger writes
// to fallback. The returned close function releases the log file.
func Open(level, path string, fallback io.Writer) (*logrus.Logger, func() error, error) {
	if path == "" {
		log, err := New(level, fallback)
		return log, func() error { return nil }, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: opening %s: %w", path, err)
	}
	log, err := New(level, f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return log, f.Close, nil
}
