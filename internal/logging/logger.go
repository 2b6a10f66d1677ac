// Package logging builds the logrus logger used across the app.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level      string // debug, info, warn, error; default info
	File       string // rotate into this file instead of stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Component  string // added to every entry as "component"
}

// New returns a logger writing text entries to stderr or, when File is set,
// to a rotating file.
func New(opts Options) (*logrus.Entry, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := logrus.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		parsed, err := logrus.ParseLevel(s)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	l.SetLevel(level)

	var out io.Writer = os.Stderr
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return nil, err
		}
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    withDefault(opts.MaxSizeMB, 10),
			MaxBackups: withDefault(opts.MaxBackups, 3),
			MaxAge:     withDefault(opts.MaxAgeDays, 28),
			Compress:   opts.Compress,
		}
	}
	l.SetOutput(out)

	entry := logrus.NewEntry(l)
	if opts.Component != "" {
		entry = entry.WithField("component", opts.Component)
	}
	return entry, nil
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
