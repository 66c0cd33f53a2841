// Package logging builds the application logger.
// Interactive sessions own the terminal, so logs usually go to a file;
// headless commands log to stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error (default info)
	Format string // text, json or logfmt (default text)
	Path   string // Log file; empty writes to Writer
	Prefix string

	// Writer is used when Path is empty. Defaults to os.Stderr.
	Writer io.Writer
}

// ParseLevel maps a level name to a log.Level. Unknown values default to info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ParseFormat maps a format name to a log.Formatter. Unknown values
// default to text.
func ParseFormat(s string) log.Formatter {
	switch strings.ToLower(s) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// New creates a logger. The returned closer releases the log file and is
// never nil.
func New(opts Options) (*log.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, closer, err
		}
		f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, closer, err
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormat(opts.Format),
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
