package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger: a charmbracelet/log handler behind
// the standard slog API, timestamped, in logfmt-style text or JSON.
//
// The writer defaults to os.Stderr.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	opts := log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	}
	if format == "json" {
		opts.Formatter = log.JSONFormatter
	}

	return slog.New(log.NewWithOptions(w, opts))
}
