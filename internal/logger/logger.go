// Package logger builds charmbracelet/log loggers from configuration.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to stderr.
func New(prefix, level, format string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix, level, format)
}

func NewWithWriter(w io.Writer, prefix, level, format string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       formatter(format),
	})
}

// Discard is a logger for tests and for callers that have nowhere to log.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func formatter(name string) log.Formatter {
	switch name {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
