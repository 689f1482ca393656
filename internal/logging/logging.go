// Package logging builds the charmbracelet/log loggers used by the CLI.
package logging

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is shown in front of every log line.
const Prefix = "minipack"

// New returns a text logger writing to w. Verbose lowers the level to debug.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *log.Logger) context.Context {
	return log.WithContext(ctx, logger)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(log.ContextKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Discard()
}
