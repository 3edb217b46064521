// Package logger wraps charmbracelet/log with the events orgp reports.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at warn level.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.WarnLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "orgp",
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel converts a config or flag value such as "debug" to a level.
func ParseLevel(s string) (log.Level, error) {
	return log.ParseLevel(s)
}

// ParseStarted logs the start of a document parse.
func (l *Logger) ParseStarted(file string, size int) {
	l.Debug("parse started",
		"file", file,
		"bytes", size)
}

// ParseCompleted logs a finished parse.
func (l *Logger) ParseCompleted(file string, elements, diagnostics int, duration time.Duration) {
	l.Info("parse completed",
		"file", file,
		"elements", elements,
		"diagnostics", diagnostics,
		"duration", duration.Round(time.Microsecond))
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path, format, timezone string) {
	l.Debug("config loaded",
		"path", path,
		"format", format,
		"timezone", timezone)
}
