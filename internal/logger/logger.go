// Package logger wraps charm/log with helpers for build events.
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

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// BuildStarted logs the start of a build run
func (l *Logger) BuildStarted(format string, files int) {
	l.Debug("build started",
		"format", format,
		"files", files)
}

// BuildCompleted logs the end of a build run
func (l *Logger) BuildCompleted(files, failed int, duration time.Duration) {
	l.Info("build completed",
		"files", files,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FileCompiled logs a successfully written target
func (l *Logger) FileCompiled(source, target string) {
	l.Debug("file compiled",
		"source", source,
		"target", target)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// SkeletonFallback logs that the built-in skeleton replaces a missing file
func (l *Logger) SkeletonFallback(path string) {
	l.Debug("skeleton not found, using default",
		"path", path)
}
