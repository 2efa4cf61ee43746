// Package logging provides the leveled stderr logger used throughout the
// server. It mirrors the logging conventions of the codebase literedis was
// distilled from: one prefixed *log.Logger per level, no structured fields.
package logging

import (
	"log"
	"os"
)

const (
	levelInfo  = "INFO"
	levelWarn  = "WARN"
	levelError = "ERROR"
)

// Logger is a minimal leveled wrapper around the standard library logger.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

// New returns a Logger that writes to stderr with date/time prefixes.
func New() *Logger {
	return &Logger{
		info:  log.New(os.Stderr, "[INFO]  ", log.Ldate|log.Ltime),
		warn:  log.New(os.Stderr, "[WARN]  ", log.Ldate|log.Ltime),
		error: log.New(os.Stderr, "[ERROR] ", log.Ldate|log.Ltime),
	}
}

func (l *Logger) Info(format string, v ...interface{})  { l.info.Printf(format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.warn.Printf(format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.error.Printf(format, v...) }

// Default is the process-wide logger instance, matching the package-level
// singleton the dispatcher and persistence layers were originally wired to.
var Default = New()
