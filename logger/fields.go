package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across lexkit.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Source coordinates
	FieldLine      = "line"
	FieldCharacter = "character"
	FieldOffset    = "offset"

	// Lexing
	FieldFound = "found"
	FieldTag   = "tag"
	FieldRule  = "rule"

	// Counts and sizes
	FieldCount      = "count"
	FieldErrorCount = "error_count"
	FieldSize       = "size"

	// Files
	FieldFile = "file"
	FieldOp   = "op"

	// Logging setup
	FieldLevel = "level"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	l := logger.ComponentLogger("lex")
//	l.Debugw("Unmatched input", logger.FieldFound, "#")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
