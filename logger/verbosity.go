package logger

import "go.uber.org/zap/zapcore"

// Verbosity levels as counted by a host program's -v flags.
const (
	VerbosityQuiet = 0 // errors and warnings only
	VerbosityInfo  = 1 // + rule table loads, config reloads
	VerbosityDebug = 2 // + every unmatched character, tokenize summaries
)

// VerbosityToLevel maps a verbosity count to a zap level
//
// Mapping:
//
//	0 (none)  -> WarnLevel
//	1 (-v)    -> InfoLevel
//	2+ (-vv)  -> DebugLevel
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// LevelName returns a human-readable name for verbosity level
func LevelName(verbosity int) string {
	switch {
	case verbosity < 0:
		return "Unknown"
	case verbosity == VerbosityQuiet:
		return "Quiet"
	case verbosity == VerbosityInfo:
		return "Info (-v)"
	default:
		return "Debug (-vv)"
	}
}
