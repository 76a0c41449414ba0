package lex

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/teranos/lexkit/errors"
)

// ErrorKind categorizes parser errors for programmatic handling
type ErrorKind string

const (
	ErrorKindEndOfStream     ErrorKind = "end_of_stream"    // consumption with nothing left
	ErrorKindUnexpectedToken ErrorKind = "unexpected_token" // consumed token has the wrong tag
	ErrorKindUnmatchedInput  ErrorKind = "unmatched_input"  // no matcher fired at a scan position
	ErrorKindUnexpectedInput ErrorKind = "unexpected_input" // caller-described mismatch
)

// Sentinels returned by ParserError.Unwrap, one per kind.
var (
	ErrEndOfStream     = errors.New("end of stream")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnmatchedInput  = errors.New("unmatched input")
	ErrUnexpectedInput = errors.New("unexpected input")
)

// ErrorContext indicates the environment where parser errors will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal renders with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain renders without ANSI codes (logs, editors, tests)
	ErrorContextPlain ErrorContext = "plain"
)

// EndOfStreamFound is the Found text of end-of-stream errors
const EndOfStreamFound = "End of Stream"

// LexingMatch is the Expected text of unmatched-input errors
const LexingMatch = "lexing match"

// ParserError describes an expectation mismatch: what was expected, what
// was found, and where, when the position is known.
type ParserError struct {
	Kind     ErrorKind `json:"kind"`
	Expected string    `json:"expected"`
	Found    string    `json:"found"`
	Position *Position `json:"position,omitempty"`
}

// Error implements error interface
func (e *ParserError) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("Unexpected %s at %s. Expected %s", e.Found, e.Position, e.Expected)
	}
	return fmt.Sprintf("Unexpected %s. Expected %s", e.Found, e.Expected)
}

// Unwrap for errors.Is compatibility with the kind sentinels
func (e *ParserError) Unwrap() error {
	switch e.Kind {
	case ErrorKindEndOfStream:
		return ErrEndOfStream
	case ErrorKindUnexpectedToken:
		return ErrUnexpectedToken
	case ErrorKindUnmatchedInput:
		return ErrUnmatchedInput
	default:
		return ErrUnexpectedInput
	}
}

// FormatError generates context-appropriate error message
func (e *ParserError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.Error()
	}
	msg := "Unexpected " + pterm.Red(e.Found)
	if e.Position != nil {
		msg += " at " + pterm.LightCyan(e.Position.String())
	}
	return msg + ". Expected " + pterm.Yellow(e.Expected)
}

// EndOfStream reports a consumption attempt on an exhausted stream
func EndOfStream(expected string) *ParserError {
	return &ParserError{
		Kind:     ErrorKindEndOfStream,
		Expected: expected,
		Found:    EndOfStreamFound,
	}
}

// UnexpectedToken reports a consumed token whose tag is not expected
func UnexpectedToken[T Tag](expected T, found Token[T]) *ParserError {
	pos := found.Position
	return &ParserError{
		Kind:     ErrorKindUnexpectedToken,
		Expected: expected.String(),
		Found:    found.String(),
		Position: &pos,
	}
}

// UnexpectedInput is the generic form: any found description at pos
func UnexpectedInput(expected, found string, pos Position) *ParserError {
	return &ParserError{
		Kind:     ErrorKindUnexpectedInput,
		Expected: expected,
		Found:    found,
		Position: &pos,
	}
}

// UnmatchedInput reports text no matcher recognized at pos
func UnmatchedInput(found string, pos Position) *ParserError {
	return &ParserError{
		Kind:     ErrorKindUnmatchedInput,
		Expected: LexingMatch,
		Found:    found,
		Position: &pos,
	}
}
