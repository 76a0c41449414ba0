// Package errors provides error handling for lexkit.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for users of a rule table or config file
//
// Usage:
//
//	// Create new error
//	err := errors.New("rule has no pattern")
//
//	// Wrap with context
//	if err := compile(rule); err != nil {
//	    return errors.Wrapf(err, "rule %d", i)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "set skip = true or give the rule a tag")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions and panics
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Common sentinel errors for use across lexkit.
// Use these with errors.Is() for type-safe error checking.
var (
	// ErrInvalidRule indicates a match rule could not be compiled
	ErrInvalidRule = New("invalid rule")

	// ErrInvalidConfig indicates a configuration value is out of range
	ErrInvalidConfig = New("invalid config")
)

// IsInvalidRuleError checks if an error is or wraps ErrInvalidRule
func IsInvalidRuleError(err error) bool {
	return err != nil && Is(err, ErrInvalidRule)
}

// IsInvalidConfigError checks if an error is or wraps ErrInvalidConfig
func IsInvalidConfigError(err error) bool {
	return err != nil && Is(err, ErrInvalidConfig)
}

// NewInvalidRuleError creates an invalid-rule error with a formatted message
func NewInvalidRuleError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRule, Newf(format, args...).Error())
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}
