package lex

import (
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

type options struct {
	logger    *zap.SugaredLogger
	normalize bool
	form      norm.Form
}

// Option configures a Lexer
type Option func(*options)

// WithLogger routes lexer diagnostics to l instead of the "lex" component
// of the global logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithNormalization applies a Unicode normalization form to the source
// before scanning. The Lexer then scans its own normalized copy, and
// positions count runes of that copy.
func WithNormalization(form norm.Form) Option {
	return func(o *options) {
		o.normalize = true
		o.form = form
	}
}
