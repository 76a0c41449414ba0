package lex

import "github.com/teranos/lexkit/errors"

// BuildFunc turns a matched lexeme and the position of its first character
// into a token.
type BuildFunc[T Tag] func(lexeme string, line, character int) Token[T]

// TokenMatcher pairs a pattern with the function that builds its token.
// Skip matchers (whitespace, comments) advance the position but never
// produce a token, and need no Build.
type TokenMatcher[T Tag] struct {
	Pattern Pattern
	Skip    bool
	Build   BuildFunc[T]
}

// Rules is an ordered matcher list. Earlier matchers win when several match
// at the same position. Rules are not modified by a Lexer and may be shared.
type Rules[T Tag] []TokenMatcher[T]

// Rule returns a matcher that emits tokens tagged tag
func Rule[T Tag](tag T, pattern Pattern) TokenMatcher[T] {
	return TokenMatcher[T]{
		Pattern: pattern,
		Build:   TagBuilder(tag),
	}
}

// Skip returns a matcher whose matches are consumed silently
func Skip[T Tag](pattern Pattern) TokenMatcher[T] {
	return TokenMatcher[T]{
		Pattern: pattern,
		Skip:    true,
	}
}

// TagBuilder returns a BuildFunc producing tokens with a fixed tag
func TagBuilder[T Tag](tag T) BuildFunc[T] {
	return func(lexeme string, line, character int) Token[T] {
		return Token[T]{
			Tag:      tag,
			Lexeme:   lexeme,
			Position: Position{Line: line, Character: character},
		}
	}
}

// Validate reports the first matcher that cannot be run: one without a
// pattern, or a non-skip matcher without a Build function.
func (r Rules[T]) Validate() error {
	for i, m := range r {
		if m.Pattern == nil {
			return errors.NewInvalidRuleError("matcher %d has no pattern", i)
		}
		if !m.Skip && m.Build == nil {
			return errors.WithHint(
				errors.NewInvalidRuleError("matcher %d (%s) has no build function", i, m.Pattern),
				"use lex.Rule to tag the match or lex.Skip to discard it",
			)
		}
	}
	return nil
}
