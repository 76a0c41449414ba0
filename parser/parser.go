// Package parser provides the token-stream consumer that hand-written
// recursive-descent grammars are built on.
//
// A grammar is written once against Parser and runs unchanged over a
// materialized token slice (FromTokens) or a live Lexer (FromLexer):
//
//	func sum(p parser.Parser[Tag]) (int, error) {
//	    tok, err := p.MatchToken(NUM)
//	    ...
//	    for p.LA1(PLUS) {
//	        p.PopToken()
//	        ...
//	    }
//	}
package parser

import (
	"github.com/teranos/lexkit/lex"
)

// popExpectation is the expectation reported when PopToken hits the end
const popExpectation = "To Pop token"

// Parser is the consumption interface shared by every backend.
//
// Failed consumption never pushes a token back: MatchToken consumes the
// next token whether or not its tag matches, so a grammar that needs to
// try alternatives must look ahead with LA1 first.
type Parser[T lex.Tag] interface {
	// EOF reports whether no further token is available
	EOF() bool
	// LA1 reports whether the next token has tag. It never consumes, and a
	// pending lexer error counts as no match.
	LA1(tag T) bool
	// MatchToken consumes one token and returns it if its tag is tag,
	// otherwise an unexpected-token error wrapping it.
	MatchToken(tag T) (lex.Token[T], error)
	// PopToken consumes and returns the next token
	PopToken() (lex.Token[T], error)
}

// PopUntil discards tokens until the next one has tag, then consumes and
// returns that token. Any consumption failure, including reaching the end
// first, is returned immediately. Grammars use it to resynchronize after a
// parse error, e.g. skipping to the next statement terminator.
func PopUntil[T lex.Tag](p Parser[T], tag T) (lex.Token[T], error) {
	for !p.LA1(tag) {
		if _, err := p.PopToken(); err != nil {
			return lex.Token[T]{}, err
		}
	}
	return p.PopToken()
}
