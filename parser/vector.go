package parser

import (
	"github.com/teranos/lexkit/lex"
)

// VectorParser consumes a fully tokenized document
type VectorParser[T lex.Tag] struct {
	// reversed so the next token is popped from the end
	tokens []lex.Token[T]
}

// FromTokens creates a Parser over tokens, typically the first result of
// (*lex.Lexer).Tokenize. Lexing errors are the caller's to report; the
// parser only sees tokens. tokens is copied and left untouched.
func FromTokens[T lex.Tag](tokens []lex.Token[T]) *VectorParser[T] {
	reversed := make([]lex.Token[T], len(tokens))
	for i, tok := range tokens {
		reversed[len(tokens)-1-i] = tok
	}
	return &VectorParser[T]{tokens: reversed}
}

// Len returns the number of tokens not yet consumed
func (p *VectorParser[T]) Len() int {
	return len(p.tokens)
}

func (p *VectorParser[T]) EOF() bool {
	return len(p.tokens) == 0
}

func (p *VectorParser[T]) LA1(tag T) bool {
	return len(p.tokens) > 0 && p.tokens[len(p.tokens)-1].Tag == tag
}

func (p *VectorParser[T]) MatchToken(tag T) (lex.Token[T], error) {
	tok, ok := p.pop()
	if !ok {
		return lex.Token[T]{}, lex.EndOfStream(tag.String())
	}
	if tok.Tag != tag {
		return lex.Token[T]{}, lex.UnexpectedToken(tag, tok)
	}
	return tok, nil
}

func (p *VectorParser[T]) PopToken() (lex.Token[T], error) {
	tok, ok := p.pop()
	if !ok {
		return lex.Token[T]{}, lex.EndOfStream(popExpectation)
	}
	return tok, nil
}

func (p *VectorParser[T]) pop() (lex.Token[T], bool) {
	n := len(p.tokens)
	if n == 0 {
		return lex.Token[T]{}, false
	}
	tok := p.tokens[n-1]
	p.tokens = p.tokens[:n-1]
	return tok, true
}
