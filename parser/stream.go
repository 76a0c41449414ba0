package parser

import (
	"io"

	"github.com/teranos/lexkit/lex"
)

// TokenSource produces tokens one at a time and returns io.EOF once
// exhausted. *lex.Lexer implements it.
type TokenSource[T lex.Tag] interface {
	Next() (lex.Token[T], error)
}

// StreamParser consumes tokens straight from a TokenSource, buffering a
// single item of lookahead. Source errors surface as the parser's next
// result, so grammars see bad characters and bad token shapes through the
// same calls.
type StreamParser[T lex.Tag] struct {
	src TokenSource[T]

	peeked bool
	tok    lex.Token[T]
	err    error
}

// FromLexer creates a Parser reading from src. The parser takes exclusive
// use of src.
func FromLexer[T lex.Tag](src TokenSource[T]) *StreamParser[T] {
	return &StreamParser[T]{src: src}
}

// fill buffers the next item. io.EOF stays buffered for good.
func (p *StreamParser[T]) fill() {
	if !p.peeked {
		p.tok, p.err = p.src.Next()
		p.peeked = true
	}
}

// next consumes the buffered item. io.EOF is returned, not consumed,
// at the end of the source.
func (p *StreamParser[T]) next() (lex.Token[T], error) {
	p.fill()
	if p.err == io.EOF {
		return lex.Token[T]{}, io.EOF
	}
	tok, err := p.tok, p.err
	p.peeked = false
	p.tok, p.err = lex.Token[T]{}, nil
	return tok, err
}

func (p *StreamParser[T]) EOF() bool {
	p.fill()
	return p.err == io.EOF
}

func (p *StreamParser[T]) LA1(tag T) bool {
	p.fill()
	return p.err == nil && p.tok.Tag == tag
}

func (p *StreamParser[T]) MatchToken(tag T) (lex.Token[T], error) {
	tok, err := p.next()
	switch {
	case err == io.EOF:
		return lex.Token[T]{}, lex.EndOfStream(tag.String())
	case err != nil:
		return lex.Token[T]{}, err
	case tok.Tag != tag:
		return lex.Token[T]{}, lex.UnexpectedToken(tag, tok)
	}
	return tok, nil
}

func (p *StreamParser[T]) PopToken() (lex.Token[T], error) {
	tok, err := p.next()
	if err == io.EOF {
		return lex.Token[T]{}, lex.EndOfStream(popExpectation)
	}
	return tok, err
}
