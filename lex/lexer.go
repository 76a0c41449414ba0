package lex

import (
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/teranos/lexkit/errors"
	"github.com/teranos/lexkit/logger"
)

// Lexer scans a source string with an ordered rule list.
//
// At every scan position the first matching rule wins. Skip matches are
// consumed silently; input no rule recognizes is reported one character at
// a time and scanning continues after it, so a Lexer always terminates.
// A Lexer is single-pass and not safe for concurrent use.
type Lexer[T Tag] struct {
	rules   Rules[T]
	source  string
	offset  int
	tracker *PositionTracker
	log     *zap.SugaredLogger

	// Set only when some rule is a RunePattern
	runeRules  []RunePattern // parallel to rules, nil where not a RunePattern
	runes      []rune
	runeOffset int
}

// New creates a Lexer over source. rules is read, never modified.
// New panics if rules fails Validate; a broken rule table is a programming
// error, not an input error.
func New[T Tag](rules Rules[T], source string, opts ...Option) *Lexer[T] {
	if err := rules.Validate(); err != nil {
		panic(errors.AssertionFailedf("lex.New: %v", err))
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.ComponentLogger("lex")
	}
	if o.normalize {
		source = o.form.String(source)
	}

	l := &Lexer[T]{
		rules:   rules,
		source:  source,
		tracker: NewPositionTracker(),
		log:     o.logger,
	}
	l.runeRules = runePatterns(rules)
	if l.runeRules != nil {
		l.runes = []rune(source)
	}
	return l
}

// runePatterns returns the RunePattern of each rule, or nil if none has one
func runePatterns[T Tag](rules Rules[T]) []RunePattern {
	var out []RunePattern
	for i, m := range rules {
		rp, ok := m.Pattern.(RunePattern)
		if !ok {
			continue
		}
		if out == nil {
			out = make([]RunePattern, len(rules))
		}
		out[i] = rp
	}
	return out
}

// Next produces the next item: a token, a *ParserError for unmatched
// input, or io.EOF once the source is exhausted. Every call after the end
// returns io.EOF again.
func (l *Lexer[T]) Next() (Token[T], error) {
	for l.offset < len(l.source) {
		rest := l.source[l.offset:]
		pos := l.tracker.CurrentPosition()

		m, n := l.match(rest)
		if m == nil {
			_, size := utf8.DecodeRuneInString(rest)
			found := rest[:size]
			l.advance(found)
			l.log.Debugw("Unmatched input",
				logger.FieldFound, found,
				logger.FieldOffset, l.offset-size,
				logger.FieldLine, pos.Line,
				logger.FieldCharacter, pos.Character)
			return Token[T]{}, UnmatchedInput(found, pos)
		}

		lexeme := rest[:n]
		l.advance(lexeme)
		if m.Skip {
			continue
		}
		// Clone so tokens do not pin the source buffer
		return m.Build(strings.Clone(lexeme), pos.Line, pos.Character), nil
	}
	return Token[T]{}, io.EOF
}

// Tokenize drives the Lexer to the end of its source, collecting tokens and
// errors separately, each in source order.
func (l *Lexer[T]) Tokenize() ([]Token[T], []*ParserError) {
	var tokens []Token[T]
	var errs []*ParserError
	for {
		tok, err := l.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Next only fails with *ParserError before io.EOF
			errs = append(errs, err.(*ParserError))
			continue
		}
		tokens = append(tokens, tok)
	}
	l.log.Debugw("Tokenized source",
		logger.FieldSize, len(l.source),
		logger.FieldCount, len(tokens),
		logger.FieldErrorCount, len(errs))
	return tokens, errs
}

// All returns an iterator over the remaining items. An unmatched-input
// error is yielded with a zero token; iteration ends at end of input or
// when the loop body breaks.
func (l *Lexer[T]) All() iter.Seq2[Token[T], error] {
	return func(yield func(Token[T], error) bool) {
		for {
			tok, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

// Position returns the position of the next unread character
func (l *Lexer[T]) Position() Position {
	return l.tracker.CurrentPosition()
}

// Offset returns the byte offset of the next unread character
func (l *Lexer[T]) Offset() int {
	return l.offset
}

// match returns the first rule matching a non-empty prefix of rest and the
// byte length of that prefix.
func (l *Lexer[T]) match(rest string) (*TokenMatcher[T], int) {
	for i := range l.rules {
		// Empty matches cannot make progress
		if n := l.matchLen(i, rest); n > 0 {
			return &l.rules[i], n
		}
	}
	return nil, 0
}

// matchLen runs rule i at the current position and returns a byte length
func (l *Lexer[T]) matchLen(i int, rest string) int {
	if l.runeRules != nil && l.runeRules[i] != nil {
		n := l.runeRules[i].MatchRunesAt(l.runes, l.runeOffset)
		if n <= 0 {
			return n
		}
		return runePrefixLen(rest, n)
	}
	return l.rules[i].Pattern.MatchPrefix(rest)
}

func (l *Lexer[T]) advance(text string) {
	l.tracker.Advance(text)
	l.offset += len(text)
	if l.runes != nil {
		// []rune(source) decodes invalid bytes one rune each, as does this count
		l.runeOffset += utf8.RuneCountInString(text)
	}
}
