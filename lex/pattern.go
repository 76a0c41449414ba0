package lex

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/teranos/lexkit/errors"
)

// Pattern recognizes a prefix of the remaining input.
//
// MatchPrefix returns the byte length of the match anchored at the start of
// input, or -1 when the pattern does not match there. Patterns are
// immutable and safe to share between Lexers.
type Pattern interface {
	MatchPrefix(input string) int
	String() string
}

// RunePattern is implemented by patterns that match over a rune slice.
// A Lexer converts its source to runes once and calls MatchRunesAt instead
// of MatchPrefix, so such patterns do not re-decode the remaining input at
// every scan position.
//
// MatchRunesAt returns the length in runes of the match anchored at
// runes[start], or -1. Text before start is visible to lookbehind.
type RunePattern interface {
	Pattern
	MatchRunesAt(runes []rune, start int) int
}

type regexpPattern struct {
	expr string
	re   *regexp.Regexp
}

// Regexp compiles a RE2 expression (package regexp) anchored at the
// current scan position.
func Regexp(expr string) (Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, errors.Wrapf(err, "compile pattern %q", expr)
	}
	return &regexpPattern{expr: expr, re: re}, nil
}

// MustRegexp is like Regexp but panics if the expression does not compile.
// Intended for package-level rule tables.
func MustRegexp(expr string) Pattern {
	p, err := Regexp(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *regexpPattern) MatchPrefix(input string) int {
	loc := p.re.FindStringIndex(input)
	if loc == nil {
		return -1
	}
	return loc[1]
}

func (p *regexpPattern) String() string {
	return p.expr
}

type regexp2Pattern struct {
	expr string
	re   *regexp2.Regexp // anchored at the start of the input
	at   *regexp2.Regexp // anchored at the start position
}

// Regexp2 compiles a backtracking expression (github.com/dlclark/regexp2)
// anchored at the current scan position. Use it when a rule needs
// lookaround or backreferences, which RE2 does not support.
//
// The returned Pattern is a RunePattern. Called directly, MatchPrefix
// converts its whole input to runes on each call.
func Regexp2(expr string, opts regexp2.RegexOptions) (Pattern, error) {
	re, err := regexp2.Compile(`\A(?:`+expr+`)`, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "compile pattern %q", expr)
	}
	at, err := regexp2.Compile(`\G(?:`+expr+`)`, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "compile pattern %q", expr)
	}
	return &regexp2Pattern{expr: expr, re: re, at: at}, nil
}

// MustRegexp2 is like Regexp2 but panics if the expression does not compile.
func MustRegexp2(expr string, opts regexp2.RegexOptions) Pattern {
	p, err := Regexp2(expr, opts)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *regexp2Pattern) MatchPrefix(input string) int {
	m, err := p.re.FindStringMatch(input)
	if err != nil || m == nil || m.Index != 0 {
		// err is only a match timeout; treat it as no match
		return -1
	}
	return runePrefixLen(input, m.Length)
}

func (p *regexp2Pattern) MatchRunesAt(runes []rune, start int) int {
	m, err := p.at.FindRunesMatchStartingAt(runes, start)
	if err != nil || m == nil || m.Index != start {
		return -1
	}
	return m.Length
}

// runePrefixLen returns the byte length of the first n runes of s, decoding
// invalid bytes one at a time as the []rune conversion does.
func runePrefixLen(s string, n int) int {
	var size int
	for ; n > 0 && size < len(s); n-- {
		_, w := utf8.DecodeRuneInString(s[size:])
		size += w
	}
	return size
}

func (p *regexp2Pattern) String() string {
	return p.expr
}

type literalPattern string

// Literal matches the exact text s
func Literal(s string) Pattern {
	return literalPattern(s)
}

func (p literalPattern) MatchPrefix(input string) int {
	if strings.HasPrefix(input, string(p)) {
		return len(p)
	}
	return -1
}

func (p literalPattern) String() string {
	return regexp.QuoteMeta(string(p))
}
