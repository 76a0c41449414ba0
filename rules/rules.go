// Package rules compiles declarative match-rule tables into lex.Rules.
//
// A table is TOML with one [[rule]] entry per matcher, in priority order:
//
//	[[rule]]
//	tag = "NUM"
//	pattern = '[0-9]+'
//
//	[[rule]]
//	tag = "PLUS"
//	pattern = "+"
//	literal = true
//
//	[[rule]]
//	pattern = '\s+'
//	skip = true
package rules

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dlclark/regexp2"

	"github.com/teranos/lexkit/errors"
	"github.com/teranos/lexkit/lex"
	"github.com/teranos/lexkit/logger"
)

// Tag is the tag type of tokens produced by compiled tables
type Tag string

func (t Tag) String() string {
	return string(t)
}

// Pattern engines
const (
	EngineRegexp  = "regexp"  // RE2, package regexp (default)
	EngineRegexp2 = "regexp2" // backtracking, github.com/dlclark/regexp2
)

// Rule is one declarative matcher
type Rule struct {
	Tag        string `toml:"tag" mapstructure:"tag"`
	Pattern    string `toml:"pattern" mapstructure:"pattern"`
	Literal    bool   `toml:"literal,omitempty" mapstructure:"literal"`
	Engine     string `toml:"engine,omitempty" mapstructure:"engine"`
	Skip       bool   `toml:"skip,omitempty" mapstructure:"skip"`
	IgnoreCase bool   `toml:"ignore_case,omitempty" mapstructure:"ignore_case"`
}

// Table is a decoded rule file
type Table struct {
	Rules []Rule `toml:"rule"`
}

// Decode parses a TOML rule table. Unknown keys are rejected so that a
// misspelled option does not silently change lexing.
func Decode(data string) (Table, error) {
	var t Table
	md, err := toml.Decode(data, &t)
	if err != nil {
		return Table{}, errors.Wrap(err, "decode rule table")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Table{}, errors.WithHint(
			errors.NewInvalidRuleError("unknown keys: %s", strings.Join(keys, ", ")),
			"valid keys are tag, pattern, literal, engine, skip, ignore_case",
		)
	}
	return t, nil
}

// Compile builds the table's matchers in order
func (t Table) Compile() (lex.Rules[Tag], error) {
	return Compile(t.Rules)
}

// Compile builds matchers for rules in order
func Compile(rules []Rule) (lex.Rules[Tag], error) {
	log := logger.ComponentLogger("rules")
	compiled := make(lex.Rules[Tag], 0, len(rules))
	for i, r := range rules {
		m, err := r.Matcher()
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d", i)
		}
		log.Debugw("Compiled rule",
			logger.FieldRule, i,
			logger.FieldTag, r.Tag,
			"skip", r.Skip)
		compiled = append(compiled, m)
	}
	return compiled, nil
}

// Validate checks a rule without compiling its pattern
func (r Rule) Validate() error {
	if r.Pattern == "" {
		return errors.NewInvalidRuleError("empty pattern")
	}
	if !r.Skip && r.Tag == "" {
		return errors.WithHint(
			errors.NewInvalidRuleError("pattern %q has no tag", r.Pattern),
			"set skip = true or give the rule a tag",
		)
	}
	switch r.Engine {
	case "", EngineRegexp, EngineRegexp2:
	default:
		return errors.WithHintf(
			errors.NewInvalidRuleError("unknown engine %q", r.Engine),
			"use %q or %q", EngineRegexp, EngineRegexp2,
		)
	}
	if r.Literal && r.Engine != "" {
		return errors.NewInvalidRuleError("literal pattern %q cannot set an engine", r.Pattern)
	}
	return nil
}

// Matcher compiles the rule into a lex.TokenMatcher
func (r Rule) Matcher() (lex.TokenMatcher[Tag], error) {
	if err := r.Validate(); err != nil {
		return lex.TokenMatcher[Tag]{}, err
	}

	pattern, err := r.compilePattern()
	if err != nil {
		return lex.TokenMatcher[Tag]{}, errors.Wrap(errors.ErrInvalidRule, err.Error())
	}

	if r.Skip {
		return lex.Skip[Tag](pattern), nil
	}
	return lex.Rule(Tag(r.Tag), pattern), nil
}

func (r Rule) compilePattern() (lex.Pattern, error) {
	switch {
	case r.Literal && r.IgnoreCase:
		return lex.Regexp(`(?i)` + regexp.QuoteMeta(r.Pattern))
	case r.Literal:
		return lex.Literal(r.Pattern), nil
	case r.Engine == EngineRegexp2:
		opts := regexp2.None
		if r.IgnoreCase {
			opts |= regexp2.IgnoreCase
		}
		return lex.Regexp2(r.Pattern, opts)
	case r.IgnoreCase:
		return lex.Regexp(`(?i)` + r.Pattern)
	default:
		return lex.Regexp(r.Pattern)
	}
}
