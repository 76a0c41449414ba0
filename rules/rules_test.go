package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/lexkit/errors"
	"github.com/teranos/lexkit/lex"
	"github.com/teranos/lexkit/logger"
)

const calcTable = `
[[rule]]
tag = "NUM"
pattern = '[0-9]+'

[[rule]]
tag = "PLUS"
pattern = "+"
literal = true

[[rule]]
pattern = '\s+'
skip = true
`

func TestDecodeAndCompile(t *testing.T) {
	table, err := Decode(calcTable)
	require.NoError(t, err)
	require.Len(t, table.Rules, 3)
	assert.Equal(t, Rule{Tag: "PLUS", Pattern: "+", Literal: true}, table.Rules[1])

	compiled, err := table.Compile()
	require.NoError(t, err)

	tokens, errs := lex.New(compiled, "12+3").Tokenize()
	assert.Empty(t, errs)
	assert.Equal(t, []lex.Token[Tag]{
		{Tag: "NUM", Lexeme: "12", Position: lex.Position{Line: 1, Character: 1}},
		{Tag: "PLUS", Lexeme: "+", Position: lex.Position{Line: 1, Character: 3}},
		{Tag: "NUM", Lexeme: "3", Position: lex.Position{Line: 1, Character: 4}},
	}, tokens)

	tokens, errs = lex.New(compiled, "12#3").Tokenize()
	assert.Len(t, tokens, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, "Unexpected # at char 3 on line 1. Expected lexing match", errs[0].Error())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(`
[[rule]]
tag = "NUM"
patern = '[0-9]+'
`)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRuleError(err))
	assert.Contains(t, err.Error(), "rule.patern")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode(`[[rule]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode rule table")
}

func TestRuleOptions(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		input string
		want  string
	}{
		{
			name:  "ignore case regexp",
			rule:  Rule{Tag: "KW", Pattern: "select", IgnoreCase: true},
			input: "SeLeCt x",
			want:  "SeLeCt",
		},
		{
			name:  "ignore case literal quotes metacharacters",
			rule:  Rule{Tag: "OP", Pattern: "a.b", Literal: true, IgnoreCase: true},
			input: "A.B",
			want:  "A.B",
		},
		{
			name:  "regexp2 lookahead",
			rule:  Rule{Tag: "CALL", Pattern: `[a-z]+(?=\()`, Engine: EngineRegexp2},
			input: "print(1)",
			want:  "print",
		},
		{
			name:  "regexp2 ignore case",
			rule:  Rule{Tag: "KW", Pattern: `from(?!\w)`, Engine: EngineRegexp2, IgnoreCase: true},
			input: "FROM t",
			want:  "FROM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.rule.Matcher()
			require.NoError(t, err)

			tokens, errs := lex.New(lex.Rules[Tag]{m}, tt.input).Tokenize()
			require.NotEmpty(t, tokens, "errors: %v", errs)
			assert.Equal(t, tt.want, tokens[0].Lexeme)
			assert.Equal(t, Tag(tt.rule.Tag), tokens[0].Tag)
		})
	}
}

func TestLiteralDoesNotInterpretMetacharacters(t *testing.T) {
	m, err := Rule{Tag: "DOT", Pattern: ".", Literal: true}.Matcher()
	require.NoError(t, err)

	tokens, errs := lex.New(lex.Rules[Tag]{m}, "x.").Tokenize()
	require.Len(t, errs, 1)
	assert.Equal(t, "x", errs[0].Found)
	require.Len(t, tokens, 1)
	assert.Equal(t, lex.Position{Line: 1, Character: 2}, tokens[0].Position)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		wantMsg string
	}{
		{
			name:    "empty pattern",
			rules:   []Rule{{Tag: "X"}},
			wantMsg: "rule 0: empty pattern",
		},
		{
			name:    "missing tag",
			rules:   []Rule{{Tag: "A", Pattern: "a"}, {Pattern: "b"}},
			wantMsg: `rule 1: pattern "b" has no tag`,
		},
		{
			name:    "unknown engine",
			rules:   []Rule{{Tag: "A", Pattern: "a", Engine: "pcre"}},
			wantMsg: `rule 0: unknown engine "pcre"`,
		},
		{
			name:    "literal with engine",
			rules:   []Rule{{Tag: "A", Pattern: "a", Literal: true, Engine: EngineRegexp2}},
			wantMsg: `rule 0: literal pattern "a" cannot set an engine`,
		},
		{
			name:    "bad regexp",
			rules:   []Rule{{Tag: "A", Pattern: "[a-"}},
			wantMsg: `rule 0: compile pattern "[a-"`,
		},
		{
			name:    "bad regexp2",
			rules:   []Rule{{Tag: "A", Pattern: "(a", Engine: EngineRegexp2}},
			wantMsg: `rule 0: compile pattern "(a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.rules)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidRuleError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSkipRuleNeedsNoTag(t *testing.T) {
	compiled, err := Compile([]Rule{{Pattern: `\s+`, Skip: true}})
	require.NoError(t, err)
	require.Len(t, compiled, 1)
	assert.True(t, compiled[0].Skip)
}

func TestCompileLogsEachRule(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger.SetLogger(zap.New(core).Sugar())
	defer logger.SetLogger(nil)

	_, err := Compile([]Rule{
		{Tag: "NUM", Pattern: "[0-9]+"},
		{Pattern: `\s+`, Skip: true},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("Compiled rule").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "rules", entries[0].LoggerName)
	assert.Equal(t, int64(0), entries[0].ContextMap()[logger.FieldRule])
	assert.Equal(t, "NUM", entries[0].ContextMap()[logger.FieldTag])
	assert.Equal(t, true, entries[1].ContextMap()["skip"])
}
