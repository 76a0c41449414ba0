package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/lexkit/lex"
)

type tag string

func (t tag) String() string { return string(t) }

const (
	KW    tag = "KW"
	IDENT tag = "IDENT"
	EQ    tag = "EQ"
	NUM   tag = "NUM"
	PLUS  tag = "PLUS"
)

var testRules = lex.Rules[tag]{
	lex.Rule(KW, lex.MustRegexp(`let\b`)),
	lex.Rule(IDENT, lex.MustRegexp(`[a-z]+`)),
	lex.Rule(NUM, lex.MustRegexp(`[0-9]+`)),
	lex.Rule(EQ, lex.Literal("=")),
	lex.Rule(PLUS, lex.Literal("+")),
	lex.Skip[tag](lex.MustRegexp(`\s+`)),
}

func pos(line, char protocol.UInteger) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestDocument_LineCount(t *testing.T) {
	assert.Equal(t, 1, NewDocument("").LineCount())
	assert.Equal(t, 1, NewDocument("abc").LineCount())
	assert.Equal(t, 2, NewDocument("ab\ncd").LineCount())
	assert.Equal(t, 2, NewDocument("ab\n").LineCount())
	assert.Equal(t, "ab\n", NewDocument("ab\n").Text())
}

func TestDocument_Position(t *testing.T) {
	// U+00E9 is one UTF-16 unit, U+1F600 is a surrogate pair
	doc := NewDocument("ab\ncd\na\u00e9\U0001F600b")

	tests := []struct {
		name string
		in   lex.Position
		want protocol.Position
	}{
		{"origin", lex.Position{Line: 1, Character: 1}, pos(0, 0)},
		{"second line", lex.Position{Line: 2, Character: 2}, pos(1, 1)},
		{"after BMP rune", lex.Position{Line: 3, Character: 3}, pos(2, 2)},
		{"after surrogate pair", lex.Position{Line: 3, Character: 4}, pos(2, 4)},
		{"line end", lex.Position{Line: 1, Character: 3}, pos(0, 2)},
		{"past line end clamps", lex.Position{Line: 1, Character: 10}, pos(0, 2)},
		{"past last line clamps", lex.Position{Line: 9, Character: 1}, pos(2, 5)},
		{"zero value", lex.Position{}, pos(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.Position(tt.in))
		})
	}
}

func TestDocument_End(t *testing.T) {
	assert.Equal(t, pos(0, 0), NewDocument("").End())
	assert.Equal(t, pos(0, 3), NewDocument("1 +").End())
	assert.Equal(t, pos(1, 0), NewDocument("1 +\n").End())
}

func TestDiagnostic_UnmatchedInput(t *testing.T) {
	source := "12\n\U0001F600 3"
	_, errs := lex.New(testRules, source).Tokenize()
	require.Len(t, errs, 1)

	diag := NewDocument(source).Diagnostic(errs[0])

	assert.Equal(t, protocol.Range{Start: pos(1, 0), End: pos(1, 2)}, diag.Range)
	require.NotNil(t, diag.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	require.NotNil(t, diag.Source)
	assert.Equal(t, DiagnosticSource, *diag.Source)
	require.NotNil(t, diag.Code)
	assert.Equal(t, string(lex.ErrorKindUnmatchedInput), diag.Code.Value)
	assert.Equal(t, "Unexpected \U0001F600 at char 1 on line 2. Expected lexing match", diag.Message)
}

func TestDiagnostic_UnexpectedToken(t *testing.T) {
	doc := NewDocument("1 22 3")
	found := lex.Token[tag]{Tag: NUM, Lexeme: "22", Position: lex.Position{Line: 1, Character: 3}}

	diag := doc.Diagnostic(lex.UnexpectedToken(PLUS, found))

	assert.Equal(t, protocol.Range{Start: pos(0, 2), End: pos(0, 4)}, diag.Range)
	assert.Equal(t, string(lex.ErrorKindUnexpectedToken), diag.Code.Value)
	assert.Equal(t, `Unexpected NUM "22" at char 3 on line 1. Expected PLUS`, diag.Message)
}

func TestDiagnostic_EndOfStream(t *testing.T) {
	doc := NewDocument("1 +")

	diag := doc.Diagnostic(lex.EndOfStream("NUM"))

	assert.Equal(t, protocol.Range{Start: pos(0, 3), End: pos(0, 3)}, diag.Range)
	assert.Equal(t, string(lex.ErrorKindEndOfStream), diag.Code.Value)
	assert.Equal(t, "Unexpected End of Stream. Expected NUM", diag.Message)
}

func TestDiagnostic_UnexpectedInput(t *testing.T) {
	doc := NewDocument("x = + 3")

	diag := doc.Diagnostic(lex.UnexpectedInput("expression", "+ 3", lex.Position{Line: 1, Character: 5}))

	assert.Equal(t, protocol.Range{Start: pos(0, 4), End: pos(0, 7)}, diag.Range)
}

func TestDiagnostic_MultiLineFound(t *testing.T) {
	doc := NewDocument("a\nb")

	diag := doc.Diagnostic(lex.UnexpectedInput("x", "a\nb", lex.Position{Line: 1, Character: 1}))

	assert.Equal(t, protocol.Range{Start: pos(0, 0), End: pos(1, 1)}, diag.Range)
}

func TestDiagnostics(t *testing.T) {
	doc := NewDocument("# 1 #")
	_, errs := lex.New(testRules, doc.Text()).Tokenize()
	require.Len(t, errs, 2)

	diags := doc.Diagnostics(append(errs, nil))
	require.Len(t, diags, 2)
	assert.Equal(t, pos(0, 0), diags[0].Range.Start)
	assert.Equal(t, pos(0, 4), diags[1].Range.Start)

	empty := doc.Diagnostics(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPublishParams(t *testing.T) {
	doc := NewDocument("#")
	_, errs := lex.New(testRules, doc.Text()).Tokenize()

	params := doc.PublishParams("file:///calc.txt", errs)
	assert.Equal(t, protocol.DocumentUri("file:///calc.txt"), params.URI)
	assert.Len(t, params.Diagnostics, 1)
}

func TestTokenLexeme(t *testing.T) {
	tests := []struct {
		found  string
		want   string
		wantOK bool
	}{
		{`NUM "12"`, "12", true},
		{`STR "a \"b\" c"`, `a "b" c`, true},
		{`WEIRD "TAG" "x"`, "x", true},
		{`NL "\n"`, "\n", true},
		{"no quotes", "", false},
		{`NUM "unterminated`, "", false},
	}

	for _, tt := range tests {
		got, ok := tokenLexeme(tt.found)
		assert.Equal(t, tt.wantOK, ok, tt.found)
		assert.Equal(t, tt.want, got, tt.found)
	}
}

func TestEncodeSemanticTokens(t *testing.T) {
	source := "let x =\n  42 + y"
	doc := NewDocument(source)
	tokens, errs := lex.New(testRules, source).Tokenize()
	require.Empty(t, errs)

	classify := ClassifyByTag(map[tag]uint32{
		KW:    TokenTypeKeyword,
		IDENT: TokenTypeVariable,
		NUM:   TokenTypeNumber,
		PLUS:  TokenTypeOperator,
	})

	result := EncodeSemanticTokens(doc, tokens, classify)

	// EQ is not classified and leaves no entry
	assert.Equal(t, []protocol.UInteger{
		0, 0, 3, TokenTypeKeyword, 0,
		0, 4, 1, TokenTypeVariable, 0,
		1, 2, 2, TokenTypeNumber, 0,
		0, 3, 1, TokenTypeOperator, 0,
		0, 2, 1, TokenTypeVariable, 0,
	}, result.Data)
}

func TestEncodeSemanticTokens_UTF16(t *testing.T) {
	source := "\u00e9\U0001F600 ab"
	doc := NewDocument(source)
	tokens := []lex.Token[tag]{
		{Tag: IDENT, Lexeme: "ab", Position: lex.Position{Line: 1, Character: 4}},
	}

	result := EncodeSemanticTokens(doc, tokens, ClassifyByTag(map[tag]uint32{IDENT: TokenTypeVariable}))

	assert.Equal(t, []protocol.UInteger{0, 4, 2, TokenTypeVariable, 0}, result.Data)
}

func TestEncodeSemanticTokens_Empty(t *testing.T) {
	result := EncodeSemanticTokens(NewDocument(""), nil, ClassifyByTag(map[tag]uint32{}))
	require.NotNil(t, result)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}

func TestDefaultLegend(t *testing.T) {
	legend := DefaultLegend()
	require.Len(t, legend.TokenTypes, 10)
	assert.Equal(t, "keyword", legend.TokenTypes[TokenTypeKeyword])
	assert.Equal(t, "type", legend.TokenTypes[TokenTypeType])
	assert.Equal(t, "number", legend.TokenTypes[TokenTypeNumber])
}
