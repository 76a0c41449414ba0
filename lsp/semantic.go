package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/lexkit/lex"
)

// LSP semantic token type indices into DefaultLegend
const (
	TokenTypeKeyword   uint32 = 0
	TokenTypeVariable  uint32 = 1
	TokenTypeFunction  uint32 = 2
	TokenTypeNamespace uint32 = 3
	TokenTypeClass     uint32 = 4
	TokenTypeNumber    uint32 = 5
	TokenTypeOperator  uint32 = 6
	TokenTypeString    uint32 = 7
	TokenTypeComment   uint32 = 8
	TokenTypeType      uint32 = 9
)

// DefaultLegend is the legend the TokenType constants index into
func DefaultLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes: []string{
			"keyword",
			"variable",
			"function",
			"namespace",
			"class",
			"number",
			"operator",
			"string",
			"comment",
			"type",
		},
		TokenModifiers: []string{},
	}
}

// Classifier maps a tag to a legend index; ok is false for tokens that
// should not be highlighted
type Classifier[T lex.Tag] func(tag T) (tokenType uint32, ok bool)

// ClassifyByTag builds a Classifier from a fixed table
func ClassifyByTag[T lex.Tag](types map[T]uint32) Classifier[T] {
	return func(tag T) (uint32, bool) {
		tt, ok := types[tag]
		return tt, ok
	}
}

// EncodeSemanticTokens converts lexer tokens to the LSP semantic tokens
// format: 5-tuples (deltaLine, deltaStart, length, tokenType, tokenModifiers),
// each position relative to the previous token.
// Tokens must be in source order, as a Lexer produces them. A token spanning
// lines is highlighted up to the end of its first line.
func EncodeSemanticTokens[T lex.Tag](doc *Document, tokens []lex.Token[T], classify Classifier[T]) *protocol.SemanticTokens {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	var prevLine, prevChar protocol.UInteger

	for _, token := range tokens {
		tokenType, ok := classify(token.Tag)
		if !ok {
			continue
		}
		length := utf16Len(firstLine(token.Lexeme))
		if length == 0 {
			continue
		}

		start := doc.Position(token.Position)
		deltaLine := start.Line - prevLine
		deltaStart := start.Character
		if deltaLine == 0 {
			deltaStart = start.Character - prevChar
		}

		data = append(data,
			deltaLine,
			deltaStart,
			protocol.UInteger(length),
			tokenType,
			0, // no modifiers
		)

		prevLine = start.Line
		prevChar = start.Character
	}

	return &protocol.SemanticTokens{Data: data}
}
