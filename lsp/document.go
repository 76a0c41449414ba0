// Package lsp converts lexer output into Language Server Protocol values:
// diagnostics for ParserErrors and semantic tokens for highlighting.
//
// lex positions are 1-based with columns counted in runes. LSP positions are
// 0-based with columns counted in UTF-16 code units. Document maps between
// the two for one source text, which must be the text the Lexer scanned
// (after normalization, if any).
package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/lexkit/lex"
)

// Document indexes the line starts of a source text
type Document struct {
	text  string
	lines []int // byte offset of each line start
}

// NewDocument builds the line index for text
func NewDocument(text string) *Document {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Document{text: text, lines: lines}
}

// Text returns the indexed source
func (d *Document) Text() string {
	return d.text
}

// LineCount returns the number of lines; an empty text has one
func (d *Document) LineCount() int {
	return len(d.lines)
}

// line returns the content of 0-based line l without its newline
func (d *Document) line(l int) string {
	start := d.lines[l]
	end := len(d.text)
	if l+1 < len(d.lines) {
		end = d.lines[l+1] - 1
	}
	return d.text[start:end]
}

// Position converts a lex position to an LSP position.
// Positions past the end of a line clamp to the line end; positions past the
// last line clamp to the end of the document.
func (d *Document) Position(pos lex.Position) protocol.Position {
	l := pos.Line - 1
	if l < 0 {
		return protocol.Position{}
	}
	if l >= len(d.lines) {
		return d.End()
	}

	var units int
	remaining := pos.Character - 1
	for _, r := range d.line(l) {
		if remaining <= 0 {
			break
		}
		units += utf16.RuneLen(r)
		remaining--
	}

	return protocol.Position{
		Line:      protocol.UInteger(l),
		Character: protocol.UInteger(units),
	}
}

// End returns the position just past the last character
func (d *Document) End() protocol.Position {
	last := len(d.lines) - 1
	return protocol.Position{
		Line:      protocol.UInteger(last),
		Character: protocol.UInteger(utf16Len(d.line(last))),
	}
}

// advance returns the position reached after text starting at start
func advance(start protocol.Position, text string) protocol.Position {
	end := start
	for _, r := range text {
		if r == '\n' {
			end.Line++
			end.Character = 0
			continue
		}
		end.Character += protocol.UInteger(utf16.RuneLen(r))
	}
	return end
}

func utf16Len(s string) int {
	var n int
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// firstLine returns s up to its first newline
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
