package lsp

import (
	"strconv"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/lexkit/lex"
)

// DiagnosticSource is the source field of every diagnostic
const DiagnosticSource = "lexkit"

// Diagnostic converts a ParserError into an LSP error diagnostic.
// The range covers the found text; end-of-stream errors get an empty range
// at the end of the document.
func (d *Document) Diagnostic(pe *lex.ParserError) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := DiagnosticSource

	return protocol.Diagnostic{
		Range:    d.errorRange(pe),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: string(pe.Kind)},
		Source:   &source,
		Message:  pe.FormatError(lex.ErrorContextPlain),
	}
}

// Diagnostics converts a batch of errors. The result is never nil so that
// publishing it clears stale diagnostics.
func (d *Document) Diagnostics(errs []*lex.ParserError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))
	for _, pe := range errs {
		if pe == nil {
			continue
		}
		diagnostics = append(diagnostics, d.Diagnostic(pe))
	}
	return diagnostics
}

// PublishParams builds a textDocument/publishDiagnostics notification
func (d *Document) PublishParams(uri string, errs []*lex.ParserError) protocol.PublishDiagnosticsParams {
	return protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: d.Diagnostics(errs),
	}
}

func (d *Document) errorRange(pe *lex.ParserError) protocol.Range {
	if pe.Position == nil {
		end := d.End()
		return protocol.Range{Start: end, End: end}
	}

	start := d.Position(*pe.Position)
	return protocol.Range{
		Start: start,
		End:   advance(start, foundText(pe)),
	}
}

// foundText recovers the source text an error points at
func foundText(pe *lex.ParserError) string {
	switch pe.Kind {
	case lex.ErrorKindEndOfStream:
		return ""
	case lex.ErrorKindUnexpectedToken:
		if lexeme, ok := tokenLexeme(pe.Found); ok {
			return lexeme
		}
	}
	return pe.Found
}

// tokenLexeme extracts the quoted lexeme from a rendered Token, `TAG "text"`.
// The tag itself may contain spaces or quotes, so every candidate split is
// tried left to right.
func tokenLexeme(found string) (string, bool) {
	for i := 0; i < len(found); {
		j := strings.Index(found[i:], ` "`)
		if j < 0 {
			break
		}
		if lexeme, err := strconv.Unquote(found[i+j+1:]); err == nil {
			return lexeme, true
		}
		i += j + 1
	}
	return "", false
}
