package lex

import "fmt"

// Position is a 1-based line/character coordinate in source text.
// Characters are counted in runes.
type Position struct {
	Line      int `json:"line"`      // 1-based line number
	Character int `json:"character"` // 1-based rune offset within line
}

// String renders the position for error messages
func (p Position) String() string {
	return fmt.Sprintf("char %d on line %d", p.Character, p.Line)
}

// PositionTracker maintains line/character state while a Lexer consumes text.
// It owns no text, only counts, and never moves backwards.
type PositionTracker struct {
	line      int
	character int
}

// NewPositionTracker creates a tracker at line 1, character 1
func NewPositionTracker() *PositionTracker {
	return &PositionTracker{
		line:      1,
		character: 1,
	}
}

// Advance updates position after consuming text.
// A newline increments the line and resets the character to 1.
func (pt *PositionTracker) Advance(text string) {
	for _, ch := range text {
		if ch == '\n' {
			pt.line++
			pt.character = 1
		} else {
			pt.character++
		}
	}
}

// CurrentPosition returns the current position snapshot
func (pt *PositionTracker) CurrentPosition() Position {
	return Position{
		Line:      pt.line,
		Character: pt.character,
	}
}
