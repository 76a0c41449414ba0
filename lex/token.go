package lex

import "fmt"

// Tag identifies a token's lexical category. Tags are compared with ==,
// copied by value and rendered into error messages.
type Tag interface {
	comparable
	fmt.Stringer
}

// Token is a tagged lexeme with the position of its first character
type Token[T Tag] struct {
	Tag      T        `json:"tag"`
	Lexeme   string   `json:"lexeme"`
	Position Position `json:"position"`
}

// String renders the token as its tag followed by the quoted lexeme
func (t Token[T]) String() string {
	return fmt.Sprintf("%s %q", t.Tag, t.Lexeme)
}
