package lex

type calcTag int

const (
	tagNum calcTag = iota
	tagPlus
	tagIdent
	tagWS
	tagEq
	tagEqEq
	tagIf
)

func (t calcTag) String() string {
	switch t {
	case tagNum:
		return "NUM"
	case tagPlus:
		return "PLUS"
	case tagIdent:
		return "IDENT"
	case tagWS:
		return "WS"
	case tagEq:
		return "EQ"
	case tagEqEq:
		return "EQEQ"
	case tagIf:
		return "IF"
	default:
		return "UNKNOWN"
	}
}

// calcRules is the NUM/PLUS/WS(skip) table used across tests
var calcRules = Rules[calcTag]{
	Rule(tagNum, MustRegexp(`[0-9]+`)),
	Rule(tagPlus, Literal("+")),
	Skip[calcTag](MustRegexp(`\s+`)),
}

func tok(tag calcTag, lexeme string, line, character int) Token[calcTag] {
	return Token[calcTag]{Tag: tag, Lexeme: lexeme, Position: Position{Line: line, Character: character}}
}
