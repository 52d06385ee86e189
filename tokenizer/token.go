package tokenizer

import (
	"errors"

	"github.com/shibukawa/jian/source"
)

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
)

// TokenType represents the type of a token
type TokenType int

const (
	EOF TokenType = iota
	WHITESPACE    // spaces and tabs
	NEWLINE       // \n
	WORD          // lowercase identifiers
	KEYWORD       // if, then, else, true, false
	NUMBER        // digits with single underscores
	OPENED_PARENS // (
	CLOSED_PARENS // )
	COMMA         // ,
	SEMICOLON     // ;
	EQUAL         // =
	ARROW         // =>
	OTHER         // anything the grammar has no use for
)

var tokenTypeNames = map[TokenType]string{
	EOF:           "EOF",
	WHITESPACE:    "WHITESPACE",
	NEWLINE:       "NEWLINE",
	WORD:          "WORD",
	KEYWORD:       "KEYWORD",
	NUMBER:        "NUMBER",
	OPENED_PARENS: "OPENED_PARENS",
	CLOSED_PARENS: "CLOSED_PARENS",
	COMMA:         "COMMA",
	SEMICOLON:     "SEMICOLON",
	EQUAL:         "EQUAL",
	ARROW:         "ARROW",
	OTHER:         "OTHER",
}

// String returns the string representation of TokenType
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

var keywords = map[string]bool{
	"if":    true,
	"then":  true,
	"else":  true,
	"true":  true,
	"false": true,
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position source.Location
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
