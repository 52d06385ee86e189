package tokenizer

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/jian/source"
)

func TestTokenIterator(t *testing.T) {
	input := "f(x, y) = if x then 1_000 else y; g = (a) => a\n"
	tokenizer := NewTokenizer(input)

	expectedTypes := []TokenType{
		WORD, OPENED_PARENS, WORD, COMMA, WHITESPACE, WORD, CLOSED_PARENS, WHITESPACE, EQUAL, WHITESPACE,
		KEYWORD, WHITESPACE, WORD, WHITESPACE, KEYWORD, WHITESPACE, NUMBER, WHITESPACE, KEYWORD, WHITESPACE, WORD, SEMICOLON, WHITESPACE,
		WORD, WHITESPACE, EQUAL, WHITESPACE, OPENED_PARENS, WORD, CLOSED_PARENS, WHITESPACE, ARROW, WHITESPACE, WORD, NEWLINE, EOF,
	}

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorWithOptions(t *testing.T) {
	tokenizer := NewTokenizer("x = 1\ny = x", TokenizerOptions{SkipWhitespace: true})

	tokens, err := tokenizer.AllTokens()
	assert.NoError(t, err)

	var values []string
	for _, token := range tokens {
		values = append(values, token.Value)
	}

	assert.Equal(t, []string{"x", "=", "1", "\n", "y", "=", "x", ""}, values)
	assert.Equal(t, source.Location{Pos: 6, Line: 2, Column: 1}, tokens[4].Position)
}

func TestIteratorEarlyTermination(t *testing.T) {
	count := 0
	for _, err := range NewTokenizer("a b c d e f g").Tokens() {
		assert.NoError(t, err)

		count++
		if count >= 5 {
			break
		}
	}

	assert.Equal(t, 5, count)
}

func TestNumbers(t *testing.T) {
	tokens, err := NewTokenizer("1_0 2__0 3_").AllTokens()
	assert.NoError(t, err)

	var got []string
	for _, token := range tokens {
		got = append(got, token.Type.String()+":"+token.Value)
	}

	assert.Equal(t, []string{
		"NUMBER:1_0", "WHITESPACE: ",
		"NUMBER:2", "OTHER:_", "OTHER:_", "NUMBER:0", "WHITESPACE: ",
		"NUMBER:3", "OTHER:_", "EOF:",
	}, got)
}

func TestUnexpectedCharacter(t *testing.T) {
	tokens, err := NewTokenizer("a\x00b").AllTokens()
	assert.True(t, errors.Is(err, ErrUnexpectedCharacter))
	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, "b", tokens[1].Value)
}
