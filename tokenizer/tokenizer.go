// Package tokenizer splits program text into tokens for tooling that must
// cope with sources the parser rejects.
package tokenizer

import (
	"fmt"
	"iter"

	"github.com/shibukawa/jian/source"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer is a tokenizer that returns an iterator
type Tokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string, options ...TokenizerOptions) *Tokenizer {
	var opts TokenizerOptions
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{input: input, options: opts}
}

// Tokens returns an iterator of tokens. Unexpected control characters are
// reported as errors and skipped.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		s := &scanner{input: t.input, line: 1, column: 1}

		for {
			token, err := s.next()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}

				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	var lastError error

	for token, err := range t.Tokens() {
		if err != nil {
			lastError = err
			continue
		}

		tokens = append(tokens, token)
	}

	return tokens, lastError
}

type scanner struct {
	input  string
	offset int
	line   int
	column int
}

func (s *scanner) peek(ahead int) byte {
	if s.offset+ahead >= len(s.input) {
		return 0
	}

	return s.input[s.offset+ahead]
}

func (s *scanner) advance() {
	if s.input[s.offset] == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}

	s.offset++
}

func (s *scanner) next() (Token, error) {
	start := s.offset
	startLine, startColumn := s.line, s.column

	emit := func(tokenType TokenType) Token {
		return Token{
			Type:     tokenType,
			Value:    s.input[start:s.offset],
			Position: source.Location{Pos: start, Line: startLine, Column: startColumn},
		}
	}

	if s.offset >= len(s.input) {
		return emit(EOF), nil
	}

	c := s.peek(0)

	switch {
	case isBlank(c):
		for isBlank(s.peek(0)) {
			s.advance()
		}

		return emit(WHITESPACE), nil
	case c == '\n':
		s.advance()
		return emit(NEWLINE), nil
	case c >= 'a' && c <= 'z':
		for isWordByte(s.peek(0)) {
			s.advance()
		}

		tok := emit(WORD)
		if keywords[tok.Value] {
			tok.Type = KEYWORD
		}

		return tok, nil
	case c >= '0' && c <= '9':
		s.advance()

		for {
			if isDigit(s.peek(0)) {
				s.advance()
			} else if s.peek(0) == '_' && isDigit(s.peek(1)) {
				s.advance()
				s.advance()
			} else {
				break
			}
		}

		return emit(NUMBER), nil
	case c == '=' && s.peek(1) == '>':
		s.advance()
		s.advance()

		return emit(ARROW), nil
	}

	s.advance()

	switch c {
	case '(':
		return emit(OPENED_PARENS), nil
	case ')':
		return emit(CLOSED_PARENS), nil
	case ',':
		return emit(COMMA), nil
	case ';':
		return emit(SEMICOLON), nil
	case '=':
		return emit(EQUAL), nil
	}

	if c < 0x20 || c == 0x7f {
		return Token{}, fmt.Errorf("%w: %q at %d:%d", ErrUnexpectedCharacter, c, startLine, startColumn)
	}

	return emit(OTHER), nil
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || c == '_'
}
