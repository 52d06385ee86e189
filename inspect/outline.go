package inspect

import (
	"fmt"
	"io"
	"slices"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/shibukawa/jian/ast"
	"github.com/shibukawa/jian/parser"
	"github.com/shibukawa/jian/source"
	"github.com/shibukawa/jian/tokenizer"
)

// Entry is one top-level definition as seen by the outline.
type Entry struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Params []string `json:"params,omitempty"`
	Line   int      `json:"line"`
	Column int      `json:"column"`
}

// OutlineOptions controls Outline.
type OutlineOptions struct {
	// Strict disables the token based fallback for sources the parser rejects.
	Strict bool
}

// OutlineResult is the summarized view of a program, suitable for JSON.
type OutlineResult struct {
	Entries []Entry  `json:"entries"`
	Notes   []string `json:"notes,omitempty"`
}

// Outline lists the definitions of a program. The full parser is tried first.
// When it fails and Strict is off, definition headers are recovered from the
// token stream so editors still get a partial outline.
func Outline(r io.Reader, opt OutlineOptions) (OutlineResult, error) {
	res := OutlineResult{Entries: []Entry{}}

	b, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}

	src := source.New("outline", b)

	program, err := parser.ParseProgram(src, &ast.IDs{})
	if err == nil {
		res.Entries = fromProgram(src, program)
		return res, nil
	}

	if opt.Strict {
		return res, err
	}

	res.Notes = append(res.Notes, "partially parsed due to syntax error")
	res.Entries = fromTokens(string(b))

	return res, nil
}

func fromProgram(src *source.Source, program *ast.Program) []Entry {
	defs := program.Definitions()
	entries := make([]Entry, 0, len(defs))

	for _, def := range defs {
		entry := Entry{
			Name:   src.Slice(def.Name),
			Kind:   def.Kind.String(),
			Line:   def.Name.Start.Line,
			Column: def.Name.Start.Column,
		}
		for _, param := range def.Params.Values() {
			entry.Params = append(entry.Params, src.Slice(param.Name))
		}

		entries = append(entries, entry)
	}

	return entries
}

func primitiveType(typeName string, types ...tokenizer.TokenType) pc.Parser[tokenizer.Token] {
	return func(pctx *pc.ParseContext[tokenizer.Token], tokens []pc.Token[tokenizer.Token]) (int, []pc.Token[tokenizer.Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			token := tokens[0]
			token.Type = typeName

			return 1, []pc.Token[tokenizer.Token]{token}, nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func tag(typeStr string, p ...pc.Parser[tokenizer.Token]) pc.Parser[tokenizer.Token] {
	return pc.Trans(pc.Seq(p...), func(pctx *pc.ParseContext[tokenizer.Token], src []pc.Token[tokenizer.Token]) ([]pc.Token[tokenizer.Token], error) {
		if len(src) > 0 {
			src[0].Type = typeStr
		}

		return src, nil
	})
}

var (
	word       = primitiveType("word", tokenizer.WORD)
	parenOpen  = primitiveType("parenOpen", tokenizer.OPENED_PARENS)
	parenClose = primitiveType("parenClose", tokenizer.CLOSED_PARENS)
	comma      = primitiveType("comma", tokenizer.COMMA)
	equal      = primitiveType("equal", tokenizer.EQUAL)

	functionHeader = tag(ast.FUNCTION.String(),
		word,
		parenOpen,
		pc.Optional(pc.Seq(word, pc.ZeroOrMore("params", pc.Seq(comma, word)))),
		parenClose,
	)

	valueHeader = tag(ast.VALUE.String(), word, equal)

	header = pc.Or(functionHeader, valueHeader)
)

func toParserTokens(tokens []tokenizer.Token) []pc.Token[tokenizer.Token] {
	results := make([]pc.Token[tokenizer.Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[tokenizer.Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Pos,
			},
			Val: token,
			Raw: token.Value,
		}
	}

	return results
}

// fromTokens scans statement starts at parenthesis depth zero and matches
// definition headers there. Characters the tokenizer rejects are skipped.
func fromTokens(text string) []Entry {
	var raw []tokenizer.Token

	for token, err := range tokenizer.NewTokenizer(text, tokenizer.TokenizerOptions{SkipWhitespace: true}).Tokens() {
		if err != nil {
			continue
		}

		raw = append(raw, token)
	}

	tokens := toParserTokens(raw)
	pctx := pc.NewParseContext[tokenizer.Token]()
	entries := []Entry{}
	depth := 0
	atStart := true

	for i := 0; i < len(tokens); i++ {
		if atStart && depth == 0 {
			if consumed, matched, err := header(pctx, tokens[i:]); err == nil {
				entries = append(entries, toEntry(matched))
				i += consumed - 1
				atStart = false

				continue
			}
		}

		atStart = false

		switch tokens[i].Val.Type {
		case tokenizer.OPENED_PARENS:
			depth++
		case tokenizer.CLOSED_PARENS:
			if depth > 0 {
				depth--
			}
		case tokenizer.SEMICOLON:
			atStart = true
		case tokenizer.NEWLINE:
			atStart = i == 0 || !continues(tokens[i-1].Val)
		}
	}

	return entries
}

// continues reports whether an expression must go on after prev, which makes
// the following line a continuation rather than a new definition.
func continues(prev tokenizer.Token) bool {
	switch prev.Type {
	case tokenizer.EQUAL, tokenizer.ARROW, tokenizer.COMMA, tokenizer.OPENED_PARENS:
		return true
	case tokenizer.KEYWORD:
		return prev.Value == "if" || prev.Value == "then" || prev.Value == "else"
	default:
		return false
	}
}

func toEntry(matched []pc.Token[tokenizer.Token]) Entry {
	first := matched[0]
	entry := Entry{
		Name:   first.Val.Value,
		Kind:   first.Type,
		Line:   first.Val.Position.Line,
		Column: first.Val.Position.Column,
	}

	if entry.Kind == ast.FUNCTION.String() {
		for _, token := range matched[1:] {
			if token.Type == "word" {
				entry.Params = append(entry.Params, token.Val.Value)
			}
		}
	}

	return entry
}
