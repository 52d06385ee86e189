package parser

import (
	"fmt"

	"github.com/shibukawa/jian/ast"
	cmn "github.com/shibukawa/jian/parser/parsercommon"
	"github.com/shibukawa/jian/source"
)

// ParseError reports where parsing stopped. Location is where the cursor
// was left once every alternative had backtracked; Furthest is the deepest
// point any alternative reached and usually names the offending token.
type ParseError struct {
	Name     string
	Location source.Location
	Furthest source.Location
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: parse error (pos=%d)", e.Name, e.Location.Line, e.Location.Column, e.Location.Pos)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func newParseError(src *source.Source, c *source.Cursor) *ParseError {
	return &ParseError{Name: src.Name, Location: c.Location(), Furthest: c.Furthest()}
}

// ParseProgram parses a whole source as a sequence of definitions. ids
// supplies parameter and definition ids for this session.
func ParseProgram(src *source.Source, ids *ast.IDs) (*ast.Program, error) {
	g := newGrammar(src, ids)
	program := &ast.Program{}

	c := src.Cursor()

	g.program(program)(c)
	if c.Failed() {
		return nil, newParseError(src, c)
	}

	return program, nil
}

// ParseExpression parses a source holding exactly one expression, with
// optional surrounding whitespace.
func ParseExpression(src *source.Source, ids *ast.IDs) (ast.Expr, error) {
	g := newGrammar(src, ids)

	var expr ast.Expr

	c := src.Cursor()

	cmn.Sequence(cmn.SOI, g.expr(&expr), cmn.EOI)(c)
	if c.Failed() {
		return nil, newParseError(src, c)
	}

	return expr, nil
}
