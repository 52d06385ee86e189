package parser

import (
	"github.com/shibukawa/jian/ast"
	"github.com/shibukawa/jian/idtree"
	cmn "github.com/shibukawa/jian/parser/parsercommon"
	"github.com/shibukawa/jian/source"
)

var (
	lparen = cmn.Word("(")
	rparen = cmn.Word(")")
	comma  = cmn.Word(",")
	assign = cmn.Word("=")
	arrow  = cmn.Word("=>")
)

type paramSet = idtree.Tree[*ast.Param]

// keywords are never names: not definitions, parameters or references.
var keywords = map[string]bool{
	"if":    true,
	"then":  true,
	"else":  true,
	"true":  true,
	"false": true,
}

// grammar builds parsers that write AST nodes into caller-owned slots. Every
// rule assembles its node in locals and stores it only after it matched, so
// a failed alternative leaves nothing behind.
type grammar struct {
	src *source.Source
	ids *ast.IDs
	// parens memoizes parenthesized expressions by start offset. A callee
	// without an argument list is parsed again as a plain parenthesized
	// expression at the same offset.
	parens map[int]parenResult
}

type parenResult struct {
	expr ast.Expr
	end  source.Location
	ok   bool
}

func newGrammar(src *source.Source, ids *ast.IDs) *grammar {
	return &grammar{src: src, ids: ids, parens: map[int]parenResult{}}
}

// name is an identifier that is not a keyword. Nothing is consumed on
// failure.
func (g *grammar) name(span *source.Span) cmn.Parser {
	return func(c *source.Cursor) {
		start := c.Location()

		var s source.Span

		cmn.Identifier(&s)(c)
		if c.Failed() {
			return
		}

		if keywords[g.src.Slice(s)] {
			c.Restore(start)
			c.Fail()

			return
		}

		*span = s
	}
}

// expr is tried in a fixed order: application before reference, so a name
// followed by an argument list is a call.
func (g *grammar) expr(out *ast.Expr) cmn.Parser {
	return func(c *source.Cursor) {
		cmn.Alternation(
			g.app(out),
			g.cond(out),
			g.lambda(out),
			g.number(out),
			g.literal("()", out, func(s source.Span) ast.Expr { return &ast.Unit{Span: s} }),
			g.literal("false", out, func(s source.Span) ast.Expr { return &ast.False{Span: s} }),
			g.literal("true", out, func(s source.Span) ast.Expr { return &ast.True{Span: s} }),
			g.ref(out),
			g.paren(out),
		)(c)
	}
}

func (g *grammar) app(out *ast.Expr) cmn.Parser {
	return func(c *source.Cursor) {
		var (
			fn   ast.Expr
			args []ast.Expr
		)

		cmn.Sequence(cmn.Alternation(g.ref(&fn), g.paren(&fn)), g.args(&args))(c)
		if c.Failed() {
			return
		}

		*out = &ast.App{Func: fn, Args: args}
	}
}

// args parses "(" ")" or "(" expr ("," expr)* ")".
func (g *grammar) args(out *[]ast.Expr) cmn.Parser {
	return func(c *source.Cursor) {
		var args []ast.Expr

		arg := func(c *source.Cursor) {
			var e ast.Expr

			g.expr(&e)(c)
			if !c.Failed() {
				args = append(args, e)
			}
		}

		empty := cmn.Sequence(lparen, rparen)
		some := func(c *source.Cursor) {
			args = args[:0]
			cmn.Sequence(lparen, arg, cmn.Many(cmn.Sequence(comma, arg)), rparen)(c)
		}

		cmn.Alternation(empty, some)(c)
		if c.Failed() {
			return
		}

		*out = args
	}
}

// params mirrors args with bare identifiers. Ids are drawn as each parameter
// is read.
func (g *grammar) params(out *paramSet) cmn.Parser {
	return func(c *source.Cursor) {
		var params paramSet

		param := func(c *source.Cursor) {
			var name source.Span

			g.name(&name)(c)
			if c.Failed() {
				return
			}

			id := g.ids.Next()
			params.Insert(id, &ast.Param{ID: id, Name: name})
		}

		empty := cmn.Sequence(lparen, rparen)
		some := func(c *source.Cursor) {
			params = paramSet{}
			cmn.Sequence(lparen, param, cmn.Many(cmn.Sequence(comma, param)), rparen)(c)
		}

		cmn.Alternation(empty, some)(c)
		if c.Failed() {
			return
		}

		*out = params
	}
}

func (g *grammar) cond(out *ast.Expr) cmn.Parser {
	return func(c *source.Cursor) {
		var (
			span                  source.Span
			cond, then, otherwise ast.Expr
		)

		cmn.Spanned(&span, cmn.Sequence(
			cmn.Word("if"), g.expr(&cond),
			cmn.Word("then"), g.expr(&then),
			cmn.Word("else"), g.expr(&otherwise),
		))(c)
		if c.Failed() {
			return
		}

		*out = &ast.Cond{Span: span, If: cond, Then: then, Else: otherwise}
	}
}

func (g *grammar) lambda(out *ast.Expr) cmn.Parser {
	return func(c *source.Cursor) {
		var (
			span   source.Span
			params paramSet
			body   ast.Expr
		)

		cmn.Spanned(&span, cmn.Sequence(g.params(&params), arrow, g.expr(&body)))(c)
		if c.Failed() {
			return
		}

		*out = &ast.Lambda{Span: span, Params: params, Body: body}
	}
}

// number is a digit followed by digits each optionally preceded by a single
// underscore, read as one token.
func (g *grammar) number(out *ast.Expr) cmn.Parser {
	digits := cmn.Atom(cmn.Sequence(cmn.Digit, cmn.Many(cmn.Sequence(cmn.Option(cmn.Word("_")), cmn.Digit))))

	return func(c *source.Cursor) {
		var span source.Span

		cmn.Spanned(&span, digits)(c)
		if c.Failed() {
			return
		}

		*out = &ast.Number{Span: span}
	}
}

func (g *grammar) literal(text string, out *ast.Expr, build func(source.Span) ast.Expr) cmn.Parser {
	return func(c *source.Cursor) {
		var span source.Span

		cmn.Spanned(&span, cmn.Word(text))(c)
		if c.Failed() {
			return
		}

		*out = build(span)
	}
}

func (g *grammar) ref(out *ast.Expr) cmn.Parser {
	return func(c *source.Cursor) {
		var span source.Span

		g.name(&span)(c)
		if c.Failed() {
			return
		}

		*out = &ast.Unresolved{Span: span}
	}
}

// paren parses "(" expr ")". The result at a given offset is reused on the
// next attempt there, including the ids its lambdas drew the first time.
func (g *grammar) paren(out *ast.Expr) cmn.Parser {
	return func(c *source.Cursor) {
		start := c.Location()

		if r, seen := g.parens[start.Pos]; seen {
			if !r.ok {
				c.Fail()
				return
			}

			c.Restore(r.end)
			*out = r.expr

			return
		}

		var e ast.Expr

		cmn.Sequence(lparen, g.expr(&e), rparen)(c)
		if c.Failed() {
			g.parens[start.Pos] = parenResult{}
			return
		}

		g.parens[start.Pos] = parenResult{expr: e, end: c.Location(), ok: true}
		*out = e
	}
}

// definition parses a function "name(params) [=] body" or a value
// "name = body", each closed by ";" or a newline. The definition id is drawn
// only once the whole definition matched.
func (g *grammar) definition(out *ast.Program) cmn.Parser {
	return func(c *source.Cursor) {
		var def *ast.Definition

		fn := func(c *source.Cursor) {
			var (
				name   source.Span
				params paramSet
				body   ast.Expr
			)

			cmn.Sequence(g.name(&name), g.params(&params), cmn.Option(assign), g.expr(&body))(c)
			if c.Failed() {
				return
			}

			cmn.End(c)
			if c.Failed() {
				return
			}

			def = &ast.Definition{Name: name, Kind: ast.FUNCTION, Params: params, Body: body}
		}

		val := func(c *source.Cursor) {
			var (
				name source.Span
				body ast.Expr
			)

			cmn.Sequence(g.name(&name), assign, g.expr(&body))(c)
			if c.Failed() {
				return
			}

			cmn.End(c)
			if c.Failed() {
				return
			}

			def = &ast.Definition{Name: name, Kind: ast.VALUE, Body: body}
		}

		cmn.Alternation(fn, val)(c)
		if c.Failed() {
			return
		}

		def.ID = g.ids.Next()
		out.Defs.Insert(def.ID, def)
	}
}

func (g *grammar) program(out *ast.Program) cmn.Parser {
	return cmn.Sequence(cmn.SOI, cmn.Many(g.definition(out)), cmn.EOI)
}
