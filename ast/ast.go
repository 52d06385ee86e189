// Package ast defines the syntax tree produced by the parser and rewritten in
// place by the resolver.
package ast

import (
	"github.com/shibukawa/jian/idtree"
	"github.com/shibukawa/jian/source"
)

// ExprKind identifies the active variant of an Expr.
type ExprKind int

const (
	APPLICATION ExprKind = iota + 1
	CONDITIONAL
	LAMBDA
	NUMBER
	UNIT
	FALSE
	TRUE
	UNRESOLVED
	RESOLVED
)

func (k ExprKind) String() string {
	switch k {
	case APPLICATION:
		return "application"
	case CONDITIONAL:
		return "conditional"
	case LAMBDA:
		return "lambda"
	case NUMBER:
		return "number"
	case UNIT:
		return "unit"
	case FALSE:
		return "false"
	case TRUE:
		return "true"
	case UNRESOLVED:
		return "unresolved"
	case RESOLVED:
		return "resolved"
	default:
		return "unknown"
	}
}

// Expr is one of *App, *Cond, *Lambda, *Number, *Unit, *False, *True,
// *Unresolved or *Resolved. The set is closed.
type Expr interface {
	Kind() ExprKind
	Position() source.Location
	expr()
}

// App applies Func to Args.
type App struct {
	Func Expr
	Args []Expr
}

// Cond is "if If then Then else Else".
type Cond struct {
	Span source.Span
	If   Expr
	Then Expr
	Else Expr
}

// Lambda is "(params) => Body".
type Lambda struct {
	Span   source.Span
	Params idtree.Tree[*Param]
	Body   Expr
}

// Number keeps the literal text span, underscores included.
type Number struct {
	Span source.Span
}

type Unit struct {
	Span source.Span
}

type False struct {
	Span source.Span
}

type True struct {
	Span source.Span
}

// Unresolved is a name reference before resolution.
type Unresolved struct {
	Span source.Span
}

// Resolved points at the Param or Definition whose id is ID.
type Resolved struct {
	ID   int
	Span source.Span
}

func (*App) Kind() ExprKind        { return APPLICATION }
func (*Cond) Kind() ExprKind       { return CONDITIONAL }
func (*Lambda) Kind() ExprKind     { return LAMBDA }
func (*Number) Kind() ExprKind     { return NUMBER }
func (*Unit) Kind() ExprKind       { return UNIT }
func (*False) Kind() ExprKind      { return FALSE }
func (*True) Kind() ExprKind       { return TRUE }
func (*Unresolved) Kind() ExprKind { return UNRESOLVED }
func (*Resolved) Kind() ExprKind   { return RESOLVED }

func (e *App) Position() source.Location        { return e.Func.Position() }
func (e *Cond) Position() source.Location       { return e.Span.Start }
func (e *Lambda) Position() source.Location     { return e.Span.Start }
func (e *Number) Position() source.Location     { return e.Span.Start }
func (e *Unit) Position() source.Location       { return e.Span.Start }
func (e *False) Position() source.Location      { return e.Span.Start }
func (e *True) Position() source.Location       { return e.Span.Start }
func (e *Unresolved) Position() source.Location { return e.Span.Start }
func (e *Resolved) Position() source.Location   { return e.Span.Start }

func (*App) expr()        {}
func (*Cond) expr()       {}
func (*Lambda) expr()     {}
func (*Number) expr()     {}
func (*Unit) expr()       {}
func (*False) expr()      {}
func (*True) expr()       {}
func (*Unresolved) expr() {}
func (*Resolved) expr()   {}

// Param is a name bound by a parameter list.
type Param struct {
	ID   int
	Name source.Span
}

// DefKind tells function definitions from value definitions.
type DefKind int

const (
	FUNCTION DefKind = iota + 1
	VALUE
)

func (k DefKind) String() string {
	switch k {
	case FUNCTION:
		return "function"
	case VALUE:
		return "value"
	default:
		return "unknown"
	}
}

// Definition is a top-level binding. Params is empty for values.
type Definition struct {
	ID     int
	Name   source.Span
	Kind   DefKind
	Params idtree.Tree[*Param]
	Body   Expr
}

// Program holds definitions keyed by id, which is declaration order.
type Program struct {
	Defs idtree.Tree[*Definition]
}

// Definitions returns the definitions in declaration order.
func (p *Program) Definitions() []*Definition {
	return p.Defs.Values()
}
