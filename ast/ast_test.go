package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/jian/source"
)

func TestIDs(t *testing.T) {
	var ids IDs

	assert.Equal(t, 0, ids.Last())
	assert.Equal(t, 1, ids.Next())
	assert.Equal(t, 2, ids.Next())
	assert.Equal(t, 2, ids.Last())
}

func TestInspectOrder(t *testing.T) {
	at := func(pos int) source.Span {
		return source.Span{Start: source.Location{Pos: pos, Line: 1, Column: pos + 1}}
	}

	e := &App{
		Func: &Unresolved{Span: at(0)},
		Args: []Expr{
			&Cond{Span: at(2), If: &True{Span: at(5)}, Then: &Number{Span: at(12)}, Else: &Unit{Span: at(19)}},
			&Resolved{ID: 3, Span: at(23)},
		},
	}

	var kinds []ExprKind
	Inspect(e, func(n Expr) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	assert.Equal(t, []ExprKind{APPLICATION, UNRESOLVED, CONDITIONAL, TRUE, NUMBER, UNIT, RESOLVED}, kinds)
	assert.True(t, HasUnresolved(e))
	assert.Equal(t, 0, e.Position().Pos)

	e.Func = &Resolved{ID: 1}
	assert.False(t, HasUnresolved(e))
}

func TestProgramDefinitionsInDeclarationOrder(t *testing.T) {
	var p Program
	for _, id := range []int{4, 1, 9, 2} {
		p.Defs.Insert(id, &Definition{ID: id, Kind: VALUE})
	}

	var got []int
	for _, d := range p.Definitions() {
		got = append(got, d.ID)
	}

	assert.Equal(t, []int{1, 2, 4, 9}, got)
	assert.Equal(t, "value", VALUE.String())
	assert.Equal(t, "lambda", LAMBDA.String())
}
