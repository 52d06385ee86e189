// Package dump renders a compiled program for inspection.
package dump

import (
	"github.com/shibukawa/jian/ast"
	"github.com/shibukawa/jian/compiler"
	"github.com/shibukawa/jian/idtree"
	"github.com/shibukawa/jian/source"
)

// Param is a parameter with its id.
type Param struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Node is one expression of a definition body.
type Node struct {
	Kind string `json:"kind"`
	// Text is the source text of literals and references.
	Text string `json:"text,omitempty"`
	// Target is the binding id of a resolved reference.
	Target   int     `json:"target,omitempty"`
	Params   []Param `json:"params,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Definition is one top-level definition.
type Definition struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Params []Param `json:"params,omitempty"`
	Body   *Node   `json:"body"`
}

// Program is the whole dump.
type Program struct {
	Source      string       `json:"source"`
	Definitions []Definition `json:"definitions"`
}

// Build converts the unit's program into the dump model, definitions in id
// order.
func Build(unit *compiler.Unit) *Program {
	program := &Program{
		Source:      unit.Source.Name,
		Definitions: []Definition{},
	}

	for _, def := range unit.Program.Definitions() {
		program.Definitions = append(program.Definitions, Definition{
			ID:     def.ID,
			Name:   unit.Source.Slice(def.Name),
			Kind:   def.Kind.String(),
			Params: params(unit.Source, &def.Params),
			Body:   node(unit.Source, def.Body),
		})
	}

	return program
}

func params(src *source.Source, tree *idtree.Tree[*ast.Param]) []Param {
	values := tree.Values()
	if len(values) == 0 {
		return nil
	}

	result := make([]Param, 0, len(values))
	for _, p := range values {
		result = append(result, Param{ID: p.ID, Name: src.Slice(p.Name)})
	}

	return result
}

func node(src *source.Source, e ast.Expr) *Node {
	n := &Node{Kind: e.Kind().String()}

	switch e := e.(type) {
	case *ast.App:
		n.Children = append(n.Children, node(src, e.Func))
		for _, arg := range e.Args {
			n.Children = append(n.Children, node(src, arg))
		}
	case *ast.Cond:
		n.Children = []*Node{node(src, e.If), node(src, e.Then), node(src, e.Else)}
	case *ast.Lambda:
		n.Params = params(src, &e.Params)
		n.Children = []*Node{node(src, e.Body)}
	case *ast.Number:
		n.Text = src.Slice(e.Span)
	case *ast.Unit:
		n.Text = "()"
	case *ast.False:
		n.Text = "false"
	case *ast.True:
		n.Text = "true"
	case *ast.Unresolved:
		n.Text = src.Slice(e.Span)
	case *ast.Resolved:
		n.Text = src.Slice(e.Span)
		n.Target = e.ID
	}

	return n
}
