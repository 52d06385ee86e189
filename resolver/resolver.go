// Package resolver rewrites name references into the ids of the parameters
// and definitions they denote. It stops at the first undefined or duplicate
// name.
package resolver

import (
	"fmt"
	"log/slog"

	"github.com/shibukawa/jian/ast"
	"github.com/shibukawa/jian/env"
	"github.com/shibukawa/jian/idtree"
	"github.com/shibukawa/jian/source"
)

// Options configures a Resolver.
type Options struct {
	ScopeMode ScopeMode
	Logger    *slog.Logger
}

// Resolver owns the tree it resolves for the duration of a pass.
type Resolver struct {
	src    *source.Source
	mode   ScopeMode
	logger *slog.Logger

	globals *env.Environment
	locals  *scope
	err     *Error
}

// New creates a resolver reading identifier text from src.
func New(src *source.Source, options ...Options) *Resolver {
	var opts Options
	if len(options) > 0 {
		opts = options[0]
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Resolver{
		src:     src,
		mode:    opts.ScopeMode,
		logger:  logger,
		globals: env.New(),
	}
}

// Resolve resolves every reference of program in place. The returned error
// is nil or a *Error.
func Resolve(src *source.Source, program *ast.Program, options ...Options) error {
	return New(src, options...).Program(program)
}

// Outcome returns the state reached so far.
func (r *Resolver) Outcome() Outcome {
	if r.err == nil {
		return OK
	}

	return r.err.Outcome
}

func (r *Resolver) fail(outcome Outcome, span source.Span) {
	r.err = &Error{
		Source:  r.src.Name,
		Outcome: outcome,
		Span:    span,
		Name:    r.src.Slice(span),
	}
	r.logger.Debug("resolution failed", "outcome", outcome.String(), "name", r.err.Name, "line", span.Start.Line, "column", span.Start.Column)
}

// Program declares all globals first so bodies may refer to definitions in
// any order, then resolves each body.
func (r *Resolver) Program(program *ast.Program) error {
	defs := program.Definitions()

	for _, def := range defs {
		if r.globals.Set(r.src.Slice(def.Name), def.ID) {
			r.fail(Duplicate, def.Name)
			return r.err
		}
	}

	for _, def := range defs {
		r.definition(def)
		if r.err != nil {
			return r.err
		}
	}

	return nil
}

func (r *Resolver) definition(def *ast.Definition) {
	params, ok := r.params(&def.Params)
	if !ok {
		return
	}

	locals := env.New()
	env.Merge(locals, params)

	r.locals = &scope{names: locals}
	defer func() { r.locals = nil }()

	r.logger.Debug("resolving definition", "name", r.src.Slice(def.Name), "id", def.ID, "params", def.Params.Len())
	r.expr(&def.Body)
}

// params collects a parameter list into a fresh environment, failing on a
// repeated name.
func (r *Resolver) params(ps *idtree.Tree[*ast.Param]) (*env.Environment, bool) {
	names := env.New()

	for _, p := range ps.All() {
		if names.Set(r.src.Slice(p.Name), p.ID) {
			r.fail(Duplicate, p.Name)
			return nil, false
		}
	}

	return names, true
}

func (r *Resolver) lambda(lam *ast.Lambda) {
	params, ok := r.params(&lam.Params)
	if !ok {
		return
	}

	if r.mode == ScopeFlat {
		for _, p := range lam.Params.All() {
			if _, exists := r.locals.names.Get(r.src.Slice(p.Name)); exists {
				r.fail(Duplicate, p.Name)
				return
			}
		}

		env.Merge(r.locals.names, params)
		r.expr(&lam.Body)

		return
	}

	locals := env.New()
	env.Merge(locals, params)

	r.locals = &scope{names: locals, parent: r.locals}
	r.expr(&lam.Body)
	r.locals = r.locals.parent
}

func (r *Resolver) lookup(name string) (int, bool) {
	if id, ok := r.locals.lookup(name); ok {
		return id, true
	}

	return r.globals.Get(name)
}

// expr resolves the expression stored in slot, replacing references.
func (r *Resolver) expr(slot *ast.Expr) {
	if r.err != nil {
		return
	}

	switch e := (*slot).(type) {
	case *ast.App:
		r.expr(&e.Func)

		for i := range e.Args {
			r.expr(&e.Args[i])
		}
	case *ast.Cond:
		r.expr(&e.If)
		r.expr(&e.Then)
		r.expr(&e.Else)
	case *ast.Lambda:
		r.lambda(e)
	case *ast.Number, *ast.Unit, *ast.False, *ast.True:
	case *ast.Unresolved:
		name := r.src.Slice(e.Span)

		id, ok := r.lookup(name)
		if !ok {
			r.fail(NotFound, e.Span)
			return
		}

		*slot = &ast.Resolved{ID: id, Span: e.Span}
	case *ast.Resolved:
		panic(fmt.Errorf("%w: id %d at %s", ErrAlreadyResolved, e.ID, e.Span.Start))
	default:
		panic(fmt.Sprintf("resolver: unexpected expression %T", e))
	}
}
