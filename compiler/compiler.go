// Package compiler drives a compilation session: it parses a source into a
// program, resolves every name and hands the result to an optional backend.
package compiler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shibukawa/jian"
	"github.com/shibukawa/jian/ast"
	"github.com/shibukawa/jian/markdownparser"
	"github.com/shibukawa/jian/parser"
	"github.com/shibukawa/jian/resolver"
	"github.com/shibukawa/jian/source"
)

// Unit is the result of one compilation session.
type Unit struct {
	Session uuid.UUID
	Source  *source.Source
	Program *ast.Program
	IDs     *ast.IDs
	// Document is set when the source was extracted from Markdown.
	Document *markdownparser.Document
}

// Options configures Compile.
type Options struct {
	ScopeMode resolver.ScopeMode
	Logger    *slog.Logger
}

// OptionsFromConfig maps the configuration onto compile options.
func OptionsFromConfig(cfg *jian.Config, logger *slog.Logger) (Options, error) {
	mode, err := resolver.ParseScopeMode(cfg.Resolver.LambdaScope)
	if err != nil {
		return Options{}, err
	}

	return Options{ScopeMode: mode, Logger: logger}, nil
}

// Phase is one stage of the session pipeline.
type Phase interface {
	Process(ctx context.Context, unit *Unit) error
	Name() string
}

type parsePhase struct{}

func (parsePhase) Name() string { return "parse" }

func (parsePhase) Process(ctx context.Context, unit *Unit) error {
	program, err := parser.ParseProgram(unit.Source, unit.IDs)
	if err != nil {
		return err
	}

	unit.Program = program

	return nil
}

type resolvePhase struct {
	options resolver.Options
}

func (resolvePhase) Name() string { return "resolve" }

func (p resolvePhase) Process(ctx context.Context, unit *Unit) error {
	return resolver.Resolve(unit.Source, unit.Program, p.options)
}

// Compile parses and resolves src. Errors are returned unwrapped so that
// diagnostic.From recognizes them: *parser.ParseError or *resolver.Error,
// or the context error when ctx is done between phases.
func Compile(ctx context.Context, src *source.Source, options ...Options) (*Unit, error) {
	var opts Options
	if len(options) > 0 {
		opts = options[0]
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	unit := &Unit{
		Session: uuid.New(),
		Source:  src,
		IDs:     &ast.IDs{},
	}

	logger = logger.With("session", unit.Session.String(), "source", src.Name)

	phases := []Phase{
		parsePhase{},
		resolvePhase{options: resolver.Options{ScopeMode: opts.ScopeMode, Logger: logger}},
	}

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		err := phase.Process(ctx, unit)

		logger.DebugContext(ctx, "phase finished", "phase", phase.Name(), "elapsed", time.Since(start), "ok", err == nil)

		if err != nil {
			logger.InfoContext(ctx, "compilation failed", "phase", phase.Name(), "error", err.Error())
			return nil, err
		}
	}

	logger.DebugContext(ctx, "compiled", "definitions", unit.Program.Defs.Len(), "last_id", unit.IDs.Last())

	return unit, nil
}

// Definition returns the top-level definition named name.
func (u *Unit) Definition(name string) (*ast.Definition, bool) {
	for _, def := range u.Program.Definitions() {
		if u.Source.Slice(def.Name) == name {
			return def, true
		}
	}

	return nil, false
}

// Name returns the identifier text of def.
func (u *Unit) Name(def *ast.Definition) string {
	return u.Source.Slice(def.Name)
}
