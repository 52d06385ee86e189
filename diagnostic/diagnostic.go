// Package diagnostic renders parse and resolve failures as the single-line
// messages users see, optionally followed by the offending source line.
package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/jian/elab"
	"github.com/shibukawa/jian/parser"
	"github.com/shibukawa/jian/resolver"
	"github.com/shibukawa/jian/source"
)

// Phase names the compiler phase a diagnostic came from.
type Phase string

const (
	PhaseParse   Phase = "parse"
	PhaseResolve Phase = "resolve"
	PhaseElab    Phase = "elaborate"
)

// Diagnostic is a positioned failure.
type Diagnostic struct {
	Phase   Phase           `json:"phase"`
	File    string          `json:"file"`
	Loc     source.Location `json:"location"`
	Caret   source.Location `json:"caret"`
	Message string          `json:"message"`
	Line    string          `json:"source_line,omitempty"`

	err error
}

// From converts an error returned by the parser, resolver or elaborator.
// Other errors yield false.
func From(src *source.Source, err error) (*Diagnostic, bool) {
	var (
		perr *parser.ParseError
		rerr *resolver.Error
		merr *elab.MismatchError
		d    *Diagnostic
	)

	switch {
	case errors.As(err, &perr):
		d = &Diagnostic{Phase: PhaseParse, Loc: perr.Location, Caret: perr.Furthest, Message: fmt.Sprintf("parse error (pos=%d)", perr.Location.Pos)}
	case errors.As(err, &rerr):
		d = &Diagnostic{Phase: PhaseResolve, Loc: rerr.Span.Start, Caret: rerr.Span.Start, Message: fmt.Sprintf("resolve error: %s \"%s\"", rerr.Outcome, rerr.Name)}
	case errors.As(err, &merr):
		d = &Diagnostic{Phase: PhaseElab, Loc: merr.Location, Caret: merr.Location, Message: fmt.Sprintf("%s: expected %s, got %s", elab.ErrTypeMismatch, merr.Expected, merr.Got)}
	default:
		return nil, false
	}

	d.File = src.Name
	d.err = err

	if line, ok := src.Line(d.Caret.Line); ok {
		d.Line = line
	}

	return d, true
}

// Error returns "<file>:<line>:<column>: <message>".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Loc.Line, d.Loc.Column, d.Message)
}

func (d *Diagnostic) Unwrap() error {
	return d.err
}

// Detailed appends the source line and a caret under the column where the
// problem was found.
func (d *Diagnostic) Detailed() string {
	var builder strings.Builder

	builder.WriteString(d.Error())
	builder.WriteString("\n")

	if d.Line != "" {
		builder.WriteString("\n")
		builder.WriteString(d.Line)
		builder.WriteString("\n")

		if d.Caret.Column > 0 {
			builder.WriteString(strings.Repeat(" ", d.Caret.Column-1))
			builder.WriteString("^")
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Printer writes diagnostics, in red when color is enabled.
type Printer struct {
	w        io.Writer
	detailed bool
	red      *color.Color
	faint    *color.Color
}

// NewPrinter creates a printer. Color follows fatih/color's global setting,
// which honors NO_COLOR and terminal detection.
func NewPrinter(w io.Writer, detailed bool) *Printer {
	return &Printer{
		w:        w,
		detailed: detailed,
		red:      color.New(color.FgRed, color.Bold),
		faint:    color.New(color.Faint),
	}
}

// Print writes d.
func (p *Printer) Print(d *Diagnostic) {
	p.red.Fprintln(p.w, d.Error())

	if !p.detailed || d.Line == "" {
		return
	}

	fmt.Fprintln(p.w)
	p.faint.Fprintln(p.w, d.Line)

	if d.Caret.Column > 0 {
		p.red.Fprintln(p.w, strings.Repeat(" ", d.Caret.Column-1)+"^")
	}
}

// PrintError prints err as a diagnostic when it is one, or as a plain
// message otherwise.
func (p *Printer) PrintError(src *source.Source, err error) {
	if d, ok := From(src, err); ok {
		p.Print(d)
		return
	}

	p.red.Fprintln(p.w, err.Error())
}
