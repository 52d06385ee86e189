// Package elab is the bidirectional elaborator. Literal cases are complete;
// applications, conditionals, lambdas and references report
// ErrNotImplemented until the type system grows.
package elab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shibukawa/jian/ast"
	"github.com/shibukawa/jian/source"
)

// Sentinel errors
var (
	ErrNotImplemented = errors.New("not implemented")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrInvalidNumber  = errors.New("invalid number literal")

	// ErrUnresolved is the panic value for elaborating an unresolved tree.
	ErrUnresolved = errors.New("unresolved reference reached elaboration")
)

// MismatchError reports a term whose type differs from the expected one.
type MismatchError struct {
	Location source.Location
	Expected Term
	Got      Term
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s: expected %s, got %s", e.Location, ErrTypeMismatch, e.Expected, e.Got)
}

func (e *MismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// Elaborator turns resolved expressions into terms.
type Elaborator struct {
	src *source.Source
}

// New creates an elaborator reading literal text from src.
func New(src *source.Source) *Elaborator {
	return &Elaborator{src: src}
}

func notImplemented(e ast.Expr) error {
	return fmt.Errorf("%w: %s at %s", ErrNotImplemented, e.Kind(), e.Position())
}

// Check elaborates expr against ty.
func (el *Elaborator) Check(expr ast.Expr, ty Term) (Term, error) {
	switch e := expr.(type) {
	case *ast.Number, *ast.Unit, *ast.False, *ast.True:
		term, got, err := el.Infer(e)
		if err != nil {
			return Term{}, err
		}

		if !got.Equal(ty) {
			return Term{}, &MismatchError{Location: e.Position(), Expected: ty, Got: got}
		}

		return term, nil
	case *ast.App, *ast.Cond, *ast.Lambda, *ast.Resolved:
		return Term{}, notImplemented(e)
	case *ast.Unresolved:
		panic(fmt.Errorf("%w: at %s", ErrUnresolved, e.Span.Start))
	default:
		panic(fmt.Sprintf("elab: unexpected expression %T", e))
	}
}

// Infer elaborates expr and synthesizes its type.
func (el *Elaborator) Infer(expr ast.Expr) (Term, Term, error) {
	switch e := expr.(type) {
	case *ast.Number:
		text := strings.ReplaceAll(el.src.Slice(e.Span), "_", "")

		v, err := decimal.NewFromString(text)
		if err != nil {
			return Term{}, Term{}, fmt.Errorf("%w: %s: %w", ErrInvalidNumber, text, err)
		}

		return NumberTerm(v), NumberType, nil
	case *ast.Unit:
		return UnitTerm, UnitType, nil
	case *ast.False:
		return FalseTerm, BooleanType, nil
	case *ast.True:
		return TrueTerm, BooleanType, nil
	case *ast.App, *ast.Cond, *ast.Lambda, *ast.Resolved:
		return Term{}, Term{}, notImplemented(e)
	case *ast.Unresolved:
		panic(fmt.Errorf("%w: at %s", ErrUnresolved, e.Span.Start))
	default:
		panic(fmt.Sprintf("elab: unexpected expression %T", e))
	}
}

// InferDefinition infers a definition. A value takes its body's term and
// type; a function whose body elaborates is a function of type Function.
func (el *Elaborator) InferDefinition(def *ast.Definition) (Term, Term, error) {
	term, ty, err := el.Infer(def.Body)
	if err != nil || def.Kind != ast.FUNCTION {
		return term, ty, err
	}

	return Term{Kind: FUNCTION}, FunctionType, nil
}
