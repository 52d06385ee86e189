package elab

import "github.com/shopspring/decimal"

// TermKind identifies terms and types alike; types are terms of the
// universe.
type TermKind int

const (
	UNIVERSE TermKind = iota + 1
	FUNCTION_TYPE
	NUMBER_TYPE
	UNIT_TYPE
	BOOLEAN_TYPE
	FUNCTION
	NUMBER
	UNIT
	FALSE
	TRUE
)

func (k TermKind) String() string {
	switch k {
	case UNIVERSE:
		return "Type"
	case FUNCTION_TYPE:
		return "Function"
	case NUMBER_TYPE:
		return "Number"
	case UNIT_TYPE:
		return "Unit"
	case BOOLEAN_TYPE:
		return "Boolean"
	case FUNCTION:
		return "function"
	case NUMBER:
		return "number"
	case UNIT:
		return "()"
	case FALSE:
		return "false"
	case TRUE:
		return "true"
	default:
		return "unknown"
	}
}

// Term is an elaborated term or type. Value is set for NUMBER only.
type Term struct {
	Kind  TermKind
	Value decimal.Decimal
}

var (
	Universe     = Term{Kind: UNIVERSE}
	FunctionType = Term{Kind: FUNCTION_TYPE}
	NumberType   = Term{Kind: NUMBER_TYPE}
	UnitType     = Term{Kind: UNIT_TYPE}
	BooleanType  = Term{Kind: BOOLEAN_TYPE}
	UnitTerm     = Term{Kind: UNIT}
	FalseTerm    = Term{Kind: FALSE}
	TrueTerm     = Term{Kind: TRUE}
)

// NumberTerm wraps a literal value.
func NumberTerm(v decimal.Decimal) Term {
	return Term{Kind: NUMBER, Value: v}
}

// IsType reports whether t lives in the universe.
func (t Term) IsType() bool {
	switch t.Kind {
	case UNIVERSE, FUNCTION_TYPE, NUMBER_TYPE, UNIT_TYPE, BOOLEAN_TYPE:
		return true
	default:
		return false
	}
}

// Equal compares kinds and, for numbers, values.
func (t Term) Equal(other Term) bool {
	if t.Kind != other.Kind {
		return false
	}

	if t.Kind == NUMBER {
		return t.Value.Equal(other.Value)
	}

	return true
}

func (t Term) String() string {
	if t.Kind == NUMBER {
		return t.Value.String()
	}

	return t.Kind.String()
}
