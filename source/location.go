package source

import "fmt"

// Location is a point in a source text. Pos is a 0-based byte offset,
// Line and Column are 1-based.
type Location struct {
	Pos    int
	Line   int
	Column int
}

// Start returns the location of the first byte of any text.
func Start() Location {
	return Location{Pos: 0, Line: 1, Column: 1}
}

// next returns the location after consuming c.
func (l Location) next(c byte) Location {
	if c == '\n' {
		return Location{Pos: l.Pos + 1, Line: l.Line + 1, Column: 1}
	}

	return Location{Pos: l.Pos + 1, Line: l.Line, Column: l.Column + 1}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Span covers the bytes [Start.Pos, End.Pos).
type Span struct {
	Start Location
	End   Location
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Pos - s.Start.Pos
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
