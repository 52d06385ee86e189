package ast

// IDs issues identifiers for one parse/resolve session. Ids start at 1 and
// are never reused; an alternative that fails after drawing one leaves a gap.
type IDs struct {
	last int
}

// Next returns a fresh id.
func (g *IDs) Next() int {
	g.last++
	return g.last
}

// Last returns the most recently issued id, 0 if none.
func (g *IDs) Last() int {
	return g.last
}
