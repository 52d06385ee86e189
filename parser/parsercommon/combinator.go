// Package parsercommon holds the backtracking combinators the grammar is
// built from. A Parser mutates the cursor it is given and reports failure
// only through the cursor's sticky flag.
package parsercommon

import "github.com/shibukawa/jian/source"

// Parser consumes input from the cursor. On return c.Failed() tells whether
// it matched.
type Parser func(c *source.Cursor)

var (
	// SOI matches only at the start of input.
	SOI Parser = func(c *source.Cursor) {
		if !c.AtStart() {
			c.Fail()
		}
	}
	// EOI matches only at the end of input.
	EOI Parser = func(c *source.Cursor) {
		if !c.AtEnd() {
			c.Fail()
		}
	}
	// Digit matches one ASCII decimal digit.
	Digit = Range('0', '9')
	// End matches a statement terminator.
	End = NewlineSensitive(func(c *source.Cursor) {
		c.SkipSpaces()
		Alternation(Word(";"), Word("\n"))(c)
	})
)

// Word eats text byte by byte. It stops at the first mismatch without
// rewinding; wrap it in Alternation or Option when that matters.
func Word(text string) Parser {
	return func(c *source.Cursor) {
		for i := range len(text) {
			c.Eat(text[i])
			if c.Failed() {
				return
			}
		}
	}
}

// Range matches one byte in [lo, hi].
func Range(lo, hi byte) Parser {
	return func(c *source.Cursor) {
		ch := c.Peek()
		if ch == source.None || ch < int(lo) || ch > int(hi) {
			c.Fail()
			return
		}

		c.Eat(byte(ch))
	}
}

func isLower(ch int) bool {
	return ch >= 'a' && ch <= 'z'
}

// Identifier matches a lowercase letter followed by lowercase letters and
// underscores, storing the covered span into span. Nothing is consumed on
// failure.
func Identifier(span *source.Span) Parser {
	return func(c *source.Cursor) {
		start := c.Location()

		if !isLower(c.Peek()) {
			c.Fail()
			return
		}

		c.Advance()

		for {
			ch := c.Peek()
			if !isLower(ch) && ch != '_' {
				break
			}

			c.Advance()
		}

		*span = source.Span{Start: start, End: c.Location()}
	}
}

// Sequence runs parsers in order, skipping whitespace between them unless in
// atom mode. It stops at the first failure and leaves the cursor there.
func Sequence(parsers ...Parser) Parser {
	return func(c *source.Cursor) {
		for i, p := range parsers {
			p(c)
			if c.Failed() {
				return
			}

			if !c.Atom() && i < len(parsers)-1 {
				c.SkipSpaces()
			}
		}
	}
}

// Alternation tries parsers in order from the same starting point; the first
// success wins. When all fail the cursor is failed at the starting point.
func Alternation(parsers ...Parser) Parser {
	return func(c *source.Cursor) {
		saved := c.Save()

		for _, p := range parsers {
			p(c)
			if !c.Failed() {
				return
			}

			c.Restore(saved)
		}

		c.Fail()
	}
}

// Many runs p until it fails, skipping whitespace after each match unless in
// atom mode. It always succeeds, rewound to just after the last match. p must
// consume input whenever it succeeds.
func Many(p Parser) Parser {
	return func(c *source.Cursor) {
		for {
			saved := c.Save()

			p(c)
			if c.Failed() {
				c.Restore(saved)
				return
			}

			if !c.Atom() {
				c.SkipSpaces()
			}
		}
	}
}

// Option runs p at most once and always succeeds.
func Option(p Parser) Parser {
	return func(c *source.Cursor) {
		saved := c.Save()

		p(c)
		if c.Failed() {
			c.Restore(saved)
		}
	}
}

// Atom runs p with automatic whitespace skipping turned off.
func Atom(p Parser) Parser {
	return func(c *source.Cursor) {
		prev := c.SetAtom(true)
		p(c)
		c.SetAtom(prev)
	}
}

// NewlineSensitive runs p with whitespace skipping stopping before '\n'.
func NewlineSensitive(p Parser) Parser {
	return func(c *source.Cursor) {
		prev := c.SetNewlineSensitive(true)
		p(c)
		c.SetNewlineSensitive(prev)
	}
}

// Spanned runs p and stores the covered span on success.
func Spanned(span *source.Span, p Parser) Parser {
	return func(c *source.Cursor) {
		start := c.Location()

		p(c)
		if !c.Failed() {
			*span = source.Span{Start: start, End: c.Location()}
		}
	}
}
