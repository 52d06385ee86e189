package source

// None is returned by Peek and Advance at end of input.
const None = -1

// Cursor walks a text buffer for the parser. Failure is sticky: once set it
// stays set until Restore moves the cursor back to a saved location.
type Cursor struct {
	text []byte
	loc  Location

	failed           bool
	atom             bool
	newlineSensitive bool

	// furthest is the deepest location at which any failure was raised.
	furthest Location
}

func NewCursor(text []byte) *Cursor {
	return &Cursor{text: text, loc: Start(), furthest: Start()}
}

func (c *Cursor) Location() Location { return c.loc }

func (c *Cursor) Failed() bool { return c.failed }

// Fail marks the cursor as failed at its current location.
func (c *Cursor) Fail() { c.failAt(c.loc) }

func (c *Cursor) failAt(loc Location) {
	c.failed = true
	if loc.Pos > c.furthest.Pos {
		c.furthest = loc
	}
}

// Furthest returns the deepest location any failure was raised at. Unlike
// Location it survives Restore, so it points at the real culprit after
// backtracking has unwound the cursor.
func (c *Cursor) Furthest() Location { return c.furthest }

func (c *Cursor) Atom() bool { return c.atom }

func (c *Cursor) NewlineSensitive() bool { return c.newlineSensitive }

// SetAtom switches automatic whitespace skipping off (true) or on and
// returns the previous mode.
func (c *Cursor) SetAtom(on bool) bool {
	prev := c.atom
	c.atom = on

	return prev
}

// SetNewlineSensitive makes SkipSpaces stop before '\n' and returns the
// previous mode.
func (c *Cursor) SetNewlineSensitive(on bool) bool {
	prev := c.newlineSensitive
	c.newlineSensitive = on

	return prev
}

// Size returns the total input size.
func (c *Cursor) Size() int { return len(c.text) }

// Peek returns the byte at the current position, or None at end of input.
func (c *Cursor) Peek() int {
	if c.loc.Pos >= len(c.text) {
		return None
	}

	return int(c.text[c.loc.Pos])
}

// Advance consumes one byte and returns it, or None at end of input.
func (c *Cursor) Advance() int {
	ch := c.Peek()
	if ch == None {
		return None
	}

	c.loc = c.loc.next(byte(ch))

	return ch
}

// Eat advances and fails the cursor unless the consumed byte equals expected.
func (c *Cursor) Eat(expected byte) {
	loc := c.loc
	if c.Advance() != int(expected) {
		c.failAt(loc)
	}
}

// SkipSpaces consumes whitespace, stopping at '\n' in newline-sensitive mode.
func (c *Cursor) SkipSpaces() {
	for {
		ch := c.Peek()
		if ch == None || !isSpace(byte(ch)) || (c.newlineSensitive && ch == '\n') {
			return
		}

		c.Advance()
	}
}

// Save returns a checkpoint for Restore.
func (c *Cursor) Save() Location { return c.loc }

// Restore moves back to loc and clears the failure flag.
func (c *Cursor) Restore(loc Location) {
	c.loc = loc
	c.failed = false
}

func (c *Cursor) AtStart() bool { return c.loc.Pos == 0 }

func (c *Cursor) AtEnd() bool { return c.loc.Pos == len(c.text) }

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}
