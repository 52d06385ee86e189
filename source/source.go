package source

import (
	"bytes"
	"fmt"
	"os"
)

// Source is a named, fully loaded text buffer. It outlives parsing so that
// identifier text can be recovered from spans during resolution and
// diagnostics.
type Source struct {
	Name string
	Text []byte
}

// New wraps text under the given display name.
func New(name string, text []byte) *Source {
	return &Source{Name: name, Text: text}
}

// FromString is a convenience for tests and tooling.
func FromString(name, text string) *Source {
	return New(name, []byte(text))
}

// Open reads the file at path.
func Open(path string) (*Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	return New(path, b), nil
}

// Size returns the total input size in bytes.
func (s *Source) Size() int {
	return len(s.Text)
}

// Slice returns the text covered by span. Out of range bounds are clamped.
func (s *Source) Slice(span Span) string {
	start := min(max(span.Start.Pos, 0), len(s.Text))
	end := min(max(span.End.Pos, start), len(s.Text))

	return string(s.Text[start:end])
}

// Line returns the content of the 1-based line n without its terminator.
func (s *Source) Line(n int) (string, bool) {
	if n < 1 {
		return "", false
	}

	rest := s.Text
	for i := 1; i < n; i++ {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			return "", false
		}

		rest = rest[idx+1:]
	}

	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}

	return string(bytes.TrimSuffix(rest, []byte{'\r'})), true
}

// Cursor returns a fresh cursor positioned at the start of the text.
func (s *Source) Cursor() *Cursor {
	return NewCursor(s.Text)
}
