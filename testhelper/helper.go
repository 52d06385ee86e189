package testhelper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

var leadingSpaces = regexp.MustCompile(`^[ \t]+`)

// TrimIndent turns a raw string literal indented along with the test code
// into program text. The first line, which follows the opening backquote, is
// dropped and the indentation of the second line is removed from every line.
// The trailing line break is kept since definitions need a terminator, and a
// last line holding only indentation becomes empty.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := leadingSpaces.FindString(lines[1])

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	last := len(lines) - 1
	if strings.TrimLeft(lines[last], " \t") == "" {
		lines[last] = ""
	}

	return strings.Join(lines[1:], "\n")
}

// GetCaller returns "(file.go:line)" of the call site. Appended to a table
// case name it points a failing case back at its declaration.
func GetCaller(t *testing.T) string {
	t.Helper()

	return caller(2)
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}

	return fmt.Sprintf("(%s:%d)", filepath.Base(file), line)
}
