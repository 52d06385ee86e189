package markdownparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseKeepsPositions(t *testing.T) {
	input := strings.Join([]string{
		"---",
		"author: someone",
		"---",
		"",
		"# Even and odd",
		"",
		"Some prose with f(x) = y in it.",
		"",
		"```jian",
		"even(n) = n",
		"```",
		"",
		"```go",
		"func main() {}",
		"```",
		"",
		"```jian title=second",
		"odd(n) = n",
		"```",
		"",
	}, "\n")

	doc, err := Parse([]byte(input))
	assert.NoError(t, err)

	assert.Equal(t, map[string]any{"author": "someone"}, doc.Metadata)
	assert.Equal(t, "Even and odd", doc.Title)
	assert.Equal(t, []Block{
		{StartLine: 10, Text: "even(n) = n\n"},
		{StartLine: 18, Text: "odd(n) = n\n"},
	}, doc.Blocks)

	assert.Equal(t, len(input), len(doc.Program))

	lines := strings.Split(string(doc.Program), "\n")
	assert.Equal(t, len(strings.Split(input, "\n")), len(lines))
	assert.Equal(t, "even(n) = n", lines[9])
	assert.Equal(t, "odd(n) = n", lines[17])

	for i, line := range lines {
		if i == 9 || i == 17 {
			continue
		}

		assert.Equal(t, "", strings.TrimSpace(line), "line %d", i+1)
	}
}

func TestParseCustomFence(t *testing.T) {
	input := "```JS\nx = 1\n```\n"

	doc, err := Parse([]byte(input), Options{Fence: "js"})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Blocks))
	assert.Equal(t, "x = 1\n", doc.Blocks[0].Text)
}

func TestParseNoCodeBlock(t *testing.T) {
	_, err := Parse([]byte("# Nothing here\n\n```go\nx\n```\n"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCodeBlock))
}

func TestParseInvalidFrontMatter(t *testing.T) {
	_, err := Parse([]byte("---\nauthor: someone\n"))
	assert.True(t, errors.Is(err, ErrInvalidFrontMatter))

	_, err = Parse([]byte("---\n: [\n---\n```jian\nx = 1\n```\n"))
	assert.True(t, errors.Is(err, ErrInvalidFrontMatter))
}

func TestIsMarkdown(t *testing.T) {
	exts := []string{".md", ".markdown"}

	assert.True(t, IsMarkdown("doc/intro.md", exts))
	assert.True(t, IsMarkdown("README.MD", exts))
	assert.False(t, IsMarkdown("main.jian", exts))
}
