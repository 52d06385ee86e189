// Package markdownparser turns literate Markdown documents into program
// text. Fenced code blocks tagged with the language fence are kept in place
// and everything else is blanked, so line and column numbers reported for
// the program point into the Markdown file itself.
package markdownparser

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrNoCodeBlock        = errors.New("no code block found")
)

// DefaultFence is the info string marking program blocks.
const DefaultFence = "jian"

// Options controls extraction.
type Options struct {
	// Fence is the info string of the blocks to keep. Empty means
	// DefaultFence.
	Fence string
}

// Block is one kept code block.
type Block struct {
	StartLine int // 1-based line of the first content line
	Text      string
}

// Document is a parsed literate source.
type Document struct {
	Metadata map[string]any
	Title    string
	Blocks   []Block
	// Program has the same length as the input. Bytes outside kept blocks
	// are spaces, line breaks are preserved.
	Program []byte
}

// IsMarkdown reports whether path has one of the given extensions.
func IsMarkdown(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// Parse extracts the program from content.
func Parse(content []byte, options ...Options) (*Document, error) {
	fence := DefaultFence
	if len(options) > 0 && options[0].Fence != "" {
		fence = options[0].Fence
	}

	metadata, frontMatterLen, err := parseFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	// Blank the front matter so goldmark offsets still match content.
	body := blank(content, 0, frontMatterLen)

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	doc := md.Parser().Parse(text.NewReader(body))

	document := &Document{
		Metadata: metadata,
		Program:  blank(content, 0, len(content)),
	}

	err = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			if n.Level == 1 && document.Title == "" {
				document.Title = headingText(n, body)
			}
		case *ast.FencedCodeBlock:
			if isProgramBlock(n, body, fence) {
				document.Blocks = append(document.Blocks, copyBlock(n, body, document.Program))
			}

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown: %w", err)
	}

	if len(document.Blocks) == 0 {
		return nil, fmt.Errorf("%w: expected a ```%s block", ErrNoCodeBlock, fence)
	}

	return document, nil
}

// blank returns a copy of content with [from, to) replaced by spaces except
// for line breaks.
func blank(content []byte, from, to int) []byte {
	out := slices.Clone(content)

	for i := from; i < to && i < len(out); i++ {
		if out[i] != '\n' && out[i] != '\r' {
			out[i] = ' '
		}
	}

	return out
}

func isProgramBlock(codeBlock *ast.FencedCodeBlock, content []byte, fence string) bool {
	if codeBlock.Info == nil {
		return false
	}

	segment := codeBlock.Info.Segment
	info := strings.Fields(string(content[segment.Start:segment.Stop]))

	return len(info) > 0 && strings.EqualFold(info[0], fence)
}

// copyBlock restores the block's lines into program at their original
// offsets.
func copyBlock(codeBlock *ast.FencedCodeBlock, content, program []byte) Block {
	var (
		result    strings.Builder
		startLine int
	)

	lines := codeBlock.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		if i == 0 {
			startLine = lineNumber(content, line.Start)
		}

		copy(program[line.Start:line.Stop], content[line.Start:line.Stop])
		result.Write(content[line.Start:line.Stop])
	}

	return Block{StartLine: startLine, Text: result.String()}
}

func headingText(heading *ast.Heading, content []byte) string {
	var result strings.Builder

	lines := heading.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		result.Write(content[line.Start:line.Stop])
	}

	return strings.TrimSpace(result.String())
}

func lineNumber(content []byte, offset int) int {
	return strings.Count(string(content[:offset]), "\n") + 1
}
