package compiler

import (
	"context"
	"fmt"
	"os"

	"github.com/shibukawa/jian"
	"github.com/shibukawa/jian/markdownparser"
	"github.com/shibukawa/jian/source"
)

// Load reads path into a source. Markdown files, as configured by
// cfg.Markdown, are reduced to their program blocks with positions kept.
func Load(path string, cfg *jian.Config) (*source.Source, *markdownparser.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source: %w", err)
	}

	if !markdownparser.IsMarkdown(path, cfg.Markdown.Extensions) {
		return source.New(path, data), nil, nil
	}

	doc, err := markdownparser.Parse(data, markdownparser.Options{Fence: cfg.Markdown.Fence})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return source.New(path, doc.Program), doc, nil
}

// CompileFile loads path and compiles it.
func CompileFile(ctx context.Context, path string, cfg *jian.Config, options ...Options) (*Unit, error) {
	src, doc, err := Load(path, cfg)
	if err != nil {
		return nil, err
	}

	unit, err := Compile(ctx, src, options...)
	if err != nil {
		return nil, err
	}

	unit.Document = doc

	return unit, nil
}
