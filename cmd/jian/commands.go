package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/jian"
	"github.com/shibukawa/jian/compiler"
	"github.com/shibukawa/jian/diagnostic"
	"github.com/shibukawa/jian/dump"
	"github.com/shibukawa/jian/elab"
	"github.com/shibukawa/jian/inspect"
	"github.com/shibukawa/jian/logging"
)

// setup loads the configuration and prepares color and logging.
func (ctx *Context) setup() (*jian.Config, *slog.Logger, error) {
	config, err := jian.LoadConfig(ctx.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	mode := config.Output.Color
	if ctx.Color != "" {
		mode = ctx.Color
	}

	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
	default:
		return nil, nil, fmt.Errorf("%w: invalid color mode '%s': must be one of auto, always, never", jian.ErrConfigValidation, mode)
	}

	if ctx.Verbose {
		config.Log.Level = "debug"
	}

	logger, err := logging.New(config.Log, ctx.Stderr)
	if err != nil {
		return nil, nil, err
	}

	return config, logger, nil
}

// compile loads and compiles path. Diagnostics are printed to Stderr and
// reported as ErrCompilationFailed.
func (ctx *Context) compile(path string) (*compiler.Unit, *jian.Config, error) {
	config, logger, err := ctx.setup()
	if err != nil {
		return nil, nil, err
	}

	opts, err := compiler.OptionsFromConfig(config, logger)
	if err != nil {
		return nil, nil, err
	}

	src, doc, err := compiler.Load(path, config)
	if err != nil {
		return nil, nil, err
	}

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stderr, "Compiling %s\n", path)
	}

	unit, err := compiler.Compile(context.Background(), src, opts)
	if err != nil {
		diagnostic.NewPrinter(ctx.Stderr, !ctx.Quiet).PrintError(src, err)
		return nil, nil, ErrCompilationFailed
	}

	unit.Document = doc

	return unit, config, nil
}

// RunCmd represents the run command
type RunCmd struct {
	File    string `arg:"" help:"Source file (.jian or literate Markdown)" type:"existingfile"`
	Backend string `help:"Backend name; overrides backend in the configuration"`
}

// Run executes the run command
func (cmd *RunCmd) Run(ctx *Context) error {
	unit, config, err := ctx.compile(cmd.File)
	if err != nil {
		return err
	}

	backend := config.Backend
	if cmd.Backend != "" {
		backend = cmd.Backend
	}

	if backend == "" {
		printSummary(ctx, unit)
		return nil
	}

	artifact, err := compiler.Run(context.Background(), backend, unit)
	if err != nil {
		return err
	}
	defer artifact.Close()

	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(ctx.Stdout, "Loaded %d definition(s) into %s\n", unit.Program.Defs.Len(), backend)
	}

	return nil
}

// printSummary lists every definition with its parameters, as the driver
// does when no backend is configured.
func printSummary(ctx *Context, unit *compiler.Unit) {
	for _, def := range unit.Program.Definitions() {
		fmt.Fprintf(ctx.Stdout, "def: id=%d, name=%s, pos=%d, kind=%s, body=%s\n",
			def.ID, unit.Name(def), def.Name.Start.Pos, def.Kind, def.Body.Kind())

		for _, param := range def.Params.Values() {
			fmt.Fprintf(ctx.Stdout, "  param: id=%d, name=%s, pos=%d\n",
				param.ID, unit.Source.Slice(param.Name), param.Name.Start.Pos)
		}
	}
}

// CheckCmd represents the check command
type CheckCmd struct {
	File  string `arg:"" help:"Source file (.jian or literate Markdown)" type:"existingfile"`
	Types bool   `help:"Print the inferred type of each definition"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	unit, _, err := ctx.compile(cmd.File)
	if err != nil {
		return err
	}

	if cmd.Types {
		el := elab.New(unit.Source)

		for _, def := range unit.Program.Definitions() {
			_, ty, err := el.InferDefinition(def)

			switch {
			case errors.Is(err, elab.ErrNotImplemented):
				fmt.Fprintf(ctx.Stdout, "%s : ?\n", unit.Name(def))
			case err != nil:
				diagnostic.NewPrinter(ctx.Stderr, !ctx.Quiet).PrintError(unit.Source, err)
				return ErrCompilationFailed
			default:
				fmt.Fprintf(ctx.Stdout, "%s : %s\n", unit.Name(def), ty)
			}
		}
	}

	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(ctx.Stdout, "%s: ok (%d definition(s))\n", cmd.File, unit.Program.Defs.Len())
	}

	return nil
}

// DumpCmd represents the dump command
type DumpCmd struct {
	File   string `arg:"" help:"Source file (.jian or literate Markdown)" type:"existingfile"`
	Format string `help:"Output format (text, json, yaml, xml); defaults to output.format" short:"f"`
}

// Run executes the dump command
func (cmd *DumpCmd) Run(ctx *Context) error {
	unit, config, err := ctx.compile(cmd.File)
	if err != nil {
		return err
	}

	name := config.Output.Format
	if cmd.Format != "" {
		name = cmd.Format
	}

	format, err := dump.ParseFormat(name)
	if err != nil {
		return err
	}

	return dump.Write(ctx.Stdout, format, unit)
}

// OutlineCmd represents the outline command
type OutlineCmd struct {
	File   string `arg:"" help:"Source file" type:"existingfile"`
	Strict bool   `help:"Fail on syntax errors instead of recovering headers"`
	JSON   bool   `help:"Print the outline as JSON" name:"json"`
}

// Run executes the outline command
func (cmd *OutlineCmd) Run(ctx *Context) error {
	config, _, err := ctx.setup()
	if err != nil {
		return err
	}

	src, _, err := compiler.Load(cmd.File, config)
	if err != nil {
		return err
	}

	result, err := inspect.Outline(strings.NewReader(string(src.Text)), inspect.OutlineOptions{Strict: cmd.Strict})
	if err != nil {
		diagnostic.NewPrinter(ctx.Stderr, !ctx.Quiet).PrintError(src, err)
		return ErrCompilationFailed
	}

	if cmd.JSON {
		encoder := json.NewEncoder(ctx.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(result)
	}

	for _, entry := range result.Entries {
		signature := entry.Name
		if entry.Kind == "function" {
			signature += "(" + strings.Join(entry.Params, ", ") + ")"
		}

		fmt.Fprintf(ctx.Stdout, "%d:%d\t%s\t%s\n", entry.Line, entry.Column, entry.Kind, signature)
	}

	if !ctx.Quiet {
		for _, note := range result.Notes {
			color.New(color.FgYellow).Fprintf(ctx.Stderr, "note: %s\n", note)
		}
	}

	return nil
}
