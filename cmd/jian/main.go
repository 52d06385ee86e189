package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Version of the jian command.
const Version = "0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Color   string
	Stdout  io.Writer
	Stderr  io.Writer
}

// CLI represents the command-line interface
type CLI struct {
	Config  string     `help:"Configuration file path" default:"jian.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Color   string     `help:"Colorize output (auto, always, never); overrides output.color"`
	Run     RunCmd     `cmd:"" help:"Compile a program and hand it to the configured backend"`
	Check   CheckCmd   `cmd:"" help:"Parse and resolve a program"`
	Dump    DumpCmd    `cmd:"" help:"Print the resolved program"`
	Outline OutlineCmd `cmd:"" help:"List top-level definitions, tolerating syntax errors"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "jian v%s\n", Version)
	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("jian"),
		kong.Description("JianScript programming language"),
		kong.UsageOnError(),
	}, options...)

	return kong.New(cli, options...)
}

func main() {
	var cli CLI

	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	appCtx := &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Color:   cli.Color,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	err = kctx.Run(appCtx)
	if err != nil {
		// Diagnostics are printed by the command itself.
		if !errors.Is(err, ErrCompilationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
