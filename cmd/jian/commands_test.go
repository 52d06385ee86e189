package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"

	"github.com/shibukawa/jian"
	"github.com/shibukawa/jian/compiler"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with defaults from a config file that does not exist.
func run(t *testing.T, args ...string) result {
	t.Helper()

	var cli CLI

	parser, err := newParser(&cli, kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }))
	assert.NoError(t, err)

	args = append([]string{"--config", filepath.Join(t.TempDir(), "jian.yaml"), "--color", "never"}, args...)

	kctx, err := parser.Parse(args)
	assert.NoError(t, err)

	var stdout, stderr bytes.Buffer

	err = kctx.Run(&Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Color:   cli.Color,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})

	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)

	return path
}

func TestVersionCmd(t *testing.T) {
	res := run(t, "version")
	assert.NoError(t, res.err)
	assert.Equal(t, "jian v0.1.0\n", res.stdout)
}

func TestCheckCmd(t *testing.T) {
	path := writeFile(t, "main.jian", "x = 1\nf(y) = x\n")

	t.Run("Ok", func(t *testing.T) {
		res := run(t, "check", path)
		assert.NoError(t, res.err)
		assert.Equal(t, path+": ok (2 definition(s))\n", res.stdout)
	})

	t.Run("Quiet", func(t *testing.T) {
		res := run(t, "-q", "check", path)
		assert.NoError(t, res.err)
		assert.Equal(t, "", res.stdout)
	})

	t.Run("Types", func(t *testing.T) {
		typed := writeFile(t, "typed.jian", "one = 1\nt = true\nf(y) = y\ng() = ()\n")

		res := run(t, "-q", "check", "--types", typed)
		assert.NoError(t, res.err)
		assert.Equal(t, "one : Number\nt : Boolean\nf : ?\ng : Function\n", res.stdout)
	})
}

func TestCheckCmd_Diagnostics(t *testing.T) {
	t.Run("ParseError", func(t *testing.T) {
		path := writeFile(t, "main.jian", "a = 1\nb = (1;\n")

		res := run(t, "check", path)
		assert.IsError(t, res.err, ErrCompilationFailed)
		assert.Equal(t, path+":2:1: parse error (pos=6)\n\nb = (1;\n      ^\n", res.stderr)
	})

	t.Run("ResolveError", func(t *testing.T) {
		path := writeFile(t, "main.jian", "f() = y\n")

		res := run(t, "-q", "check", path)
		assert.IsError(t, res.err, ErrCompilationFailed)
		assert.Equal(t, path+":1:7: resolve error: variable not found \"y\"\n", res.stderr)
	})

	t.Run("Markdown", func(t *testing.T) {
		path := writeFile(t, "doc.md", "# Doc\n\n```jian\nf() = y\n```\n")

		res := run(t, "-q", "check", path)
		assert.IsError(t, res.err, ErrCompilationFailed)
		assert.Equal(t, path+":4:7: resolve error: variable not found \"y\"\n", res.stderr)
	})
}

func TestRunCmd(t *testing.T) {
	path := writeFile(t, "main.jian", "x = 1\nf(y) = x\n")

	t.Run("Summary", func(t *testing.T) {
		res := run(t, "run", path)
		assert.NoError(t, res.err)
		assert.Equal(t, "def: id=1, name=x, pos=0, kind=value, body=number\n"+
			"def: id=3, name=f, pos=6, kind=function, body=resolved\n"+
			"  param: id=2, name=y, pos=8\n", res.stdout)
	})

	t.Run("Backend", func(t *testing.T) {
		compiler.RegisterBackend("count", func() compiler.Backend { return countBackend{} })
		t.Cleanup(func() { compiler.UnregisterBackend("count") })

		res := run(t, "run", "--backend", "count", path)
		assert.NoError(t, res.err)
		assert.Equal(t, "Loaded 2 definition(s) into count\n", res.stdout)
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		res := run(t, "run", "--backend", "missing", path)
		assert.IsError(t, res.err, jian.ErrUnknownBackend)
	})
}

type countBackend struct{}

func (countBackend) Load(ctx context.Context, unit *compiler.Unit) (compiler.Artifact, error) {
	return countArtifact(unit.Program.Defs.Len()), nil
}

type countArtifact int

func (a countArtifact) Lookup(name string) (any, bool) { return int(a), name == "count" }
func (countArtifact) Close() error                     { return nil }

func TestDumpCmd(t *testing.T) {
	path := writeFile(t, "main.jian", "x = 1\n")

	t.Run("Text", func(t *testing.T) {
		res := run(t, "dump", path)
		assert.NoError(t, res.err)
		assert.Equal(t, "Value x #1\n  number 1\n", res.stdout)
	})

	t.Run("JSON", func(t *testing.T) {
		res := run(t, "dump", "--format", "json", path)
		assert.NoError(t, res.err)

		var got map[string]any
		assert.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		assert.Equal(t, any(path), got["source"])
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		res := run(t, "dump", "--format", "csv", path)
		assert.IsError(t, res.err, jian.ErrUnknownFormat)
	})
}

func TestOutlineCmd(t *testing.T) {
	path := writeFile(t, "main.jian", "x = 1\nf(a, b) = a +\ny = 2\n")

	t.Run("Recovered", func(t *testing.T) {
		res := run(t, "outline", path)
		assert.NoError(t, res.err)
		assert.Equal(t, "1:1\tvalue\tx\n2:1\tfunction\tf(a, b)\n3:1\tvalue\ty\n", res.stdout)
		assert.Equal(t, "note: partially parsed due to syntax error\n", res.stderr)
	})

	t.Run("Strict", func(t *testing.T) {
		res := run(t, "-q", "outline", "--strict", path)
		assert.IsError(t, res.err, ErrCompilationFailed)
		assert.Equal(t, path+":2:1: parse error (pos=6)\n", res.stderr)
	})
}

func TestInvalidConfig(t *testing.T) {
	configPath := writeFile(t, "jian.yaml", "output:\n  format: csv\n")
	path := writeFile(t, "main.jian", "x = 1\n")

	var cli CLI

	parser, err := newParser(&cli)
	assert.NoError(t, err)

	kctx, err := parser.Parse([]string{"--config", configPath, "check", path})
	assert.NoError(t, err)

	err = kctx.Run(&Context{Config: cli.Config, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	assert.IsError(t, err, jian.ErrConfigValidation)
}
