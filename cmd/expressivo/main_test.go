package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/expressivo"
)

// run executes the command line with the given stdin and returns stdout and
// stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(configEnv, "")
	cmd := newRootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errb.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"parse", "1 + x", "(1 + x) * (x * 1)"}, "1.0+x\n(1.0+x)*(x*1.0)\n"},
		{"spaced", "", []string{"parse", "--spaced", "1+x*y"}, "1.0 + (x * y)\n"},
		{"vars", "", []string{"parse", "--vars", "x*y+b"}, "(x*y)+b vars=b,x,y\n"},
		{"stdin", "a + b + c\n", []string{"parse"}, "(a+b)+c\n"},
		{"lines", "x\n1 + y\n\n(a\n*b)\n\n", []string{"parse", "-n"}, "x\n1.0+y\na*b\n"},
		{"stdinandargs", "x", []string{"parse", "--in", "-", "y"}, "x\ny\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"adjacent", "", []string{"parse", "3 x"}},
		{"empty", "", []string{"parse", ""}},
		{"emptystdin", "\n\n", []string{"parse", "-n"}},
		{"unclosed", "", []string{"parse", "(1+"}},
		{"depth", "", []string{"parse", "--max-depth", "2", "(((x)))"}},
		{"badline", "x\n3 x\n", []string{"parse", "-n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, expressivo.ErrSyntax)
		})
	}
}

func TestParseCommandInFile(t *testing.T) {
	path := writeFile(t, "exprs.txt", "x * 2\n2 * x\n")
	out, _, err := run(t, "", "parse", "-n", "--in", path)
	require.NoError(t, err)
	assert.Equal(t, "x*2.0\n2.0*x\n", out)

	_, _, err = run(t, "", "parse", "--in", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening input")
}

func TestDiffCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"product", []string{"diff", "--wrt", "x", "x*1"}, "(1.0*1.0)+(x*0.0)\n"},
		{"sum", []string{"diff", "-x", "x", "1 + x"}, "0.0+1.0\n"},
		{"othervar", []string{"diff", "--wrt", "y", "x"}, "0.0\n"},
		{"zeroth", []string{"diff", "--wrt", "x", "--order", "0", "x*x"}, "x*x\n"},
		{"stats", []string{"diff", "--wrt", "x", "--order", "2", "--stats", "x*x"}, "((0.0*x)+(1.0*1.0))+((1.0*1.0)+(x*0.0)) size=15 depth=4\n"},
		{"spaced", []string{"diff", "--wrt", "x", "--spaced", "x*y"}, "(1.0 * y) + (x * 0.0)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDiffCommandErrors(t *testing.T) {
	_, _, err := run(t, "", "diff", "x*x")
	require.Error(t, err, "missing --wrt")

	_, _, err = run(t, "", "diff", "--wrt", "x", "--order", "-1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order")

	_, _, err = run(t, "", "diff", "--wrt", "x", "x-1")
	assert.ErrorIs(t, err, expressivo.ErrSyntax)
}

func TestDiffCommandYAML(t *testing.T) {
	out, _, err := run(t, "", "diff", "--wrt", "x", "-o", "yaml", "x*1")
	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "x*1.0", got[0]["expr"])
	assert.Equal(t, "x", got[0]["wrt"])
	assert.Equal(t, 1, got[0]["order"])
	assert.Equal(t, "(1.0*1.0)+(x*0.0)", got[0]["derivative"])
}

func TestBatchCommand(t *testing.T) {
	path := writeFile(t, "jobs.yaml", `jobs:
  - name: cube
    expr: "x*x*x"
    wrt: x
  - name: canonical
    expr: "(1 + x) * (x * 1)"
  - expr: "x * y"
    wrt: y
    order: 0
  - name: bad
    expr: "3 x"
`)
	out, _, err := run(t, "", "batch", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 4 jobs failed")

	var raw []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &raw))
	require.Len(t, raw, 4)

	assert.Equal(t, "cube", raw[0]["name"])
	assert.Equal(t, "(((1.0*x)+(x*1.0))*x)+((x*x)*1.0)", raw[0]["derivative"])
	assert.Equal(t, 1, raw[0]["order"])
	assert.Equal(t, 15, raw[0]["size"])

	assert.Equal(t, "(1.0+x)*(x*1.0)", raw[1]["expr"])
	assert.NotContains(t, raw[1], "derivative")

	assert.Equal(t, "job 3", raw[2]["name"])
	assert.Equal(t, "x*y", raw[2]["derivative"])

	assert.Equal(t, "bad", raw[3]["name"])
	assert.Equal(t, "3 x", raw[3]["source"])
	assert.Contains(t, raw[3]["error"], "invalid expression syntax")
}

func TestBatchCommandStdin(t *testing.T) {
	out, _, err := run(t, "jobs:\n  - expr: \"x + x\"\n    wrt: x\n", "batch")
	require.NoError(t, err)
	assert.Contains(t, out, "derivative: 1.0+1.0")
}

func TestBatchCommandInvalidFile(t *testing.T) {
	path := writeFile(t, "jobs.yaml", "jobs:\n  - expression: x\n")
	_, _, err := run(t, "", "batch", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding job file")

	path = writeFile(t, "jobs.yaml", "jobs:\n  - expr: x\n    order: 2\n")
	_, _, err = run(t, "", "batch", "-f", path)
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "config.toml", "spaced = true\nmax_depth = 3\n")

	out, _, err := run(t, "", "--config", path, "parse", "1+x*y")
	require.NoError(t, err)
	assert.Equal(t, "1.0 + (x * y)\n", out)

	out, _, err = run(t, "", "--config", path, "--spaced=false", "parse", "1+x*y")
	require.NoError(t, err)
	assert.Equal(t, "1.0+(x*y)\n", out)

	_, _, err = run(t, "", "--config", path, "parse", "((((x))))")
	assert.ErrorIs(t, err, expressivo.ErrSyntax)

	_, _, err = run(t, "", "--config", path, "--max-depth", "0", "parse", "((((x))))")
	assert.NoError(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(configEnv, "")
	cfg, path, err := loadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, defaultConfig(), cfg)

	good := writeFile(t, "good.toml", "log_level = \"debug\"\noutput = \"yaml\"\n")
	t.Setenv(configEnv, good)
	cfg, path, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, good, path)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, expressivo.DefaultMaxDepth, cfg.MaxDepth)

	for _, content := range []string{
		"output = \"xml\"\n",
		"max_depth = -1\n",
		"log_level = \"loud\"\n",
		"spaced = \n",
	} {
		bad := writeFile(t, "bad.toml", content)
		_, _, err := loadConfig(bad)
		assert.Error(t, err, content)
	}
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := run(t, "", "-v", "parse", "x")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "msg=parsed")

	_, stderr, err = run(t, "", "parse", "x")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestCloseInputLogs(t *testing.T) {
	var logs bytes.Buffer
	a := &app{log: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	a.closeInput(func() error { return nil })
	assert.Empty(t, logs.String())
	a.closeInput(func() error { return os.ErrClosed })
	assert.Contains(t, logs.String(), "msg=\"closing input\"")
	assert.Contains(t, logs.String(), os.ErrClosed.Error())
}

func TestInvalidOutput(t *testing.T) {
	_, _, err := run(t, "", "-o", "xml", "parse", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be text or yaml")
}
