package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/config"
	"github.com/dhamidi/xqparse/format"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseCmd(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.xq")
	writeFile(t, empty, "")

	tests := []struct {
		name     string
		stdin    string
		args     []string
		contains string
	}{
		{"empty file", "", []string{"parse", empty}, "Module[FILE(0:0)]\n"},
		{"diagnostics from stdin", "1 +", []string{"parse", "-f", "diagnostics", "-"}, "XPST0003: Expected expression."},
		{"json", "1", []string{"parse", "--format", "json", "-"}, `"kind"`},
		{"xpath", "//a", []string{"--xpath", "parse", "-"}, "XPath["},
		{"full text enabled", `//p[. contains text "x"]`, []string{"--enable", "fulltext10", "parse", "-"}, "FTContainsExpr["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestParseCmdErrors(t *testing.T) {
	_, err := run(t, "", "parse", filepath.Join(t.TempDir(), "missing.xq"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "1", "parse", "-f", "yaml", "-")
	assert.Error(t, err)

	_, err = run(t, "1", "--enable", "xquery40", "parse", "-")
	assert.Error(t, err)
}

func TestLexCmd(t *testing.T) {
	out, err := run(t, "1+2", "lex", "-")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "IntegerLiteral(0:1)('1')", lines[0])
	assert.Equal(t, "Plus(1:2)('+')", lines[1])
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.xq")
	broken := filepath.Join(dir, "lib", "broken.xqm")
	writeFile(t, ok, "for $x in 1 to 3 return $x")
	writeFile(t, broken, "declare variable $x := ;")

	out, err := run(t, "", "check", "-q", ok)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "", "check", "-q", "--progress", ok)
	require.NoError(t, err)
	assert.Empty(t, out, "the progress bar goes to stderr")

	out, err = run(t, "", "check", "-q", dir)
	assert.ErrorIs(t, err, errDiagnostics)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, broken+":1:"), line)
		assert.Contains(t, line, ": XPST0003: ")
	}

	out, err = run(t, "", "--no-color", "check", "-q", "-f", "snippet", dir)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, "error[XPST0003]: ")
	assert.Contains(t, out, " --> "+broken+":1:")
	assert.Contains(t, out, "1 | declare variable $x := ;\n")

	_, err = run(t, "", "check", "-f", "json", dir)
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xq.toml")
	cfg := config.Default()
	cfg.FullText10 = true
	require.NoError(t, config.Write(path, cfg, false))

	out, err := run(t, `//p[. contains text "x"]`, "--config", path, "parse", "-f", "diagnostics", "-")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "parse", "-")
	assert.Error(t, err)
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".xqparse.yaml")

	out, err := run(t, "", "--enable", "saxon98", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Saxon98)
	assert.False(t, cfg.FullText10)

	_, err = run(t, "", "init", path)
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = run(t, "", "init", "--force", path)
	require.NoError(t, err)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Saxon98)
}
