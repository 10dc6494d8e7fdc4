package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/xquery/dialect"
)

// scripted answers prompts from a fixed list of lines, then reports EOF.
type scripted struct {
	lines   []string
	prompts []string
}

func (s *scripted) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func TestReadQuery(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    string
		ok      bool
		prompts int
	}{
		{"single line", []string{"1 + 2"}, "1 + 2", true, 1},
		{"continued operand", []string{"1 +", "2"}, "1 +\n2", true, 2},
		{"continued constructor", []string{"<a>", "{1}", "</a>"}, "<a>\n{1}\n</a>", true, 3},
		{"blank line submits", []string{"(1,", ""}, "(1,", true, 2},
		{"command", []string{":quit"}, ":quit", true, 1},
		{"eof mid query", []string{"1 +"}, "1 +", true, 2},
		{"eof", nil, "", false, 1},
		{"ctrl-c drops the query", []string{"1 +", "^C"}, "", true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scripted{lines: tt.lines}
			got, ok := readQuery(p, dialect.Default())
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Len(t, p.prompts, tt.prompts)
			assert.Equal(t, promptMain, p.prompts[0])
			for _, prompt := range p.prompts[1:] {
				assert.Equal(t, promptCont, prompt)
			}
		})
	}
}

func TestRunRepl(t *testing.T) {
	p := &scripted{lines: []string{"", "1 +", "2", ":quit", "3"}}
	var out bytes.Buffer
	require.NoError(t, runRepl(p, &out, dialect.Default(), "tree"))
	assert.Contains(t, out.String(), "AdditiveExpr[")
	assert.NotContains(t, out.String(), "ERROR_ELEMENT")
	assert.Equal(t, []string{"3"}, p.lines, "input after :quit is not read")

	p = &scripted{lines: []string{"1 +", ""}}
	out.Reset()
	require.NoError(t, runRepl(p, &out, dialect.Default(), "diagnostics"))
	assert.Equal(t, "<stdin>:1:4: XPST0003: Expected expression.\n\n", out.String())
}
