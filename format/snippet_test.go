package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/xquery/parser"
)

func TestSnippetEncoder(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "1 + 2", ""},
		{
			name:  "missing operand",
			input: "1 +",
			want: `error[XPST0003]: Expected expression.
 --> q.xq:1:4
  |
1 | 1 +
  |    ^

`,
		},
		{
			name:  "tab indented second line",
			input: "(1,\n\t2",
			want: "error[XPST0003]: Expected ')'.\n" +
				" --> q.xq:2:3\n" +
				"  |\n" +
				"2 | \t2\n" +
				"  | \t ^\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parser.ParseModule(strings.NewReader(tt.input), parser.WithFile("q.xq")).Finish()
			var buf bytes.Buffer
			require.NoError(t, NewSnippetEncoder(&buf).Encode(root))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLineBounds(t *testing.T) {
	src := "ab\r\ncd\nef"
	tests := []struct {
		offset     int
		start, end int
	}{
		{0, 0, 2},
		{2, 0, 2},
		{4, 4, 6},
		{7, 7, 9},
		{9, 7, 9},
	}
	for _, tt := range tests {
		start, end := lineBounds(src, tt.offset)
		assert.Equal(t, tt.start, start, "start of %d", tt.offset)
		assert.Equal(t, tt.end, end, "end of %d", tt.offset)
	}
}
