package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/xquery/dialect"
	"github.com/dhamidi/xqparse/xquery/parser"
)

func TestTreeEncoderBadCharacters(t *testing.T) {
	root := parser.Parse("~\uFFFE\uFFFF", dialect.Default())

	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(root))

	want := `Module[FILE(0:3)]
   ErrorNode[ERROR_ELEMENT(0:0)]('XPST0003: Missing library 'module' declaration or main module query body.')
   ErrorNode[ERROR_ELEMENT(0:1)]('XPST0003: Unexpected token.')
      BadCharacter[BAD_CHARACTER(0:1)]('~')
   BadCharacter[BAD_CHARACTER(1:2)]('\uFFFE')
   BadCharacter[BAD_CHARACTER(2:3)]('\uFFFF')
`
	assert.Equal(t, want, buf.String())
}

func TestTreeEncoderNil(t *testing.T) {
	text, err := NewTreeEncoder(nil).MarshalText()
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "abc", "abc"},
		{"line breaks", "a\r\nb\tc", `a\r\nb\tc`},
		{"control character", "\x01", `\u0001`},
		{"noncharacter", "\uFFFE", `\uFFFE`},
		{"invalid byte", "a\xffb", `a\xFFb`},
		{"astral", "\U0001F600", "\U0001F600"},
		{"quote kept", "'", "'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.input))
		})
	}
}

func TestTag(t *testing.T) {
	root := parser.Parse("for $x in 1 return $x", dialect.Default())
	assert.Equal(t, "FILE", Tag(root))

	var tags []string
	parser.Walk(root, func(n *parser.Node) bool {
		if n.Token != nil && n.Token.Kind == parser.TokenKeyword {
			tags = append(tags, Tag(n))
		}
		return true
	})
	assert.Equal(t, []string{"K_FOR", "K_IN", "K_RETURN"}, tags)

	errRoot := parser.Parse("1 +", dialect.Default())
	diag := errRoot.Children[0]
	parser.Walk(errRoot, func(n *parser.Node) bool {
		if n.Kind == parser.KindError {
			diag = n
		}
		return true
	})
	assert.Equal(t, "ERROR_ELEMENT", Tag(diag))
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		enc, err := New(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
