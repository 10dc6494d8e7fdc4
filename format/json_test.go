package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/xquery/dialect"
	"github.com/dhamidi/xqparse/xquery/parser"
)

func TestJSONEncoder(t *testing.T) {
	root := parser.Parse("1 +", dialect.Default())

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(root))

	var decoded jsonNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Module", decoded.Kind)
	assert.Equal(t, "FILE", decoded.Tag)
	assert.Equal(t, 3, decoded.Span.End.Offset)
	assert.Equal(t, 1, decoded.Span.Start.Line)
	require.NotEmpty(t, decoded.Children)

	var errs []*jsonError
	var visit func(n *jsonNode)
	visit = func(n *jsonNode) {
		if n.Error != nil {
			errs = append(errs, n.Error)
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(&decoded)
	require.Len(t, errs, 1)
	assert.Equal(t, "XPST0003", errs[0].Code)
	assert.Equal(t, "Expected expression.", errs[0].Message)
}
