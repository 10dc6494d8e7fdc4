package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T, input string) *Parser {
	t.Helper()
	p := newParser(strings.NewReader(input), nil, nil)
	require.NoError(t, p.readAll())
	p.lines = newLineIndex(p.input, "", 1)
	p.lexer = newLexer(p.input, p.lines)
	p.lexer.SetDialect(p.cfg)
	return p
}

func literals(n *Node) []string {
	var out []string
	for _, child := range n.Children {
		if child.Token != nil {
			out = append(out, child.Token.Literal)
		} else {
			out = append(out, child.Kind.String())
		}
	}
	return out
}

func TestBuilderClose(t *testing.T) {
	p := newTestParser(t, "1 + 2")
	root := p.openRoot()
	m := p.open()
	p.bump()
	p.bump()
	p.bump()
	p.close(m, KindAdditiveExpr)
	p.close(root, KindModule)

	tree := p.build()
	require.NotNil(t, tree)
	require.Len(t, tree.Children, 1)
	expr := tree.Children[0]
	assert.Equal(t, KindAdditiveExpr, expr.Kind)
	assert.Equal(t, []string{"1", " ", "+", " ", "2"}, literals(expr))
	assert.Equal(t, 0, expr.Span.Start.Offset)
	assert.Equal(t, 5, expr.Span.End.Offset)
}

func TestBuilderDrop(t *testing.T) {
	p := newTestParser(t, "1")
	root := p.openRoot()
	m := p.open()
	p.bump()
	p.drop(m)
	p.close(root, KindModule)

	tree := p.build()
	assert.Equal(t, []string{"1"}, literals(tree))
}

func TestBuilderCloseIf(t *testing.T) {
	p := newTestParser(t, "1 2")
	root := p.openRoot()
	m := p.open()
	p.bump()
	p.closeIf(m, KindParenthesizedExpr, false)
	m = p.open()
	p.bump()
	p.closeIf(m, KindParenthesizedExpr, true)
	p.close(root, KindModule)

	tree := p.build()
	assert.Equal(t, []string{"1", " ", "ParenthesizedExpr"}, literals(tree))
}

func TestBuilderAbandon(t *testing.T) {
	p := newTestParser(t, "1 + 2")
	root := p.openRoot()
	m := p.open()
	p.bump()
	p.bump()
	assert.True(t, p.consumed(m))
	p.abandon(m)
	assert.Equal(t, 0, p.pos)
	assert.False(t, p.consumed(m))

	p.bump()
	p.close(root, KindModule)

	tree := p.build()
	assert.Equal(t, []string{"1"}, literals(tree))
}

func TestBuilderErrorHere(t *testing.T) {
	p := newTestParser(t, "1 ")
	root := p.openRoot()
	p.bump()
	p.errorHere("Expected expression.")
	p.close(root, KindModule)

	tree := p.build()
	require.Len(t, tree.Children, 3)
	errNode := tree.Children[2]
	assert.Equal(t, KindError, errNode.Kind)
	assert.Equal(t, 2, errNode.Span.Start.Offset)
	assert.Equal(t, 2, errNode.Span.End.Offset)
	assert.Equal(t, "Expected expression.", errNode.Error.Message)
	assert.Equal(t, 2, tree.Span.End.Offset, "the root covers the whole input")
}

func TestBuilderTokenError(t *testing.T) {
	p := newTestParser(t, "1e+")
	root := p.openRoot()
	tok := p.bump()
	require.NotNil(t, tok.Error)
	p.close(root, KindModule)

	tree := p.build()
	require.Len(t, tree.Children, 2)
	errNode := tree.Children[1]
	assert.Equal(t, KindError, errNode.Kind)
	assert.Equal(t, msgIncompleteExponent, errNode.Error.Message)
	assert.Equal(t, 3, errNode.Span.Start.Offset)
	assert.Equal(t, 3, errNode.Span.End.Offset)
}
