package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/xqparse/xquery/dialect"
	"github.com/dhamidi/xqparse/xquery/parser"
)

const libraryModule = `module namespace m = "urn:m";
import module namespace x = "urn:x" at "x.xqm";
declare namespace h = "http://www.w3.org/1999/xhtml";
declare variable $m:limit as xs:integer := 10;
declare function m:twice($n) {
  (: doubles
     its argument :)
  $n * 2
};
declare option m:opt "on";
`

func TestSymbols(t *testing.T) {
	root := parser.Parse(libraryModule, dialect.Default())
	require.Empty(t, parser.Diagnostics(root))

	symbols := Symbols(root)
	var names []string
	var kinds []SymbolKind
	for _, s := range symbols {
		names = append(names, s.Name)
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []string{"m", "x", "h", "m:limit", "m:twice", "m:opt"}, names)
	assert.Equal(t, []SymbolKind{SymbolModule, SymbolImport, SymbolNamespace, SymbolVariable, SymbolFunction, SymbolOption}, kinds)

	fn := symbols[4]
	assert.Equal(t, 5, fn.Span.Start.Line)
	assert.Equal(t, 9, fn.Span.End.Line)
	assert.Equal(t, 5, fn.NameSpan.Start.Line)
	assert.Equal(t, 18, fn.NameSpan.Start.Column)
	assert.Equal(t, "#1", fn.Detail)
	assert.Empty(t, symbols[3].Detail)
}

func TestSymbolArity(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"declare function local:f() { 1 }; 1", "#0"},
		{"declare function local:f($a, $b as xs:int) { 1 }; 1", "#2"},
		{"declare function local:f($a, $b, $c) external; 1", "#3"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			symbols := Symbols(parser.Parse(tt.src, dialect.Default()))
			require.Len(t, symbols, 1)
			assert.Equal(t, tt.want, symbols[0].Detail)
		})
	}
}

func TestSymbolsSkipQueryBody(t *testing.T) {
	root := parser.Parse("declare variable $a := 1; let $b := function() { 2 } return $b", dialect.Default())
	symbols := Symbols(root)
	require.Len(t, symbols, 1)
	assert.Equal(t, "a", symbols[0].Name)
}

func TestFoldingRanges(t *testing.T) {
	root := parser.Parse(libraryModule, dialect.Default())
	ranges := FoldingRanges(root)
	assert.Equal(t, []FoldingRange{
		{StartLine: 5, EndLine: 9},
		{StartLine: 6, EndLine: 7, Comment: true},
	}, ranges)
}

func TestProtocolConversions(t *testing.T) {
	root := parser.Parse("1 +\n", dialect.Default())
	diags := toProtocolDiagnostics(parser.Diagnostics(root))
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected expression.", diags[0].Message)
	assert.Equal(t, protocol.IntegerOrString{Value: "XPST0003"}, *diags[0].Code)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, diags[0].Range.Start)

	assert.Equal(t, protocol.Position{}, toProtocolPosition(parser.Position{}))
	assert.Equal(t, protocol.SymbolKindFunction, toProtocolSymbolKind(SymbolFunction))
	assert.Equal(t, protocol.SymbolKindNamespace, toProtocolSymbolKind(SymbolImport))
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/q.xq")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a b/q.xq", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
