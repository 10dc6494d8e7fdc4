package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/xquery/dialect"
)

func findAll(root *Node, kind NodeKind) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

func findFirst(root *Node, kind NodeKind) *Node {
	if all := findAll(root, kind); len(all) > 0 {
		return all[0]
	}
	return nil
}

// checkTree asserts the structural guarantees every parse result has.
func checkTree(t *testing.T, root *Node, input string) {
	t.Helper()
	require.NotNil(t, root)
	require.Equal(t, KindModule, root.Kind)
	assert.Equal(t, 0, root.Span.Start.Offset)
	assert.Equal(t, len(input), root.Span.End.Offset)
	assert.Equal(t, input, root.Text())
	Walk(root, func(n *Node) bool {
		for i := 1; i < len(n.Children); i++ {
			assert.LessOrEqual(t, n.Children[i-1].Span.End.Offset, n.Children[i].Span.Start.Offset,
				"children of %s overlap", n.Name())
		}
		if n != root && len(n.Children) > 0 {
			assert.Equal(t, n.Children[0].Span.Start.Offset, n.Span.Start.Offset, "start of %s", n.Name())
			assert.Equal(t, n.Children[len(n.Children)-1].Span.End.Offset, n.Span.End.Offset, "end of %s", n.Name())
		}
		if n.Kind == KindError {
			assert.NotNil(t, n.Error)
		}
		return true
	})
}

func TestParseEmptyInput(t *testing.T) {
	root := Parse("", dialect.Default())
	checkTree(t, root, "")
	assert.Empty(t, root.Children)
	assert.Equal(t, 0, root.Span.End.Char)
}

func TestParseBadCharacters(t *testing.T) {
	input := "~\uFFFE\uFFFF"
	root := Parse(input, dialect.Default())
	checkTree(t, root, input)
	require.Len(t, root.Children, 4)

	missing := root.Children[0]
	assert.Equal(t, KindError, missing.Kind)
	assert.Equal(t, msgMissingModule, missing.Error.Message)
	assert.Equal(t, 0, missing.Span.Start.Offset)
	assert.Equal(t, 0, missing.Span.End.Offset)

	unexpected := root.Children[1]
	assert.Equal(t, KindError, unexpected.Kind)
	assert.Equal(t, msgUnexpectedToken, unexpected.Error.Message)
	require.Len(t, unexpected.Children, 1)
	assert.Equal(t, TokenBadCharacter, unexpected.Children[0].Token.Kind)
	assert.Equal(t, "~", unexpected.Children[0].Token.Literal)

	for _, leaf := range root.Children[2:] {
		require.NotNil(t, leaf.Token)
		assert.Equal(t, TokenBadCharacter, leaf.Token.Kind)
	}
	assert.Equal(t, 3, root.Span.End.Char)
}

func TestParseInvalidUTF8(t *testing.T) {
	// An encoded surrogate is not valid UTF-8; each of its bytes is lexed
	// on its own.
	input := "\xED\xA0\x80"
	root := Parse(input, dialect.Default())
	checkTree(t, root, input)
	require.Len(t, root.Children, 4)
	assert.Equal(t, msgMissingModule, root.Children[0].Error.Message)
	assert.Equal(t, msgUnexpectedToken, root.Children[1].Error.Message)

	leaves := []*Node{root.Children[1].Children[0], root.Children[2], root.Children[3]}
	for i, leaf := range leaves {
		require.NotNil(t, leaf.Token)
		assert.Equal(t, TokenBadCharacter, leaf.Token.Kind)
		assert.Equal(t, i, leaf.Span.Start.Offset)
		assert.Equal(t, i+1, leaf.Span.End.Offset)
		assert.Equal(t, i, leaf.Span.Start.Char)
		assert.Equal(t, i+1, leaf.Span.End.Char)
	}
}

func TestParseRestartsAfterRecovery(t *testing.T) {
	input := "1 ) 2 ; 3"
	root := Parse(input, dialect.Default())
	checkTree(t, root, input)

	var modules, unexpected []*Node
	for _, child := range root.Children {
		switch child.Kind {
		case KindMainModule:
			modules = append(modules, child)
		case KindError:
			unexpected = append(unexpected, child)
		}
	}
	require.Len(t, modules, 3)
	for i, text := range []string{"1", "2", "3"} {
		assert.Equal(t, text, modules[i].Text())
	}
	require.Len(t, unexpected, 2)
	for i, text := range []string{")", ";"} {
		assert.Equal(t, msgUnexpectedToken, unexpected[i].Error.Message)
		assert.Equal(t, text, unexpected[i].Text())
	}
	assert.Len(t, Diagnostics(root), 2)
}

func TestParseInvalidMarkup(t *testing.T) {
	root := Parse("<!", dialect.Default())
	checkTree(t, root, "<!")
	require.Len(t, root.Children, 2)
	assert.Equal(t, msgMissingModule, root.Children[0].Error.Message)
	require.Len(t, root.Children[1].Children, 1)
	assert.Equal(t, TokenInvalid, root.Children[1].Children[0].Token.Kind)
}

func TestParseMissingIn(t *testing.T) {
	input := "for $x 1 to 10 return $x"
	root := Parse(input, dialect.Default())
	checkTree(t, root, input)

	diags := Diagnostics(root)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeSyntax, diags[0].Code)
	assert.Equal(t, "Expected 'in'.", diags[0].Message)
	assert.Equal(t, 7, diags[0].Span.Start.Offset)

	binding := findFirst(root, KindForBinding)
	require.NotNil(t, binding)
	assert.NotNil(t, binding.FirstChildOfKind(KindError))
	assert.NotNil(t, binding.FirstChildOfKind(KindRangeExpr))
	assert.NotNil(t, findFirst(root, KindReturnClause))
}

// shape renders the tree one node per line, indented by depth, leaving out
// whitespace and every subtree for which skip returns true.
func shape(root *Node, skip func(*Node) bool) []string {
	var out []string
	depth := 0
	Inspect(root, func(n *Node) bool {
		if n == nil {
			depth--
			return false
		}
		if (n.IsToken() && n.Token.Kind == TokenWhitespace) || skip(n) {
			return false
		}
		line := strings.Repeat(" ", depth) + n.Name()
		if n.IsToken() {
			line += " " + n.Token.Literal
		}
		out = append(out, line)
		depth++
		return true
	})
	return out
}

// TestParseErrorLocality removes one token from a valid query and checks
// that the only difference in the tree is the error node standing in for it.
func TestParseErrorLocality(t *testing.T) {
	tests := []struct {
		name    string
		valid   string
		removed string
		damaged string
	}{
		{"for without in", "for $x in 1 to 10 return $x", "in", "for $x 1 to 10 return $x"},
		{"let without assign", "let $x := 1 return $x", ":=", "let $x 1 return $x"},
		{"if without then", "if (1) then 2 else 3", "then", "if (1) 2 else 3"},
		{"unclosed parenthesis", "(1, 2)", ")", "(1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid := Parse(tt.valid, dialect.Default())
			checkTree(t, valid, tt.valid)
			require.Empty(t, Diagnostics(valid))

			damaged := Parse(tt.damaged, dialect.Default())
			checkTree(t, damaged, tt.damaged)
			require.Len(t, findAll(damaged, KindError), 1)

			want := shape(valid, func(n *Node) bool {
				return n.IsToken() && n.Token.Literal == tt.removed
			})
			got := shape(damaged, func(n *Node) bool {
				return n.Kind == KindError
			})
			assert.Equal(t, want, got)
		})
	}
}

func TestParseFullTextGating(t *testing.T) {
	input := `"a" contains text "b"`

	off := Parse(input, dialect.Default())
	checkTree(t, off, input)
	diags := Diagnostics(off)
	require.NotEmpty(t, diags)
	assert.Equal(t, msgUnexpectedToken, diags[0].Message)
	assert.Equal(t, 4, diags[0].Span.Start.Offset)
	assert.Nil(t, findFirst(off, KindFTContainsExpr))

	on := Parse(input, dialect.Default().With(dialect.SpecFullText10))
	checkTree(t, on, input)
	assert.Empty(t, Diagnostics(on))
	assert.NotNil(t, findFirst(on, KindFTContainsExpr))
	assert.NotNil(t, findFirst(on, KindFTWords))
}

func TestParseValid(t *testing.T) {
	ft := dialect.Default().With(dialect.SpecFullText10)
	tests := []struct {
		name  string
		cfg   dialect.Config
		input string
		kinds []NodeKind
	}{
		{"version decl", dialect.Default(), `xquery version "3.1"; 1`, []NodeKind{KindVersionDecl, KindMainModule, KindQueryBody}},
		{
			"library module",
			dialect.Default(),
			`module namespace a = "urn:a"; declare function a:f($x as xs:integer) as xs:integer { $x + 1 };`,
			[]NodeKind{KindLibraryModule, KindModuleDecl, KindFunctionDecl, KindParamList, KindParam, KindTypeDeclaration, KindFunctionBody, KindAdditiveExpr},
		},
		{"external variable", dialect.Default(), `declare variable $x external := 1; $x`, []NodeKind{KindProlog, KindVarDecl, KindVarRef}},
		{
			"flwor clauses",
			dialect.Default(),
			`for $x at $i in (1, 2) let $y := $x where $y > 1 order by $y descending return $y`,
			[]NodeKind{KindFLWORExpr, KindForClause, KindPositionalVar, KindLetClause, KindWhereClause, KindOrderByClause, KindOrderModifier, KindComparisonExpr, KindParenthesizedExpr, KindExpr},
		},
		{
			"group by and count",
			dialect.Default(),
			`for $x in 1 group by $k := $x count $c return $k`,
			[]NodeKind{KindGroupByClause, KindGroupingSpecList, KindGroupingSpec, KindCountClause},
		},
		{
			"window clause",
			dialect.Default(),
			`for tumbling window $w in (1, 2, 3) start $s when true() end $e when false() return $w`,
			[]NodeKind{KindWindowClause, KindTumblingWindowClause, KindWindowStartCondition, KindWindowEndCondition, KindWindowVars, KindFunctionCall},
		},
		{
			"direct constructors",
			dialect.Default(),
			`<a href="{1}">text {2} <b/></a>`,
			[]NodeKind{KindDirElemConstructor, KindDirAttributeList, KindDirAttribute, KindDirAttributeValue, KindEnclosedExpr, KindDirElemContent},
		},
		{"xml comment and pi", dialect.Default(), `<!-- c -->, <?pi x?>`, []NodeKind{KindDirCommentConstructor, KindDirPIConstructor}},
		{"map and lookup", dialect.Default(), `map { "a": 1, "b": 2 }?a`, []NodeKind{KindMapConstructor, KindMapConstructorEntry, KindPostfixExpr, KindLookup}},
		{"arrays", dialect.Default(), `array { 1 }, [1, 2](1)`, []NodeKind{KindCurlyArrayConstructor, KindSquareArrayConstructor, KindArgumentList}},
		{
			"function items",
			dialect.Default(),
			`function($a) { $a }, f#1, f(?, 1)`,
			[]NodeKind{KindInlineFunctionExpr, KindNamedFunctionRef, KindFunctionCall, KindArgumentPlaceholder},
		},
		{"arrow", dialect.Default(), `1 => f()`, []NodeKind{KindArrowExpr, KindArgumentList}},
		{
			"typeswitch",
			dialect.Default(),
			`typeswitch ($x) case xs:integer return 1 default return 2`,
			[]NodeKind{KindTypeswitchExpr, KindCaseClause, KindDefaultCaseClause, KindAtomicOrUnionType},
		},
		{"switch", dialect.Default(), `switch (1) case 1 return 2 default return 3`, []NodeKind{KindSwitchExpr, KindSwitchCaseClause}},
		{"try catch", dialect.Default(), `try { 1 } catch * { 2 }`, []NodeKind{KindTryCatchExpr, KindTryClause, KindCatchClause, KindCatchErrorList, KindWildcard}},
		{"if", dialect.Default(), `if (1) then 2 else 3`, []NodeKind{KindIfExpr}},
		{"quantified", dialect.Default(), `some $x in (1, 2) satisfies $x = 1`, []NodeKind{KindQuantifiedExpr}},
		{
			"axis steps",
			dialect.Default(),
			`child::a/@b/../text()`,
			[]NodeKind{KindRelativePathExpr, KindForwardStep, KindForwardAxis, KindAbbrevForwardStep, KindAbbrevReverseStep, KindTextTest},
		},
		{"predicate", dialect.Default(), `//a[1]`, []NodeKind{KindPathExpr, KindAxisStep, KindPredicate}},
		{"instance of", dialect.Default(), `$x instance of xs:integer+`, []NodeKind{KindInstanceofExpr, KindSequenceType}},
		{"cast", dialect.Default(), `$x cast as xs:integer?`, []NodeKind{KindCastExpr, KindSingleType}},
		{"uri qualified name", dialect.Default(), `Q{urn:x}a`, []NodeKind{KindURIQualifiedName}},
		{
			"string constructor",
			dialect.Default(),
			"``[a`{1}`b]``",
			[]NodeKind{KindStringConstructor, KindStringConstructorContent, KindStringConstructorInterpolation},
		},
		{"string concat", dialect.Default(), `"a" || "b"`, []NodeKind{KindStringConcatExpr, KindStringLiteral}},
		{"extension expression", dialect.Default(), `(# ext:p contents #) { 1 }`, []NodeKind{KindExtensionExpr, KindPragma, KindQName}},
		{"validate", dialect.Default(), `validate lax { 1 }`, []NodeKind{KindValidateExpr}},
		{
			"computed constructors",
			dialect.Default(),
			`element a { 1 }, attribute { "b" } { 2 }, text { 3 }, namespace p { "u" }, processing-instruction p { 1 }, document { 1 }`,
			[]NodeKind{KindCompElemConstructor, KindCompAttrConstructor, KindCompTextConstructor, KindCompNamespaceConstructor, KindCompPIConstructor, KindCompDocConstructor},
		},
		{
			"full text selection",
			ft,
			`$x contains text "a" ftand ("b" ftor "c") using stemming weight { 0.5 } ordered window 5 words without content $y`,
			[]NodeKind{KindFTContainsExpr, KindFTSelection, KindFTAnd, KindFTOr, KindFTMatchOptions, KindFTStemOption, KindFTWeight, KindFTOrder, KindFTWindow, KindFTUnit, KindFTIgnoreOption},
		},
		{"full text score", ft, `let score $s := $x contains text "a" return $s`, []NodeKind{KindLetBinding, KindFTScoreVar}},
		{"full text option decl", ft, `declare ft-option using stemming; 1`, []NodeKind{KindFTOptionDecl}},
		{
			"saxon tuple type",
			dialect.Default().With(dialect.SpecSaxon98),
			`1 instance of tuple(a: xs:string, *)`,
			[]NodeKind{KindTupleType, KindTupleField},
		},
		{"saxon type decl", dialect.Default().With(dialect.SpecSaxon98), `declare type my:t = xs:integer; 1`, []NodeKind{KindTypeDecl}},
		{
			"saxon map assignment",
			dialect.Config{Language: dialect.XQuery, XQuery10: true, Saxon94: true},
			`map { "a" := 1 }`,
			[]NodeKind{KindMapConstructor, KindMapConstructorEntry},
		},
		{"xpath for", dialect.XPath31(), `for $x in 1 return $x`, []NodeKind{KindXPath, KindForExpr, KindSimpleForClause, KindSimpleForBinding}},
		{"xpath let", dialect.XPath31(), `let $x := 1 return $x`, []NodeKind{KindLetExpr, KindSimpleLetClause, KindSimpleLetBinding}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Parse(tt.input, tt.cfg)
			checkTree(t, root, tt.input)
			assert.Empty(t, Diagnostics(root))
			for _, kind := range tt.kinds {
				assert.NotNil(t, findFirst(root, kind), "missing %s", kind)
			}
		})
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
	}{
		{"unclosed string", `"abc`, CodeSyntax, msgUnclosedString},
		{"unclosed comment", "1 (: x", CodeSyntax, msgUnclosedComment},
		{"lone return", "return 1", CodeSyntax, msgMissingForOrLet},
		{"double wildcard", "*:*", CodeSyntax, msgDoubleWildcard},
		{"tag mismatch", "<a>{1}</b>", CodeTagMismatch, msgTagMismatch},
		{"unclosed element", "<a>", CodeSyntax, msgUnclosedElement},
		{"invalid char ref", `"&#0;"`, CodeCharRef, msgInvalidCharRef},
		{"cdata outside content", "<![CDATA[x]]>", CodeSyntax, msgCDataOutside},
		{"missing operand", "1 +", CodeSyntax, msgExpectedExpr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Parse(tt.input, dialect.Default())
			checkTree(t, root, tt.input)
			diags := Diagnostics(root)
			require.NotEmpty(t, diags)
			assert.Equal(t, tt.code, diags[0].Code)
			assert.Equal(t, tt.message, diags[0].Message)
		})
	}
}

func TestParseTotality(t *testing.T) {
	inputs := []string{
		"", " ", "(:", "1 +", "<a>", "\x00", "\xed\xa0\x80", "for", "declare",
		"'unclosed", "<a><b></a>", "map{", "``[", "%", "}", ")", "(#", "$",
		"declare function", "module namespace", "<a b='{'/>", "let $x :=",
		"typeswitch (", "1 instance of", "element {", "a[", "?", "@", "//",
		"xquery version", "import module", "try {", "for $x in 1 return",
		"<!-- x", "<?pi", "Q{", "1e", ";;;", "1; 2", "\r\n(: :)\t",
	}
	configs := map[string]dialect.Config{
		"xquery":   dialect.Default(),
		"xpath":    dialect.XPath31(),
		"fulltext": dialect.Default().With(dialect.SpecFullText10),
		"saxon":    dialect.Default().With(dialect.SpecSaxon98),
	}
	for name, cfg := range configs {
		for _, input := range inputs {
			t.Run(name+"/"+input, func(t *testing.T) {
				checkTree(t, Parse(input, cfg), input)
			})
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	input := `declare variable $x := <a>{1 + }</a>; for $y in $x return ($y, `
	first := Parse(input, dialect.Default())
	second := Parse(input, dialect.Default())
	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, Diagnostics(first), Diagnostics(second))
}

func TestDialectGating(t *testing.T) {
	tests := []struct {
		name      string
		cfg       dialect.Config
		input     string
		kind      NodeKind
		present   bool
		wantDiags bool
	}{
		{"switch in 3.0", dialect.Default(), `switch (1) case 1 return 2 default return 3`, KindSwitchExpr, true, false},
		{"switch in 1.0", dialect.Config{XQuery10: true}, `switch (1) case 1 return 2 default return 3`, KindSwitchExpr, false, true},
		{"prolog in xpath", dialect.XPath31(), `declare variable $x := 1; $x`, KindVarDecl, false, true},
		{"tuple without saxon", dialect.Default(), `1 instance of tuple(a)`, KindTupleType, false, true},
		{"tuple with saxon", dialect.Default().With(dialect.SpecSaxon98), `1 instance of tuple(a)`, KindTupleType, true, false},
		{"map in 1.0", dialect.Config{XQuery10: true}, `map { 1: 2 }`, KindMapConstructor, false, true},
		{"order by in 1.0", dialect.Config{XQuery10: true}, `for $x in 1 order by $x return $x`, KindOrderByClause, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Parse(tt.input, tt.cfg)
			checkTree(t, root, tt.input)
			assert.Equal(t, tt.present, findFirst(root, tt.kind) != nil)
			assert.Equal(t, tt.wantDiags, len(Diagnostics(root)) > 0)
		})
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"1 +", false},
		{"1 + 2", true},
		{"<a>", false},
		{"(1, 2", false},
		{"for $x in 1 return $x", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseModule(strings.NewReader(tt.input)).IsComplete())
		})
	}
}

func TestCancelledParse(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := ParseModule(strings.NewReader("1 + 2"), WithContext(ctx))
	assert.Nil(t, p.Finish())
	assert.ErrorIs(t, p.Err(), context.Canceled)
}

func TestReset(t *testing.T) {
	p := ParseModule(strings.NewReader("1"))
	first := p.Finish()
	require.NotNil(t, first)

	p.Reset(strings.NewReader("2 + 3"))
	second := p.Finish()
	checkTree(t, second, "2 + 3")
	assert.NotNil(t, findFirst(second, KindAdditiveExpr))
	assert.Nil(t, findFirst(first, KindAdditiveExpr))
}

func TestFileAndStartLine(t *testing.T) {
	root := ParseModule(strings.NewReader("(1,\n2)"), WithFile("q.xq"), WithStartLine(10)).Finish()
	checkTree(t, root, "(1,\n2)")

	var two *Node
	Walk(root, func(n *Node) bool {
		if n.Token != nil && n.Token.Literal == "2" {
			two = n
		}
		return true
	})
	require.NotNil(t, two)
	assert.Equal(t, "q.xq", two.Span.Start.File)
	assert.Equal(t, 11, two.Span.Start.Line)
	assert.Equal(t, 1, two.Span.Start.Column)
}

func TestDiagnosticString(t *testing.T) {
	root := ParseModule(strings.NewReader("1 +"), WithFile("q.xq")).Finish()
	diags := Diagnostics(root)
	require.Len(t, diags, 1)
	assert.Equal(t, "q.xq:1:4: XPST0003: Expected expression.", diags[0].String())
}

func TestInspect(t *testing.T) {
	root := Parse("(1, (2))", dialect.Default())

	depth, deepest := 0, 0
	var leaves int
	Inspect(root, func(n *Node) bool {
		if n == nil {
			depth--
			return false
		}
		depth++
		if depth > deepest {
			deepest = depth
		}
		if n.IsToken() && n.Token.Literal == "2" {
			leaves++
		}
		return true
	})

	assert.Equal(t, 0, depth)
	assert.Equal(t, 1, leaves)
	assert.Greater(t, deepest, 3)
}

func TestNodeAt(t *testing.T) {
	input := "let $name := 1 return $name"
	root := Parse(input, dialect.Default())

	n := NodeAt(root, strings.LastIndex(input, "name")+2)
	require.NotNil(t, n)
	require.NotNil(t, n.Token)
	assert.Equal(t, "name", n.Token.Literal)

	path := Ancestors(root, n)
	require.NotEmpty(t, path)
	assert.Equal(t, root, path[0])
	assert.Equal(t, n, path[len(path)-1])

	var kinds []NodeKind
	for _, a := range path {
		kinds = append(kinds, a.Kind)
	}
	assert.Contains(t, kinds, KindVarRef)
	assert.Contains(t, kinds, KindReturnClause)

	assert.Nil(t, NodeAt(root, len(input)+1))
}
