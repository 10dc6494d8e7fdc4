package workspace

import (
	"fmt"

	"github.com/dhamidi/xqparse/xquery/parser"
)

type SymbolKind int

const (
	SymbolModule SymbolKind = iota
	SymbolNamespace
	SymbolImport
	SymbolVariable
	SymbolFunction
	SymbolOption
	SymbolType
)

// Symbol is a named prolog declaration.
type Symbol struct {
	Name string
	Kind SymbolKind
	// Span covers the whole declaration, NameSpan only its name.
	Span     parser.Span
	NameSpan parser.Span
	// Detail is "#N" for a function of arity N.
	Detail string
}

var symbolKinds = map[parser.NodeKind]SymbolKind{
	parser.KindModuleDecl:    SymbolModule,
	parser.KindNamespaceDecl: SymbolNamespace,
	parser.KindModuleImport:  SymbolImport,
	parser.KindSchemaImport:  SymbolImport,
	parser.KindVarDecl:       SymbolVariable,
	parser.KindFunctionDecl:  SymbolFunction,
	parser.KindOptionDecl:    SymbolOption,
	parser.KindTypeDecl:      SymbolType,
}

// Symbols lists the declarations of a module in document order. Function
// bodies and variable values are not searched.
func Symbols(root *parser.Node) []Symbol {
	var out []Symbol
	parser.Walk(root, func(n *parser.Node) bool {
		kind, ok := symbolKinds[n.Kind]
		if !ok {
			return n.Kind != parser.KindQueryBody
		}
		sym := Symbol{Kind: kind, Span: n.Span, NameSpan: n.Span}
		if name := declName(n); name != nil {
			sym.Name = name.Text()
			sym.NameSpan = name.Span
		} else if uri := n.FirstChildOfKind(parser.KindStringLiteral); uri != nil {
			sym.Name = uri.Text()
			sym.NameSpan = uri.Span
		}
		if n.Kind == parser.KindFunctionDecl {
			sym.Detail = fmt.Sprintf("#%d", arity(n))
		}
		if sym.Name != "" {
			out = append(out, sym)
		}
		return false
	})
	return out
}

func arity(fn *parser.Node) int {
	params := fn.FirstChildOfKind(parser.KindParamList)
	if params == nil {
		return 0
	}
	return len(params.ChildrenOfKind(parser.KindParam))
}

func declName(n *parser.Node) *parser.Node {
	for _, child := range n.Children {
		switch child.Kind {
		case parser.KindNCName, parser.KindQName, parser.KindURIQualifiedName:
			return child
		}
	}
	return nil
}

// foldable are the constructs worth collapsing in an editor.
var foldable = map[parser.NodeKind]bool{
	parser.KindFunctionDecl:       true,
	parser.KindVarDecl:            true,
	parser.KindFLWORExpr:          true,
	parser.KindEnclosedExpr:       true,
	parser.KindDirElemConstructor: true,
	parser.KindMapConstructor:     true,
	parser.KindSwitchExpr:         true,
	parser.KindTypeswitchExpr:     true,
	parser.KindTryCatchExpr:       true,
	parser.KindIfExpr:             true,
}

// FoldingRange spans whole lines, both 1-based.
type FoldingRange struct {
	StartLine int
	EndLine   int
	Comment   bool
}

// FoldingRanges returns the multi-line foldable constructs and comments of
// a tree. Ranges starting on the same line are reported once, outermost
// first.
func FoldingRanges(root *parser.Node) []FoldingRange {
	var out []FoldingRange
	seen := make(map[int]bool)
	parser.Walk(root, func(n *parser.Node) bool {
		start, end := n.Span.Start.Line, n.Span.End.Line
		if end <= start || seen[start] {
			return true
		}
		switch {
		case n.Token != nil && n.Token.Kind == parser.TokenComment:
			out = append(out, FoldingRange{StartLine: start, EndLine: end, Comment: true})
			seen[start] = true
		case foldable[n.Kind]:
			out = append(out, FoldingRange{StartLine: start, EndLine: end})
			seen[start] = true
		}
		return true
	})
	return out
}
