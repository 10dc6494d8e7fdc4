package parser

import "github.com/dhamidi/xqparse/xquery/dialect"

// kwContext names the grammar position asking whether a name is a keyword.
// The same spelling may be a keyword in one context and a plain name in
// every other.
type kwContext int

const (
	ctxProlog kwContext = iota
	ctxDecl
	ctxExpr
	ctxClause
	ctxOperator
	ctxAxis
	ctxType
	ctxFullText
)

type keywordSet map[string]dialect.Feature

func words(feature dialect.Feature, spellings ...string) keywordSet {
	set := keywordSet{}
	for _, s := range spellings {
		set[s] = feature
	}
	return set
}

func merge(sets ...keywordSet) keywordSet {
	out := keywordSet{}
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

// keywords maps (context, spelling) to the feature that makes the spelling a
// keyword there. Spellings absent from a context's table are base grammar.
var keywords = map[kwContext]keywordSet{
	ctxProlog: words(dialect.FeatureProlog, "xquery", "module", "declare", "import"),
	ctxDecl: merge(
		words(dialect.FeatureProlog,
			"namespace", "default", "element", "function", "collation", "order",
			"empty", "greatest", "least", "boundary-space", "preserve", "strip",
			"base-uri", "construction", "ordering", "ordered", "unordered",
			"copy-namespaces", "no-preserve", "inherit", "no-inherit", "variable",
			"external", "option", "schema", "module", "at", "version", "encoding"),
		words(dialect.FeatureDecimalFormat,
			"decimal-format", "decimal-separator", "grouping-separator", "infinity",
			"minus-sign", "NaN", "percent", "per-mille", "zero-digit", "digit",
			"pattern-separator", "exponent-separator"),
		words(dialect.FeatureContextItemDecl, "context", "item"),
		words(dialect.FeatureFullText, "ft-option"),
		words(dialect.FeatureTypeDecl, "type"),
	),
	ctxExpr: merge(
		words(dialect.FeatureCore, "for", "some", "every", "if", "return"),
		words(dialect.FeatureLetClause, "let"),
		words(dialect.FeatureSwitch, "switch"),
		words(dialect.FeatureTypeswitch, "typeswitch"),
		words(dialect.FeatureTryCatch, "try"),
		words(dialect.FeatureValidate, "validate"),
		words(dialect.FeatureOrderedExpr, "ordered", "unordered"),
		words(dialect.FeatureComputedConstructors,
			"document", "element", "attribute", "text", "comment", "processing-instruction"),
		words(dialect.FeatureComputedNamespace, "namespace"),
		words(dialect.FeatureInlineFunction, "function"),
		words(dialect.FeatureMapConstructor, "map"),
		words(dialect.FeatureArrayConstructor, "array"),
	),
	ctxClause: merge(
		words(dialect.FeatureCore,
			"for", "in", "at", "as", "return", "satisfies", "then", "else", "of"),
		words(dialect.FeatureLetClause, "let"),
		words(dialect.FeatureWindowClause,
			"tumbling", "sliding", "window", "start", "end", "only", "when", "previous", "next"),
		words(dialect.FeatureAllowingEmpty, "allowing", "empty"),
		words(dialect.FeatureProlog, "where", "case", "default"),
		words(dialect.FeatureGroupByClause, "group"),
		words(dialect.FeatureOrderByClause,
			"order", "by", "stable", "ascending", "descending", "greatest", "least", "collation"),
		words(dialect.FeatureCountClause, "count"),
		words(dialect.FeatureTryCatch, "catch"),
		words(dialect.FeatureValidate, "lax", "strict", "type"),
		words(dialect.FeatureFullText, "score"),
	),
	ctxOperator: merge(
		words(dialect.FeatureCore,
			"or", "and", "eq", "ne", "lt", "le", "gt", "ge", "is", "to", "div", "idiv",
			"mod", "union", "intersect", "except", "instance", "treat", "castable", "cast"),
		words(dialect.FeatureFullText, "contains"),
	),
	ctxAxis: words(dialect.FeatureCore,
		"child", "descendant", "attribute", "self", "descendant-or-self",
		"following-sibling", "following", "namespace", "parent", "ancestor",
		"preceding-sibling", "preceding", "ancestor-or-self"),
	ctxType: merge(
		words(dialect.FeatureCore,
			"empty-sequence", "item", "node", "document-node", "element", "attribute",
			"schema-element", "schema-attribute", "processing-instruction", "comment",
			"text"),
		words(dialect.FeatureNamespaceNodeTest, "namespace-node"),
		words(dialect.FeatureFunctionTest, "function"),
		words(dialect.FeatureMapTest, "map"),
		words(dialect.FeatureArrayTest, "array"),
		words(dialect.FeatureTupleType, "tuple"),
		words(dialect.FeatureUnionType, "union"),
	),
	ctxFullText: words(dialect.FeatureFullText,
		"text", "ftor", "ftand", "not", "in", "ftnot", "weight", "any", "all", "word",
		"words", "phrase", "occurs", "times", "exactly", "least", "most", "from", "to",
		"at", "ordered", "window", "distance", "sentences", "paragraphs", "same",
		"different", "sentence", "paragraph", "start", "end", "entire", "content",
		"using", "case", "insensitive", "sensitive", "lowercase", "uppercase",
		"diacritics", "stemming", "no", "thesaurus", "default", "relationship",
		"levels", "stop", "union", "except", "language", "wildcards", "option",
		"without"),
}

// reservedFunctionNames cannot be used as unprefixed function names: a
// call-shaped use of them is always the keyword construct.
var reservedFunctionNames = map[string]bool{
	"array": true, "attribute": true, "comment": true, "document-node": true,
	"element": true, "empty-sequence": true, "function": true, "if": true,
	"item": true, "map": true, "namespace-node": true, "node": true,
	"processing-instruction": true, "schema-attribute": true,
	"schema-element": true, "switch": true, "text": true, "typeswitch": true,
}

func (p *Parser) keywordEnabled(ctx kwContext, word string) bool {
	feature, ok := keywords[ctx][word]
	if !ok {
		feature = dialect.FeatureCore
	}
	return p.cfg.Supports(feature)
}
