package dialect

import (
	"fmt"
	"strings"
)

// Spec names one toggleable grammar layer.
type Spec int

const (
	SpecXQuery10 Spec = iota
	SpecXQuery30
	SpecXQuery31
	SpecFullText10
	SpecSaxon94
	SpecSaxon98
)

var allSpecs = []Spec{SpecXQuery10, SpecXQuery30, SpecXQuery31, SpecFullText10, SpecSaxon94, SpecSaxon98}

var specNames = map[Spec]string{
	SpecXQuery10:   "xquery-1.0",
	SpecXQuery30:   "xquery-3.0",
	SpecXQuery31:   "xquery-3.1",
	SpecFullText10: "full-text-1.0",
	SpecSaxon94:    "saxon-9.4",
	SpecSaxon98:    "saxon-9.8",
}

func (s Spec) String() string {
	if name, ok := specNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSpec accepts a specification name as printed by String, or the
// configuration key form ("fulltext10", "saxon98").
func ParseSpec(name string) (Spec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range allSpecs {
		if key == specNames[s] || key == specKey(s) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown specification %q", name)
}

func specKey(s Spec) string {
	return strings.NewReplacer("-", "", ".", "").Replace(specNames[s])
}

// Feature is an optional production reachable from one of the parser's
// extension points.
type Feature int

const (
	FeatureCore Feature = iota
	FeatureProlog
	FeatureDirectConstructors
	FeatureComputedConstructors
	FeatureOrderByClause
	FeatureTypeswitch
	FeatureValidate
	FeatureOrderedExpr
	FeatureExtensionExpr
	FeatureEntityRefs
	FeatureLetClause
	FeatureWindowClause
	FeatureGroupByClause
	FeatureCountClause
	FeatureAllowingEmpty
	FeatureSwitch
	FeatureTryCatch
	FeatureInlineFunction
	FeatureNamedFunctionRef
	FeatureArgumentPlaceholder
	FeatureSimpleMap
	FeatureStringConcat
	FeatureAnnotations
	FeatureDecimalFormat
	FeatureContextItemDecl
	FeatureURIQualifiedName
	FeatureFunctionTest
	FeatureNamespaceNodeTest
	FeatureParenthesizedItemType
	FeatureComputedNamespace
	FeatureMapConstructor
	FeatureArrayConstructor
	FeatureMapTest
	FeatureArrayTest
	FeatureLookup
	FeatureArrowExpr
	FeatureStringConstructor
	FeatureFullText
	FeatureSaxonMapAssign
	FeatureTupleType
	FeatureUnionType
	FeatureTypeDecl
	FeatureTypeAlias
)

type featureEntry struct {
	name  string
	anyOf []Spec
	xpath bool
}

// registry maps each feature to the specifications that contribute it. A
// feature is available when any listed specification is active; entries
// without xpath are XQuery-only productions.
var registry = map[Feature]featureEntry{
	FeatureCore:                  {"core", []Spec{SpecXQuery10}, true},
	FeatureProlog:                {"prolog", []Spec{SpecXQuery10}, false},
	FeatureDirectConstructors:    {"direct-constructors", []Spec{SpecXQuery10}, false},
	FeatureComputedConstructors:  {"computed-constructors", []Spec{SpecXQuery10}, false},
	FeatureOrderByClause:         {"order-by-clause", []Spec{SpecXQuery10}, false},
	FeatureTypeswitch:            {"typeswitch", []Spec{SpecXQuery10}, false},
	FeatureValidate:              {"validate", []Spec{SpecXQuery10}, false},
	FeatureOrderedExpr:           {"ordered-expr", []Spec{SpecXQuery10}, false},
	FeatureExtensionExpr:         {"extension-expr", []Spec{SpecXQuery10}, false},
	FeatureEntityRefs:            {"entity-refs", []Spec{SpecXQuery10}, false},
	FeatureLetClause:             {"let-clause", []Spec{SpecXQuery10}, true},
	FeatureWindowClause:          {"window-clause", []Spec{SpecXQuery30}, false},
	FeatureGroupByClause:         {"group-by-clause", []Spec{SpecXQuery30}, false},
	FeatureCountClause:           {"count-clause", []Spec{SpecXQuery30}, false},
	FeatureAllowingEmpty:         {"allowing-empty", []Spec{SpecXQuery30}, false},
	FeatureSwitch:                {"switch", []Spec{SpecXQuery30}, false},
	FeatureTryCatch:              {"try-catch", []Spec{SpecXQuery30}, false},
	FeatureInlineFunction:        {"inline-function", []Spec{SpecXQuery30}, true},
	FeatureNamedFunctionRef:      {"named-function-ref", []Spec{SpecXQuery30}, true},
	FeatureArgumentPlaceholder:   {"argument-placeholder", []Spec{SpecXQuery30}, true},
	FeatureSimpleMap:             {"simple-map", []Spec{SpecXQuery30}, true},
	FeatureStringConcat:          {"string-concat", []Spec{SpecXQuery30}, true},
	FeatureAnnotations:           {"annotations", []Spec{SpecXQuery30}, false},
	FeatureDecimalFormat:         {"decimal-format", []Spec{SpecXQuery30}, false},
	FeatureContextItemDecl:       {"context-item-decl", []Spec{SpecXQuery30}, false},
	FeatureURIQualifiedName:      {"uri-qualified-name", []Spec{SpecXQuery30}, true},
	FeatureFunctionTest:          {"function-test", []Spec{SpecXQuery30}, true},
	FeatureNamespaceNodeTest:     {"namespace-node-test", []Spec{SpecXQuery30}, true},
	FeatureParenthesizedItemType: {"parenthesized-item-type", []Spec{SpecXQuery30}, true},
	FeatureComputedNamespace:     {"computed-namespace", []Spec{SpecXQuery30}, false},
	FeatureMapConstructor:        {"map-constructor", []Spec{SpecXQuery31, SpecSaxon94}, true},
	FeatureArrayConstructor:      {"array-constructor", []Spec{SpecXQuery31}, true},
	FeatureMapTest:               {"map-test", []Spec{SpecXQuery31, SpecSaxon94}, true},
	FeatureArrayTest:             {"array-test", []Spec{SpecXQuery31}, true},
	FeatureLookup:                {"lookup", []Spec{SpecXQuery31}, true},
	FeatureArrowExpr:             {"arrow-expr", []Spec{SpecXQuery31}, true},
	FeatureStringConstructor:     {"string-constructor", []Spec{SpecXQuery31}, false},
	FeatureFullText:              {"full-text", []Spec{SpecFullText10}, true},
	FeatureSaxonMapAssign:        {"saxon-map-assign", []Spec{SpecSaxon94}, true},
	FeatureTupleType:             {"tuple-type", []Spec{SpecSaxon98}, true},
	FeatureUnionType:             {"union-type", []Spec{SpecSaxon98}, true},
	FeatureTypeDecl:              {"type-decl", []Spec{SpecSaxon98}, false},
	FeatureTypeAlias:             {"type-alias", []Spec{SpecSaxon98}, true},
}

func (f Feature) String() string {
	if entry, ok := registry[f]; ok {
		return entry.name
	}
	return "unknown"
}
