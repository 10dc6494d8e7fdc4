package parser

type NodeKind int

const (
	KindError NodeKind = iota
	// KindToken is a leaf wrapping a single Token.
	KindToken

	// Module structure
	KindModule
	KindVersionDecl
	KindMainModule
	KindLibraryModule
	KindModuleDecl
	KindProlog
	KindQueryBody
	KindXPath
	KindDefaultNamespaceDecl
	KindNamespaceDecl
	KindBoundarySpaceDecl
	KindDefaultCollationDecl
	KindBaseURIDecl
	KindConstructionDecl
	KindOrderingModeDecl
	KindEmptyOrderDecl
	KindCopyNamespacesDecl
	KindDecimalFormatDecl
	KindDFPropertyName
	KindSchemaImport
	KindSchemaPrefix
	KindModuleImport
	KindContextItemDecl
	KindAnnotatedDecl
	KindAnnotation
	KindVarDecl
	KindFunctionDecl
	KindParamList
	KindParam
	KindFunctionBody
	KindOptionDecl
	KindFTOptionDecl
	KindTypeDecl

	// Names
	KindNCName
	KindQName
	KindURIQualifiedName
	KindWildcard

	// FLWOR and friends
	KindExpr
	KindFLWORExpr
	KindForClause
	KindForBinding
	KindAllowingEmpty
	KindPositionalVar
	KindLetClause
	KindLetBinding
	KindWindowClause
	KindTumblingWindowClause
	KindSlidingWindowClause
	KindWindowStartCondition
	KindWindowEndCondition
	KindWindowVars
	KindWhereClause
	KindGroupByClause
	KindGroupingSpecList
	KindGroupingSpec
	KindOrderByClause
	KindOrderSpecList
	KindOrderSpec
	KindOrderModifier
	KindCountClause
	KindReturnClause
	KindForExpr
	KindSimpleForClause
	KindSimpleForBinding
	KindLetExpr
	KindSimpleLetClause
	KindSimpleLetBinding
	KindQuantifiedExpr
	KindSwitchExpr
	KindSwitchCaseClause
	KindTypeswitchExpr
	KindCaseClause
	KindDefaultCaseClause
	KindIfExpr
	KindTryCatchExpr
	KindTryClause
	KindCatchClause
	KindCatchErrorList

	// Operators
	KindOrExpr
	KindAndExpr
	KindComparisonExpr
	KindStringConcatExpr
	KindRangeExpr
	KindAdditiveExpr
	KindMultiplicativeExpr
	KindUnionExpr
	KindIntersectExceptExpr
	KindInstanceofExpr
	KindTreatExpr
	KindCastableExpr
	KindCastExpr
	KindArrowExpr
	KindUnaryExpr
	KindValidateExpr
	KindExtensionExpr
	KindPragma
	KindSimpleMapExpr

	// Paths
	KindPathExpr
	KindRelativePathExpr
	KindAxisStep
	KindForwardStep
	KindReverseStep
	KindForwardAxis
	KindReverseAxis
	KindAbbrevForwardStep
	KindAbbrevReverseStep
	KindNameTest
	KindPostfixExpr
	KindArgumentList
	KindArgumentPlaceholder
	KindPredicate
	KindLookup
	KindUnaryLookup
	KindKeySpecifier

	// Primary expressions
	KindStringLiteral
	KindVarRef
	KindParenthesizedExpr
	KindContextItemExpr
	KindOrderedExpr
	KindUnorderedExpr
	KindFunctionCall
	KindNamedFunctionRef
	KindInlineFunctionExpr
	KindMapConstructor
	KindMapConstructorEntry
	KindSquareArrayConstructor
	KindCurlyArrayConstructor
	KindStringConstructor
	KindStringConstructorContent
	KindStringConstructorInterpolation
	KindEnclosedExpr

	// Constructors
	KindDirElemConstructor
	KindDirAttributeList
	KindDirAttribute
	KindDirAttributeValue
	KindDirElemContent
	KindDirCommentConstructor
	KindDirPIConstructor
	KindCDataSection
	KindCompDocConstructor
	KindCompElemConstructor
	KindCompAttrConstructor
	KindCompNamespaceConstructor
	KindCompTextConstructor
	KindCompCommentConstructor
	KindCompPIConstructor

	// Types
	KindTypeDeclaration
	KindSequenceType
	KindSequenceTypeUnion
	KindAtomicOrUnionType
	KindSingleType
	KindSimpleTypeName
	KindAnyItemType
	KindDocumentTest
	KindElementTest
	KindAttributeTest
	KindSchemaElementTest
	KindSchemaAttributeTest
	KindPITest
	KindCommentTest
	KindTextTest
	KindNamespaceNodeTest
	KindAnyKindTest
	KindAnyFunctionTest
	KindTypedFunctionTest
	KindAnyMapTest
	KindTypedMapTest
	KindAnyArrayTest
	KindTypedArrayTest
	KindParenthesizedItemType
	KindTupleType
	KindTupleField
	KindUnionType
	KindTypeAlias

	// Full Text
	KindFTContainsExpr
	KindFTSelection
	KindFTOr
	KindFTAnd
	KindFTMildNot
	KindFTUnaryNot
	KindFTPrimaryWithOptions
	KindFTWeight
	KindFTPrimary
	KindFTWords
	KindFTWordsValue
	KindFTExtensionSelection
	KindFTAnyallOption
	KindFTTimes
	KindFTRange
	KindFTOrder
	KindFTWindow
	KindFTDistance
	KindFTScope
	KindFTContent
	KindFTUnit
	KindFTBigUnit
	KindFTMatchOptions
	KindFTLanguageOption
	KindFTWildCardOption
	KindFTThesaurusOption
	KindFTThesaurusID
	KindFTLiteralRange
	KindFTStemOption
	KindFTCaseOption
	KindFTDiacriticsOption
	KindFTStopWordOption
	KindFTStopWords
	KindFTStopWordsInclExcl
	KindFTExtensionOption
	KindFTIgnoreOption
	KindFTScoreVar
)

var nodeKindNames = map[NodeKind]string{
	KindError:                          "ErrorNode",
	KindToken:                          "Token",
	KindModule:                         "Module",
	KindVersionDecl:                    "VersionDecl",
	KindMainModule:                     "MainModule",
	KindLibraryModule:                  "LibraryModule",
	KindModuleDecl:                     "ModuleDecl",
	KindProlog:                         "Prolog",
	KindQueryBody:                      "QueryBody",
	KindXPath:                          "XPath",
	KindDefaultNamespaceDecl:           "DefaultNamespaceDecl",
	KindNamespaceDecl:                  "NamespaceDecl",
	KindBoundarySpaceDecl:              "BoundarySpaceDecl",
	KindDefaultCollationDecl:           "DefaultCollationDecl",
	KindBaseURIDecl:                    "BaseURIDecl",
	KindConstructionDecl:               "ConstructionDecl",
	KindOrderingModeDecl:               "OrderingModeDecl",
	KindEmptyOrderDecl:                 "EmptyOrderDecl",
	KindCopyNamespacesDecl:             "CopyNamespacesDecl",
	KindDecimalFormatDecl:              "DecimalFormatDecl",
	KindDFPropertyName:                 "DFPropertyName",
	KindSchemaImport:                   "SchemaImport",
	KindSchemaPrefix:                   "SchemaPrefix",
	KindModuleImport:                   "ModuleImport",
	KindContextItemDecl:                "ContextItemDecl",
	KindAnnotatedDecl:                  "AnnotatedDecl",
	KindAnnotation:                     "Annotation",
	KindVarDecl:                        "VarDecl",
	KindFunctionDecl:                   "FunctionDecl",
	KindParamList:                      "ParamList",
	KindParam:                          "Param",
	KindFunctionBody:                   "FunctionBody",
	KindOptionDecl:                     "OptionDecl",
	KindFTOptionDecl:                   "FTOptionDecl",
	KindTypeDecl:                       "TypeDecl",
	KindNCName:                         "NCName",
	KindQName:                          "QName",
	KindURIQualifiedName:               "URIQualifiedName",
	KindWildcard:                       "Wildcard",
	KindExpr:                           "Expr",
	KindFLWORExpr:                      "FLWORExpr",
	KindForClause:                      "ForClause",
	KindForBinding:                     "ForBinding",
	KindAllowingEmpty:                  "AllowingEmpty",
	KindPositionalVar:                  "PositionalVar",
	KindLetClause:                      "LetClause",
	KindLetBinding:                     "LetBinding",
	KindWindowClause:                   "WindowClause",
	KindTumblingWindowClause:           "TumblingWindowClause",
	KindSlidingWindowClause:            "SlidingWindowClause",
	KindWindowStartCondition:           "WindowStartCondition",
	KindWindowEndCondition:             "WindowEndCondition",
	KindWindowVars:                     "WindowVars",
	KindWhereClause:                    "WhereClause",
	KindGroupByClause:                  "GroupByClause",
	KindGroupingSpecList:               "GroupingSpecList",
	KindGroupingSpec:                   "GroupingSpec",
	KindOrderByClause:                  "OrderByClause",
	KindOrderSpecList:                  "OrderSpecList",
	KindOrderSpec:                      "OrderSpec",
	KindOrderModifier:                  "OrderModifier",
	KindCountClause:                    "CountClause",
	KindReturnClause:                   "ReturnClause",
	KindForExpr:                        "ForExpr",
	KindSimpleForClause:                "SimpleForClause",
	KindSimpleForBinding:               "SimpleForBinding",
	KindLetExpr:                        "LetExpr",
	KindSimpleLetClause:                "SimpleLetClause",
	KindSimpleLetBinding:               "SimpleLetBinding",
	KindQuantifiedExpr:                 "QuantifiedExpr",
	KindSwitchExpr:                     "SwitchExpr",
	KindSwitchCaseClause:               "SwitchCaseClause",
	KindTypeswitchExpr:                 "TypeswitchExpr",
	KindCaseClause:                     "CaseClause",
	KindDefaultCaseClause:              "DefaultCaseClause",
	KindIfExpr:                         "IfExpr",
	KindTryCatchExpr:                   "TryCatchExpr",
	KindTryClause:                      "TryClause",
	KindCatchClause:                    "CatchClause",
	KindCatchErrorList:                 "CatchErrorList",
	KindOrExpr:                         "OrExpr",
	KindAndExpr:                        "AndExpr",
	KindComparisonExpr:                 "ComparisonExpr",
	KindStringConcatExpr:               "StringConcatExpr",
	KindRangeExpr:                      "RangeExpr",
	KindAdditiveExpr:                   "AdditiveExpr",
	KindMultiplicativeExpr:             "MultiplicativeExpr",
	KindUnionExpr:                      "UnionExpr",
	KindIntersectExceptExpr:            "IntersectExceptExpr",
	KindInstanceofExpr:                 "InstanceofExpr",
	KindTreatExpr:                      "TreatExpr",
	KindCastableExpr:                   "CastableExpr",
	KindCastExpr:                       "CastExpr",
	KindArrowExpr:                      "ArrowExpr",
	KindUnaryExpr:                      "UnaryExpr",
	KindValidateExpr:                   "ValidateExpr",
	KindExtensionExpr:                  "ExtensionExpr",
	KindPragma:                         "Pragma",
	KindSimpleMapExpr:                  "SimpleMapExpr",
	KindPathExpr:                       "PathExpr",
	KindRelativePathExpr:               "RelativePathExpr",
	KindAxisStep:                       "AxisStep",
	KindForwardStep:                    "ForwardStep",
	KindReverseStep:                    "ReverseStep",
	KindForwardAxis:                    "ForwardAxis",
	KindReverseAxis:                    "ReverseAxis",
	KindAbbrevForwardStep:              "AbbrevForwardStep",
	KindAbbrevReverseStep:              "AbbrevReverseStep",
	KindNameTest:                       "NameTest",
	KindPostfixExpr:                    "PostfixExpr",
	KindArgumentList:                   "ArgumentList",
	KindArgumentPlaceholder:            "ArgumentPlaceholder",
	KindPredicate:                      "Predicate",
	KindLookup:                         "Lookup",
	KindUnaryLookup:                    "UnaryLookup",
	KindKeySpecifier:                   "KeySpecifier",
	KindStringLiteral:                  "StringLiteral",
	KindVarRef:                         "VarRef",
	KindParenthesizedExpr:              "ParenthesizedExpr",
	KindContextItemExpr:                "ContextItemExpr",
	KindOrderedExpr:                    "OrderedExpr",
	KindUnorderedExpr:                  "UnorderedExpr",
	KindFunctionCall:                   "FunctionCall",
	KindNamedFunctionRef:               "NamedFunctionRef",
	KindInlineFunctionExpr:             "InlineFunctionExpr",
	KindMapConstructor:                 "MapConstructor",
	KindMapConstructorEntry:            "MapConstructorEntry",
	KindSquareArrayConstructor:         "SquareArrayConstructor",
	KindCurlyArrayConstructor:          "CurlyArrayConstructor",
	KindStringConstructor:              "StringConstructor",
	KindStringConstructorContent:       "StringConstructorContent",
	KindStringConstructorInterpolation: "StringConstructorInterpolation",
	KindEnclosedExpr:                   "EnclosedExpr",
	KindDirElemConstructor:             "DirElemConstructor",
	KindDirAttributeList:               "DirAttributeList",
	KindDirAttribute:                   "DirAttribute",
	KindDirAttributeValue:              "DirAttributeValue",
	KindDirElemContent:                 "DirElemContent",
	KindDirCommentConstructor:          "DirCommentConstructor",
	KindDirPIConstructor:               "DirPIConstructor",
	KindCDataSection:                   "CDataSection",
	KindCompDocConstructor:             "CompDocConstructor",
	KindCompElemConstructor:            "CompElemConstructor",
	KindCompAttrConstructor:            "CompAttrConstructor",
	KindCompNamespaceConstructor:       "CompNamespaceConstructor",
	KindCompTextConstructor:            "CompTextConstructor",
	KindCompCommentConstructor:         "CompCommentConstructor",
	KindCompPIConstructor:              "CompPIConstructor",
	KindTypeDeclaration:                "TypeDeclaration",
	KindSequenceType:                   "SequenceType",
	KindSequenceTypeUnion:              "SequenceTypeUnion",
	KindAtomicOrUnionType:              "AtomicOrUnionType",
	KindSingleType:                     "SingleType",
	KindSimpleTypeName:                 "SimpleTypeName",
	KindAnyItemType:                    "AnyItemType",
	KindDocumentTest:                   "DocumentTest",
	KindElementTest:                    "ElementTest",
	KindAttributeTest:                  "AttributeTest",
	KindSchemaElementTest:              "SchemaElementTest",
	KindSchemaAttributeTest:            "SchemaAttributeTest",
	KindPITest:                         "PITest",
	KindCommentTest:                    "CommentTest",
	KindTextTest:                       "TextTest",
	KindNamespaceNodeTest:              "NamespaceNodeTest",
	KindAnyKindTest:                    "AnyKindTest",
	KindAnyFunctionTest:                "AnyFunctionTest",
	KindTypedFunctionTest:              "TypedFunctionTest",
	KindAnyMapTest:                     "AnyMapTest",
	KindTypedMapTest:                   "TypedMapTest",
	KindAnyArrayTest:                   "AnyArrayTest",
	KindTypedArrayTest:                 "TypedArrayTest",
	KindParenthesizedItemType:          "ParenthesizedItemType",
	KindTupleType:                      "TupleType",
	KindTupleField:                     "TupleField",
	KindUnionType:                      "UnionType",
	KindTypeAlias:                      "TypeAlias",
	KindFTContainsExpr:                 "FTContainsExpr",
	KindFTSelection:                    "FTSelection",
	KindFTOr:                           "FTOr",
	KindFTAnd:                          "FTAnd",
	KindFTMildNot:                      "FTMildNot",
	KindFTUnaryNot:                     "FTUnaryNot",
	KindFTPrimaryWithOptions:           "FTPrimaryWithOptions",
	KindFTWeight:                       "FTWeight",
	KindFTPrimary:                      "FTPrimary",
	KindFTWords:                        "FTWords",
	KindFTWordsValue:                   "FTWordsValue",
	KindFTExtensionSelection:           "FTExtensionSelection",
	KindFTAnyallOption:                 "FTAnyallOption",
	KindFTTimes:                        "FTTimes",
	KindFTRange:                        "FTRange",
	KindFTOrder:                        "FTOrder",
	KindFTWindow:                       "FTWindow",
	KindFTDistance:                     "FTDistance",
	KindFTScope:                        "FTScope",
	KindFTContent:                      "FTContent",
	KindFTUnit:                         "FTUnit",
	KindFTBigUnit:                      "FTBigUnit",
	KindFTMatchOptions:                 "FTMatchOptions",
	KindFTLanguageOption:               "FTLanguageOption",
	KindFTWildCardOption:               "FTWildCardOption",
	KindFTThesaurusOption:              "FTThesaurusOption",
	KindFTThesaurusID:                  "FTThesaurusID",
	KindFTLiteralRange:                 "FTLiteralRange",
	KindFTStemOption:                   "FTStemOption",
	KindFTCaseOption:                   "FTCaseOption",
	KindFTDiacriticsOption:             "FTDiacriticsOption",
	KindFTStopWordOption:               "FTStopWordOption",
	KindFTStopWords:                    "FTStopWords",
	KindFTStopWordsInclExcl:            "FTStopWordsInclExcl",
	KindFTExtensionOption:              "FTExtensionOption",
	KindFTIgnoreOption:                 "FTIgnoreOption",
	KindFTScoreVar:                     "FTScoreVar",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}
