package parser

import "strconv"

// Position locates a point in the input. Offset counts bytes, Char counts
// UTF-16 code units from the start of the input, Line and Column are 1-based
// with Column measured in UTF-16 code units.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
	Char   int
}

func (p Position) String() string {
	s := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.File != "" {
		return p.File + ":" + s
	}
	return s
}

type Span struct {
	Start Position
	End   Position
}

func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenWhitespace
	TokenComment
	TokenBadCharacter
	TokenInvalid

	// Names
	TokenNCName
	TokenKeyword
	TokenBracedURILiteral

	// Literals
	TokenIntegerLiteral
	TokenDecimalLiteral
	TokenDoubleLiteral
	TokenStringLiteralStart
	TokenStringLiteralContents
	TokenStringLiteralEnd
	TokenEscapeQuot
	TokenEscapeApos
	TokenPredefinedEntityRef
	TokenCharRef
	TokenPartialEntityRef
	TokenEmptyEntityRef

	// Punctuation and operators
	TokenDollar
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenSemicolon
	TokenColon
	TokenAxisSeparator
	TokenAssign
	TokenDot
	TokenDotDot
	TokenSlash
	TokenDoubleSlash
	TokenAt
	TokenStar
	TokenPlus
	TokenMinus
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenNodePrecedes
	TokenGreater
	TokenGreaterEqual
	TokenNodeFollows
	TokenUnion
	TokenConcat
	TokenBang
	TokenQuestion
	TokenHash
	TokenArrow
	TokenAnnotation
	TokenPragmaBegin
	TokenPragmaEnd
	TokenPragmaContents
	TokenTypeAlias

	// Direct constructors
	TokenTagEnd
	TokenSelfClosingTagEnd
	TokenCloseTagStart
	TokenAttrValueContents
	TokenElementContents
	TokenEscapedLBrace
	TokenEscapedRBrace
	TokenXmlCommentStart
	TokenXmlCommentContents
	TokenXmlCommentEnd
	TokenPIStart
	TokenPIContents
	TokenPIEnd
	TokenCDataStart
	TokenCDataContents
	TokenCDataEnd

	// String constructors
	TokenStringConstructorStart
	TokenStringConstructorChars
	TokenStringConstructorEnd
	TokenInterpolationStart
	TokenInterpolationEnd
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:                    "EOF",
	TokenWhitespace:             "Whitespace",
	TokenComment:                "Comment",
	TokenBadCharacter:           "BadCharacter",
	TokenInvalid:                "InvalidToken",
	TokenNCName:                 "NCName",
	TokenKeyword:                "Keyword",
	TokenBracedURILiteral:       "BracedURILiteral",
	TokenIntegerLiteral:         "IntegerLiteral",
	TokenDecimalLiteral:         "DecimalLiteral",
	TokenDoubleLiteral:          "DoubleLiteral",
	TokenStringLiteralStart:     "StringLiteralStart",
	TokenStringLiteralContents:  "StringLiteralContents",
	TokenStringLiteralEnd:       "StringLiteralEnd",
	TokenEscapeQuot:             "EscapeQuot",
	TokenEscapeApos:             "EscapeApos",
	TokenPredefinedEntityRef:    "PredefinedEntityRef",
	TokenCharRef:                "CharRef",
	TokenPartialEntityRef:       "PartialEntityRef",
	TokenEmptyEntityRef:         "EmptyEntityRef",
	TokenDollar:                 "VariableIndicator",
	TokenLParen:                 "ParenthesisOpen",
	TokenRParen:                 "ParenthesisClose",
	TokenLBracket:               "SquareOpen",
	TokenRBracket:               "SquareClose",
	TokenLBrace:                 "BlockOpen",
	TokenRBrace:                 "BlockClose",
	TokenComma:                  "Comma",
	TokenSemicolon:              "Separator",
	TokenColon:                  "QNameSeparator",
	TokenAxisSeparator:          "AxisSeparator",
	TokenAssign:                 "AssignEquals",
	TokenDot:                    "Dot",
	TokenDotDot:                 "ParentSelector",
	TokenSlash:                  "DirectDescendants",
	TokenDoubleSlash:            "AllDescendants",
	TokenAt:                     "AttributeSelector",
	TokenStar:                   "Star",
	TokenPlus:                   "Plus",
	TokenMinus:                  "Minus",
	TokenEqual:                  "Equal",
	TokenNotEqual:               "NotEqual",
	TokenLess:                   "LessThan",
	TokenLessEqual:              "LessThanOrEqual",
	TokenNodePrecedes:           "NodeBefore",
	TokenGreater:                "GreaterThan",
	TokenGreaterEqual:           "GreaterThanOrEqual",
	TokenNodeFollows:            "NodeAfter",
	TokenUnion:                  "Union",
	TokenConcat:                 "Concatenation",
	TokenBang:                   "MapOperator",
	TokenQuestion:               "Optional",
	TokenHash:                   "FunctionRefPrefix",
	TokenArrow:                  "ArrowOperator",
	TokenAnnotation:             "AnnotationIndicator",
	TokenPragmaBegin:            "PragmaBegin",
	TokenPragmaEnd:              "PragmaEnd",
	TokenPragmaContents:         "PragmaContents",
	TokenTypeAlias:              "TypeAlias",
	TokenTagEnd:                 "EndXmlTag",
	TokenSelfClosingTagEnd:      "SelfClosingXmlTag",
	TokenCloseTagStart:          "CloseXmlTag",
	TokenAttrValueContents:      "AttributeValueContents",
	TokenElementContents:        "XmlElementContents",
	TokenEscapedLBrace:          "EscapedBlockOpen",
	TokenEscapedRBrace:          "EscapedBlockClose",
	TokenXmlCommentStart:        "XmlCommentStartTag",
	TokenXmlCommentContents:     "XmlCommentContents",
	TokenXmlCommentEnd:          "XmlCommentEndTag",
	TokenPIStart:                "ProcessingInstructionBegin",
	TokenPIContents:             "ProcessingInstructionContents",
	TokenPIEnd:                  "ProcessingInstructionEnd",
	TokenCDataStart:             "CDataSectionStartTag",
	TokenCDataContents:          "CDataSectionContents",
	TokenCDataEnd:               "CDataSectionEndTag",
	TokenStringConstructorStart: "StringConstructorStart",
	TokenStringConstructorChars: "StringConstructorChars",
	TokenStringConstructorEnd:   "StringConstructorEnd",
	TokenInterpolationStart:     "StringInterpolationOpen",
	TokenInterpolationEnd:       "StringInterpolationClose",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind are skipped by lookahead.
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenComment
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	// Error is set on tokens the lexer recognised but found malformed.
	Error *Error
}

func (t Token) Start() int {
	return t.Span.Start.Offset
}

func (t Token) End() int {
	return t.Span.End.Offset
}
