package parser

import (
	"bytes"
	"strconv"

	"github.com/dhamidi/xqparse/xquery/dialect"
)

// Mode selects the lexical grammar used for one Scan. XML-like and
// string-template substructure is not context free at the token level, so
// the parser picks the mode from the production it is in.
type Mode int

const (
	ModeDefault Mode = iota
	ModeStringQuot
	ModeStringApos
	ModeTag
	ModeAttrQuot
	ModeAttrApos
	ModeElemContent
	ModeXmlComment
	ModePI
	ModeCData
	ModePragma
	ModeStringConstructor
)

var modeNames = map[Mode]string{
	ModeDefault:           "default",
	ModeStringQuot:        "string-quot",
	ModeStringApos:        "string-apos",
	ModeTag:               "tag",
	ModeAttrQuot:          "attr-quot",
	ModeAttrApos:          "attr-apos",
	ModeElemContent:       "element-content",
	ModeXmlComment:        "xml-comment",
	ModePI:                "processing-instruction",
	ModeCData:             "cdata",
	ModePragma:            "pragma",
	ModeStringConstructor: "string-constructor",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Lexer tokenizes XQuery text. Scan is a pure function of offset and mode;
// NextToken walks the input once in default mode for callers that want a
// flat token stream.
type Lexer struct {
	input      []byte
	lines      *lineIndex
	pos        int
	stringMode Mode
	typeAlias  bool
	entityRefs bool
}

func NewLexer(input []byte, file string) *Lexer {
	return newLexer(input, newLineIndex(input, file, 1))
}

func newLexer(input []byte, lines *lineIndex) *Lexer {
	return &Lexer{
		input:      input,
		lines:      lines,
		stringMode: ModeDefault,
		entityRefs: true,
	}
}

// SetDialect enables the dialect-dependent lexical rules: the Saxon 9.8 type
// alias character and XQuery entity references in string literals.
func (l *Lexer) SetDialect(cfg dialect.Config) {
	l.typeAlias = cfg.Supports(dialect.FeatureTypeAlias)
	l.entityRefs = cfg.Supports(dialect.FeatureEntityRefs)
}

// NextToken returns the next token of a default-mode walk over the input.
// String literal contents are lexed in string mode.
func (l *Lexer) NextToken() Token {
	tok := l.Scan(l.pos, l.stringMode)
	l.pos = tok.End()
	switch {
	case tok.Kind == TokenStringLiteralStart && l.stringMode == ModeDefault:
		if tok.Literal == `"` {
			l.stringMode = ModeStringQuot
		} else {
			l.stringMode = ModeStringApos
		}
	case tok.Kind == TokenStringLiteralEnd:
		l.stringMode = ModeDefault
	}
	return tok
}

// Scan lexes one token starting at offset in the given mode.
func (l *Lexer) Scan(offset int, mode Mode) Token {
	if offset >= len(l.input) {
		return l.token(TokenEOF, len(l.input), len(l.input), nil)
	}
	switch mode {
	case ModeStringQuot:
		return l.scanString(offset, '"')
	case ModeStringApos:
		return l.scanString(offset, '\'')
	case ModeTag:
		return l.scanTag(offset)
	case ModeAttrQuot:
		return l.scanAttrValue(offset, '"')
	case ModeAttrApos:
		return l.scanAttrValue(offset, '\'')
	case ModeElemContent:
		return l.scanElemContent(offset)
	case ModeXmlComment:
		return l.scanDelimited(offset, "-->", TokenXmlCommentEnd, TokenXmlCommentContents, false)
	case ModePI:
		return l.scanDelimited(offset, "?>", TokenPIEnd, TokenPIContents, true)
	case ModeCData:
		return l.scanDelimited(offset, "]]>", TokenCDataEnd, TokenCDataContents, false)
	case ModePragma:
		return l.scanDelimited(offset, "#)", TokenPragmaEnd, TokenPragmaContents, true)
	case ModeStringConstructor:
		return l.scanStringConstructor(offset)
	}
	return l.scanDefault(offset)
}

func (l *Lexer) token(kind TokenKind, start, end int, err *Error) Token {
	return Token{
		Kind:    kind,
		Span:    l.lines.span(start, end),
		Literal: string(l.input[start:end]),
		Error:   err,
	}
}

func (l *Lexer) at(i int) byte {
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) hasPrefix(i int, s string) bool {
	return bytes.HasPrefix(l.input[i:], []byte(s))
}

func (l *Lexer) scanDefault(i int) Token {
	b := l.input[i]
	switch b {
	case ' ', '\t', '\r', '\n':
		return l.scanWhitespace(i)
	case '(':
		switch l.at(i + 1) {
		case ':':
			return l.scanComment(i)
		case '#':
			return l.token(TokenPragmaBegin, i, i+2, nil)
		}
		return l.token(TokenLParen, i, i+1, nil)
	case ')':
		return l.token(TokenRParen, i, i+1, nil)
	case '[':
		return l.token(TokenLBracket, i, i+1, nil)
	case ']':
		return l.token(TokenRBracket, i, i+1, nil)
	case '{':
		return l.token(TokenLBrace, i, i+1, nil)
	case '}':
		if l.at(i+1) == '`' {
			return l.token(TokenInterpolationEnd, i, i+2, nil)
		}
		return l.token(TokenRBrace, i, i+1, nil)
	case ',':
		return l.token(TokenComma, i, i+1, nil)
	case ';':
		return l.token(TokenSemicolon, i, i+1, nil)
	case '$':
		return l.token(TokenDollar, i, i+1, nil)
	case '@':
		return l.token(TokenAt, i, i+1, nil)
	case '%':
		return l.token(TokenAnnotation, i, i+1, nil)
	case '*':
		return l.token(TokenStar, i, i+1, nil)
	case '+':
		return l.token(TokenPlus, i, i+1, nil)
	case '-':
		return l.token(TokenMinus, i, i+1, nil)
	case '?':
		return l.token(TokenQuestion, i, i+1, nil)
	case '|':
		if l.at(i+1) == '|' {
			return l.token(TokenConcat, i, i+2, nil)
		}
		return l.token(TokenUnion, i, i+1, nil)
	case '!':
		if l.at(i+1) == '=' {
			return l.token(TokenNotEqual, i, i+2, nil)
		}
		return l.token(TokenBang, i, i+1, nil)
	case '#':
		if l.at(i+1) == ')' {
			return l.token(TokenPragmaEnd, i, i+2, nil)
		}
		return l.token(TokenHash, i, i+1, nil)
	case '=':
		if l.at(i+1) == '>' {
			return l.token(TokenArrow, i, i+2, nil)
		}
		return l.token(TokenEqual, i, i+1, nil)
	case ':':
		switch l.at(i + 1) {
		case ':':
			return l.token(TokenAxisSeparator, i, i+2, nil)
		case '=':
			return l.token(TokenAssign, i, i+2, nil)
		}
		return l.token(TokenColon, i, i+1, nil)
	case '.':
		if isDigit(l.at(i + 1)) {
			return l.scanNumber(i)
		}
		if l.at(i+1) == '.' {
			return l.token(TokenDotDot, i, i+2, nil)
		}
		return l.token(TokenDot, i, i+1, nil)
	case '/':
		if l.at(i+1) == '/' {
			return l.token(TokenDoubleSlash, i, i+2, nil)
		}
		return l.token(TokenSlash, i, i+1, nil)
	case '<':
		if tok, ok := l.scanMarkupStart(i); ok {
			return tok
		}
		switch l.at(i + 1) {
		case '=':
			return l.token(TokenLessEqual, i, i+2, nil)
		case '<':
			return l.token(TokenNodePrecedes, i, i+2, nil)
		}
		return l.token(TokenLess, i, i+1, nil)
	case '>':
		switch l.at(i + 1) {
		case '=':
			return l.token(TokenGreaterEqual, i, i+2, nil)
		case '>':
			return l.token(TokenNodeFollows, i, i+2, nil)
		}
		return l.token(TokenGreater, i, i+1, nil)
	case '"', '\'':
		return l.token(TokenStringLiteralStart, i, i+1, nil)
	case '`':
		if l.hasPrefix(i, "``[") {
			return l.token(TokenStringConstructorStart, i, i+3, nil)
		}
		if l.at(i+1) == '{' {
			return l.token(TokenInterpolationStart, i, i+2, nil)
		}
		return l.token(TokenBadCharacter, i, i+1, nil)
	case '~':
		if l.typeAlias {
			return l.token(TokenTypeAlias, i, i+1, nil)
		}
		return l.token(TokenBadCharacter, i, i+1, nil)
	case 'Q':
		if l.at(i+1) == '{' {
			return l.scanBracedURI(i)
		}
	}
	if isDigit(b) {
		return l.scanNumber(i)
	}
	r, w := decodeRune(l.input, i)
	if isNameStartChar(r) {
		return l.scanName(i)
	}
	return l.token(TokenBadCharacter, i, i+w, nil)
}

// scanMarkupStart recognises the '<' forms that open XML markup.
func (l *Lexer) scanMarkupStart(i int) (Token, bool) {
	switch {
	case l.hasPrefix(i, "<!--"):
		return l.token(TokenXmlCommentStart, i, i+4, nil), true
	case l.hasPrefix(i, "<![CDATA["):
		return l.token(TokenCDataStart, i, i+9, nil), true
	case l.hasPrefix(i, "<!"):
		return l.token(TokenInvalid, i, i+2, nil), true
	case l.hasPrefix(i, "<?"):
		return l.token(TokenPIStart, i, i+2, nil), true
	}
	return Token{}, false
}

func (l *Lexer) scanWhitespace(i int) Token {
	j := i
	for j < len(l.input) && isSpace(l.input[j]) {
		j++
	}
	return l.token(TokenWhitespace, i, j, nil)
}

// scanComment lexes a possibly nested "(: ... :)" comment.
func (l *Lexer) scanComment(i int) Token {
	depth := 0
	j := i
	for j < len(l.input) {
		switch {
		case l.hasPrefix(j, "(:"):
			depth++
			j += 2
		case l.hasPrefix(j, ":)"):
			depth--
			j += 2
			if depth == 0 {
				return l.token(TokenComment, i, j, nil)
			}
		default:
			j++
		}
	}
	return l.token(TokenComment, i, j, syntaxError(msgUnclosedComment))
}

func (l *Lexer) scanName(i int) Token {
	j := i
	for j < len(l.input) {
		r, w := decodeRune(l.input, j)
		if !isNameChar(r) {
			break
		}
		j += w
	}
	return l.token(TokenNCName, i, j, nil)
}

func (l *Lexer) scanNumber(i int) Token {
	j := i
	kind := TokenIntegerLiteral
	for isDigit(l.at(j)) {
		j++
	}
	if l.at(j) == '.' && l.at(j+1) != '.' {
		kind = TokenDecimalLiteral
		j++
		for isDigit(l.at(j)) {
			j++
		}
	}
	if c := l.at(j); c == 'e' || c == 'E' {
		kind = TokenDoubleLiteral
		j++
		if c := l.at(j); c == '+' || c == '-' {
			j++
		}
		if !isDigit(l.at(j)) {
			return l.token(kind, i, j, syntaxError(msgIncompleteExponent))
		}
		for isDigit(l.at(j)) {
			j++
		}
	}
	return l.token(kind, i, j, nil)
}

func (l *Lexer) scanBracedURI(i int) Token {
	j := i + 2
	for j < len(l.input) {
		switch l.input[j] {
		case '}':
			return l.token(TokenBracedURILiteral, i, j+1, nil)
		case '{':
			return l.token(TokenBracedURILiteral, i, j, syntaxError(msgUnclosedBracedURI))
		}
		j++
	}
	return l.token(TokenBracedURILiteral, i, j, syntaxError(msgUnclosedBracedURI))
}

func (l *Lexer) scanString(i int, quote byte) Token {
	b := l.input[i]
	if b == quote {
		if l.at(i+1) == quote {
			if quote == '"' {
				return l.token(TokenEscapeQuot, i, i+2, nil)
			}
			return l.token(TokenEscapeApos, i, i+2, nil)
		}
		return l.token(TokenStringLiteralEnd, i, i+1, nil)
	}
	if b == '&' && l.entityRefs {
		return l.scanReference(i)
	}
	j := i + 1
	for j < len(l.input) && l.input[j] != quote && !(l.input[j] == '&' && l.entityRefs) {
		j++
	}
	return l.token(TokenStringLiteralContents, i, j, nil)
}

var predefinedEntities = map[string]bool{
	"lt": true, "gt": true, "amp": true, "quot": true, "apos": true,
}

// scanReference lexes an entity or character reference starting at '&'.
func (l *Lexer) scanReference(i int) Token {
	j := i + 1
	if l.at(j) == '#' {
		j++
		hex := l.at(j) == 'x'
		if hex {
			j++
		}
		digits := j
		for (hex && isHexDigit(l.at(j))) || (!hex && isDigit(l.at(j))) {
			j++
		}
		if l.at(j) != ';' {
			return l.token(TokenPartialEntityRef, i, j, syntaxError(msgUnterminatedCharRef))
		}
		j++
		if digits == j-1 {
			return l.token(TokenCharRef, i, j, syntaxError(msgEmptyCharRef))
		}
		base := 10
		if hex {
			base = 16
		}
		value, err := strconv.ParseUint(string(l.input[digits:j-1]), base, 32)
		if err != nil || !IsXMLChar(rune(value)) {
			return l.token(TokenCharRef, i, j, &Error{Code: CodeCharRef, Message: msgInvalidCharRef})
		}
		return l.token(TokenCharRef, i, j, nil)
	}
	if l.at(j) == ';' {
		return l.token(TokenEmptyEntityRef, i, j+1, syntaxError(msgEmptyEntityRef))
	}
	if r, _ := decodeRune(l.input, j); !isNameStartChar(r) {
		return l.token(TokenPartialEntityRef, i, j, syntaxError(msgUnterminatedEntityRef))
	}
	name := l.scanName(j)
	j = name.End()
	if l.at(j) != ';' {
		return l.token(TokenPartialEntityRef, i, j, syntaxError(msgUnterminatedEntityRef))
	}
	j++
	if !predefinedEntities[name.Literal] {
		return l.token(TokenPredefinedEntityRef, i, j, syntaxError(msgUnknownEntityRef))
	}
	return l.token(TokenPredefinedEntityRef, i, j, nil)
}

func (l *Lexer) scanTag(i int) Token {
	b := l.input[i]
	switch {
	case isSpace(b):
		return l.scanWhitespace(i)
	case b == '/' && l.at(i+1) == '>':
		return l.token(TokenSelfClosingTagEnd, i, i+2, nil)
	case b == '>':
		return l.token(TokenTagEnd, i, i+1, nil)
	case b == '=':
		return l.token(TokenEqual, i, i+1, nil)
	case b == ':':
		return l.token(TokenColon, i, i+1, nil)
	case b == '"' || b == '\'':
		return l.token(TokenStringLiteralStart, i, i+1, nil)
	}
	r, w := decodeRune(l.input, i)
	if isNameStartChar(r) {
		return l.scanName(i)
	}
	return l.token(TokenBadCharacter, i, i+w, nil)
}

func (l *Lexer) scanAttrValue(i int, quote byte) Token {
	b := l.input[i]
	switch b {
	case quote:
		if l.at(i+1) == quote {
			if quote == '"' {
				return l.token(TokenEscapeQuot, i, i+2, nil)
			}
			return l.token(TokenEscapeApos, i, i+2, nil)
		}
		return l.token(TokenStringLiteralEnd, i, i+1, nil)
	case '{':
		if l.at(i+1) == '{' {
			return l.token(TokenEscapedLBrace, i, i+2, nil)
		}
		return l.token(TokenLBrace, i, i+1, nil)
	case '}':
		if l.at(i+1) == '}' {
			return l.token(TokenEscapedRBrace, i, i+2, nil)
		}
		return l.token(TokenRBrace, i, i+1, nil)
	case '&':
		return l.scanReference(i)
	case '<':
		return l.token(TokenBadCharacter, i, i+1, nil)
	}
	j := i + 1
	for j < len(l.input) {
		c := l.input[j]
		if c == quote || c == '{' || c == '}' || c == '&' || c == '<' {
			break
		}
		j++
	}
	return l.token(TokenAttrValueContents, i, j, nil)
}

func (l *Lexer) scanElemContent(i int) Token {
	b := l.input[i]
	switch b {
	case '<':
		if tok, ok := l.scanMarkupStart(i); ok {
			return tok
		}
		if l.at(i+1) == '/' {
			return l.token(TokenCloseTagStart, i, i+2, nil)
		}
		return l.token(TokenLess, i, i+1, nil)
	case '{':
		if l.at(i+1) == '{' {
			return l.token(TokenEscapedLBrace, i, i+2, nil)
		}
		return l.token(TokenLBrace, i, i+1, nil)
	case '}':
		if l.at(i+1) == '}' {
			return l.token(TokenEscapedRBrace, i, i+2, nil)
		}
		return l.token(TokenRBrace, i, i+1, nil)
	case '&':
		return l.scanReference(i)
	}
	j := i + 1
	for j < len(l.input) {
		c := l.input[j]
		if c == '<' || c == '{' || c == '}' || c == '&' {
			break
		}
		j++
	}
	return l.token(TokenElementContents, i, j, nil)
}

// scanDelimited lexes the body of a construct closed by end. When
// leadingSpace is set, whitespace before the contents is its own token.
func (l *Lexer) scanDelimited(i int, end string, endKind, contentKind TokenKind, leadingSpace bool) Token {
	if l.hasPrefix(i, end) {
		return l.token(endKind, i, i+len(end), nil)
	}
	if leadingSpace && isSpace(l.input[i]) {
		return l.scanWhitespace(i)
	}
	j := len(l.input)
	if k := bytes.Index(l.input[i+1:], []byte(end)); k >= 0 {
		j = i + 1 + k
	}
	return l.token(contentKind, i, j, nil)
}

func (l *Lexer) scanStringConstructor(i int) Token {
	switch {
	case l.hasPrefix(i, "]``"):
		return l.token(TokenStringConstructorEnd, i, i+3, nil)
	case l.hasPrefix(i, "`{"):
		return l.token(TokenInterpolationStart, i, i+2, nil)
	}
	j := i + 1
	for j < len(l.input) && !l.hasPrefix(j, "]``") && !l.hasPrefix(j, "`{") {
		j++
	}
	return l.token(TokenStringConstructorChars, i, j, nil)
}
