package parser

import "github.com/dhamidi/xqparse/xquery/dialect"

// recoverUnexpected wraps the next token in an error node and skips ahead to
// a token that can start an expression, the end of a statement or the end of
// input. Skipped tokens stay in the tree as plain leaves.
func (p *Parser) recoverUnexpected() {
	if p.atEOF() {
		return
	}
	m := p.open()
	first := p.bump()
	p.closeError(m, syntaxError(msgUnexpectedToken))
	if first.Kind == TokenSemicolon {
		return
	}
	for !p.atEOF() {
		tok := p.peek()
		if p.canStartExpr(tok) {
			return
		}
		p.bump()
		if tok.Kind == TokenSemicolon {
			return
		}
	}
}

// canStartExpr reports whether tok may begin an ExprSingle in the active
// dialect. Keyword-led expressions start with an NCName and are covered by
// the name case.
func (p *Parser) canStartExpr(tok Token) bool {
	switch tok.Kind {
	case TokenNCName, TokenDollar,
		TokenIntegerLiteral, TokenDecimalLiteral, TokenDoubleLiteral,
		TokenStringLiteralStart, TokenLParen, TokenDot, TokenDotDot,
		TokenSlash, TokenDoubleSlash, TokenAt, TokenStar, TokenMinus, TokenPlus:
		return true
	case TokenBracedURILiteral:
		return p.supports(dialect.FeatureURIQualifiedName)
	case TokenAnnotation:
		return p.supports(dialect.FeatureInlineFunction) && p.supports(dialect.FeatureAnnotations)
	case TokenLBracket:
		return p.supports(dialect.FeatureArrayConstructor)
	case TokenQuestion:
		return p.supports(dialect.FeatureLookup)
	case TokenLess:
		return p.supports(dialect.FeatureDirectConstructors) && p.atTagStart(tok)
	case TokenXmlCommentStart, TokenPIStart, TokenCDataStart:
		return p.supports(dialect.FeatureDirectConstructors)
	case TokenPragmaBegin:
		return p.supports(dialect.FeatureExtensionExpr)
	case TokenStringConstructorStart:
		return p.supports(dialect.FeatureStringConstructor)
	}
	return false
}

// atTagStart reports whether the '<' token is immediately followed by a name
// start character, which makes it the start of a direct element.
func (p *Parser) atTagStart(tok Token) bool {
	r, _ := decodeRune(p.input, tok.End())
	return isNameStartChar(r)
}
