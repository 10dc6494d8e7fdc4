package parser

import "github.com/dhamidi/xqparse/xquery/dialect"

func (p *Parser) parsePrimaryExpr() bool {
	tok := p.peek()
	switch tok.Kind {
	case TokenIntegerLiteral, TokenDecimalLiteral, TokenDoubleLiteral:
		p.bump()
		return true
	case TokenStringLiteralStart:
		return p.parseStringLiteral()
	case TokenDollar:
		p.parseVarRef()
		return true
	case TokenLParen:
		p.parseParenthesizedExpr()
		return true
	case TokenDot:
		m := p.open()
		p.bump()
		p.close(m, KindContextItemExpr)
		return true
	case TokenNCName, TokenBracedURILiteral:
		return p.parseNamePrimary()
	case TokenAnnotation:
		if p.supports(dialect.FeatureInlineFunction) && p.supports(dialect.FeatureAnnotations) {
			p.parseInlineFunctionExpr()
			return true
		}
	case TokenLBracket:
		if p.supports(dialect.FeatureArrayConstructor) {
			p.parseSquareArrayConstructor()
			return true
		}
	case TokenQuestion:
		if p.atLookup() {
			p.parseLookup(KindUnaryLookup)
			return true
		}
	case TokenLess:
		if p.supports(dialect.FeatureDirectConstructors) && p.atTagStart(tok) {
			p.parseDirElemConstructor()
			return true
		}
	case TokenXmlCommentStart:
		if p.supports(dialect.FeatureDirectConstructors) {
			p.parseDirCommentConstructor()
			return true
		}
	case TokenPIStart:
		if p.supports(dialect.FeatureDirectConstructors) {
			p.parseDirPIConstructor()
			return true
		}
	case TokenCDataStart:
		if p.supports(dialect.FeatureDirectConstructors) {
			m := p.open()
			p.parseCDataSection()
			p.closeError(m, syntaxError(msgCDataOutside))
			return true
		}
	case TokenStringConstructorStart:
		if p.supports(dialect.FeatureStringConstructor) {
			p.parseStringConstructor()
			return true
		}
	}
	return false
}

// parseNamePrimary handles the primaries introduced by a name: keyword-led
// constructors, function calls and named function references.
func (p *Parser) parseNamePrimary() bool {
	tok := p.peek()
	next := p.nth(1)
	if tok.Kind == TokenNCName && !p.isPrefix(tok) && p.keywordEnabled(ctxExpr, tok.Literal) {
		switch tok.Literal {
		case "ordered":
			if next.Kind == TokenLBrace {
				p.parseKeywordEnclosed(KindOrderedExpr)
				return true
			}
		case "unordered":
			if next.Kind == TokenLBrace {
				p.parseKeywordEnclosed(KindUnorderedExpr)
				return true
			}
		case "document":
			if next.Kind == TokenLBrace {
				p.parseKeywordEnclosed(KindCompDocConstructor)
				return true
			}
		case "text":
			if next.Kind == TokenLBrace {
				p.parseKeywordEnclosed(KindCompTextConstructor)
				return true
			}
		case "comment":
			if next.Kind == TokenLBrace {
				p.parseKeywordEnclosed(KindCompCommentConstructor)
				return true
			}
		case "element":
			if p.atComputedName(p.eqNameLen(1)) {
				p.parseComputedConstructor(KindCompElemConstructor, msgExpectedQName, true)
				return true
			}
		case "attribute":
			if p.atComputedName(p.eqNameLen(1)) {
				p.parseComputedConstructor(KindCompAttrConstructor, msgExpectedQName, true)
				return true
			}
		case "namespace":
			if p.atComputedName(p.ncNameLen(1)) {
				p.parseComputedConstructor(KindCompNamespaceConstructor, msgExpectedNCName, false)
				return true
			}
		case "processing-instruction":
			if p.atComputedName(p.ncNameLen(1)) {
				p.parseComputedConstructor(KindCompPIConstructor, msgExpectedNCName, false)
				return true
			}
		case "function":
			if next.Kind == TokenLParen {
				p.parseInlineFunctionExpr()
				return true
			}
		case "map":
			if next.Kind == TokenLBrace {
				p.parseMapConstructor()
				return true
			}
		case "array":
			if next.Kind == TokenLBrace {
				p.parseKeywordEnclosed(KindCurlyArrayConstructor)
				return true
			}
		}
	}

	n := p.eqNameLen(0)
	if n == 0 {
		return false
	}
	switch p.nth(n).Kind {
	case TokenLParen:
		if n == 1 && reservedFunctionNames[tok.Literal] {
			return false
		}
		m := p.open()
		p.parseEQName()
		p.parseArgumentList()
		p.close(m, KindFunctionCall)
		return true
	case TokenHash:
		if !p.supports(dialect.FeatureNamedFunctionRef) {
			return false
		}
		m := p.open()
		p.parseEQName()
		p.bump()
		if !p.eat(TokenIntegerLiteral) {
			p.errorHere(msgExpectedInteger)
		}
		p.close(m, KindNamedFunctionRef)
		return true
	}
	return false
}

// ncNameLen is eqNameLen restricted to unprefixed names.
func (p *Parser) ncNameLen(n int) int {
	tok := p.nth(n)
	if tok.Kind == TokenNCName && !p.isPrefix(tok) {
		return 1
	}
	return 0
}

// atComputedName reports whether the keyword is followed by "{" or by a
// name of nameLen tokens and then "{".
func (p *Parser) atComputedName(nameLen int) bool {
	if p.nth(1).Kind == TokenLBrace {
		return true
	}
	return nameLen > 0 && p.nth(1+nameLen).Kind == TokenLBrace
}

// parseKeywordEnclosed parses keyword EnclosedExpr into a node of kind.
func (p *Parser) parseKeywordEnclosed(kind NodeKind) {
	m := p.open()
	p.bumpKeyword()
	p.parseEnclosedExpr()
	p.close(m, kind)
}

// parseComputedConstructor parses keyword (Name | EnclosedExpr) EnclosedExpr.
func (p *Parser) parseComputedConstructor(kind NodeKind, nameMessage string, qualified bool) {
	m := p.open()
	p.bumpKeyword()
	switch {
	case p.at(TokenLBrace):
		p.parseEnclosedExpr()
	case qualified:
		p.expectEQName(nameMessage)
	default:
		p.expectNCName()
	}
	p.parseEnclosedExpr()
	p.close(m, kind)
}

// EnclosedExpr ::= "{" Expr? "}"
func (p *Parser) parseEnclosedExpr() {
	m := p.open()
	if p.expect(TokenLBrace, "{") {
		p.parseExpr()
		p.expectClose(TokenRBrace, "}", "")
	}
	p.close(m, KindEnclosedExpr)
}

// parseStringLiteral parses a quoted string, re-lexing its body in the
// matching string mode.
func (p *Parser) parseStringLiteral() bool {
	if !p.at(TokenStringLiteralStart) {
		return false
	}
	m := p.open()
	quote := p.bump()
	mode := ModeStringQuot
	if quote.Literal == "'" {
		mode = ModeStringApos
	}
	prev := p.setMode(mode)
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			p.errorHere(msgUnclosedString)
			break
		}
		p.bump()
		if tok.Kind == TokenStringLiteralEnd {
			break
		}
	}
	p.setMode(prev)
	p.close(m, KindStringLiteral)
	return true
}

func (p *Parser) expectStringLiteral(message string) {
	if !p.parseStringLiteral() {
		p.errorHere(message)
	}
}

// VarRef ::= "$" VarName
func (p *Parser) parseVarRef() {
	m := p.open()
	p.bump()
	p.expectEQName(msgExpectedVarName)
	p.close(m, KindVarRef)
}

// expectVarName parses "$" VarName inline, as used by variable bindings.
func (p *Parser) expectVarName() {
	if !p.eat(TokenDollar) {
		p.errorHere(expected("$"))
		return
	}
	p.expectEQName(msgExpectedVarName)
}

// ParenthesizedExpr ::= "(" Expr? ")"
func (p *Parser) parseParenthesizedExpr() {
	m := p.open()
	p.bump()
	p.parseExpr()
	p.expectClose(TokenRParen, ")", "")
	p.close(m, KindParenthesizedExpr)
}

// ArgumentList ::= "(" (Argument ("," Argument)*)? ")"
func (p *Parser) parseArgumentList() {
	m := p.open()
	p.bump()
	if !p.at(TokenRParen) && !p.atEOF() {
		for {
			if !p.parseArgument() {
				p.errorHere(msgExpectedExprSingle)
			}
			if !p.eat(TokenComma) {
				break
			}
		}
	}
	p.expectClose(TokenRParen, ")", "")
	p.close(m, KindArgumentList)
}

// Argument ::= ExprSingle | ArgumentPlaceholder
func (p *Parser) parseArgument() bool {
	if p.at(TokenQuestion) && p.supports(dialect.FeatureArgumentPlaceholder) {
		if next := p.nth(1).Kind; next == TokenComma || next == TokenRParen {
			m := p.open()
			p.bump()
			p.close(m, KindArgumentPlaceholder)
			return true
		}
	}
	return p.parseExprSingle()
}

// InlineFunctionExpr ::= Annotation* "function" "(" ParamList? ")"
//
//	("as" SequenceType)? FunctionBody
func (p *Parser) parseInlineFunctionExpr() {
	m := p.open()
	for p.at(TokenAnnotation) {
		p.parseAnnotation()
	}
	p.expectKeyword(ctxExpr, "function")
	p.parseParamListInParens()
	if p.atKeyword(ctxClause, "as") {
		p.bumpKeyword()
		p.expectSequenceType()
	}
	p.parseFunctionBody()
	p.close(m, KindInlineFunctionExpr)
}

// MapConstructor ::= "map" "{" (MapConstructorEntry ("," MapConstructorEntry)*)? "}"
func (p *Parser) parseMapConstructor() {
	m := p.open()
	p.bumpKeyword()
	p.bump()
	if !p.at(TokenRBrace) && !p.atEOF() {
		for {
			p.parseMapConstructorEntry()
			if !p.eat(TokenComma) {
				break
			}
		}
	}
	p.expectClose(TokenRBrace, "}", "")
	p.close(m, KindMapConstructor)
}

// MapConstructorEntry ::= ExprSingle ":" ExprSingle
//
// Saxon 9.4 also separates key and value with ":=".
func (p *Parser) parseMapConstructorEntry() {
	m := p.open()
	p.expectExprSingle()
	switch {
	case p.eat(TokenColon):
	case p.supports(dialect.FeatureSaxonMapAssign) && p.eat(TokenAssign):
	default:
		p.errorHere(expected(":"))
	}
	p.expectExprSingle()
	p.close(m, KindMapConstructorEntry)
}

// SquareArrayConstructor ::= "[" (ExprSingle ("," ExprSingle)*)? "]"
func (p *Parser) parseSquareArrayConstructor() {
	m := p.open()
	p.bump()
	if !p.at(TokenRBracket) && !p.atEOF() {
		for {
			p.expectExprSingle()
			if !p.eat(TokenComma) {
				break
			}
		}
	}
	p.expectClose(TokenRBracket, "]", "")
	p.close(m, KindSquareArrayConstructor)
}

// StringConstructor ::= "``[" StringConstructorContent "]``"
func (p *Parser) parseStringConstructor() {
	m := p.open()
	p.bump()
	prev := p.setMode(ModeStringConstructor)
	content := p.open()
	for {
		switch {
		case p.at(TokenStringConstructorChars):
			p.bump()
			continue
		case p.at(TokenInterpolationStart):
			p.parseInterpolation()
			continue
		}
		break
	}
	p.close(content, KindStringConstructorContent)
	p.expectClose(TokenStringConstructorEnd, "]``", msgUnclosedStringConstructor)
	p.setMode(prev)
	p.close(m, KindStringConstructor)
}

// StringConstructorInterpolation ::= "`{" Expr? "}`"
func (p *Parser) parseInterpolation() {
	m := p.open()
	p.bump()
	p.setMode(ModeDefault)
	p.parseExpr()
	p.expectClose(TokenInterpolationEnd, "}`", "")
	p.setMode(ModeStringConstructor)
	p.close(m, KindStringConstructorInterpolation)
}
