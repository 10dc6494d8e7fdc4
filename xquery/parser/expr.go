package parser

import "github.com/dhamidi/xqparse/xquery/dialect"

// Expression productions return false only when nothing was consumed, in
// which case no events were emitted either.

// Expr ::= ExprSingle ("," ExprSingle)*
func (p *Parser) parseExpr() bool {
	m := p.open()
	if !p.parseExprSingle() {
		p.abandon(m)
		return false
	}
	comma := false
	for p.eat(TokenComma) {
		comma = true
		if !p.parseExprSingle() {
			p.errorHere(msgExpectedExprSingle)
		}
	}
	p.closeIf(m, KindExpr, comma)
	return true
}

func (p *Parser) expectExpr() {
	if !p.parseExpr() {
		p.errorHere(msgExpectedExpr)
	}
}

func (p *Parser) expectExprSingle() {
	if !p.parseExprSingle() {
		p.errorHere(msgExpectedExprSingle)
	}
}

// ExprSingle ::= FLWORExpr | QuantifiedExpr | SwitchExpr | TypeswitchExpr
//
//	| IfExpr | TryCatchExpr | OrExpr
func (p *Parser) parseExprSingle() bool {
	switch {
	case p.atFLWOR():
		p.parseFLWOR()
	case p.atQuantified():
		p.parseQuantified()
	case p.atKeywordFollowedBy(ctxExpr, "switch", TokenLParen):
		p.parseSwitch()
	case p.atKeywordFollowedBy(ctxExpr, "typeswitch", TokenLParen):
		p.parseTypeswitch()
	case p.atKeywordFollowedBy(ctxExpr, "if", TokenLParen):
		p.parseIf()
	case p.atKeywordFollowedBy(ctxExpr, "try", TokenLBrace):
		p.parseTryCatch()
	default:
		return p.parseOrExpr()
	}
	return true
}

// parseBinary parses operand (op operand)*, or a single optional operator
// when repeat is unset. op consumes the operator when one is present. The
// node is only created when an operator was seen.
func (p *Parser) parseBinary(kind NodeKind, operand, op func(*Parser) bool, repeat bool) bool {
	m := p.open()
	if !operand(p) {
		p.abandon(m)
		return false
	}
	found := false
	for op(p) {
		found = true
		if !operand(p) {
			p.errorHere(msgExpectedExpr)
		}
		if !repeat {
			break
		}
	}
	p.closeIf(m, kind, found)
	return true
}

// eatOperator consumes the first word that is an operator keyword here.
func (p *Parser) eatOperator(words ...string) bool {
	for _, w := range words {
		if p.eatKeyword(ctxOperator, w) {
			return true
		}
	}
	return false
}

func (p *Parser) eatAny(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if p.eat(k) {
			return true
		}
	}
	return false
}

func (p *Parser) parseOrExpr() bool {
	return p.parseBinary(KindOrExpr, (*Parser).parseAndExpr, func(p *Parser) bool {
		return p.eatOperator("or")
	}, true)
}

func (p *Parser) parseAndExpr() bool {
	return p.parseBinary(KindAndExpr, (*Parser).parseComparisonExpr, func(p *Parser) bool {
		return p.eatOperator("and")
	}, true)
}

// ComparisonExpr allows a single general, value or node comparison.
func (p *Parser) parseComparisonExpr() bool {
	return p.parseBinary(KindComparisonExpr, (*Parser).parseFTContainsExpr, func(p *Parser) bool {
		return p.eatAny(TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual,
			TokenGreater, TokenGreaterEqual, TokenNodePrecedes, TokenNodeFollows) ||
			p.eatOperator("eq", "ne", "lt", "le", "gt", "ge", "is")
	}, false)
}

// parseFTContainsExpr is the full text hook between comparison and string
// concatenation:
//
//	FTContainsExpr ::= StringConcatExpr ("contains" "text" FTSelection FTIgnoreOption?)?
//
// With full text disabled it is exactly StringConcatExpr.
func (p *Parser) parseFTContainsExpr() bool {
	m := p.open()
	if !p.parseStringConcatExpr() {
		p.abandon(m)
		return false
	}
	if !p.supports(dialect.FeatureFullText) || !p.atKeyword(ctxOperator, "contains") ||
		!p.tokenIsName(p.nth(1), "text") {
		p.drop(m)
		return true
	}
	p.bumpKeyword()
	p.bumpKeyword()
	p.parseFTSelection()
	if p.atKeyword(ctxFullText, "without") && p.tokenIsName(p.nth(1), "content") {
		p.parseFTIgnoreOption()
	}
	p.close(m, KindFTContainsExpr)
	return true
}

func (p *Parser) parseStringConcatExpr() bool {
	return p.parseBinary(KindStringConcatExpr, (*Parser).parseRangeExpr, func(p *Parser) bool {
		return p.supports(dialect.FeatureStringConcat) && p.eat(TokenConcat)
	}, true)
}

func (p *Parser) parseRangeExpr() bool {
	return p.parseBinary(KindRangeExpr, (*Parser).parseAdditiveExpr, func(p *Parser) bool {
		return p.eatOperator("to")
	}, false)
}

func (p *Parser) parseAdditiveExpr() bool {
	return p.parseBinary(KindAdditiveExpr, (*Parser).parseMultiplicativeExpr, func(p *Parser) bool {
		return p.eatAny(TokenPlus, TokenMinus)
	}, true)
}

func (p *Parser) parseMultiplicativeExpr() bool {
	return p.parseBinary(KindMultiplicativeExpr, (*Parser).parseUnionExpr, func(p *Parser) bool {
		return p.eat(TokenStar) || p.eatOperator("div", "idiv", "mod")
	}, true)
}

func (p *Parser) parseUnionExpr() bool {
	return p.parseBinary(KindUnionExpr, (*Parser).parseIntersectExceptExpr, func(p *Parser) bool {
		return p.eat(TokenUnion) || p.eatOperator("union")
	}, true)
}

func (p *Parser) parseIntersectExceptExpr() bool {
	return p.parseBinary(KindIntersectExceptExpr, (*Parser).parseInstanceofExpr, func(p *Parser) bool {
		return p.eatOperator("intersect", "except")
	}, true)
}

// parseTypeOperator parses operand followed by an optional two-word type
// operator such as "instance of" whose right-hand side is a type.
func (p *Parser) parseTypeOperator(kind NodeKind, operand func(*Parser) bool, first, second string, rhs func(*Parser)) bool {
	m := p.open()
	if !operand(p) {
		p.abandon(m)
		return false
	}
	if !p.atKeyword(ctxOperator, first) || !p.tokenIsName(p.nth(1), second) {
		p.drop(m)
		return true
	}
	p.bumpKeyword()
	p.bumpKeyword()
	rhs(p)
	p.close(m, kind)
	return true
}

func (p *Parser) parseInstanceofExpr() bool {
	return p.parseTypeOperator(KindInstanceofExpr, (*Parser).parseTreatExpr,
		"instance", "of", (*Parser).expectSequenceType)
}

func (p *Parser) parseTreatExpr() bool {
	return p.parseTypeOperator(KindTreatExpr, (*Parser).parseCastableExpr,
		"treat", "as", (*Parser).expectSequenceType)
}

func (p *Parser) parseCastableExpr() bool {
	return p.parseTypeOperator(KindCastableExpr, (*Parser).parseCastExpr,
		"castable", "as", (*Parser).expectSingleType)
}

func (p *Parser) parseCastExpr() bool {
	return p.parseTypeOperator(KindCastExpr, (*Parser).parseArrowExpr,
		"cast", "as", (*Parser).expectSingleType)
}

// ArrowExpr ::= UnaryExpr ("=>" ArrowFunctionSpecifier ArgumentList)*
func (p *Parser) parseArrowExpr() bool {
	m := p.open()
	if !p.parseUnaryExpr() {
		p.abandon(m)
		return false
	}
	found := false
	for p.supports(dialect.FeatureArrowExpr) && p.eat(TokenArrow) {
		found = true
		switch {
		case p.at(TokenDollar):
			p.parseVarRef()
		case p.at(TokenLParen):
			p.parseParenthesizedExpr()
		default:
			p.expectEQName(msgExpectedQName)
		}
		if p.at(TokenLParen) {
			p.parseArgumentList()
		} else {
			p.errorHere(expected("("))
		}
	}
	p.closeIf(m, KindArrowExpr, found)
	return true
}

// UnaryExpr ::= ("-" | "+")* ValueExpr
func (p *Parser) parseUnaryExpr() bool {
	m := p.open()
	signs := false
	for p.eatAny(TokenMinus, TokenPlus) {
		signs = true
	}
	if !p.parseValueExpr() {
		if !signs {
			p.abandon(m)
			return false
		}
		p.errorHere(msgExpectedExpr)
	}
	p.closeIf(m, KindUnaryExpr, signs)
	return true
}

// ValueExpr ::= ValidateExpr | ExtensionExpr | SimpleMapExpr
func (p *Parser) parseValueExpr() bool {
	switch {
	case p.atValidate():
		p.parseValidateExpr()
		return true
	case p.at(TokenPragmaBegin) && p.supports(dialect.FeatureExtensionExpr):
		p.parseExtensionExpr()
		return true
	}
	return p.parseSimpleMapExpr()
}

func (p *Parser) parseSimpleMapExpr() bool {
	return p.parseBinary(KindSimpleMapExpr, (*Parser).parsePathExpr, func(p *Parser) bool {
		return p.supports(dialect.FeatureSimpleMap) && p.eat(TokenBang)
	}, true)
}

func (p *Parser) atValidate() bool {
	if !p.atKeyword(ctxExpr, "validate") {
		return false
	}
	next := p.nth(1)
	if next.Kind == TokenLBrace {
		return true
	}
	for _, w := range []string{"lax", "strict", "type", "as"} {
		if p.tokenIsName(next, w) {
			return true
		}
	}
	return false
}

// ValidateExpr ::= "validate" (ValidationMode | (("type" | "as") TypeName))?
//
//	"{" Expr "}"
func (p *Parser) parseValidateExpr() {
	m := p.open()
	p.bumpKeyword()
	switch {
	case p.atName("lax") || p.atName("strict"):
		p.bumpKeyword()
	case p.atName("type") || p.atName("as"):
		p.bumpKeyword()
		p.expectEQName(msgExpectedTypeName)
	}
	p.parseBracedExpr(false)
	p.close(m, KindValidateExpr)
}

// parseBracedExpr parses "{" Expr "}" without a wrapping node.
func (p *Parser) parseBracedExpr(optional bool) {
	if !p.expect(TokenLBrace, "{") {
		return
	}
	if !p.parseExpr() && !optional {
		p.errorHere(msgExpectedExpr)
	}
	p.expect(TokenRBrace, "}")
}

// ExtensionExpr ::= Pragma+ "{" Expr? "}"
func (p *Parser) parseExtensionExpr() {
	m := p.open()
	for p.at(TokenPragmaBegin) {
		p.parsePragma()
	}
	p.parseBracedExpr(true)
	p.close(m, KindExtensionExpr)
}

// Pragma ::= "(#" S? EQName (S PragmaContents)? "#)"
//
// A pragma without contents is accepted.
func (p *Parser) parsePragma() {
	m := p.open()
	p.bump()
	p.expectEQName(msgExpectedQName)
	prev := p.setMode(ModePragma)
	p.eat(TokenPragmaContents)
	p.expectClose(TokenPragmaEnd, "#)", msgUnclosedPragma)
	p.setMode(prev)
	p.close(m, KindPragma)
}
