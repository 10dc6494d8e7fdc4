package parser

import "github.com/dhamidi/xqparse/xquery/dialect"

func (p *Parser) atFLWOR() bool {
	next := p.nth(1)
	switch {
	case p.atKeyword(ctxExpr, "for"):
		return next.Kind == TokenDollar || p.atWindowStart(next)
	case p.atKeyword(ctxExpr, "let"):
		return next.Kind == TokenDollar ||
			(p.supports(dialect.FeatureFullText) && p.tokenIsName(next, "score"))
	case p.atKeyword(ctxExpr, "return") && p.cfg.Language == dialect.XQuery:
		switch next.Kind {
		case TokenDollar, TokenIntegerLiteral, TokenDecimalLiteral, TokenDoubleLiteral,
			TokenStringLiteralStart, TokenBracedURILiteral, TokenNCName:
			return true
		}
	}
	return false
}

func (p *Parser) atWindowStart(next Token) bool {
	return p.supports(dialect.FeatureWindowClause) &&
		(p.tokenIsName(next, "tumbling") || p.tokenIsName(next, "sliding"))
}

// FLWORExpr ::= InitialClause IntermediateClause* ReturnClause
//
// A lone return clause is parsed as a FLWOR expression missing its for or
// let clause.
func (p *Parser) parseFLWOR() {
	if p.cfg.Language == dialect.XPath {
		if p.atKeyword(ctxExpr, "for") {
			p.parseSimpleForExpr()
		} else {
			p.parseSimpleLetExpr()
		}
		return
	}
	m := p.open()
	clauses := 0
	for p.parseFLWORClause() {
		clauses++
	}
	if clauses == 0 {
		p.errorHere(msgMissingForOrLet)
	}
	p.parseReturnClause()
	p.close(m, KindFLWORExpr)
}

func (p *Parser) parseReturnClause() {
	if !p.atKeyword(ctxClause, "return") {
		p.errorHere(expected("return"))
		return
	}
	m := p.open()
	p.bumpKeyword()
	p.expectExprSingle()
	p.close(m, KindReturnClause)
}

// parseFLWORClause parses one initial or intermediate clause and reports
// whether there was one.
func (p *Parser) parseFLWORClause() bool {
	next := p.nth(1)
	switch {
	case p.atKeyword(ctxClause, "for"):
		if p.atWindowStart(next) {
			p.parseWindowClause()
		} else {
			p.parseForClause()
		}
	case p.atKeyword(ctxClause, "let"):
		p.parseLetClause()
	case p.atKeyword(ctxClause, "where"):
		m := p.open()
		p.bumpKeyword()
		p.expectExprSingle()
		p.close(m, KindWhereClause)
	case p.atKeyword(ctxClause, "group") && p.tokenIsName(next, "by"):
		p.parseGroupByClause()
	case p.atKeyword(ctxClause, "order") && p.tokenIsName(next, "by"),
		p.atKeyword(ctxClause, "stable") && p.tokenIsName(next, "order"):
		p.parseOrderByClause()
	case p.atKeyword(ctxClause, "count") && next.Kind == TokenDollar:
		m := p.open()
		p.bumpKeyword()
		p.expectVarName()
		p.close(m, KindCountClause)
	default:
		return false
	}
	return true
}

// ForClause ::= "for" ForBinding ("," ForBinding)*
func (p *Parser) parseForClause() {
	m := p.open()
	p.bumpKeyword()
	for {
		p.parseForBinding()
		if !p.eat(TokenComma) {
			break
		}
	}
	p.close(m, KindForClause)
}

// ForBinding ::= "$" VarName TypeDeclaration? AllowingEmpty? PositionalVar?
//
//	FTScoreVar? "in" ExprSingle
func (p *Parser) parseForBinding() {
	m := p.open()
	p.expectVarName()
	if p.atKeyword(ctxClause, "as") {
		p.parseTypeDeclaration()
	}
	if p.atKeyword(ctxClause, "allowing") {
		a := p.open()
		p.bumpKeyword()
		p.expectKeyword(ctxClause, "empty")
		p.close(a, KindAllowingEmpty)
	}
	if p.atKeyword(ctxClause, "at") {
		p.parsePositionalVar()
	}
	if p.atKeyword(ctxClause, "score") {
		p.parseFTScoreVar()
	}
	p.expectKeyword(ctxClause, "in")
	p.expectExprSingle()
	p.close(m, KindForBinding)
}

// PositionalVar ::= "at" "$" VarName
func (p *Parser) parsePositionalVar() {
	m := p.open()
	p.bumpKeyword()
	p.expectVarName()
	p.close(m, KindPositionalVar)
}

// FTScoreVar ::= "score" "$" VarName
func (p *Parser) parseFTScoreVar() {
	m := p.open()
	p.bumpKeyword()
	p.expectVarName()
	p.close(m, KindFTScoreVar)
}

// LetClause ::= "let" LetBinding ("," LetBinding)*
func (p *Parser) parseLetClause() {
	m := p.open()
	p.bumpKeyword()
	for {
		p.parseLetBinding()
		if !p.eat(TokenComma) {
			break
		}
	}
	p.close(m, KindLetClause)
}

// LetBinding ::= (("$" VarName TypeDeclaration?) | FTScoreVar) ":=" ExprSingle
func (p *Parser) parseLetBinding() {
	m := p.open()
	if p.atKeyword(ctxClause, "score") {
		p.parseFTScoreVar()
	} else {
		p.expectVarName()
		if p.atKeyword(ctxClause, "as") {
			p.parseTypeDeclaration()
		}
	}
	p.expect(TokenAssign, ":=")
	p.expectExprSingle()
	p.close(m, KindLetBinding)
}

// WindowClause ::= "for" (TumblingWindowClause | SlidingWindowClause)
func (p *Parser) parseWindowClause() {
	m := p.open()
	p.bumpKeyword()
	w := p.open()
	sliding := p.atName("sliding")
	p.bumpKeyword()
	p.expectKeyword(ctxClause, "window")
	p.expectVarName()
	if p.atKeyword(ctxClause, "as") {
		p.parseTypeDeclaration()
	}
	p.expectKeyword(ctxClause, "in")
	p.expectExprSingle()
	p.parseWindowCondition(KindWindowStartCondition)
	switch {
	case sliding:
		p.parseWindowCondition(KindWindowEndCondition)
		p.close(w, KindSlidingWindowClause)
	default:
		if p.atKeyword(ctxClause, "only") || p.atKeyword(ctxClause, "end") {
			p.parseWindowCondition(KindWindowEndCondition)
		}
		p.close(w, KindTumblingWindowClause)
	}
	p.close(m, KindWindowClause)
}

// WindowStartCondition ::= "start" WindowVars "when" ExprSingle
// WindowEndCondition ::= "only"? "end" WindowVars "when" ExprSingle
func (p *Parser) parseWindowCondition(kind NodeKind) {
	m := p.open()
	if kind == KindWindowStartCondition {
		p.expectKeyword(ctxClause, "start")
	} else {
		p.eatKeyword(ctxClause, "only")
		p.expectKeyword(ctxClause, "end")
	}
	p.parseWindowVars()
	p.expectKeyword(ctxClause, "when")
	p.expectExprSingle()
	p.close(m, kind)
}

// WindowVars ::= ("$" CurrentItem)? PositionalVar? ("previous" "$" PreviousItem)?
//
//	("next" "$" NextItem)?
func (p *Parser) parseWindowVars() {
	m := p.open()
	found := false
	if p.at(TokenDollar) {
		p.expectVarName()
		found = true
	}
	if p.atKeyword(ctxClause, "at") {
		p.parsePositionalVar()
		found = true
	}
	if p.eatKeyword(ctxClause, "previous") {
		p.expectVarName()
		found = true
	}
	if p.eatKeyword(ctxClause, "next") {
		p.expectVarName()
		found = true
	}
	p.closeIf(m, KindWindowVars, found)
}

// GroupByClause ::= "group" "by" GroupingSpecList
func (p *Parser) parseGroupByClause() {
	m := p.open()
	p.bumpKeyword()
	p.bumpKeyword()
	list := p.open()
	for {
		p.parseGroupingSpec()
		if !p.eat(TokenComma) {
			break
		}
	}
	p.close(list, KindGroupingSpecList)
	p.close(m, KindGroupByClause)
}

// GroupingSpec ::= "$" VarName (TypeDeclaration? ":=" ExprSingle)?
//
//	("collation" URILiteral)?
func (p *Parser) parseGroupingSpec() {
	m := p.open()
	p.expectVarName()
	if p.atKeyword(ctxClause, "as") {
		p.parseTypeDeclaration()
		p.expect(TokenAssign, ":=")
		p.expectExprSingle()
	} else if p.eat(TokenAssign) {
		p.expectExprSingle()
	}
	if p.eatKeyword(ctxClause, "collation") {
		p.expectStringLiteral(msgExpectedURI)
	}
	p.close(m, KindGroupingSpec)
}

// OrderByClause ::= (("order" "by") | ("stable" "order" "by")) OrderSpecList
func (p *Parser) parseOrderByClause() {
	m := p.open()
	p.eatKeyword(ctxClause, "stable")
	p.expectKeyword(ctxClause, "order")
	p.expectKeyword(ctxClause, "by")
	list := p.open()
	for {
		p.parseOrderSpec()
		if !p.eat(TokenComma) {
			break
		}
	}
	p.close(list, KindOrderSpecList)
	p.close(m, KindOrderByClause)
}

// OrderSpec ::= ExprSingle OrderModifier
// OrderModifier ::= ("ascending" | "descending")? ("empty" ("greatest" | "least"))?
//
//	("collation" URILiteral)?
func (p *Parser) parseOrderSpec() {
	m := p.open()
	p.expectExprSingle()
	mod := p.open()
	found := p.eatKeyword(ctxClause, "ascending") || p.eatKeyword(ctxClause, "descending")
	if p.eatKeyword(ctxClause, "empty") {
		p.expectOneOf(ctxClause, "greatest", "least")
		found = true
	}
	if p.eatKeyword(ctxClause, "collation") {
		p.expectStringLiteral(msgExpectedURI)
		found = true
	}
	p.closeIf(mod, KindOrderModifier, found)
	p.close(m, KindOrderSpec)
}

// ForExpr ::= SimpleForClause "return" ExprSingle
func (p *Parser) parseSimpleForExpr() {
	m := p.open()
	c := p.open()
	p.bumpKeyword()
	for {
		b := p.open()
		p.expectVarName()
		p.expectKeyword(ctxClause, "in")
		p.expectExprSingle()
		p.close(b, KindSimpleForBinding)
		if !p.eat(TokenComma) {
			break
		}
	}
	p.close(c, KindSimpleForClause)
	p.expectKeyword(ctxClause, "return")
	p.expectExprSingle()
	p.close(m, KindForExpr)
}

// LetExpr ::= SimpleLetClause "return" ExprSingle
func (p *Parser) parseSimpleLetExpr() {
	m := p.open()
	c := p.open()
	p.bumpKeyword()
	for {
		b := p.open()
		p.expectVarName()
		p.expect(TokenAssign, ":=")
		p.expectExprSingle()
		p.close(b, KindSimpleLetBinding)
		if !p.eat(TokenComma) {
			break
		}
	}
	p.close(c, KindSimpleLetClause)
	p.expectKeyword(ctxClause, "return")
	p.expectExprSingle()
	p.close(m, KindLetExpr)
}

func (p *Parser) atQuantified() bool {
	return (p.atKeyword(ctxExpr, "some") || p.atKeyword(ctxExpr, "every")) &&
		p.nth(1).Kind == TokenDollar
}

// QuantifiedExpr ::= ("some" | "every") "$" VarName TypeDeclaration? "in" ExprSingle
//
//	("," "$" VarName TypeDeclaration? "in" ExprSingle)* "satisfies" ExprSingle
func (p *Parser) parseQuantified() {
	m := p.open()
	p.bumpKeyword()
	for {
		p.expectVarName()
		if p.atKeyword(ctxClause, "as") {
			p.parseTypeDeclaration()
		}
		p.expectKeyword(ctxClause, "in")
		p.expectExprSingle()
		if !p.eat(TokenComma) {
			break
		}
	}
	p.expectKeyword(ctxClause, "satisfies")
	p.expectExprSingle()
	p.close(m, KindQuantifiedExpr)
}

// parseOperandExpr parses "(" Expr ")" inline.
func (p *Parser) parseOperandExpr() {
	p.bump()
	p.expectExpr()
	p.expectClose(TokenRParen, ")", "")
}

// SwitchExpr ::= "switch" "(" Expr ")" SwitchCaseClause+ "default" "return" ExprSingle
func (p *Parser) parseSwitch() {
	m := p.open()
	p.bumpKeyword()
	p.parseOperandExpr()
	if !p.atKeyword(ctxClause, "case") {
		p.errorHere(expected("case"))
	}
	for p.atKeyword(ctxClause, "case") {
		c := p.open()
		for p.eatKeyword(ctxClause, "case") {
			p.expectExprSingle()
		}
		p.expectKeyword(ctxClause, "return")
		p.expectExprSingle()
		p.close(c, KindSwitchCaseClause)
	}
	p.expectKeyword(ctxClause, "default")
	p.expectKeyword(ctxClause, "return")
	p.expectExprSingle()
	p.close(m, KindSwitchExpr)
}

// TypeswitchExpr ::= "typeswitch" "(" Expr ")" CaseClause+ "default"
//
//	("$" VarName)? "return" ExprSingle
func (p *Parser) parseTypeswitch() {
	m := p.open()
	p.bumpKeyword()
	p.parseOperandExpr()
	if !p.atKeyword(ctxClause, "case") {
		p.errorHere(expected("case"))
	}
	for p.atKeyword(ctxClause, "case") {
		c := p.open()
		p.bumpKeyword()
		if p.at(TokenDollar) {
			p.expectVarName()
			p.expectKeyword(ctxClause, "as")
		}
		p.parseSequenceTypeUnion()
		p.expectKeyword(ctxClause, "return")
		p.expectExprSingle()
		p.close(c, KindCaseClause)
	}
	d := p.open()
	if p.expectKeyword(ctxClause, "default") {
		if p.at(TokenDollar) {
			p.expectVarName()
		}
		p.expectKeyword(ctxClause, "return")
		p.expectExprSingle()
		p.close(d, KindDefaultCaseClause)
	} else {
		p.drop(d)
	}
	p.close(m, KindTypeswitchExpr)
}

// IfExpr ::= "if" "(" Expr ")" "then" ExprSingle "else" ExprSingle
func (p *Parser) parseIf() {
	m := p.open()
	p.bumpKeyword()
	p.parseOperandExpr()
	p.expectKeyword(ctxClause, "then")
	p.expectExprSingle()
	p.expectKeyword(ctxClause, "else")
	p.expectExprSingle()
	p.close(m, KindIfExpr)
}

// TryCatchExpr ::= TryClause CatchClause+
func (p *Parser) parseTryCatch() {
	m := p.open()
	t := p.open()
	p.bumpKeyword()
	p.parseEnclosedExpr()
	p.close(t, KindTryClause)
	if !p.atKeyword(ctxClause, "catch") {
		p.errorHere(expected("catch"))
	}
	for p.atKeyword(ctxClause, "catch") {
		c := p.open()
		p.bumpKeyword()
		list := p.open()
		for {
			if !p.parseNameTest() {
				p.errorHere(msgExpectedNodeTest)
			}
			if !p.eat(TokenUnion) {
				break
			}
		}
		p.close(list, KindCatchErrorList)
		p.parseEnclosedExpr()
		p.close(c, KindCatchClause)
	}
	p.close(m, KindTryCatchExpr)
}
