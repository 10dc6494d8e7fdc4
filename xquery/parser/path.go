package parser

import "github.com/dhamidi/xqparse/xquery/dialect"

// PathExpr ::= ("/" RelativePathExpr?) | ("//" RelativePathExpr) | RelativePathExpr
func (p *Parser) parsePathExpr() bool {
	switch {
	case p.at(TokenSlash):
		m := p.open()
		p.bump()
		if p.canStartStep(p.peek()) {
			p.parseRelativePathExpr()
		}
		p.close(m, KindPathExpr)
		return true
	case p.at(TokenDoubleSlash):
		m := p.open()
		p.bump()
		if !p.parseRelativePathExpr() {
			p.errorHere(msgExpectedNodeTest)
		}
		p.close(m, KindPathExpr)
		return true
	}
	return p.parseRelativePathExpr()
}

// canStartStep is canStartExpr without the tokens that only begin larger
// expressions.
func (p *Parser) canStartStep(tok Token) bool {
	switch tok.Kind {
	case TokenSlash, TokenDoubleSlash, TokenMinus, TokenPlus, TokenPragmaBegin:
		return false
	}
	return p.canStartExpr(tok)
}

// RelativePathExpr ::= StepExpr (("/" | "//") StepExpr)*
func (p *Parser) parseRelativePathExpr() bool {
	m := p.open()
	if !p.parseStepExpr() {
		p.abandon(m)
		return false
	}
	found := false
	for p.eatAny(TokenSlash, TokenDoubleSlash) {
		found = true
		if !p.parseStepExpr() {
			p.errorHere(msgExpectedNodeTest)
		}
	}
	p.closeIf(m, KindRelativePathExpr, found)
	return true
}

// StepExpr ::= PostfixExpr | AxisStep
func (p *Parser) parseStepExpr() bool {
	return p.parsePostfixExpr() || p.parseAxisStep()
}

// AxisStep ::= (ReverseStep | ForwardStep) PredicateList
func (p *Parser) parseAxisStep() bool {
	m := p.open()
	if !p.parseStep() {
		p.abandon(m)
		return false
	}
	preds := false
	for p.at(TokenLBracket) {
		p.parsePredicate()
		preds = true
	}
	p.closeIf(m, KindAxisStep, preds)
	return true
}

var (
	forwardAxes = map[string]bool{
		"child": true, "descendant": true, "attribute": true, "self": true,
		"descendant-or-self": true, "following-sibling": true, "following": true,
		"namespace": true,
	}
	reverseAxes = map[string]bool{
		"parent": true, "ancestor": true, "preceding-sibling": true,
		"preceding": true, "ancestor-or-self": true,
	}
)

func (p *Parser) parseStep() bool {
	tok := p.peek()
	switch tok.Kind {
	case TokenDotDot:
		m := p.open()
		p.bump()
		p.close(m, KindAbbrevReverseStep)
		return true
	case TokenAt:
		m := p.open()
		p.bump()
		if !p.parseNodeTest() {
			p.errorHere(msgExpectedNodeTest)
		}
		p.close(m, KindAbbrevForwardStep)
		return true
	case TokenNCName:
		if p.nth(1).Kind == TokenAxisSeparator && p.keywordEnabled(ctxAxis, tok.Literal) {
			switch {
			case forwardAxes[tok.Literal]:
				p.parseAxisStepWith(KindForwardStep, KindForwardAxis)
				return true
			case reverseAxes[tok.Literal]:
				p.parseAxisStepWith(KindReverseStep, KindReverseAxis)
				return true
			}
		}
	}
	return p.parseNodeTest()
}

func (p *Parser) parseAxisStepWith(step, axis NodeKind) {
	m := p.open()
	a := p.open()
	p.bumpKeyword()
	p.bump()
	p.close(a, axis)
	if !p.parseNodeTest() {
		p.errorHere(msgExpectedNodeTest)
	}
	p.close(m, step)
}

// NodeTest ::= KindTest | NameTest
func (p *Parser) parseNodeTest() bool {
	tok := p.peek()
	if tok.Kind == TokenNCName && !p.isPrefix(tok) && p.nth(1).Kind == TokenLParen &&
		kindTestWords[tok.Literal] && p.keywordEnabled(ctxType, tok.Literal) {
		return p.parseKindTest(tok.Literal)
	}
	return p.parseNameTest()
}

// NameTest ::= EQName | Wildcard
func (p *Parser) parseNameTest() bool {
	m := p.open()
	if p.atWildcard() {
		p.parseWildcard()
	} else if !p.parseEQName() {
		p.abandon(m)
		return false
	}
	p.close(m, KindNameTest)
	return true
}

func (p *Parser) rawAt(i int) byte {
	if i < 0 || i >= len(p.input) {
		return 0
	}
	return p.input[i]
}

func (p *Parser) atWildcard() bool {
	tok := p.peek()
	switch tok.Kind {
	case TokenStar:
		return true
	case TokenNCName:
		return p.isPrefix(tok) && p.rawAt(tok.End()+1) == '*'
	case TokenBracedURILiteral:
		return p.supports(dialect.FeatureURIQualifiedName) &&
			p.nth(1).Kind == TokenStar && p.nextAdjacent()
	}
	return false
}

// Wildcard ::= "*" | (NCName ":*") | ("*:" NCName) | (BracedURILiteral "*")
//
// "*:*" is kept as a wildcard with the second star marked as an error.
func (p *Parser) parseWildcard() {
	m := p.open()
	tok := p.bump()
	switch tok.Kind {
	case TokenStar:
		if p.rawAt(tok.End()) != ':' {
			break
		}
		if p.rawAt(tok.End()+1) == '*' {
			p.bump()
			e := p.open()
			p.bump()
			p.closeError(e, syntaxError(msgDoubleWildcard))
			break
		}
		if r, _ := decodeRune(p.input, tok.End()+1); isNameStartChar(r) {
			p.bump()
			p.bump()
		}
	case TokenNCName:
		p.bump()
		p.bump()
	case TokenBracedURILiteral:
		p.bump()
	}
	p.close(m, KindWildcard)
}

// eqNameLen returns how many tokens the EQName starting at the n-th token
// spans, or 0 when no EQName starts there.
func (p *Parser) eqNameLen(n int) int {
	tok := p.nth(n)
	switch tok.Kind {
	case TokenNCName:
		if !p.isPrefix(tok) {
			return 1
		}
		if p.rawAt(tok.End()+1) == '*' {
			return 0
		}
		return 3
	case TokenBracedURILiteral:
		if !p.supports(dialect.FeatureURIQualifiedName) {
			return 0
		}
		if next := p.nth(n + 1); next.Kind == TokenNCName && next.Start() == tok.End() {
			return 2
		}
	}
	return 0
}

// parseEQName parses a QName, an unprefixed NCName or a URIQualifiedName.
// Prefix wildcards are not names and are left alone.
func (p *Parser) parseEQName() bool {
	tok := p.peek()
	switch tok.Kind {
	case TokenNCName:
		if !p.isPrefix(tok) {
			m := p.open()
			p.bump()
			p.close(m, KindNCName)
			return true
		}
		if p.rawAt(tok.End()+1) == '*' {
			return false
		}
		m := p.open()
		p.bump()
		p.bump()
		p.bump()
		p.close(m, KindQName)
		return true
	case TokenBracedURILiteral:
		if !p.supports(dialect.FeatureURIQualifiedName) {
			return false
		}
		if p.nth(1).Kind == TokenStar && p.nextAdjacent() {
			return false
		}
		m := p.open()
		p.bump()
		if p.at(TokenNCName) && p.peek().Start() == tok.End() {
			p.bump()
		} else {
			p.errorHere(msgExpectedNCName)
		}
		p.close(m, KindURIQualifiedName)
		return true
	}
	return false
}

func (p *Parser) expectEQName(message string) {
	if !p.parseEQName() {
		p.errorHere(message)
	}
}

// expectNCName parses an unprefixed name.
func (p *Parser) expectNCName() {
	if !p.at(TokenNCName) {
		p.errorHere(msgExpectedNCName)
		return
	}
	m := p.open()
	p.bump()
	p.close(m, KindNCName)
}

// PostfixExpr ::= PrimaryExpr (Predicate | ArgumentList | Lookup)*
func (p *Parser) parsePostfixExpr() bool {
	m := p.open()
	if !p.parsePrimaryExpr() {
		p.abandon(m)
		return false
	}
	found := false
	for {
		switch {
		case p.at(TokenLBracket):
			p.parsePredicate()
		case p.at(TokenLParen) && p.supports(dialect.FeatureInlineFunction):
			p.parseArgumentList()
		case p.atLookup():
			p.parseLookup(KindLookup)
		default:
			p.closeIf(m, KindPostfixExpr, found)
			return true
		}
		found = true
	}
}

// Predicate ::= "[" Expr "]"
func (p *Parser) parsePredicate() {
	m := p.open()
	p.bump()
	p.expectExpr()
	p.expectClose(TokenRBracket, "]", "")
	p.close(m, KindPredicate)
}

func (p *Parser) atLookup() bool {
	if !p.at(TokenQuestion) || !p.supports(dialect.FeatureLookup) {
		return false
	}
	switch p.nth(1).Kind {
	case TokenNCName, TokenIntegerLiteral, TokenLParen, TokenStar:
		return true
	}
	return false
}

// Lookup ::= "?" KeySpecifier, also used for UnaryLookup.
func (p *Parser) parseLookup(kind NodeKind) {
	m := p.open()
	p.bump()
	k := p.open()
	switch p.peek().Kind {
	case TokenNCName:
		p.expectNCName()
	case TokenLParen:
		p.parseParenthesizedExpr()
	default:
		p.bump()
	}
	p.close(k, KindKeySpecifier)
	p.close(m, kind)
}
