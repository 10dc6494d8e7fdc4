package parser

// Saxon 9.8 type extensions. Each hook is only reached when the dialect
// enables the feature, either through the keyword table or the lexer.

// TupleType ::= "tuple" "(" TupleField ("," TupleField)* ("," "*")? ")"
func (p *Parser) parseTupleType() {
	m := p.open()
	p.bumpKeyword()
	p.bump()
	for {
		if p.eat(TokenStar) {
			break
		}
		p.parseTupleField()
		if !p.eat(TokenComma) {
			break
		}
	}
	p.expectClose(TokenRParen, ")", "")
	p.close(m, KindTupleType)
}

// TupleField ::= NCName "?"? ((":" | "as") SequenceType)?
//
// The field name is taken as a single NCName so that "a:xs:string" splits
// after the field name.
func (p *Parser) parseTupleField() {
	m := p.open()
	if p.at(TokenNCName) {
		n := p.open()
		p.bump()
		p.close(n, KindNCName)
	} else if !p.parseStringLiteral() {
		p.errorHere(msgExpectedNCName)
	}
	p.eat(TokenQuestion)
	if p.eat(TokenColon) || p.eatKeyword(ctxClause, "as") {
		p.expectSequenceType()
	}
	p.close(m, KindTupleField)
}

// UnionType ::= "union" "(" EQName ("," EQName)* ")"
func (p *Parser) parseUnionType() {
	m := p.open()
	p.bumpKeyword()
	p.bump()
	for {
		p.expectEQName(msgExpectedTypeName)
		if !p.eat(TokenComma) {
			break
		}
	}
	p.expectClose(TokenRParen, ")", "")
	p.close(m, KindUnionType)
}

// TypeAlias ::= "~" EQName
func (p *Parser) parseTypeAlias() {
	m := p.open()
	p.bump()
	p.expectEQName(msgExpectedTypeName)
	p.close(m, KindTypeAlias)
}

// parseTypeDeclBody parses the rest of "declare type" QName "=" ItemType.
func (p *Parser) parseTypeDeclBody() {
	p.expectEQName(msgExpectedQName)
	p.expect(TokenEqual, "=")
	p.expectItemType()
}
