package parser

// Direct constructors switch the lexer between the tag, attribute value and
// element content modes. Every production restores the mode it was entered
// with.

// DirElemConstructor ::= "<" QName DirAttributeList ("/>" | (">" DirElemContent* "</" QName S? ">"))
func (p *Parser) parseDirElemConstructor() {
	m := p.open()
	p.bump()
	prev := p.setMode(ModeTag)

	start := p.peek().Start()
	var name string
	if p.parseEQName() {
		name = string(p.input[start:p.pos])
	} else {
		p.errorHere(msgExpectedQName)
	}

	attrs := p.open()
	found := false
	for p.at(TokenNCName) {
		p.parseDirAttribute()
		found = true
	}
	p.closeIf(attrs, KindDirAttributeList, found)

	switch {
	case p.eat(TokenSelfClosingTagEnd):
	case p.eat(TokenTagEnd):
		p.parseDirElemContent()
		p.parseCloseTag(name)
	default:
		p.errorHere(expected(">", "/>"))
	}
	p.setMode(prev)
	p.close(m, KindDirElemConstructor)
}

// DirAttribute ::= QName S? "=" S? DirAttributeValue
func (p *Parser) parseDirAttribute() {
	m := p.open()
	p.expectEQName(msgExpectedQName)
	p.expect(TokenEqual, "=")
	if p.at(TokenStringLiteralStart) {
		p.parseDirAttributeValue()
	} else {
		p.errorHere(msgExpectedString)
	}
	p.close(m, KindDirAttribute)
}

func (p *Parser) parseDirAttributeValue() {
	m := p.open()
	quote := p.bump()
	mode := ModeAttrQuot
	if quote.Literal == "'" {
		mode = ModeAttrApos
	}
	p.setMode(mode)
loop:
	for {
		switch p.peek().Kind {
		case TokenEOF:
			p.errorHere(msgUnclosedString)
			break loop
		case TokenStringLiteralEnd:
			p.bump()
			break loop
		case TokenLBrace:
			p.parseEnclosedContent(mode)
		case TokenRBrace, TokenBadCharacter:
			p.unexpected()
		default:
			p.bump()
		}
	}
	p.setMode(ModeTag)
	p.close(m, KindDirAttributeValue)
}

// parseEnclosedContent parses "{" Expr? "}" inside XML content. The braces
// are lexed in the content mode and the expression in the default mode.
func (p *Parser) parseEnclosedContent(content Mode) {
	m := p.open()
	p.bump()
	p.setMode(ModeDefault)
	p.parseExpr()
	p.expectClose(TokenRBrace, "}", "")
	p.setMode(content)
	p.close(m, KindEnclosedExpr)
}

// unexpected wraps the next token in an error node.
func (p *Parser) unexpected() {
	m := p.open()
	p.bump()
	p.closeError(m, syntaxError(msgUnexpectedToken))
}

// parseDirElemContent parses element content up to the close tag or the end
// of input.
func (p *Parser) parseDirElemContent() {
	p.setMode(ModeElemContent)
	m := p.open()
	found := false
loop:
	for {
		switch tok := p.peek(); tok.Kind {
		case TokenEOF, TokenCloseTagStart:
			break loop
		case TokenElementContents, TokenPredefinedEntityRef, TokenCharRef,
			TokenPartialEntityRef, TokenEmptyEntityRef,
			TokenEscapedLBrace, TokenEscapedRBrace:
			p.bump()
		case TokenLBrace:
			p.parseEnclosedContent(ModeElemContent)
		case TokenLess:
			if p.atTagStart(tok) {
				p.parseDirElemConstructor()
			} else {
				p.unexpected()
			}
		case TokenXmlCommentStart:
			p.parseDirCommentConstructor()
		case TokenPIStart:
			p.parseDirPIConstructor()
		case TokenCDataStart:
			p.parseCDataSection()
		default:
			p.unexpected()
		}
		found = true
	}
	p.closeIf(m, KindDirElemContent, found)
}

// parseCloseTag parses "</" QName S? ">" and checks the name against the
// start tag.
func (p *Parser) parseCloseTag(name string) {
	if !p.at(TokenCloseTagStart) {
		p.errorHere(msgUnclosedElement)
		return
	}
	p.bump()
	p.setMode(ModeTag)
	start := p.peek().Start()
	m := p.open()
	if !p.parseEQName() {
		p.abandon(m)
		p.errorHere(msgExpectedQName)
	} else if string(p.input[start:p.pos]) != name {
		p.closeError(m, &Error{Code: CodeTagMismatch, Message: msgTagMismatch})
	} else {
		p.drop(m)
	}
	p.expectClose(TokenTagEnd, ">", msgUnclosedElement)
}

// DirCommentConstructor ::= "<!--" DirCommentContents "-->"
func (p *Parser) parseDirCommentConstructor() {
	m := p.open()
	p.bump()
	prev := p.setMode(ModeXmlComment)
	p.eat(TokenXmlCommentContents)
	p.expectClose(TokenXmlCommentEnd, "-->", msgUnclosedXmlComment)
	p.setMode(prev)
	p.close(m, KindDirCommentConstructor)
}

// DirPIConstructor ::= "<?" PITarget (S DirPIContents)? "?>"
func (p *Parser) parseDirPIConstructor() {
	m := p.open()
	p.bump()
	prev := p.setMode(ModeTag)
	if p.at(TokenNCName) && p.nextAdjacentTo(p.pos) {
		p.bump()
	} else {
		p.errorHere(msgExpectedNCName)
	}
	p.setMode(ModePI)
	p.eat(TokenPIContents)
	p.expectClose(TokenPIEnd, "?>", msgUnclosedPI)
	p.setMode(prev)
	p.close(m, KindDirPIConstructor)
}

// nextAdjacentTo reports whether the next token starts exactly at offset.
func (p *Parser) nextAdjacentTo(offset int) bool {
	return p.peek().Start() == offset
}

// CDataSection ::= "<![CDATA[" CDataSectionContents "]]>"
func (p *Parser) parseCDataSection() {
	m := p.open()
	p.bump()
	prev := p.setMode(ModeCData)
	p.eat(TokenCDataContents)
	p.expectClose(TokenCDataEnd, "]]>", msgUnclosedCData)
	p.setMode(prev)
	p.close(m, KindCDataSection)
}
