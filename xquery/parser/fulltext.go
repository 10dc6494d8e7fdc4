package parser

// Full Text 1.0 productions. They are reached from the "contains text"
// hook, the "ft-option" declaration and score variables, all of which are
// gated on the full text feature.

func (p *Parser) atFT(word string) bool {
	return p.atKeyword(ctxFullText, word)
}

func (p *Parser) atFTPair(first, second string) bool {
	return p.atFT(first) && p.tokenIsName(p.nth(1), second)
}

// FTSelection ::= FTOr FTPosFilter*
func (p *Parser) parseFTSelection() bool {
	m := p.open()
	if !p.parseFTOr() {
		p.abandon(m)
		p.errorHere(msgExpectedFTWords)
		return false
	}
	for p.parseFTPosFilter() {
	}
	p.close(m, KindFTSelection)
	return true
}

// parseFTBinary is parseBinary for the full text connectives.
func (p *Parser) parseFTBinary(kind NodeKind, operand func(*Parser) bool, op func(*Parser) bool) bool {
	m := p.open()
	if !operand(p) {
		p.abandon(m)
		return false
	}
	found := false
	for op(p) {
		found = true
		if !operand(p) {
			p.errorHere(msgExpectedFTWords)
		}
	}
	p.closeIf(m, kind, found)
	return true
}

// FTOr ::= FTAnd ("ftor" FTAnd)*
func (p *Parser) parseFTOr() bool {
	return p.parseFTBinary(KindFTOr, (*Parser).parseFTAnd, func(p *Parser) bool {
		return p.eatKeyword(ctxFullText, "ftor")
	})
}

// FTAnd ::= FTMildNot ("ftand" FTMildNot)*
func (p *Parser) parseFTAnd() bool {
	return p.parseFTBinary(KindFTAnd, (*Parser).parseFTMildNot, func(p *Parser) bool {
		return p.eatKeyword(ctxFullText, "ftand")
	})
}

// FTMildNot ::= FTUnaryNot ("not" "in" FTUnaryNot)*
func (p *Parser) parseFTMildNot() bool {
	return p.parseFTBinary(KindFTMildNot, (*Parser).parseFTUnaryNot, func(p *Parser) bool {
		if !p.atFTPair("not", "in") {
			return false
		}
		p.bumpKeyword()
		p.bumpKeyword()
		return true
	})
}

// FTUnaryNot ::= "ftnot"? FTPrimaryWithOptions
func (p *Parser) parseFTUnaryNot() bool {
	m := p.open()
	not := p.eatKeyword(ctxFullText, "ftnot")
	if !p.parseFTPrimaryWithOptions() {
		if !not {
			p.abandon(m)
			return false
		}
		p.errorHere(msgExpectedFTWords)
	}
	p.closeIf(m, KindFTUnaryNot, not)
	return true
}

// FTPrimaryWithOptions ::= FTPrimary FTMatchOptions? FTWeight?
func (p *Parser) parseFTPrimaryWithOptions() bool {
	m := p.open()
	if !p.parseFTPrimary() {
		p.abandon(m)
		return false
	}
	options := p.parseFTMatchOptions()
	weight := false
	if p.atFT("weight") {
		w := p.open()
		p.bumpKeyword()
		p.parseBracedExpr(false)
		p.close(w, KindFTWeight)
		weight = true
	}
	p.closeIf(m, KindFTPrimaryWithOptions, options || weight)
	return true
}

// FTPrimary ::= (FTWords FTTimes?) | ("(" FTSelection ")") | FTExtensionSelection
func (p *Parser) parseFTPrimary() bool {
	m := p.open()
	switch p.peek().Kind {
	case TokenStringLiteralStart, TokenLBrace:
		p.parseFTWords()
		if p.atFT("occurs") {
			t := p.open()
			p.bumpKeyword()
			p.parseFTRange(KindFTRange)
			p.expectKeyword(ctxFullText, "times")
			p.close(t, KindFTTimes)
		}
	case TokenLParen:
		p.bump()
		p.parseFTSelection()
		p.expectClose(TokenRParen, ")", "")
	case TokenPragmaBegin:
		e := p.open()
		for p.at(TokenPragmaBegin) {
			p.parsePragma()
		}
		if p.expect(TokenLBrace, "{") {
			if !p.at(TokenRBrace) {
				p.parseFTSelection()
			}
			p.expectClose(TokenRBrace, "}", "")
		}
		p.close(e, KindFTExtensionSelection)
	default:
		p.abandon(m)
		return false
	}
	p.close(m, KindFTPrimary)
	return true
}

// FTWords ::= FTWordsValue FTAnyallOption?
// FTWordsValue ::= StringLiteral | ("{" Expr "}")
func (p *Parser) parseFTWords() {
	m := p.open()
	v := p.open()
	if p.at(TokenLBrace) {
		p.parseBracedExpr(false)
	} else {
		p.parseStringLiteral()
	}
	p.close(v, KindFTWordsValue)

	a := p.open()
	switch {
	case p.eatKeyword(ctxFullText, "any"):
		p.eatKeyword(ctxFullText, "word")
		p.close(a, KindFTAnyallOption)
	case p.eatKeyword(ctxFullText, "all"):
		p.eatKeyword(ctxFullText, "words")
		p.close(a, KindFTAnyallOption)
	case p.eatKeyword(ctxFullText, "phrase"):
		p.close(a, KindFTAnyallOption)
	default:
		p.drop(a)
	}
	p.close(m, KindFTWords)
}

// parseFTRange parses FTRange, whose bounds are AdditiveExprs, or
// FTLiteralRange, whose bounds are integer literals.
func (p *Parser) parseFTRange(kind NodeKind) {
	bound := func() {
		if kind == KindFTLiteralRange {
			if !p.eat(TokenIntegerLiteral) {
				p.errorHere(msgExpectedInteger)
			}
			return
		}
		if !p.parseAdditiveExpr() {
			p.errorHere(msgExpectedExpr)
		}
	}
	m := p.open()
	switch {
	case p.eatKeyword(ctxFullText, "exactly"):
		bound()
	case p.eatKeyword(ctxFullText, "at"):
		p.expectOneOf(ctxFullText, "least", "most")
		bound()
	case p.eatKeyword(ctxFullText, "from"):
		bound()
		p.expectKeyword(ctxFullText, "to")
		bound()
	default:
		p.errorHere(expected("exactly", "at", "from"))
	}
	p.close(m, kind)
}

// FTPosFilter ::= FTOrder | FTWindow | FTDistance | FTScope | FTContent
func (p *Parser) parseFTPosFilter() bool {
	m := p.open()
	switch {
	case p.eatKeyword(ctxFullText, "ordered"):
		p.close(m, KindFTOrder)
	case p.eatKeyword(ctxFullText, "window"):
		if !p.parseAdditiveExpr() {
			p.errorHere(msgExpectedExpr)
		}
		p.parseFTUnit()
		p.close(m, KindFTWindow)
	case p.eatKeyword(ctxFullText, "distance"):
		p.parseFTRange(KindFTRange)
		p.parseFTUnit()
		p.close(m, KindFTDistance)
	case p.atFT("same") || p.atFT("different"):
		p.bumpKeyword()
		u := p.open()
		p.expectOneOf(ctxFullText, "sentence", "paragraph")
		p.close(u, KindFTBigUnit)
		p.close(m, KindFTScope)
	case p.atFTPair("at", "start") || p.atFTPair("at", "end") || p.atFTPair("entire", "content"):
		p.bumpKeyword()
		p.bumpKeyword()
		p.close(m, KindFTContent)
	default:
		p.abandon(m)
		return false
	}
	return true
}

// FTUnit ::= "words" | "sentences" | "paragraphs"
func (p *Parser) parseFTUnit() {
	m := p.open()
	p.expectOneOf(ctxFullText, "words", "sentences", "paragraphs")
	p.close(m, KindFTUnit)
}

// FTMatchOptions ::= ("using" FTMatchOption)+
func (p *Parser) parseFTMatchOptions() bool {
	if !p.atFT("using") {
		return false
	}
	m := p.open()
	for p.eatKeyword(ctxFullText, "using") {
		if !p.parseFTMatchOption() {
			p.errorHere(msgExpectedFTOption)
		}
	}
	p.close(m, KindFTMatchOptions)
	return true
}

func (p *Parser) parseFTMatchOption() bool {
	m := p.open()
	switch {
	case p.eatKeyword(ctxFullText, "language"):
		p.expectStringLiteral(msgExpectedString)
		p.close(m, KindFTLanguageOption)
	case p.atFT("wildcards") || p.atFTPair("no", "wildcards"):
		p.eatKeyword(ctxFullText, "no")
		p.bumpKeyword()
		p.close(m, KindFTWildCardOption)
	case p.atFT("thesaurus") || p.atFTPair("no", "thesaurus"):
		p.parseFTThesaurusOption()
		p.close(m, KindFTThesaurusOption)
	case p.atFT("stemming") || p.atFTPair("no", "stemming"):
		p.eatKeyword(ctxFullText, "no")
		p.bumpKeyword()
		p.close(m, KindFTStemOption)
	case p.eatKeyword(ctxFullText, "case"):
		p.expectOneOf(ctxFullText, "insensitive", "sensitive")
		p.close(m, KindFTCaseOption)
	case p.atFT("lowercase") || p.atFT("uppercase"):
		p.bumpKeyword()
		p.close(m, KindFTCaseOption)
	case p.eatKeyword(ctxFullText, "diacritics"):
		p.expectOneOf(ctxFullText, "insensitive", "sensitive")
		p.close(m, KindFTDiacriticsOption)
	case p.atFT("stop") || p.atFTPair("no", "stop"):
		p.parseFTStopWordOption()
		p.close(m, KindFTStopWordOption)
	case p.eatKeyword(ctxFullText, "option"):
		p.expectEQName(msgExpectedQName)
		p.expectStringLiteral(msgExpectedString)
		p.close(m, KindFTExtensionOption)
	default:
		p.abandon(m)
		return false
	}
	return true
}

// FTThesaurusOption ::= ("thesaurus" (FTThesaurusID | "default"))
//
//	| ("thesaurus" "(" (FTThesaurusID | "default") ("," FTThesaurusID)* ")")
//	| ("no" "thesaurus")
func (p *Parser) parseFTThesaurusOption() {
	if p.eatKeyword(ctxFullText, "no") {
		p.bumpKeyword()
		return
	}
	p.bumpKeyword()
	if !p.eat(TokenLParen) {
		p.parseFTThesaurusIDOrDefault()
		return
	}
	p.parseFTThesaurusIDOrDefault()
	for p.eat(TokenComma) {
		p.parseFTThesaurusID()
	}
	p.expectClose(TokenRParen, ")", "")
}

func (p *Parser) parseFTThesaurusIDOrDefault() {
	if !p.eatKeyword(ctxFullText, "default") {
		p.parseFTThesaurusID()
	}
}

// FTThesaurusID ::= "at" URILiteral ("relationship" StringLiteral)?
//
//	(FTLiteralRange "levels")?
func (p *Parser) parseFTThesaurusID() {
	m := p.open()
	p.expectKeyword(ctxFullText, "at")
	p.expectStringLiteral(msgExpectedURI)
	if p.eatKeyword(ctxFullText, "relationship") {
		p.expectStringLiteral(msgExpectedString)
	}
	if p.atFT("exactly") || p.atFT("at") || p.atFT("from") {
		p.parseFTRange(KindFTLiteralRange)
		p.expectKeyword(ctxFullText, "levels")
	}
	p.close(m, KindFTThesaurusID)
}

// FTStopWordOption ::= ("stop" "words" (FTStopWords | "default") FTStopWordsInclExcl*)
//
//	| ("no" "stop" "words")
func (p *Parser) parseFTStopWordOption() {
	if p.eatKeyword(ctxFullText, "no") {
		p.bumpKeyword()
		p.expectKeyword(ctxFullText, "words")
		return
	}
	p.bumpKeyword()
	p.expectKeyword(ctxFullText, "words")
	if !p.eatKeyword(ctxFullText, "default") {
		p.parseFTStopWords()
	}
	for p.atFT("union") || p.atFT("except") {
		m := p.open()
		p.bumpKeyword()
		p.parseFTStopWords()
		p.close(m, KindFTStopWordsInclExcl)
	}
}

// FTStopWords ::= ("at" URILiteral) | ("(" StringLiteral ("," StringLiteral)* ")")
func (p *Parser) parseFTStopWords() {
	m := p.open()
	switch {
	case p.eatKeyword(ctxFullText, "at"):
		p.expectStringLiteral(msgExpectedURI)
	case p.eat(TokenLParen):
		for {
			p.expectStringLiteral(msgExpectedString)
			if !p.eat(TokenComma) {
				break
			}
		}
		p.expectClose(TokenRParen, ")", "")
	default:
		p.errorHere(expected("at", "("))
	}
	p.close(m, KindFTStopWords)
}

// FTIgnoreOption ::= "without" "content" UnionExpr
func (p *Parser) parseFTIgnoreOption() {
	m := p.open()
	p.bumpKeyword()
	p.bumpKeyword()
	if !p.parseUnionExpr() {
		p.errorHere(msgExpectedExpr)
	}
	p.close(m, KindFTIgnoreOption)
}
