package parser

import "github.com/dhamidi/xqparse/xquery/dialect"

// kindTestWords introduce the node kind tests, which are valid both as item
// types and as path node tests.
var kindTestWords = map[string]bool{
	"document-node": true, "element": true, "attribute": true,
	"schema-element": true, "schema-attribute": true,
	"processing-instruction": true, "comment": true, "text": true,
	"namespace-node": true, "node": true,
}

// TypeDeclaration ::= "as" SequenceType
func (p *Parser) parseTypeDeclaration() {
	m := p.open()
	p.bumpKeyword()
	p.expectSequenceType()
	p.close(m, KindTypeDeclaration)
}

// SequenceType ::= ("empty-sequence" "(" ")") | (ItemType OccurrenceIndicator?)
//
// The node is only created for empty-sequence() or when an occurrence
// indicator is present; a bare item type stands for itself.
func (p *Parser) parseSequenceType() bool {
	if p.atKeywordFollowedBy(ctxType, "empty-sequence", TokenLParen) {
		m := p.open()
		p.bumpKeyword()
		p.bump()
		p.expectClose(TokenRParen, ")", "")
		p.close(m, KindSequenceType)
		return true
	}
	m := p.open()
	if !p.parseItemType() {
		p.abandon(m)
		return false
	}
	occurrence := p.eatAny(TokenQuestion, TokenStar, TokenPlus)
	p.closeIf(m, KindSequenceType, occurrence)
	return true
}

func (p *Parser) expectSequenceType() {
	if !p.parseSequenceType() {
		p.errorHere(msgExpectedSeqType)
	}
}

// SequenceTypeUnion ::= SequenceType ("|" SequenceType)*
func (p *Parser) parseSequenceTypeUnion() {
	m := p.open()
	p.expectSequenceType()
	found := false
	for p.cfg.Has(dialect.SpecXQuery30) && p.eat(TokenUnion) {
		found = true
		p.expectSequenceType()
	}
	p.closeIf(m, KindSequenceTypeUnion, found)
}

func (p *Parser) parseItemType() bool {
	tok := p.peek()
	switch tok.Kind {
	case TokenLParen:
		if !p.supports(dialect.FeatureParenthesizedItemType) {
			return false
		}
		m := p.open()
		p.bump()
		p.expectItemType()
		p.expectClose(TokenRParen, ")", "")
		p.close(m, KindParenthesizedItemType)
		return true
	case TokenAnnotation:
		if !p.supports(dialect.FeatureFunctionTest) {
			return false
		}
		p.parseFunctionTest()
		return true
	case TokenTypeAlias:
		p.parseTypeAlias()
		return true
	case TokenNCName:
		if !p.isPrefix(tok) && p.nth(1).Kind == TokenLParen && p.parseItemTest(tok.Literal) {
			return true
		}
	}
	return p.parseAtomicOrUnionType()
}

func (p *Parser) expectItemType() {
	if !p.parseItemType() {
		p.errorHere(msgExpectedItemType)
	}
}

// parseItemTest parses the parenthesised item types introduced by word, or
// returns false when word does not introduce one in the active dialect.
func (p *Parser) parseItemTest(word string) bool {
	if !p.keywordEnabled(ctxType, word) {
		return false
	}
	switch word {
	case "item":
		m := p.open()
		p.bumpKeyword()
		p.bump()
		p.expectClose(TokenRParen, ")", "")
		p.close(m, KindAnyItemType)
		return true
	case "function":
		p.parseFunctionTest()
		return true
	case "map":
		p.parseMapTest()
		return true
	case "array":
		p.parseArrayTest()
		return true
	case "tuple":
		p.parseTupleType()
		return true
	case "union":
		p.parseUnionType()
		return true
	}
	if kindTestWords[word] {
		return p.parseKindTest(word)
	}
	return false
}

// parseKindTest parses word "(" ... ")" for one of the node kind tests.
func (p *Parser) parseKindTest(word string) bool {
	m := p.open()
	p.bumpKeyword()
	p.bump()
	var kind NodeKind
	switch word {
	case "node":
		kind = KindAnyKindTest
	case "text":
		kind = KindTextTest
	case "comment":
		kind = KindCommentTest
	case "namespace-node":
		kind = KindNamespaceNodeTest
	case "document-node":
		kind = KindDocumentTest
		switch {
		case p.atKeywordFollowedBy(ctxType, "element", TokenLParen):
			p.parseKindTest("element")
		case p.atKeywordFollowedBy(ctxType, "schema-element", TokenLParen):
			p.parseKindTest("schema-element")
		}
	case "processing-instruction":
		kind = KindPITest
		if p.at(TokenNCName) {
			p.expectNCName()
		} else {
			p.parseStringLiteral()
		}
	case "element", "attribute":
		kind = KindElementTest
		if word == "attribute" {
			kind = KindAttributeTest
		}
		if p.eat(TokenStar) || p.parseEQName() {
			if p.eat(TokenComma) {
				p.expectEQName(msgExpectedTypeName)
				if word == "element" {
					p.eat(TokenQuestion)
				}
			}
		}
	case "schema-element":
		kind = KindSchemaElementTest
		p.expectEQName(msgExpectedQName)
	case "schema-attribute":
		kind = KindSchemaAttributeTest
		p.expectEQName(msgExpectedQName)
	}
	p.expectClose(TokenRParen, ")", "")
	p.close(m, kind)
	return true
}

// FunctionTest ::= Annotation* (AnyFunctionTest | TypedFunctionTest)
func (p *Parser) parseFunctionTest() {
	m := p.open()
	for p.at(TokenAnnotation) {
		p.parseAnnotation()
	}
	p.expectKeyword(ctxType, "function")
	if !p.expect(TokenLParen, "(") {
		p.close(m, KindAnyFunctionTest)
		return
	}
	if p.at(TokenStar) {
		p.bump()
		p.expectClose(TokenRParen, ")", "")
		p.close(m, KindAnyFunctionTest)
		return
	}
	if !p.at(TokenRParen) && !p.atEOF() {
		for {
			p.expectSequenceType()
			if !p.eat(TokenComma) {
				break
			}
		}
	}
	p.expectClose(TokenRParen, ")", "")
	p.expectKeyword(ctxClause, "as")
	p.expectSequenceType()
	p.close(m, KindTypedFunctionTest)
}

// MapTest ::= "map" "(" "*" ")" | "map" "(" AtomicOrUnionType "," SequenceType ")"
func (p *Parser) parseMapTest() {
	m := p.open()
	p.bumpKeyword()
	p.bump()
	if p.eat(TokenStar) {
		p.expectClose(TokenRParen, ")", "")
		p.close(m, KindAnyMapTest)
		return
	}
	if !p.parseAtomicOrUnionType() {
		p.errorHere(msgExpectedTypeName)
	}
	p.expect(TokenComma, ",")
	p.expectSequenceType()
	p.expectClose(TokenRParen, ")", "")
	p.close(m, KindTypedMapTest)
}

// ArrayTest ::= "array" "(" "*" ")" | "array" "(" SequenceType ")"
func (p *Parser) parseArrayTest() {
	m := p.open()
	p.bumpKeyword()
	p.bump()
	if p.eat(TokenStar) {
		p.expectClose(TokenRParen, ")", "")
		p.close(m, KindAnyArrayTest)
		return
	}
	p.expectSequenceType()
	p.expectClose(TokenRParen, ")", "")
	p.close(m, KindTypedArrayTest)
}

// AtomicOrUnionType ::= EQName
func (p *Parser) parseAtomicOrUnionType() bool {
	m := p.open()
	if !p.parseEQName() {
		p.abandon(m)
		return false
	}
	p.close(m, KindAtomicOrUnionType)
	return true
}

// SingleType ::= SimpleTypeName "?"?
func (p *Parser) parseSingleType() bool {
	m := p.open()
	t := p.open()
	if !p.parseEQName() {
		p.abandon(m)
		return false
	}
	p.close(t, KindSimpleTypeName)
	p.closeIf(m, KindSingleType, p.eat(TokenQuestion))
	return true
}

func (p *Parser) expectSingleType() {
	if !p.parseSingleType() {
		p.errorHere(msgExpectedTypeName)
	}
}
