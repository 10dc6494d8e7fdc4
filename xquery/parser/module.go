package parser

import "github.com/dhamidi/xqparse/xquery/dialect"

// parseModule is the XQuery entry point:
//
//	Module ::= VersionDecl? (LibraryModule | MainModule)
//
// Input left over after a module is reported as unexpected and
// resynchronised, then parsing restarts with another module. The root
// always covers the whole input.
func (p *Parser) parseModule() {
	root := p.openRoot()
	reported, afterModule := false, false
	for !p.atEOF() {
		if p.cancelled() {
			return
		}
		if !afterModule && p.parseModuleBody() {
			reported, afterModule = true, true
			continue
		}
		if !reported {
			p.errorHere(msgMissingModule)
			reported = true
		}
		p.recoverUnexpected()
		afterModule = false
	}
	p.flushTrivia()
	p.close(root, KindModule)
}

// parseXPath is the XPath entry point: a single Expr under an XPath node.
func (p *Parser) parseXPath() {
	root := p.openRoot()
	reported := false
	for !p.atEOF() {
		if p.cancelled() {
			return
		}
		if p.canStartExpr(p.peek()) {
			m := p.open()
			if p.parseExpr() {
				p.close(m, KindXPath)
				reported = true
				continue
			}
			p.abandon(m)
		}
		if !reported {
			p.errorHere(msgExpectedExpr)
			reported = true
		}
		p.recoverUnexpected()
	}
	p.flushTrivia()
	p.close(root, KindModule)
}

// parseModuleBody parses one VersionDecl? (LibraryModule | MainModule) and
// reports whether any token was consumed. Nothing is emitted otherwise.
func (p *Parser) parseModuleBody() bool {
	outer := p.open()
	hasVersion := false
	if p.atVersionDecl() {
		p.parseVersionDecl()
		hasVersion = true
	}

	if p.atKeyword(ctxProlog, "module") && p.tokenIsName(p.nth(1), "namespace") {
		m := p.open()
		p.parseModuleDecl()
		p.parseProlog()
		p.close(m, KindLibraryModule)
		p.drop(outer)
		return true
	}

	m := p.open()
	hasProlog := p.parseProlog()
	hasBody := false
	if p.canStartExpr(p.peek()) {
		body := p.open()
		if hasBody = p.parseExpr(); hasBody {
			p.close(body, KindQueryBody)
		} else {
			p.abandon(body)
		}
	}
	switch {
	case hasBody:
		p.close(m, KindMainModule)
	case hasProlog:
		p.errorHere(msgMissingModule)
		p.close(m, KindMainModule)
	default:
		p.abandon(m)
		if hasVersion {
			p.errorHere(msgMissingModule)
		}
	}

	if !p.consumed(outer) {
		p.abandon(outer)
		return false
	}
	p.drop(outer)
	return true
}

func (p *Parser) atVersionDecl() bool {
	if !p.atKeyword(ctxProlog, "xquery") {
		return false
	}
	next := p.nth(1)
	return p.tokenIsName(next, "version") || p.tokenIsName(next, "encoding")
}

// VersionDecl ::= "xquery" (("encoding" StringLiteral) |
//
//	("version" StringLiteral ("encoding" StringLiteral)?)) Separator
func (p *Parser) parseVersionDecl() {
	m := p.open()
	p.bumpKeyword()
	if p.eatKeyword(ctxDecl, "encoding") {
		p.expectStringLiteral(msgExpectedString)
	} else {
		p.bumpKeyword()
		p.expectStringLiteral(msgExpectedString)
		if p.eatKeyword(ctxDecl, "encoding") {
			p.expectStringLiteral(msgExpectedString)
		}
	}
	p.expect(TokenSemicolon, ";")
	p.close(m, KindVersionDecl)
}

// ModuleDecl ::= "module" "namespace" NCName "=" URILiteral Separator
func (p *Parser) parseModuleDecl() {
	m := p.open()
	p.bumpKeyword()
	p.bumpKeyword()
	p.expectNCName()
	p.expect(TokenEqual, "=")
	p.expectStringLiteral(msgExpectedURI)
	p.expect(TokenSemicolon, ";")
	p.close(m, KindModuleDecl)
}

// parseProlog parses declarations each followed by a separator. Ordering
// between setters and function/variable declarations is not enforced.
func (p *Parser) parseProlog() bool {
	m := p.open()
	found := false
	for !p.cancelled() && p.atDecl() {
		p.parseDecl()
		p.expect(TokenSemicolon, ";")
		found = true
	}
	p.closeIf(m, KindProlog, found)
	return found
}

var declStarters = []string{
	"default", "boundary-space", "base-uri", "construction", "ordering",
	"copy-namespaces", "decimal-format", "namespace", "context", "option",
	"ft-option", "type", "variable", "function",
}

func (p *Parser) atDecl() bool {
	switch {
	case p.atKeyword(ctxProlog, "declare"):
		next := p.nth(1)
		if next.Kind == TokenAnnotation {
			return p.supports(dialect.FeatureAnnotations)
		}
		for _, word := range declStarters {
			if p.tokenIsName(next, word) && p.keywordEnabled(ctxDecl, word) {
				return true
			}
		}
	case p.atKeyword(ctxProlog, "import"):
		next := p.nth(1)
		return p.tokenIsName(next, "schema") || p.tokenIsName(next, "module")
	}
	return false
}

func (p *Parser) parseDecl() {
	if p.atKeyword(ctxProlog, "import") {
		p.parseImport()
		return
	}

	m := p.open()
	p.bumpKeyword()
	switch {
	case p.atKeyword(ctxDecl, "default"):
		p.parseDefaultDecl(m)
	case p.eatKeyword(ctxDecl, "boundary-space"):
		p.expectOneOf(ctxDecl, "preserve", "strip")
		p.close(m, KindBoundarySpaceDecl)
	case p.eatKeyword(ctxDecl, "base-uri"):
		p.expectStringLiteral(msgExpectedURI)
		p.close(m, KindBaseURIDecl)
	case p.eatKeyword(ctxDecl, "construction"):
		p.expectOneOf(ctxDecl, "strip", "preserve")
		p.close(m, KindConstructionDecl)
	case p.eatKeyword(ctxDecl, "ordering"):
		p.expectOneOf(ctxDecl, "ordered", "unordered")
		p.close(m, KindOrderingModeDecl)
	case p.eatKeyword(ctxDecl, "copy-namespaces"):
		p.expectOneOf(ctxDecl, "preserve", "no-preserve")
		p.expect(TokenComma, ",")
		p.expectOneOf(ctxDecl, "inherit", "no-inherit")
		p.close(m, KindCopyNamespacesDecl)
	case p.eatKeyword(ctxDecl, "decimal-format"):
		p.expectEQName(msgExpectedQName)
		p.parseDFProperties()
		p.close(m, KindDecimalFormatDecl)
	case p.eatKeyword(ctxDecl, "namespace"):
		p.expectNCName()
		p.expect(TokenEqual, "=")
		p.expectStringLiteral(msgExpectedURI)
		p.close(m, KindNamespaceDecl)
	case p.eatKeyword(ctxDecl, "context"):
		p.parseContextItemDecl()
		p.close(m, KindContextItemDecl)
	case p.eatKeyword(ctxDecl, "option"):
		p.expectEQName(msgExpectedQName)
		p.expectStringLiteral(msgExpectedString)
		p.close(m, KindOptionDecl)
	case p.eatKeyword(ctxDecl, "ft-option"):
		if !p.parseFTMatchOptions() {
			p.errorHere(msgExpectedFTOption)
		}
		p.close(m, KindFTOptionDecl)
	case p.eatKeyword(ctxDecl, "type"):
		p.parseTypeDeclBody()
		p.close(m, KindTypeDecl)
	default:
		p.parseAnnotatedDecl()
		p.close(m, KindAnnotatedDecl)
	}
}

func (p *Parser) parseDefaultDecl(m marker) {
	p.bumpKeyword()
	switch {
	case p.atKeyword(ctxDecl, "element") || p.atKeyword(ctxDecl, "function"):
		p.bumpKeyword()
		p.expectKeyword(ctxDecl, "namespace")
		p.expectStringLiteral(msgExpectedURI)
		p.close(m, KindDefaultNamespaceDecl)
	case p.eatKeyword(ctxDecl, "collation"):
		p.expectStringLiteral(msgExpectedURI)
		p.close(m, KindDefaultCollationDecl)
	case p.eatKeyword(ctxDecl, "order"):
		p.expectKeyword(ctxDecl, "empty")
		p.expectOneOf(ctxDecl, "greatest", "least")
		p.close(m, KindEmptyOrderDecl)
	case p.eatKeyword(ctxDecl, "decimal-format"):
		p.parseDFProperties()
		p.close(m, KindDecimalFormatDecl)
	default:
		p.errorHere(expected("element", "function", "collation", "order", "decimal-format"))
		p.close(m, KindDefaultNamespaceDecl)
	}
}

var dfPropertyNames = []string{
	"decimal-separator", "grouping-separator", "infinity", "minus-sign", "NaN",
	"percent", "per-mille", "zero-digit", "digit", "pattern-separator",
	"exponent-separator",
}

func (p *Parser) atDFPropertyName() bool {
	for _, name := range dfPropertyNames {
		if p.atKeyword(ctxDecl, name) {
			return true
		}
	}
	return false
}

// (DFPropertyName "=" StringLiteral)*
func (p *Parser) parseDFProperties() {
	for p.atDFPropertyName() {
		m := p.open()
		p.bumpKeyword()
		p.close(m, KindDFPropertyName)
		p.expect(TokenEqual, "=")
		p.expectStringLiteral(msgExpectedString)
	}
}

// ContextItemDecl ::= "declare" "context" "item" ("as" ItemType)?
//
//	((":=" VarValue) | ("external" (":=" VarDefaultValue)?))
func (p *Parser) parseContextItemDecl() {
	p.expectKeyword(ctxDecl, "item")
	if p.eatKeyword(ctxClause, "as") {
		p.expectItemType()
	}
	p.parseVarValue()
}

func (p *Parser) parseVarValue() {
	switch {
	case p.eat(TokenAssign):
		p.expectExprSingle()
	case p.eatKeyword(ctxDecl, "external"):
		if p.eat(TokenAssign) {
			p.expectExprSingle()
		}
	default:
		p.errorHere(expected(":=", "external"))
	}
}

// AnnotatedDecl ::= "declare" Annotation* (VarDecl | FunctionDecl)
func (p *Parser) parseAnnotatedDecl() {
	for p.at(TokenAnnotation) {
		p.parseAnnotation()
	}
	switch {
	case p.atKeyword(ctxDecl, "variable"):
		m := p.open()
		p.bumpKeyword()
		p.expectVarName()
		if p.atKeyword(ctxClause, "as") {
			p.parseTypeDeclaration()
		}
		p.parseVarValue()
		p.close(m, KindVarDecl)
	case p.atKeyword(ctxDecl, "function"):
		m := p.open()
		p.bumpKeyword()
		p.expectEQName(msgExpectedQName)
		p.parseParamListInParens()
		if p.atKeyword(ctxClause, "as") {
			p.bumpKeyword()
			p.expectSequenceType()
		}
		if p.at(TokenLBrace) {
			p.parseFunctionBody()
		} else if !p.eatKeyword(ctxDecl, "external") {
			p.errorHere(expected("{", "external"))
		}
		p.close(m, KindFunctionDecl)
	default:
		p.errorHere(expected("variable", "function"))
	}
}

// Annotation ::= "%" EQName ("(" Literal ("," Literal)* ")")?
func (p *Parser) parseAnnotation() {
	m := p.open()
	p.bump()
	p.expectEQName(msgExpectedQName)
	if p.eat(TokenLParen) {
		for {
			if !p.parseLiteral() {
				p.errorHere(msgExpectedString)
			}
			if !p.eat(TokenComma) {
				break
			}
		}
		p.expectClose(TokenRParen, ")", "")
	}
	p.close(m, KindAnnotation)
}

// parseLiteral consumes a numeric or string literal.
func (p *Parser) parseLiteral() bool {
	switch p.peek().Kind {
	case TokenIntegerLiteral, TokenDecimalLiteral, TokenDoubleLiteral:
		p.bump()
		return true
	}
	return p.parseStringLiteral()
}

// "(" ParamList? ")"
func (p *Parser) parseParamListInParens() {
	if !p.expect(TokenLParen, "(") {
		return
	}
	if p.at(TokenDollar) {
		m := p.open()
		for {
			pm := p.open()
			p.expectVarName()
			if p.atKeyword(ctxClause, "as") {
				p.parseTypeDeclaration()
			}
			p.close(pm, KindParam)
			if !p.eat(TokenComma) {
				break
			}
		}
		p.close(m, KindParamList)
	}
	p.expectClose(TokenRParen, ")", "")
}

func (p *Parser) parseFunctionBody() {
	m := p.open()
	p.parseEnclosedExpr()
	p.close(m, KindFunctionBody)
}

// Import ::= SchemaImport | ModuleImport
func (p *Parser) parseImport() {
	m := p.open()
	p.bumpKeyword()
	if p.eatKeyword(ctxDecl, "schema") {
		if p.atKeyword(ctxDecl, "namespace") || p.atKeyword(ctxDecl, "default") {
			sp := p.open()
			if p.eatKeyword(ctxDecl, "namespace") {
				p.expectNCName()
				p.expect(TokenEqual, "=")
			} else {
				p.bumpKeyword()
				p.expectKeyword(ctxDecl, "element")
				p.expectKeyword(ctxDecl, "namespace")
			}
			p.close(sp, KindSchemaPrefix)
		}
		p.expectStringLiteral(msgExpectedURI)
		p.parseLocationHints()
		p.close(m, KindSchemaImport)
		return
	}
	p.bumpKeyword()
	if p.eatKeyword(ctxDecl, "namespace") {
		p.expectNCName()
		p.expect(TokenEqual, "=")
	}
	p.expectStringLiteral(msgExpectedURI)
	p.parseLocationHints()
	p.close(m, KindModuleImport)
}

// ("at" URILiteral ("," URILiteral)*)?
func (p *Parser) parseLocationHints() {
	if !p.eatKeyword(ctxDecl, "at") {
		return
	}
	p.expectStringLiteral(msgExpectedURI)
	for p.eat(TokenComma) {
		p.expectStringLiteral(msgExpectedURI)
	}
}

// expectOneOf consumes the first of words present here as a keyword.
func (p *Parser) expectOneOf(ctx kwContext, words ...string) bool {
	for _, w := range words {
		if p.eatKeyword(ctx, w) {
			return true
		}
	}
	p.errorHere(expected(words...))
	return false
}
