package parser

import (
	"context"
	"io"
	"strings"

	"github.com/dhamidi/xqparse/xquery/dialect"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithStartLine(line int) Option {
	return func(p *Parser) {
		p.startLine = line
	}
}

// WithDialect selects the grammar layers to parse with. The default is
// XQuery 3.1 without extensions.
func WithDialect(cfg dialect.Config) Option {
	return func(p *Parser) {
		p.cfg = cfg
	}
}

// WithContext makes the parse cancellable. The context is polled between
// top-level productions; a cancelled parse yields no tree.
func WithContext(ctx context.Context) Option {
	return func(p *Parser) {
		p.ctx = ctx
	}
}

type parseFunc func(*Parser)

type Parser struct {
	file      string
	startLine int
	cfg       dialect.Config
	ctx       context.Context
	reader    io.Reader
	input     []byte
	lines     *lineIndex
	lexer     *Lexer
	pos       int
	mode      Mode
	events    []event
	peeked    peekCache
	entry     parseFunc
	err       error
}

type peekCache struct {
	valid bool
	pos   int
	mode  Mode
	tok   Token
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		startLine: 1,
		cfg:       dialect.Default(),
		reader:    r,
		entry:     entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseModule parses an XQuery main or library module.
func ParseModule(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseModule, opts)
}

// ParseXPath parses a standalone XPath expression. The dialect's language is
// forced to XPath.
func ParseXPath(r io.Reader, opts ...Option) *Parser {
	p := newParser(r, (*Parser).parseXPath, opts)
	p.cfg.Language = dialect.XPath
	return p
}

// Parse parses text with cfg and always returns a tree.
func Parse(text string, cfg dialect.Config) *Node {
	if cfg.Language == dialect.XPath {
		return ParseXPath(strings.NewReader(text), WithDialect(cfg)).Finish()
	}
	return ParseModule(strings.NewReader(text), WithDialect(cfg)).Finish()
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	p.input = data
	return nil
}

func (p *Parser) Dialect() dialect.Config {
	return p.cfg
}

// Err reports why Finish returned nil: a read error or the context's error.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) run() *Node {
	if err := p.readAll(); err != nil {
		p.err = err
		return nil
	}
	p.err = nil
	p.lines = newLineIndex(p.input, p.file, p.startLine)
	p.lexer = newLexer(p.input, p.lines)
	p.lexer.SetDialect(p.cfg)
	p.pos = 0
	p.mode = ModeDefault
	p.events = p.events[:0]
	p.peeked = peekCache{}
	p.entry(p)
	if p.err != nil {
		return nil
	}
	return p.build()
}

// Finish parses the input and returns the root Module node. The tree is
// always complete, with malformed input represented by error nodes; nil is
// returned only when reading failed or the context was cancelled.
func (p *Parser) Finish() *Node {
	return p.run()
}

// IsComplete reports whether the input parses without running into the end
// of input. For example "1 + " is incomplete because the expression needs
// another operand.
func (p *Parser) IsComplete() bool {
	root := p.run()
	if root == nil || len(p.input) == 0 {
		return false
	}
	complete := true
	Walk(root, func(n *Node) bool {
		if n.Kind == KindError && n.Span.Start.Offset >= len(p.input) {
			complete = false
		}
		return complete
	})
	return complete
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.err = nil
	p.events = nil
	p.peeked = peekCache{}
}

func (p *Parser) cancelled() bool {
	if p.err != nil {
		return true
	}
	if p.ctx == nil {
		return false
	}
	if err := p.ctx.Err(); err != nil {
		p.err = err
		return true
	}
	return false
}

// setMode switches the lexical mode and returns the previous one.
func (p *Parser) setMode(m Mode) Mode {
	prev := p.mode
	p.mode = m
	return prev
}

// peek returns the next significant token in the current mode.
func (p *Parser) peek() Token {
	if c := p.peeked; c.valid && c.pos == p.pos && c.mode == p.mode {
		return c.tok
	}
	pos := p.pos
	for {
		tok := p.lexer.Scan(pos, p.mode)
		if !tok.Kind.IsTrivia() {
			p.peeked = peekCache{valid: true, pos: p.pos, mode: p.mode, tok: tok}
			return tok
		}
		pos = tok.End()
	}
}

// nth returns the n-th significant token after the current one.
func (p *Parser) nth(n int) Token {
	tok := p.peek()
	for ; n > 0 && tok.Kind != TokenEOF; n-- {
		pos := tok.End()
		for {
			tok = p.lexer.Scan(pos, p.mode)
			if !tok.Kind.IsTrivia() {
				break
			}
			pos = tok.End()
		}
	}
	return tok
}

func (p *Parser) at(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) atEOF() bool {
	return p.at(TokenEOF)
}

// nextAdjacent reports whether the token after the current one follows it
// with no trivia in between.
func (p *Parser) nextAdjacent() bool {
	return p.nth(1).Start() == p.peek().End()
}

// isPrefix reports whether the name token is the prefix of a QName or of a
// prefix wildcard ("p:local", "p:*").
func (p *Parser) isPrefix(tok Token) bool {
	i := tok.End()
	if i+1 >= len(p.input) || p.input[i] != ':' {
		return false
	}
	if p.input[i+1] == '*' {
		return true
	}
	r, _ := decodeRune(p.input, i+1)
	return isNameStartChar(r)
}

// atName reports whether the next token is the unprefixed name word.
func (p *Parser) atName(word string) bool {
	tok := p.peek()
	return tok.Kind == TokenNCName && tok.Literal == word && !p.isPrefix(tok)
}

// atKeyword reports whether the next token is word and word is a keyword in
// ctx under the active dialect.
func (p *Parser) atKeyword(ctx kwContext, word string) bool {
	return p.atName(word) && p.keywordEnabled(ctx, word)
}

// atKeywordFollowedBy checks the keyword and the kind of the token after it.
func (p *Parser) atKeywordFollowedBy(ctx kwContext, word string, next TokenKind) bool {
	return p.atKeyword(ctx, word) && p.nth(1).Kind == next
}

// tokenIsName reports whether tok is an unprefixed NCName spelled word.
func (p *Parser) tokenIsName(tok Token, word string) bool {
	return tok.Kind == TokenNCName && tok.Literal == word && !p.isPrefix(tok)
}

func (p *Parser) bump() Token {
	p.flushTrivia()
	tok := p.lexer.Scan(p.pos, p.mode)
	if tok.Kind == TokenEOF {
		return tok
	}
	p.pushToken(tok)
	return tok
}

// bumpKeyword consumes the next name as a keyword token.
func (p *Parser) bumpKeyword() Token {
	p.flushTrivia()
	tok := p.lexer.Scan(p.pos, p.mode)
	if tok.Kind == TokenEOF {
		return tok
	}
	tok.Kind = TokenKeyword
	p.pushToken(tok)
	return tok
}

// eat consumes the next token if it has the given kind.
func (p *Parser) eat(kind TokenKind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}

// eatKeyword consumes word if it is a keyword here.
func (p *Parser) eatKeyword(ctx kwContext, word string) bool {
	if p.atKeyword(ctx, word) {
		p.bumpKeyword()
		return true
	}
	return false
}

// expect consumes the token or reports it missing with spelling in the
// message; parsing continues either way.
func (p *Parser) expect(kind TokenKind, spelling string) bool {
	if p.eat(kind) {
		return true
	}
	p.errorHere(expected(spelling))
	return false
}

func (p *Parser) expectKeyword(ctx kwContext, word string) bool {
	if p.eatKeyword(ctx, word) {
		return true
	}
	p.errorHere(expected(word))
	return false
}

// expectClose consumes a closing token. At end of input the message names
// the unclosed construct instead.
func (p *Parser) expectClose(kind TokenKind, spelling, unclosed string) bool {
	if p.eat(kind) {
		return true
	}
	if p.atEOF() && unclosed != "" {
		p.errorHere(unclosed)
		return false
	}
	p.errorHere(expected(spelling))
	return false
}

func (p *Parser) supports(f dialect.Feature) bool {
	return p.cfg.Supports(f)
}
