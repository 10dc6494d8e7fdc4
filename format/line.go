package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/xqparse/xquery/dialect"
	"github.com/dhamidi/xqparse/xquery/parser"
)

// LineEncoder writes one "file:line:col: CODE: message" line per diagnostic,
// the shape compilers and editors parse.
type LineEncoder struct {
	w    io.Writer
	root *parser.Node
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(root *parser.Node) error {
	e.root = root
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, d := range parser.Diagnostics(e.root) {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// TokenLineEncoder lists a token stream, one token per line with its
// UTF-16 range and escaped literal. Token errors follow on an indented line.
type TokenLineEncoder struct {
	w      io.Writer
	tokens []parser.Token
}

func NewTokenLineEncoder(w io.Writer) *TokenLineEncoder {
	return &TokenLineEncoder{w: w}
}

func (e *TokenLineEncoder) Encode(tokens []parser.Token) error {
	e.tokens = tokens
	return write(e.w, e)
}

func (e *TokenLineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, tok := range e.tokens {
		fmt.Fprintf(&sb, "%s(%d:%d)('%s')\n", tok.Kind, tok.Span.Start.Char, tok.Span.End.Char, Escape(tok.Literal))
		if tok.Error != nil {
			fmt.Fprintf(&sb, "%s%s\n", treeIndent, tok.Error)
		}
	}
	return []byte(sb.String()), nil
}

// Lex collects the default-mode token stream of input under cfg, trivia
// included, up to but not including EOF.
func Lex(input []byte, file string, cfg dialect.Config) []parser.Token {
	l := parser.NewLexer(input, file)
	l.SetDialect(cfg)
	var tokens []parser.Token
	for {
		tok := l.NextToken()
		if tok.Kind == parser.TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
