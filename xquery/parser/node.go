package parser

import "strings"

const (
	// CodeSyntax is the static error raised for grammar violations.
	CodeSyntax = "XPST0003"
	// CodeCharRef is raised for character references to non-XML characters.
	CodeCharRef = "XQST0090"
	// CodeTagMismatch is raised when a direct element's end tag name differs
	// from its start tag name.
	CodeTagMismatch = "XQST0118"
)

// Error is a diagnostic attached to an error node or a malformed token.
type Error struct {
	Code    string
	Message string
}

func (e *Error) String() string {
	return e.Code + ": " + e.Message
}

func syntaxError(message string) *Error {
	return &Error{Code: CodeSyntax, Message: message}
}

// Node is a concrete syntax tree node. Leaves have Kind KindToken and carry
// the token; error nodes have Kind KindError and carry the diagnostic.
// Children are ordered by position and never overlap, and a node's span is
// the union of its children's spans.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) IsToken() bool {
	return n.Kind == KindToken
}

// IsKeyword reports whether n is a leaf holding the keyword word.
func (n *Node) IsKeyword(word string) bool {
	return n.Token != nil && n.Token.Kind == TokenKeyword && n.Token.Literal == word
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// FirstTokenOfKind returns the first direct leaf child of the given token kind.
func (n *Node) FirstTokenOfKind(kind TokenKind) *Token {
	for _, child := range n.Children {
		if child.Token != nil && child.Token.Kind == kind {
			return child.Token
		}
	}
	return nil
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Text reassembles the source covered by n from its leaves.
func (n *Node) Text() string {
	var sb strings.Builder
	Walk(n, func(c *Node) bool {
		if c.Token != nil {
			sb.WriteString(c.Token.Literal)
		}
		return true
	})
	return sb.String()
}

// Name is the kind name used in tree dumps: the token kind for leaves and
// the node kind otherwise.
func (n *Node) Name() string {
	if n.Token != nil {
		return n.Token.Kind.String()
	}
	return n.Kind.String()
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Name())
	if n.Token != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: ")
		sb.WriteString(n.Error.String())
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.writeIndent(sb, indent+1)
	}
}
