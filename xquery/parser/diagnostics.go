package parser

import "strings"

const (
	msgMissingModule      = "Missing library 'module' declaration or main module query body."
	msgUnexpectedToken    = "Unexpected token."
	msgExpectedExpr       = "Expected expression."
	msgExpectedExprSingle = "Expected expression, excluding the comma operator."
	msgExpectedQName      = "Expected QName."
	msgExpectedNCName     = "Expected NCName."
	msgExpectedVarName    = "Expected variable name."
	msgExpectedString     = "Expected string literal."
	msgExpectedURI        = "Expected URI string."
	msgExpectedSeqType    = "Expected sequence type."
	msgExpectedItemType   = "Expected item type."
	msgExpectedTypeName   = "Expected type name."
	msgExpectedNodeTest   = "Expected node test."
	msgExpectedKeySpec    = "Expected key specifier."
	msgExpectedInteger    = "Expected integer literal."
	msgExpectedFTWords    = "Expected full text words, '(' or pragma."
	msgExpectedFTOption   = "Expected full text match option."
	msgMissingForOrLet    = "Missing 'for' or 'let' clause."
	msgDoubleWildcard     = "Wildcards cannot have '*' as both prefix and local name."
	msgCDataOutside       = "CDATA sections are only allowed in element content."
	msgTagMismatch        = "The end tag does not match the start tag."

	msgUnclosedComment           = "Unclosed XQuery comment."
	msgIncompleteExponent        = "Incomplete double exponent."
	msgUnclosedBracedURI         = "Unclosed braced URI literal."
	msgUnterminatedCharRef       = "Unterminated character reference."
	msgEmptyCharRef              = "Missing digits in character reference."
	msgInvalidCharRef            = "Character reference does not denote a valid XML character."
	msgEmptyEntityRef            = "Empty entity reference."
	msgUnterminatedEntityRef     = "Unterminated entity reference."
	msgUnknownEntityRef          = "Unknown entity reference."
	msgUnclosedString            = "Unclosed string literal."
	msgUnclosedCData             = "Unclosed CDATA section."
	msgUnclosedXmlComment        = "Unclosed XML comment."
	msgUnclosedPI                = "Unclosed processing instruction."
	msgUnclosedPragma            = "Unclosed pragma."
	msgUnclosedStringConstructor = "Unclosed string constructor."
	msgUnclosedElement           = "Unclosed element constructor."
)

// expected formats "Expected 'a'.", "Expected 'a' or 'b'." and so on.
func expected(words ...string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	switch len(quoted) {
	case 0:
		return msgUnexpectedToken
	case 1:
		return "Expected " + quoted[0] + "."
	}
	return "Expected " + strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1] + "."
}

// Diagnostic is an error node flattened out of the tree.
type Diagnostic struct {
	Span    Span
	Code    string
	Message string
}

func (d Diagnostic) String() string {
	return d.Span.Start.String() + ": " + d.Code + ": " + d.Message
}

// Diagnostics collects every error node under root in document order.
func Diagnostics(root *Node) []Diagnostic {
	var out []Diagnostic
	Walk(root, func(n *Node) bool {
		if n.Kind == KindError && n.Error != nil {
			out = append(out, Diagnostic{Span: n.Span, Code: n.Error.Code, Message: n.Error.Message})
		}
		return true
	})
	return out
}
