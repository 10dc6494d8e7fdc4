package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/dhamidi/xqparse/xquery/parser"
)

const treeIndent = "   "

// TreeEncoder writes one line per node, indented by depth:
//
//	Module[FILE(0:1)]
//	   MainModule[MAIN_MODULE(0:1)]
//	      QueryBody[QUERY_BODY(0:1)]
//	         IntegerLiteral[INTEGER_LITERAL(0:1)]('1')
//
// Ranges are UTF-16 offsets. Leaves carry their literal and error nodes
// carry "CODE: message". The output is compared byte for byte against
// fixtures, so any change here is a format change.
type TreeEncoder struct {
	w    io.Writer
	root *parser.Node
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(root *parser.Node) error {
	e.root = root
	return write(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	return []byte(Dump(e.root)), nil
}

// Dump is the tree dump of root as a string.
func Dump(root *parser.Node) string {
	var sb strings.Builder
	depth := 0
	parser.Inspect(root, func(n *parser.Node) bool {
		if n == nil {
			depth--
			return false
		}
		writeNode(&sb, n, depth)
		depth++
		return true
	})
	return sb.String()
}

func writeNode(sb *strings.Builder, n *parser.Node, depth int) {
	sb.WriteString(strings.Repeat(treeIndent, depth))
	sb.WriteString(n.Name())
	sb.WriteByte('[')
	sb.WriteString(Tag(n))
	fmt.Fprintf(sb, "(%d:%d)]", n.Span.Start.Char, n.Span.End.Char)
	switch {
	case n.Error != nil:
		sb.WriteString("('")
		sb.WriteString(Escape(n.Error.String()))
		sb.WriteString("')")
	case n.Token != nil:
		sb.WriteString("('")
		sb.WriteString(Escape(n.Token.Literal))
		sb.WriteString("')")
	}
	sb.WriteByte('\n')
}

// Tag is the element type shown in brackets: FILE for the root,
// ERROR_ELEMENT for errors, K_<WORD> for keywords and the screaming snake
// case kind name otherwise.
func Tag(n *parser.Node) string {
	switch {
	case n.Kind == parser.KindModule:
		return "FILE"
	case n.Kind == parser.KindError:
		return "ERROR_ELEMENT"
	case n.Token != nil && n.Token.Kind == parser.TokenKeyword:
		return "K_" + strcase.ToScreamingSnake(n.Token.Literal)
	}
	return strcase.ToScreamingSnake(n.Name())
}

// Escape makes a literal printable on one line. Line breaks and tabs use
// backslash escapes, characters outside the XML character range use \uXXXX
// and bytes that are not UTF-8 use \xNN.
func Escape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && w == 1:
			fmt.Fprintf(&sb, `\x%02X`, s[i])
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case !parser.IsXMLChar(r):
			fmt.Fprintf(&sb, `\u%04X`, r)
		default:
			sb.WriteString(s[i : i+w])
		}
		i += w
	}
	return sb.String()
}
