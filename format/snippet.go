package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/dhamidi/xqparse/xquery/parser"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	codeStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.Bold)
)

// SnippetEncoder prints each diagnostic with the source line it points at
// and a caret under the offending range. Colors follow color.NoColor.
type SnippetEncoder struct {
	w    io.Writer
	root *parser.Node
}

func NewSnippetEncoder(w io.Writer) *SnippetEncoder {
	return &SnippetEncoder{w: w}
}

func (e *SnippetEncoder) Encode(root *parser.Node) error {
	e.root = root
	return write(e.w, e)
}

func (e *SnippetEncoder) MarshalText() ([]byte, error) {
	diags := parser.Diagnostics(e.root)
	if len(diags) == 0 {
		return nil, nil
	}
	src := e.root.Text()

	width := 0
	for _, d := range diags {
		width = max(width, len(strconv.Itoa(d.Span.Start.Line)))
	}
	padding := strings.Repeat(" ", width+1)

	var sb strings.Builder
	for _, d := range diags {
		start := min(d.Span.Start.Offset, len(src))
		end := max(min(d.Span.End.Offset, len(src)), start)
		lineStart, lineEnd := lineBounds(src, start)
		if end > lineEnd {
			end = lineEnd
		}

		fmt.Fprintf(&sb, "%s%s: %s\n", errorStyle.Sprint("error"), codeStyle.Sprintf("[%s]", d.Code), messageStyle.Sprint(d.Message))
		fmt.Fprintf(&sb, "%s%s %s\n", padding[1:], lineStyle.Sprint("-->"), fileStyle.Sprint(d.Span.Start.String()))
		fmt.Fprintf(&sb, "%s%s\n", padding, lineStyle.Sprint("|"))
		fmt.Fprintf(&sb, "%s %s %s\n", lineStyle.Sprintf("%*d", width, d.Span.Start.Line), lineStyle.Sprint("|"), src[lineStart:lineEnd])
		fmt.Fprintf(&sb, "%s%s %s%s\n\n", padding, lineStyle.Sprint("|"), caretIndent(src[lineStart:start]), errorStyle.Sprint(strings.Repeat("^", max(1, utf8.RuneCountInString(src[start:end])))))
	}
	return []byte(sb.String()), nil
}

// lineBounds returns the byte range of the line containing offset, without
// its line terminator.
func lineBounds(src string, offset int) (int, int) {
	start := strings.LastIndexAny(src[:offset], "\r\n") + 1
	end := len(src)
	if i := strings.IndexAny(src[offset:], "\r\n"); i >= 0 {
		end = offset + i
	}
	return start, end
}

// caretIndent blanks prefix out while keeping its tabs, so the caret lines
// up under the source regardless of tab width.
func caretIndent(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
