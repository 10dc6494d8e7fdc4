package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/xqparse/xquery/parser"
)

type JSONEncoder struct {
	w    io.Writer
	root *parser.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(root *parser.Node) error {
	e.root = root
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(nodeToJSON(e.root), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonNode struct {
	Kind     string      `json:"kind"`
	Tag      string      `json:"tag"`
	Span     jsonSpan    `json:"span"`
	Token    string      `json:"token,omitempty"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
	Char   int `json:"char"`
}

type jsonError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func nodeToJSON(n *parser.Node) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{
		Kind: n.Name(),
		Tag:  Tag(n),
		Span: jsonSpan{Start: positionToJSON(n.Span.Start), End: positionToJSON(n.Span.End)},
	}
	if n.Token != nil {
		jn.Token = n.Token.Literal
	}
	if n.Error != nil {
		jn.Error = &jsonError{Code: n.Error.Code, Message: n.Error.Message}
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}
	return jn
}

func positionToJSON(p parser.Position) jsonPosition {
	return jsonPosition{Offset: p.Offset, Line: p.Line, Column: p.Column, Char: p.Char}
}
