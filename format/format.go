// Package format renders parse trees: the indented tree dump used by the
// fixture suite, a JSON form of the same tree, and flat diagnostic and token
// listings for the command line.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/xqparse/xquery/parser"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Encoder interface {
	encoding.TextMarshaler
	Encode(root *parser.Node) error
}

// Names lists the formats accepted by New.
var Names = []string{"tree", "json", "diagnostics", "snippet"}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "tree", "":
		return NewTreeEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "diagnostics":
		return NewLineEncoder(w), nil
	case "snippet":
		return NewSnippetEncoder(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
