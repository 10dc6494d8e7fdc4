// Package dialect describes which XQuery/XPath grammar layers are active for
// a parse.
//
// A Config is a plain value: it is immutable for the duration of a parse and
// answers one question, Supports(Feature), at the parser's extension points.
// Versions are cumulative, so enabling XQuery 3.1 also enables every XQuery
// 3.0 production.
package dialect

import (
	"fmt"
	"strings"
)

type Language int

const (
	XQuery Language = iota
	XPath
)

var languageNames = map[Language]string{
	XQuery: "xquery",
	XPath:  "xpath",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "unknown"
}

func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Language) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "xquery":
		*l = XQuery
	case "xpath":
		*l = XPath
	default:
		return fmt.Errorf("unknown language %q (expected xquery or xpath)", text)
	}
	return nil
}

// Config selects the grammar layers attempted by the parser.
type Config struct {
	Language   Language `yaml:"language" toml:"language" json:"language"`
	XQuery10   bool     `yaml:"xquery10" toml:"xquery10" json:"xquery10"`
	XQuery30   bool     `yaml:"xquery30" toml:"xquery30" json:"xquery30"`
	XQuery31   bool     `yaml:"xquery31" toml:"xquery31" json:"xquery31"`
	FullText10 bool     `yaml:"fulltext10" toml:"fulltext10" json:"fulltext10"`
	Saxon94    bool     `yaml:"saxon94" toml:"saxon94" json:"saxon94"`
	Saxon98    bool     `yaml:"saxon98" toml:"saxon98" json:"saxon98"`
}

// Default is XQuery 3.1 without extensions.
func Default() Config {
	return Config{
		Language: XQuery,
		XQuery10: true,
		XQuery30: true,
		XQuery31: true,
	}
}

// XPath31 is the XPath 3.1 grammar without extensions.
func XPath31() Config {
	c := Default()
	c.Language = XPath
	return c
}

// With returns a copy of c with the named specifications enabled.
func (c Config) With(specs ...Spec) Config {
	for _, s := range specs {
		switch s {
		case SpecXQuery10:
			c.XQuery10 = true
		case SpecXQuery30:
			c.XQuery30 = true
		case SpecXQuery31:
			c.XQuery31 = true
		case SpecFullText10:
			c.FullText10 = true
		case SpecSaxon94:
			c.Saxon94 = true
		case SpecSaxon98:
			c.Saxon98 = true
		}
	}
	return c
}

// Without returns a copy of c with the named specifications disabled.
// Disabling a specification also disables the ones that imply it, so
// Without(SpecXQuery30) leaves only XQuery 1.0.
func (c Config) Without(specs ...Spec) Config {
	for _, s := range specs {
		switch s {
		case SpecXQuery10:
			c.XQuery10, c.XQuery30, c.XQuery31 = false, false, false
		case SpecXQuery30:
			c.XQuery30, c.XQuery31 = false, false
		case SpecXQuery31:
			c.XQuery31 = false
		case SpecFullText10:
			c.FullText10 = false
		case SpecSaxon94:
			c.Saxon94, c.Saxon98 = false, false
		case SpecSaxon98:
			c.Saxon98 = false
		}
	}
	return c
}

// Has reports whether a specification is active. XQuery versions are
// cumulative: 3.1 implies 3.0 implies 1.0.
func (c Config) Has(s Spec) bool {
	switch s {
	case SpecXQuery10:
		return c.XQuery10 || c.XQuery30 || c.XQuery31
	case SpecXQuery30:
		return c.XQuery30 || c.XQuery31
	case SpecXQuery31:
		return c.XQuery31
	case SpecFullText10:
		return c.FullText10
	case SpecSaxon94:
		return c.Saxon94 || c.Saxon98
	case SpecSaxon98:
		return c.Saxon98
	}
	return false
}

// Supports reports whether the feature is reachable under c.
func (c Config) Supports(f Feature) bool {
	entry, ok := registry[f]
	if !ok {
		return false
	}
	if c.Language == XPath && !entry.xpath {
		return false
	}
	for _, s := range entry.anyOf {
		if c.Has(s) {
			return true
		}
	}
	return false
}

// Specs lists the active specifications in a stable order.
func (c Config) Specs() []Spec {
	var out []Spec
	for _, s := range allSpecs {
		if c.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

func (c Config) String() string {
	var names []string
	for _, s := range c.Specs() {
		names = append(names, s.String())
	}
	return c.Language.String() + "[" + strings.Join(names, ",") + "]"
}
