package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/xqparse/format"
	"github.com/dhamidi/xqparse/xquery/dialect"
	"github.com/dhamidi/xqparse/xquery/parser"
)

func newParseCmd(s *settings) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a query and dump its syntax tree",
		Long: `Parse a query and dump its syntax tree.

The tree format prints one node per line, indented by depth, with UTF-16
ranges. Syntax errors appear in the tree as ERROR_ELEMENT nodes; the
command itself only fails when the file cannot be read.

Files ending in .xpath, and any input when --xpath is given, are parsed as
a standalone XPath expression.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := readInput(cmd, filename)
			if err != nil {
				return err
			}

			cfg := s.cfg.Dialect()
			if strings.EqualFold(filepath.Ext(filename), ".xpath") {
				cfg.Language = dialect.XPath
			}
			node, err := parseBytes(data, filename, cfg)
			if err != nil {
				return err
			}

			encoder, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")

	return cmd
}

func parseBytes(data []byte, filename string, cfg dialect.Config) (*parser.Node, error) {
	opts := []parser.Option{parser.WithFile(filename), parser.WithDialect(cfg)}
	var p *parser.Parser
	if cfg.Language == dialect.XPath {
		p = parser.ParseXPath(bytes.NewReader(data), opts...)
	} else {
		p = parser.ParseModule(bytes.NewReader(data), opts...)
	}
	node := p.Finish()
	if node == nil {
		return nil, fmt.Errorf("parse %s: %w", filename, p.Err())
	}
	return node, nil
}

// readInput reads a file, or standard input for "-".
func readInput(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return data, nil
}
