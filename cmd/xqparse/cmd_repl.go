package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/xqparse/format"
	"github.com/dhamidi/xqparse/xquery/dialect"
	"github.com/dhamidi/xqparse/xquery/parser"
)

const (
	historyFile = ".xqparse_history"
	promptMain  = "xq> "
	promptCont  = "..> "
)

type prompter interface {
	Prompt(prompt string) (string, error)
}

func newReplCmd(s *settings) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse queries typed interactively",
		Long: `Parse queries typed interactively and print their trees.

Input continues on the next line while the query is incomplete, for
example after "1 +" or an unclosed "{". An empty line submits an
incomplete query as is. Type :quit or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := format.New(outputFormat, io.Discard); err != nil {
				return err
			}

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			home, _ := os.UserHomeDir()
			histPath := filepath.Join(home, historyFile)
			if f, err := os.Open(histPath); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}
			defer func() {
				if f, err := os.Create(histPath); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}()

			return runRepl(&history{State: ln}, cmd.OutOrStdout(), s.cfg.Dialect(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")

	return cmd
}

// history records every line read into the liner history.
type history struct {
	*liner.State
}

func (h *history) Prompt(prompt string) (string, error) {
	line, err := h.State.Prompt(prompt)
	if err == nil && strings.TrimSpace(line) != "" {
		h.AppendHistory(line)
	}
	return line, err
}

func runRepl(p prompter, out io.Writer, cfg dialect.Config, outputFormat string) error {
	for {
		src, ok := readQuery(p, cfg)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}

		node, err := parseBytes([]byte(src), "<stdin>", cfg)
		if err != nil {
			return err
		}
		encoder, err := format.New(outputFormat, out)
		if err != nil {
			return err
		}
		if err := encoder.Encode(node); err != nil {
			return err
		}
		if outputFormat == "json" {
			fmt.Fprintln(out)
		}
	}
}

// readQuery reads lines until they form a complete query. ok is false when
// input ended.
func readQuery(p prompter, cfg dialect.Config) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" || strings.HasPrefix(strings.TrimSpace(src), ":") || isComplete(src, cfg) {
			return src, true
		}
	}
}

func isComplete(src string, cfg dialect.Config) bool {
	opts := []parser.Option{parser.WithDialect(cfg)}
	if cfg.Language == dialect.XPath {
		return parser.ParseXPath(strings.NewReader(src), opts...).IsComplete()
	}
	return parser.ParseModule(strings.NewReader(src), opts...).IsComplete()
}
