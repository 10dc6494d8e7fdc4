package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/xqparse/format"
)

func newLexCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file|->",
		Short: "Print the default-mode token stream of a query",
		Long: `Print the default-mode token stream of a query, one token per line.

Tokens inside direct constructors and string constructors are scanned in
other lexer modes by the parser; lex shows how the input reads outside of
them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			tokens := format.Lex(data, args[0], s.cfg.Dialect())
			return format.NewTokenLineEncoder(cmd.OutOrStdout()).Encode(tokens)
		},
	}
}
