package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/xqparse/workspace"
)

func newLSPCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := workspace.NewLSPServer(version, s.cfg.Dialect(), s.workspaceOptions()...)
			return server.RunStdio()
		},
	}
}
