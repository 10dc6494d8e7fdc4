package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/xqparse/config"
)

func newInitCmd(s *settings) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a configuration file",
		Long: `Write a configuration file with the current dialect and defaults.

The file defaults to .xqparse.yaml; a .toml name writes TOML instead.
Dialect flags such as --enable fulltext10 are recorded in the file.
An existing file is only replaced with --force.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Names[0]
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Write(path, s.cfg, force); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
