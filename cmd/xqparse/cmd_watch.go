package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/xqparse/workspace"
)

func newWatchCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [directory]",
		Short: "Check queries and re-check them whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			out := cmd.OutOrStdout()

			ws := s.workspace(dir)
			docs, err := ws.ScanAll(cmd.Context())
			if err != nil {
				return err
			}
			count := printDiagnostics(out, docs)
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s: %d files, %d errors\n", dir, len(docs), count)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fw := workspace.NewFileWatcher(ws)
			fw.OnChange(func(doc *workspace.Document) {
				if len(doc.Diagnostics) == 0 {
					fmt.Fprintf(out, "%s: ok\n", doc.Path)
					return
				}
				printDiagnostics(out, []*workspace.Document{doc})
			})
			fw.OnRemove(func(path string) {
				fmt.Fprintf(out, "%s: removed\n", path)
			})
			if err := fw.Start(ctx); err != nil {
				return err
			}
			defer fw.Stop()

			<-ctx.Done()
			return nil
		},
	}
}
