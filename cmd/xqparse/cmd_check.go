package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dhamidi/xqparse/format"
	"github.com/dhamidi/xqparse/workspace"
)

// errDiagnostics makes check exit with status 1 without an error message:
// the diagnostics have already been printed.
var errDiagnostics = errors.New("syntax errors found")

func newCheckCmd(s *settings) *cobra.Command {
	var quiet bool
	var progress bool
	var style string

	cmd := &cobra.Command{
		Use:   "check [files or directories...]",
		Short: "Parse queries in parallel and report syntax errors",
		Long: `Parse queries in parallel and report syntax errors as

  file:line:col: CODE: message

Directories are searched recursively for query files, skipping hidden
directories. Without arguments the working directory is checked. The exit
status is 1 when any file has a syntax error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			if style != "diagnostics" && style != "snippet" {
				return fmt.Errorf("%w: %q (expected diagnostics or snippet)", format.ErrUnknownFormat, style)
			}
			var bar *progressbar.ProgressBar
			opts := s.workspaceOptions()
			if progress {
				opts = append(opts, workspace.WithProgress(func(*workspace.Document) {
					_ = bar.Add(1)
				}))
			}
			ws := workspace.New(".", s.cfg.Dialect(), opts...)
			files, err := ws.Collect(args...)
			if err != nil {
				return err
			}
			if progress {
				bar = newProgressBar(cmd.ErrOrStderr(), len(files))
				defer bar.Close()
			}

			start := time.Now()
			docs, err := ws.CheckAll(cmd.Context(), files)
			if err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			count, err := report(cmd.OutOrStdout(), style, docs)
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "checked %d files in %s, %d errors\n", len(docs), time.Since(start).Round(time.Millisecond), count)
			}
			if count > 0 {
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print diagnostics")
	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "show a progress bar on stderr")
	cmd.Flags().StringVarP(&style, "format", "f", "diagnostics", "diagnostic style (diagnostics, snippet)")

	return cmd
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("checking"),
		progressbar.OptionEnableColorCodes(!color.NoColor),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// report writes the diagnostics of docs in the named format and returns how
// many there were.
func report(w io.Writer, style string, docs []*workspace.Document) (int, error) {
	count := 0
	for _, doc := range docs {
		if len(doc.Diagnostics) == 0 {
			continue
		}
		count += len(doc.Diagnostics)
		encoder, err := format.New(style, w)
		if err != nil {
			return count, err
		}
		if err := encoder.Encode(doc.Tree); err != nil {
			return count, err
		}
	}
	return count, nil
}

func printDiagnostics(w io.Writer, docs []*workspace.Document) int {
	count := 0
	for _, doc := range docs {
		for _, d := range doc.Diagnostics {
			fmt.Fprintln(w, d)
			count++
		}
	}
	return count
}
