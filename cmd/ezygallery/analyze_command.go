package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <base | aspect filename>",
		Short: "Run AI analysis on a staged upload or re-analyse an existing artwork",
		Long: `With one argument, analyse the staged upload with that base name and
move it into the processed gallery. With two arguments, re-run analysis
for the artwork identified by aspect ratio and filename.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					l, err := m.AnalyzeUpload(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Analysed %s (%s)\n", l.Title, l.SKU)
					return nil
				}
				l, err := m.Analyze(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Re-analysed %s (%s)\n", l.Title, l.SKU)
				return nil
			})
		},
	}
	return cmd
}
