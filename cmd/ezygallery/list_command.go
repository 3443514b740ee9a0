package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
	"ezygallery/internal/store"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var ready bool
	var processed bool
	var finalised bool
	var locked bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artworks in the gallery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				st := m.Store()

				var entries []store.Entry
				var err error
				switch {
				case ready:
					entries, err = st.ListReady()
				case finalised || locked:
					entries, err = st.ListFinalisedExtended()
				case processed:
					entries, err = st.ListProcessed()
				default:
					var fin []store.Entry
					entries, err = st.ListProcessed()
					if err == nil {
						fin, err = st.ListFinalised()
						entries = append(entries, fin...)
					}
				}
				if err != nil {
					return err
				}
				if locked {
					kept := entries[:0]
					for _, entry := range entries {
						if entry.Locked {
							kept = append(kept, entry)
						}
					}
					entries = kept
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No artworks found")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.Folder,
						entry.Aspect,
						entry.Title,
						entry.SKU,
						yesNo(entry.Finalised),
						yesNo(entry.Locked),
					})
				}
				writeTable(out, []string{"FOLDER", "ASPECT", "TITLE", "SKU", "FINALISED", "LOCKED"}, rows, nil)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&ready, "ready", false, "Only processed artworks with a main image present")
	cmd.Flags().BoolVar(&processed, "processed", false, "Only artworks in the processed gallery")
	cmd.Flags().BoolVar(&finalised, "finalised", false, "Only finalised artworks")
	cmd.Flags().BoolVar(&locked, "locked", false, "Only locked finalised artworks")
	return cmd
}
