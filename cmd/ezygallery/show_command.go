package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
	"ezygallery/internal/listing"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <aspect> <filename>",
		Short: "Show an artwork's listing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				loc, err := m.Store().Resolve(args[0], args[1])
				if err != nil {
					return err
				}
				l, err := m.Store().ReadListing(loc)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					data, err := json.MarshalIndent(l, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(data))
					return nil
				}

				state, err := listing.LockInfo(loc.ListingPath)
				if err != nil {
					return err
				}

				rows := [][]string{
					{"Folder", loc.Folder},
					{"Title", l.Title},
					{"SKU", l.SKU},
					{"Aspect", l.AspectRatio},
					{"Price", fmt.Sprintf("%.2f", l.Price)},
					{"Primary colour", l.PrimaryColour},
					{"Secondary colour", l.SecondaryColour},
					{"Tags", strings.Join(l.Tags, ", ")},
					{"Materials", strings.Join(l.Materials, ", ")},
					{"SEO filename", l.SeoFilename},
					{"Images", fmt.Sprintf("%d", len(l.Images))},
					{"Mockups", fmt.Sprintf("%d", len(l.Mockups))},
					{"Finalised", yesNo(loc.Finalised)},
					{"Locked", yesNo(state.Locked)},
				}
				if state.Locked && state.By != "" {
					rows = append(rows, []string{"Locked by", state.By})
				}
				writeTable(out, []string{"FIELD", "VALUE"}, rows, nil)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw listing document")
	return cmd
}
