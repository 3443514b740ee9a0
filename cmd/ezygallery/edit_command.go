package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
	"ezygallery/internal/listing"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var title string
	var description string
	var tags string
	var materials string
	var primaryColour string
	var secondaryColour string
	var seoFilename string
	var price float64

	cmd := &cobra.Command{
		Use:   "edit <aspect> <filename>",
		Short: "Edit an artwork's listing fields",
		Long: `Apply field changes to a listing. Only flags that are set are
applied; the edit is rejected in full when any validation rule fails.
The SKU is read-only and always follows the SEO filename.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := lifecycle.EditForm{}
			if cmd.Flags().Changed("title") {
				form.Title = &title
			}
			if cmd.Flags().Changed("description") {
				form.Description = &description
			}
			if cmd.Flags().Changed("tags") {
				form.Tags = listing.ParseCSVList(tags)
			}
			if cmd.Flags().Changed("materials") {
				form.Materials = listing.ParseCSVList(materials)
			}
			if cmd.Flags().Changed("primary-colour") {
				form.PrimaryColour = &primaryColour
			}
			if cmd.Flags().Changed("secondary-colour") {
				form.SecondaryColour = &secondaryColour
			}
			if cmd.Flags().Changed("seo-filename") {
				form.SeoFilename = &seoFilename
			}
			if cmd.Flags().Changed("price") {
				form.Price = &price
			}

			return ctx.withManager(func(m *lifecycle.Manager) error {
				l, err := m.Edit(cmd.Context(), args[0], args[1], form)
				if err != nil {
					var verr *lifecycle.ValidationError
					if errors.As(err, &verr) {
						out := cmd.OutOrStdout()
						fmt.Fprintln(out, "Edit rejected:")
						for _, msg := range verr.Messages {
							fmt.Fprintf(out, "  - %s\n", msg)
						}
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", l.Title, l.SKU)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Listing title")
	cmd.Flags().StringVar(&description, "description", "", "Listing description")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&materials, "materials", "", "Comma-separated materials")
	cmd.Flags().StringVar(&primaryColour, "primary-colour", "", "Primary colour")
	cmd.Flags().StringVar(&secondaryColour, "secondary-colour", "", "Secondary colour")
	cmd.Flags().StringVar(&seoFilename, "seo-filename", "", "SEO filename")
	cmd.Flags().Float64Var(&price, "price", 0, "Listing price")
	return cmd
}
