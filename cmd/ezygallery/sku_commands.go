package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
	"ezygallery/internal/store"
)

func newNextSKUCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "next-sku",
		Short: "Show the next SKU without assigning it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				next, err := m.Allocator().PeekNext()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), next)
				return nil
			})
		},
	}
}

func newSKUAuditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sku-audit",
		Short: "Check gallery SKUs for duplicates, gaps, and tracker drift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				st := m.Store()
				processed, err := st.ListProcessed()
				if err != nil {
					return err
				}
				finalised, err := st.ListFinalised()
				if err != nil {
					return err
				}
				entries := store.AuditEntries(append(processed, finalised...))

				report, err := m.Allocator().Audit(entries)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Artworks checked: %d\n", len(entries))
				fmt.Fprintf(out, "Highest assigned: %d\n", report.MaxAssigned)
				if report.OK() {
					fmt.Fprintln(out, "No SKU problems found")
					return nil
				}
				fmt.Fprintf(out, "Problems (%d):\n", len(report.Problems))
				for _, problem := range report.Problems {
					fmt.Fprintf(out, "  - %s\n", problem)
				}
				if report.TrackerBehind {
					fmt.Fprintln(out, "Tracker is behind the gallery; run reset-sku or repair the tracker file")
				}
				return nil
			})
		},
	}
}
