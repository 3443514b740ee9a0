package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
)

func newFinaliseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "finalise <aspect> <filename>",
		Short: "Move an artwork into the finalised gallery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				l, err := m.Finalise(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Finalised %s (%s)\n", l.Title, l.SKU)
				return nil
			})
		},
	}
}
