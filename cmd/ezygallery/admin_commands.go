package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <aspect> <filename>",
		Short: "Delete an artwork and its original upload",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				if err := m.Delete(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[1])
				return nil
			})
		},
	}
}

func newLockCommand(ctx *commandContext) *cobra.Command {
	var user string
	var reason string

	cmd := &cobra.Command{
		Use:   "lock <aspect> <filename>",
		Short: "Lock a finalised artwork against edits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				if err := m.Lock(cmd.Context(), args[0], args[1], user, reason); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Locked %s\n", args[1])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User applying the lock")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the lock")
	return cmd
}

func newUnlockCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <aspect> <filename>",
		Short: "Unlock an artwork",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				if err := m.Unlock(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s\n", args[1])
				return nil
			})
		},
	}
}

func newResetSKUCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-sku <aspect> <filename>",
		Short: "Force-assign a fresh SKU to an artwork",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				l, err := m.ResetSKU(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s\n", l.SKU, l.Title)
				return nil
			})
		},
	}
}

func newUpdateLinksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update-links <aspect> <filename>",
		Short: "Recompute a listing's image list from the files on disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				l, err := m.UpdateLinks(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Listing now references %d images\n", len(l.Images))
				return nil
			})
		},
	}
}
