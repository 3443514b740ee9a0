package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
)

func newMockupCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mockup",
		Short: "Manage an artwork's mockup composites",
	}

	cmd.AddCommand(newMockupRegenerateCommand(ctx))
	cmd.AddCommand(newMockupSwapCommand(ctx))
	return cmd
}

func newMockupRegenerateCommand(ctx *commandContext) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "regenerate <aspect> <filename>",
		Short: "Re-render one mockup composite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				loc, err := m.Store().Resolve(args[0], args[1])
				if err != nil {
					return err
				}
				logPath := filepath.Join(cfg.Paths.LogDir, "composite_gen_"+loc.Folder+".log")
				if err := m.Store().RegenerateMockup(cmd.Context(), loc, index, m.Compositor(), logPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Regenerated mockup %d for %s\n", index, loc.Folder)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Mockup slot to regenerate")
	return cmd
}

func newMockupSwapCommand(ctx *commandContext) *cobra.Command {
	var index int
	var category string
	var source string

	cmd := &cobra.Command{
		Use:   "swap <aspect> <filename>",
		Short: "Swap one mockup's background and re-render it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				loc, err := m.Store().Resolve(args[0], args[1])
				if err != nil {
					return err
				}
				logPath := filepath.Join(cfg.Paths.LogDir, "composite_gen_"+loc.Folder+".log")
				if err := m.Store().SwapMockup(cmd.Context(), loc, index, category, source, m.Compositor(), logPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Swapped mockup %d for %s\n", index, loc.Folder)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Mockup slot to swap")
	cmd.Flags().StringVar(&category, "category", "", "Background category")
	cmd.Flags().StringVar(&source, "source", "", "Background source image")
	return cmd
}
