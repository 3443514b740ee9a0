package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"ezygallery/internal/session"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List active user sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			all, err := registry.All()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No active sessions")
				return nil
			}

			users := make([]string, 0, len(all))
			for user := range all {
				users = append(users, user)
			}
			sort.Strings(users)

			var rows [][]string
			for _, user := range users {
				for _, entry := range all[user] {
					rows = append(rows, []string{user, entry.SessionID, entry.Timestamp})
				}
			}
			writeTable(out, []string{"USER", "SESSION", "SINCE"}, rows, nil)
			return nil
		},
	}

	cmd.AddCommand(newSessionsEndCommand(ctx))
	return cmd
}

func newSessionsEndCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "end <user> <session>",
		Short: "End an active session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			if err := registry.Remove(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ended session %s for %s\n", args[1], args[0])
			return nil
		},
	}
}

func openRegistry(ctx *commandContext) (*session.Registry, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return session.NewRegistry(cfg.Paths.SessionRegistry, cfg.Limits.MaxSessionsPerUser), nil
}
