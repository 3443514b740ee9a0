package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var eventCount int
	var uploadID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show analysis progress and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(m *lifecycle.Manager) error {
				out := cmd.OutOrStdout()

				status, err := m.AnalysisStatus()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Analysis: %s (%d%%)", status.Step, status.Percent)
				if status.File != "" {
					fmt.Fprintf(out, " %s", status.File)
				}
				fmt.Fprintln(out)

				if uploadID != "" {
					event, err := m.Events().LatestUploadEvent(cmd.Context(), uploadID)
					if err != nil {
						return err
					}
					if event == nil {
						fmt.Fprintf(out, "No events recorded for upload %s\n", uploadID)
					} else {
						fmt.Fprintf(out, "Upload %s: %s (%s)", event.UploadID, event.Status, event.Filename)
						if event.ErrorMsg != "" {
							fmt.Fprintf(out, " error: %s", event.ErrorMsg)
						}
						fmt.Fprintln(out)
					}
				}

				if eventCount <= 0 {
					return nil
				}
				entries, err := m.Events().RecentEntries(cmd.Context(), eventCount)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, "No recent activity")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.CreatedAt,
						entry.Level,
						entry.EventType,
						entry.Message,
					})
				}
				writeTable(out, []string{"TIME", "LEVEL", "EVENT", "MESSAGE"}, rows, nil)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&eventCount, "events", 0, "Also show the N most recent activity log entries")
	cmd.Flags().StringVar(&uploadID, "upload", "", "Show the latest event for one upload")
	return cmd
}
