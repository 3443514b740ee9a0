package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezygallery/internal/lifecycle"
	"ezygallery/internal/session"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var user string
	var sessionID string

	cmd := &cobra.Command{
		Use:   "upload <file> [file...]",
		Short: "Quality-check artwork files and stage them for analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if user != "" && sessionID != "" {
				registry := session.NewRegistry(cfg.Paths.SessionRegistry, cfg.Limits.MaxSessionsPerUser)
				ok, err := registry.Register(user, sessionID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("session limit reached for user %s", user)
				}
			}

			return ctx.withManager(func(m *lifecycle.Manager) error {
				out := cmd.OutOrStdout()
				for _, path := range args {
					result, err := m.IngestUpload(cmd.Context(), path, user, sessionID)
					if err != nil {
						return fmt.Errorf("upload %s: %w", path, err)
					}
					fmt.Fprintf(out, "Staged %s as %s (%s, %dx%d)\n",
						result.Filename, result.Base, result.Aspect, result.Width, result.Height)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User the upload is attributed to")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier for the upload")
	return cmd
}
