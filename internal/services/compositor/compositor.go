// Package compositor wraps the external mockup compositing tool.
package compositor

import (
	"context"
	"log/slog"
	"time"

	"ezygallery/internal/config"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
)

// Client shells out to the configured composite generation command.
type Client struct {
	command []string
	timeout time.Duration
	logger  *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		command: append([]string(nil), cfg.Analysis.GenerateCommand...),
		timeout: time.Duration(cfg.Analysis.GenerateTimeout) * time.Second,
		logger:  logging.NewComponentLogger(logger, "compositor"),
	}
}

// Generate runs the compositor against target (an artwork folder or a
// single composite path), capturing combined output to logPath.
func (c *Client) Generate(ctx context.Context, target, logPath string) error {
	argv := append(append([]string(nil), c.command...), target)
	c.logger.Info("running compositor",
		logging.String("target", target),
		logging.String("log", logPath),
		logging.Duration("timeout", c.timeout))

	if err := services.RunLogged(ctx, logPath, c.timeout, argv...); err != nil {
		c.logger.Error("compositor failed", logging.Error(err))
		return err
	}
	return nil
}
