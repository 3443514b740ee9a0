// Package analyzer wraps the external artwork analysis tool. The tool
// receives an image path and is expected to write "<stem>-listing.json"
// next to the image.
package analyzer

import (
	"context"
	"log/slog"
	"time"

	"ezygallery/internal/config"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
)

// Client shells out to the configured analyze command.
type Client struct {
	command []string
	timeout time.Duration
	logger  *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		command: append([]string(nil), cfg.Analysis.AnalyzeCommand...),
		timeout: time.Duration(cfg.Analysis.AnalyzeTimeout) * time.Second,
		logger:  logging.NewComponentLogger(logger, "analyzer"),
	}
}

// Analyze runs the analysis tool against imagePath, capturing combined
// output to logPath.
func (c *Client) Analyze(ctx context.Context, imagePath, logPath string) error {
	argv := append(append([]string(nil), c.command...), imagePath)
	c.logger.Info("running analyzer",
		logging.String("image", imagePath),
		logging.String("log", logPath),
		logging.Duration("timeout", c.timeout))

	if err := services.RunLogged(ctx, logPath, c.timeout, argv...); err != nil {
		c.logger.Error("analyzer failed", logging.Error(err))
		return err
	}
	return nil
}
