package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ezygallery/internal/config"
	"ezygallery/internal/events"
	"ezygallery/internal/lifecycle"
	"ezygallery/internal/logging"
	"ezygallery/internal/services/analyzer"
	"ezygallery/internal/services/compositor"
	"ezygallery/internal/sku"
	"ezygallery/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// withManager builds a fully wired lifecycle manager for one command
// invocation and closes the events database afterwards.
func (c *commandContext) withManager(fn func(*lifecycle.Manager) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}

	ev, err := events.Open(cfg.Paths.EventsDB)
	if err != nil {
		return err
	}
	defer ev.Close()

	manager := lifecycle.NewManager(
		cfg,
		store.New(cfg, logger),
		sku.NewAllocator(cfg.Paths.SKUTracker),
		analyzer.New(cfg, logger),
		compositor.New(cfg, logger),
		ev,
		logger,
	)
	return fn(manager)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
