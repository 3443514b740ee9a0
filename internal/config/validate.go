package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateLimits(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	required := map[string]string{
		"paths.artworks_input_dir":   c.Paths.InputDir,
		"paths.uploads_temp_dir":     c.Paths.UploadsTempDir,
		"paths.processed_dir":        c.Paths.ProcessedDir,
		"paths.finalised_dir":        c.Paths.FinalisedDir,
		"paths.generic_texts_dir":    c.Paths.GenericTextsDir,
		"paths.log_dir":              c.Paths.LogDir,
		"paths.data_dir":             c.Paths.DataDir,
		"paths.sku_tracker":          c.Paths.SKUTracker,
		"paths.session_registry":     c.Paths.SessionRegistry,
		"paths.analysis_status_file": c.Paths.AnalysisStatusFile,
		"paths.events_db":            c.Paths.EventsDB,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	if c.Paths.ProcessedDir == c.Paths.FinalisedDir {
		return errors.New("paths.processed_dir and paths.finalised_dir must differ")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if len(c.Analysis.AnalyzeCommand) == 0 {
		return errors.New("analysis.analyze_command must be set")
	}
	if len(c.Analysis.GenerateCommand) == 0 {
		return errors.New("analysis.generate_command must be set")
	}
	if c.Analysis.AnalyzeTimeout <= 0 {
		return errors.New("analysis.analyze_timeout must be positive (seconds)")
	}
	if c.Analysis.GenerateTimeout <= 0 {
		return errors.New("analysis.generate_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLimits() error {
	if c.Limits.MaxUploadMB <= 0 {
		return errors.New("limits.max_upload_mb must be positive")
	}
	if len(c.Limits.AllowedExtensions) == 0 {
		return errors.New("limits.allowed_extensions must include at least one extension")
	}
	if c.Limits.MaxSessionsPerUser <= 0 {
		return errors.New("limits.max_sessions_per_user must be positive")
	}
	if c.Limits.ThumbWidth <= 0 || c.Limits.ThumbHeight <= 0 {
		return errors.New("limits.thumb_width and limits.thumb_height must be positive")
	}
	if c.Limits.AnalyseMaxWidth <= 0 {
		return errors.New("limits.analyse_max_width must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
