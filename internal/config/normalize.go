package config

import "strings"

// normalize expands and absolutizes every path field and fills defaults for
// fields left empty by a partial config file.
func (c *Config) normalize() error {
	paths := []*string{
		&c.Paths.InputDir,
		&c.Paths.UploadsTempDir,
		&c.Paths.ProcessedDir,
		&c.Paths.FinalisedDir,
		&c.Paths.GenericTextsDir,
		&c.Paths.MockupsDir,
		&c.Paths.LogDir,
		&c.Paths.DataDir,
		&c.Paths.SKUTracker,
		&c.Paths.SessionRegistry,
		&c.Paths.AnalysisStatusFile,
		&c.Paths.EventsDB,
	}
	for _, p := range paths {
		expanded, err := expandPath(strings.TrimSpace(*p))
		if err != nil {
			return err
		}
		*p = expanded
	}

	if c.Analysis.AnalyzeTimeout == 0 {
		c.Analysis.AnalyzeTimeout = defaultAnalyzeTimeout
	}
	if c.Analysis.GenerateTimeout == 0 {
		c.Analysis.GenerateTimeout = defaultGenerateTimeout
	}
	if c.Limits.MaxUploadMB == 0 {
		c.Limits.MaxUploadMB = defaultMaxUploadMB
	}
	if len(c.Limits.AllowedExtensions) == 0 {
		c.Limits.AllowedExtensions = []string{"jpg", "jpeg", "png"}
	}
	if c.Limits.MaxSessionsPerUser == 0 {
		c.Limits.MaxSessionsPerUser = defaultMaxSessionsPerUser
	}
	if c.Limits.ThumbWidth == 0 {
		c.Limits.ThumbWidth = defaultThumbWidth
	}
	if c.Limits.ThumbHeight == 0 {
		c.Limits.ThumbHeight = defaultThumbHeight
	}
	if c.Limits.AnalyseMaxWidth == 0 {
		c.Limits.AnalyseMaxWidth = defaultAnalyseMaxWidth
	}
	c.Logging.Format = strings.TrimSpace(c.Logging.Format)
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.TrimSpace(c.Logging.Level)
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
