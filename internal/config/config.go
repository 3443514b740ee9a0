package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and data-file configuration.
type Paths struct {
	InputDir           string `toml:"artworks_input_dir"`
	UploadsTempDir     string `toml:"uploads_temp_dir"`
	ProcessedDir       string `toml:"processed_dir"`
	FinalisedDir       string `toml:"finalised_dir"`
	GenericTextsDir    string `toml:"generic_texts_dir"`
	MockupsDir         string `toml:"mockups_dir"`
	LogDir             string `toml:"log_dir"`
	DataDir            string `toml:"data_dir"`
	SKUTracker         string `toml:"sku_tracker"`
	SessionRegistry    string `toml:"session_registry"`
	AnalysisStatusFile string `toml:"analysis_status_file"`
	EventsDB           string `toml:"events_db"`
}

// Analysis contains the external analyzer and compositor commands.
// Commands are argv vectors; the image or target path is appended as the
// final argument when the command runs.
type Analysis struct {
	AnalyzeCommand  []string `toml:"analyze_command"`
	GenerateCommand []string `toml:"generate_command"`
	AnalyzeTimeout  int      `toml:"analyze_timeout"`
	GenerateTimeout int      `toml:"generate_timeout"`
}

// Limits contains upload and session constraints.
type Limits struct {
	MaxUploadMB        int      `toml:"max_upload_mb"`
	AllowedExtensions  []string `toml:"allowed_extensions"`
	MaxSessionsPerUser int      `toml:"max_sessions_per_user"`
	ThumbWidth         int      `toml:"thumb_width"`
	ThumbHeight        int      `toml:"thumb_height"`
	AnalyseMaxWidth    int      `toml:"analyse_max_width"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for EzyGallery.
//
// Configuration sections by subsystem:
//   - Paths: artwork roots, data files, and the log directory
//   - Analysis: external analyzer/compositor commands and timeouts
//   - Limits: upload size/extension caps and the per-user session cap
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Analysis Analysis `toml:"analysis"`
	Limits   Limits   `toml:"limits"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ezygallery/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was found on disk.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ezygallery.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the application writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.InputDir,
		c.Paths.UploadsTempDir,
		c.Paths.ProcessedDir,
		c.Paths.FinalisedDir,
		c.Paths.GenericTextsDir,
		c.Paths.MockupsDir,
		c.Paths.LogDir,
		c.Paths.DataDir,
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// AllowedExtension reports whether ext (with or without a leading dot) is
// an accepted upload extension.
func (c *Config) AllowedExtension(ext string) bool {
	trimmed := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	for _, allowed := range c.Limits.AllowedExtensions {
		if trimmed == strings.ToLower(strings.TrimPrefix(allowed, ".")) {
			return true
		}
	}
	return false
}

// MaxUploadBytes returns the upload size cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Limits.MaxUploadMB) << 20
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
