package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Limits.MaxUploadMB != defaultMaxUploadMB {
		t.Fatalf("expected default upload cap, got %d", cfg.Limits.MaxUploadMB)
	}
	if !filepath.IsAbs(cfg.Paths.ProcessedDir) {
		t.Fatalf("expected absolute processed dir, got %q", cfg.Paths.ProcessedDir)
	}
	if cfg.Analysis.AnalyzeTimeout != defaultAnalyzeTimeout {
		t.Fatalf("expected default analyze timeout, got %d", cfg.Analysis.AnalyzeTimeout)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
processed_dir = "` + filepath.Join(dir, "processed") + `"
finalised_dir = "` + filepath.Join(dir, "finalised") + `"

[limits]
max_upload_mb = 8

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved config %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Limits.MaxUploadMB != 8 {
		t.Fatalf("expected override upload cap, got %d", cfg.Limits.MaxUploadMB)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
	if cfg.Paths.ProcessedDir != filepath.Join(dir, "processed") {
		t.Fatalf("unexpected processed dir %q", cfg.Paths.ProcessedDir)
	}
}

func TestValidateRejectsSharedRoots(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Paths.FinalisedDir = cfg.Paths.ProcessedDir
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when processed and finalised roots collide")
	}
}

func TestValidateRejectsBadLogFormat(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestAllowedExtension(t *testing.T) {
	cfg := Default()
	cases := []struct {
		ext  string
		want bool
	}{
		{".jpg", true},
		{"JPEG", true},
		{"png", true},
		{".gif", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := cfg.AllowedExtension(tc.ext); got != tc.want {
			t.Errorf("AllowedExtension(%q) = %v, want %v", tc.ext, got, tc.want)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[analysis]") {
		t.Fatalf("sample config missing analysis section")
	}

	// The embedded sample must parse and validate.
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists || cfg == nil {
		t.Fatal("expected sample config to load")
	}
}
