package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"IMGSPACE_CONFIG",
		"IMGSPACE_WORKSPACE",
		"IMGSPACE_VERBOSE",
		"IMGSPACE_LOG_FORMAT",
		"IMGSPACE_READ_EXIF",
		"IMGSPACE_SCAN_WORKERS",
		"IMGSPACE_PREVIEW_MAX_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "workspace: /photos\nverbose: true\nlog_format: json\nread_exif: true\nscan_workers: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workspace != "/photos" || !cfg.Verbose || cfg.LogFormat != "json" || !cfg.ReadExif || cfg.ScanWorkers != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.MaxPreviewBytes != defaultMaxPreviewBytes {
		t.Fatalf("expected default preview limit to survive, got %d", cfg.MaxPreviewBytes)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workspace: /from-file\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("IMGSPACE_WORKSPACE", "/from-env")
	t.Setenv("IMGSPACE_VERBOSE", "yes")
	t.Setenv("IMGSPACE_SCAN_WORKERS", "2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workspace != "/from-env" {
		t.Fatalf("expected env workspace, got %q", cfg.Workspace)
	}
	if !cfg.Verbose {
		t.Fatalf("expected verbose from env")
	}
	if cfg.ScanWorkers != 2 {
		t.Fatalf("expected 2 workers, got %d", cfg.ScanWorkers)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workspace: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}

	t.Setenv("IMGSPACE_SCAN_WORKERS", "many")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected invalid worker count error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"json format", func(c *Config) { c.LogFormat = "JSON" }, true},
		{"unknown format", func(c *Config) { c.LogFormat = "xml" }, false},
		{"negative workers", func(c *Config) { c.ScanWorkers = -1 }, false},
		{"zero preview limit", func(c *Config) { c.MaxPreviewBytes = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Workspace = "/photos"
	cfg.ReadExif = true

	if err := Save(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestPreviewMaxSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMGSPACE_PREVIEW_MAX_SIZE", "640")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PreviewMaxSize != 640 {
		t.Fatalf("expected 640, got %d", cfg.PreviewMaxSize)
	}

	cfg.PreviewMaxSize = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative size to be rejected")
	}

	t.Setenv("IMGSPACE_PREVIEW_MAX_SIZE", "big")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected invalid value to be rejected")
	}
}
