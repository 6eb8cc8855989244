package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"imgspace/internal/logging"
)

const defaultMaxPreviewBytes = 100 * 1024 * 1024

type Config struct {
	Workspace       string `yaml:"workspace"`
	Verbose         bool   `yaml:"verbose"`
	LogFormat       string `yaml:"log_format"`
	ReadExif        bool   `yaml:"read_exif"`
	ScanWorkers     int    `yaml:"scan_workers"`
	MaxPreviewBytes int64  `yaml:"max_preview_bytes"`
	PreviewMaxSize  int    `yaml:"preview_max_size"`
}

func Default() Config {
	return Config{
		LogFormat:       logging.FormatConsole,
		MaxPreviewBytes: defaultMaxPreviewBytes,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	if path := envOrEmpty("IMGSPACE_CONFIG"); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "imgspace", "config.yaml"), nil
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("log_format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.LogFormat)
	}
	if c.ScanWorkers < 0 {
		return errors.New("scan_workers must not be negative")
	}
	if c.PreviewMaxSize < 0 {
		return errors.New("preview_max_size must not be negative")
	}
	if c.MaxPreviewBytes <= 0 {
		return errors.New("max_preview_bytes must be positive")
	}
	return nil
}

func (c *Config) applyEnv() error {
	if val := envOrEmpty("IMGSPACE_WORKSPACE"); val != "" {
		c.Workspace = val
	}
	if envTruthy("IMGSPACE_VERBOSE") {
		c.Verbose = true
	}
	if val := envOrEmpty("IMGSPACE_LOG_FORMAT"); val != "" {
		c.LogFormat = val
	}
	if envTruthy("IMGSPACE_READ_EXIF") {
		c.ReadExif = true
	}
	if val := envOrEmpty("IMGSPACE_SCAN_WORKERS"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid IMGSPACE_SCAN_WORKERS %q", val)
		}
		c.ScanWorkers = n
	}
	if val := envOrEmpty("IMGSPACE_PREVIEW_MAX_SIZE"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid IMGSPACE_PREVIEW_MAX_SIZE %q", val)
		}
		c.PreviewMaxSize = n
	}
	return nil
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
