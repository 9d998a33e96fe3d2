// Package config loads carbondesk configuration: logging, the reporting
// backend endpoint, and the factor dataset directory.
//
// Configuration merges three layers, lowest precedence first: built-in
// defaults, the global config file (~/.carbondesk/config.yaml), and
// CARBONDESK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// configDirName is the per-user configuration directory under $HOME.
const configDirName = ".carbondesk"

// DefaultBackendTimeout bounds calls to the reporting backend when the
// config file sets none. Callers can still shorten it per call via context.
const DefaultBackendTimeout = 30 * time.Second

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// BackendConfig points at the reporting backend that serves factor,
// calculation, and metrics endpoints. An empty URL means local-only mode:
// built-in factors, in-memory store, zeroed metrics.
type BackendConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured backend timeout, or the default.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return DefaultBackendTimeout
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// FactorsConfig controls local factor datasets.
type FactorsConfig struct {
	// DatasetDir holds YAML factor datasets layered over the built-in
	// table. Empty means built-ins only.
	DatasetDir string `yaml:"dataset_dir"`
}

// Config is the merged carbondesk configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Backend BackendConfig `yaml:"backend"`
	Factors FactorsConfig `yaml:"factors"`
}

// defaults returns the built-in configuration layer.
func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the global config file path, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, "config.yaml")
}

// Load builds the merged configuration. A missing config file is not an
// error; a malformed one is, so typos fail loudly instead of silently
// running on defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays CARBONDESK_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CARBONDESK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CARBONDESK_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CARBONDESK_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("CARBONDESK_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("CARBONDESK_BACKEND_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("CARBONDESK_FACTOR_DATASET_DIR"); v != "" {
		cfg.Factors.DatasetDir = v
	}
}
