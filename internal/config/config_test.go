package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.Backend.URL)
	assert.Empty(t, cfg.Factors.DatasetDir)
}

func TestLoadFile(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
backend:
  url: https://reporting.example.com/api
  timeout_seconds: 5
factors:
  dataset_dir: /etc/carbondesk/factors
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, "https://reporting.example.com/api", cfg.Backend.URL)
		assert.Equal(t, 5*time.Second, cfg.Backend.Timeout())
		assert.Equal(t, "/etc/carbondesk/factors", cfg.Factors.DatasetDir)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging: [not: a: map"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: warn
backend:
  url: https://file.example.com
`), 0o600))

	t.Setenv("CARBONDESK_LOG_LEVEL", "trace")
	t.Setenv("CARBONDESK_BACKEND_URL", "https://env.example.com")
	t.Setenv("CARBONDESK_BACKEND_TIMEOUT_SECONDS", "7")
	t.Setenv("CARBONDESK_FACTOR_DATASET_DIR", "/tmp/factors")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "trace", cfg.Logging.Level, "env wins over file")
	assert.Equal(t, "https://env.example.com", cfg.Backend.URL)
	assert.Equal(t, 7*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, "/tmp/factors", cfg.Factors.DatasetDir)
}

func TestBackendTimeout(t *testing.T) {
	assert.Equal(t, DefaultBackendTimeout, BackendConfig{}.Timeout())
	assert.Equal(t, DefaultBackendTimeout, BackendConfig{TimeoutSeconds: -1}.Timeout())
	assert.Equal(t, 90*time.Second, BackendConfig{TimeoutSeconds: 90}.Timeout())
}
