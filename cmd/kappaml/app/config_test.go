package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("KAPPAML_API_KEY", "env-key")
	t.Setenv("KAPPAML_BASE_URL", "http://localhost:9000/v1")
	t.Setenv("KAPPAML_POLL_INTERVAL", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "http://localhost:9000/v1", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestReadConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("KAPPAML_API_KEY", "")

	path := filepath.Join(t.TempDir(), "kappaml.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kappaml_api_key: file-key\nhttp_timeout: 45s\nformat: yaml\n"), 0o600))

	cfg := &Config{BaseURL: "http://explicit"}
	require.NoError(t, cfg.ReadConfigFile(path))

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "http://explicit", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestReadConfigFileMissing(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := &Config{}
	assert.Error(t, cfg.ReadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml", LogLevel: "info"}

	cfg.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)

	cfg.UpdateFromFlags(false, false, false, "json", "trace")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "trace", cfg.LogLevel)
}
