package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.AllowedOrigins)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://localhost:5000", cfg.Detection.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Detection.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Poll.FeedInterval)
	assert.Equal(t, 15*time.Second, cfg.Poll.StatusInterval)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	viper.Reset()

	t.Setenv("SURV_SERVER_PORT", "9999")
	t.Setenv("SURV_DETECTION_BASEURL", "http://detector:6000")
	t.Setenv("SURV_POLL_FEEDINTERVAL", "2s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "http://detector:6000", cfg.Detection.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Poll.FeedInterval)

	// Untouched keys keep their defaults
	assert.Equal(t, 15*time.Second, cfg.Poll.StatusInterval)
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()

	content := []byte(`
server:
  port: "9090"
  allowedOrigins: "http://dashboard.local"
detection:
  baseUrl: "http://detector:5001"
  requestTimeout: 4s
poll:
  feedInterval: 3s
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://dashboard.local", cfg.Server.AllowedOrigins)
	assert.Equal(t, "http://detector:5001", cfg.Detection.BaseURL)
	assert.Equal(t, 4*time.Second, cfg.Detection.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Poll.FeedInterval)
	assert.Equal(t, 15*time.Second, cfg.Poll.StatusInterval)
}

func TestLoadConfigMissingFileFallsBackToDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Poll.FeedInterval)
}
