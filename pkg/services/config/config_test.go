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

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr)
	assert.Equal(t, DefaultGenerateTimeout, cfg.GenerateTimeout)
	assert.Equal(t, DefaultLoginTimeout, cfg.LoginTimeout)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
}

func TestLoadProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportdesk.yaml")
	content := "api_url: https://reports.example.com/\ngenerate_timeout: 2m\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Trailing slash is normalized away so URL joining stays simple.
	assert.Equal(t, "https://reports.example.com", cfg.APIURL)
	assert.Equal(t, 2*time.Minute, cfg.GenerateTimeout)
	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("REPORT_DESK_API_URL", "https://override.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.APIURL)
}
