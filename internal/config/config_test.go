package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.ApiUrl)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverridesFlags(t *testing.T) {
	t.Setenv("TODO_API_URL", "https://tasks.example.com/api")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := Load([]string{"-api", "http://flag.example.com", "-a", ":9090"})
	require.NoError(t, err)

	assert.Equal(t, "https://tasks.example.com/api", cfg.ApiUrl)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load([]string{"-api", "localhost:8000"})
	assert.Error(t, err)

	_, err = Load([]string{"-t", "0s"})
	assert.Error(t, err)

	t.Setenv("STORAGE_PATH", "")
	_, err = Load(nil)
	assert.Error(t, err)
}
