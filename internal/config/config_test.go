package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Client.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Client.RequestTimeout)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "task-manager", cfg.JWT.Issuer)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Client.APIBaseURL)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_RejectsZeroTTL(t *testing.T) {
	t.Setenv("JWT_TTL", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT TTL")
}
