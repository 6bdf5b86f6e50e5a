package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_USER", "whisper")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "whisperwall")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "false", cfg.DBTLSMode)
	assert.Equal(t, 48*time.Hour, cfg.RetentionWindow)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_TLS_MODE", "skip-verify")
	t.Setenv("RETENTION_WINDOW", "24h")
	t.Setenv("SWEEP_INTERVAL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "skip-verify", cfg.DBTLSMode)
	assert.Equal(t, 24*time.Hour, cfg.RetentionWindow)
	assert.Equal(t, 15*time.Minute, cfg.SweepInterval)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "whisper")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "127.0.0.1")
	// DB_NAME intentionally unset

	_, err := Load()
	require.Error(t, err)
}
