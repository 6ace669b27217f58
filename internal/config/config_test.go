package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, ":3000", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Len(t, cfg.Session.CSRFKey, 32)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	v.Set("API_BASE_URL", "https://api.example.com/")
	v.Set("API_TIMEOUT", "3s")
	v.Set("METRICS_ENABLED", "false")
	v.Set("CLIENT_ADDR", ":9000")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
}

func TestProductionNeedsCSRFKey(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := FromViper(v)
	assert.ErrorIs(t, err, ErrMissingCSRFKey)

	// 32 characters of text is not a hex-encoded 32-byte key.
	v.Set("CSRF_KEY", "0123456789abcdef0123456789abcdef")
	_, err = FromViper(v)
	assert.ErrorIs(t, err, ErrMissingCSRFKey)

	v.Set("CSRF_KEY", "not-hex-"+strings.Repeat("0", 56))
	_, err = FromViper(v)
	assert.ErrorIs(t, err, ErrMissingCSRFKey)

	key := strings.Repeat("ab", 32)
	v.Set("CSRF_KEY", key)
	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xab}, 32), cfg.Session.CSRFKey)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_NAME", "shipdesk-test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "shipdesk-test", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
}
