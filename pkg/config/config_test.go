package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.LookupTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Whois.Server)
	assert.True(t, cfg.Whois.FollowReferral)
	assert.Equal(t, 2, cfg.Whois.MaxReferrals)
	assert.Equal(t, 15*time.Second, cfg.Whois.ReadTimeout)
	assert.Equal(t, "https://crt.sh", cfg.CT.BaseURL)
	assert.Zero(t, cfg.CT.RateLimit)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("WHOIS_SERVER", "whois.example.net")
	t.Setenv("WHOIS_FOLLOW_REFERRAL", "false")
	t.Setenv("CT_BASE_URL", "https://ct.internal.example")
	t.Setenv("CT_RATE_LIMIT", "0.5")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "5s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "whois.example.net", cfg.Whois.Server)
	assert.False(t, cfg.Whois.FollowReferral)
	assert.Equal(t, "https://ct.internal.example", cfg.CT.BaseURL)
	assert.Equal(t, 0.5, cfg.CT.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.HTTP.RequestTimeout)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestLoadServerPortWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("SERVER_PORT", "4000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Server.Port)
}

func TestLoadInvalidValues(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("SERVER_READ_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown gin mode", func(t *testing.T) {
		t.Setenv("GIN_MODE", "production")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative rate", func(t *testing.T) {
		t.Setenv("CT_RATE_LIMIT", "-1")
		_, err := Load()
		assert.Error(t, err)
	})
}
