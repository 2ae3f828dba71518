package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DB_PATH", "PORT", "IS_PRODUCTION", "JWT_SECRET", "JWT_EXPIRY_DURATION", "RATE_LIMIT", "DOC_SYNC_URL", "DOC_SYNC_TIMEOUT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "./data/ledger.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Empty(t, cfg.DocSyncURL)
	assert.Equal(t, 5*time.Second, cfg.DocSyncTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DB_PATH", "/var/lib/ledger/shops.db")
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("RATE_LIMIT", "10-S")
	t.Setenv("DOC_SYNC_URL", "https://docs.example.com/")
	t.Setenv("DOC_SYNC_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/ledger/shops.db", cfg.DBPath)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "10-S", cfg.RateLimit)
	assert.Equal(t, "https://docs.example.com", cfg.DocSyncURL)
	assert.Equal(t, 5*time.Second, cfg.DocSyncTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}
