package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("PORT", "6000")
	t.Setenv("GRPC_ADDR", ":6001")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("MONGODB_URI", "mongodb://primary")
	t.Setenv("MONGODB_URI_FALLBACK", "mongodb://fallback")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRES_IN", "1h")
	t.Setenv("OTEL_ENDPOINT", "http://collector:4318")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":6000", cfg.HTTPAddr)
	assert.Equal(t, ":6001", cfg.GRPCAddr)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, "mongodb://primary", cfg.DatabaseURI)
	assert.Equal(t, "mongodb://fallback", cfg.DatabaseURIFallback)
	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, "http://collector:4318", cfg.OTelEndpoint)

	// untouched
	assert.Equal(t, 5*time.Second, cfg.RetryDelay)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseEnv_SecondNameWins(t *testing.T) {
	t.Setenv("PORT", "6000")
	t.Setenv("HTTP_ADDR", "127.0.0.1:7000")
	t.Setenv("MONGODB_URI", "mongodb://a")
	t.Setenv("DATABASE_URI", "postgres://b")

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "127.0.0.1:7000", cfg.HTTPAddr)
	assert.Equal(t, "postgres://b", cfg.DatabaseURI)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("DB_RETRY_DELAY", "soon")

	err := parseEnv(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
