package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("NETSUITE_ACCOUNT_ID", "123456")
	t.Setenv("NETSUITE_CONSUMER_KEY", "ck")
	t.Setenv("NETSUITE_CONSUMER_SECRET", "cs")
	t.Setenv("NETSUITE_TOKEN_ID", "tk")
	t.Setenv("NETSUITE_TOKEN_SECRET", "ts")
}

func TestLoad_DefaultsApply(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, CacheMemory, cfg.CacheBackend)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "123456", cfg.NetSuite.AccountID)
}

func TestLoad_OverridesFromEnvironment(t *testing.T) {
	setCredentials(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "1h")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestLoad_MissingCredentialFails(t *testing.T) {
	setCredentials(t)
	t.Setenv("NETSUITE_TOKEN_SECRET", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NETSUITE_TOKEN_SECRET")
}

func TestLoad_UnknownCacheBackendFails(t *testing.T) {
	setCredentials(t)
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	assert.Error(t, err)
}
