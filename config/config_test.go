package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, RedisBackend, cfg.Store.Backend)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		field       string
		mutate      func(c *Config)
		description string
	}{
		{
			field:       "store.backend",
			mutate:      func(c *Config) { c.Store.Backend = "memcached" },
			description: "Should reject an unknown backend",
		},
		{
			field:       "redis",
			mutate:      func(c *Config) { c.Redis.Host = "" },
			description: "Should require a redis host",
		},
		{
			field: "postgres",
			mutate: func(c *Config) {
				c.Store.Backend = PostgresBackend
				c.Postgres.DB = ""
			},
			description: "Should require a postgres database",
		},
		{
			field:       "shutdown_timeout",
			mutate:      func(c *Config) { c.ShutdownTimeout = 0 },
			description: "Should require a shutdown timeout",
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			cfg, err := Load(New())
			require.NoError(t, err)

			c.mutate(cfg)
			var cfgErr *ConfigError
			require.True(t, errors.As(cfg.Validate(), &cfgErr))
			assert.Equal(t, c.field, cfgErr.Field)
		})
	}
}
