package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "STORE_BACKEND", "REDIS_URI", "SQLITE_PATH", "ANSWER_TTL", "STORE_TIMEOUT", "CONTENT_SOURCE",
		"MONGO_URI", "MONGO_DB", "JWT_SECRET", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.AnswerTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, "embedded", cfg.ContentSource)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/answers.db")
	t.Setenv("REDIS_URI", "redis://cache:6380")
	t.Setenv("ANSWER_TTL", "90m")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("CONTENT_SOURCE", "mongo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "/tmp/answers.db", cfg.SQLitePath)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 90*time.Minute, cfg.AnswerTTL)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "mongo", cfg.ContentSource)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown backend", "STORE_BACKEND", "etcd"},
		{"unknown content source", "CONTENT_SOURCE", "s3"},
		{"bad ttl", "ANSWER_TTL", "soon"},
		{"bad store timeout", "STORE_TIMEOUT", "fast"},
		{"zero store timeout", "STORE_TIMEOUT", "0s"},
		{"non-numeric port", "PORT", "http"},
		{"unknown log level", "LOG_LEVEL", "loud"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
