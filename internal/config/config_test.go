package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("LEADERBOARD_TTL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("ARCHIVE_BUCKET", "")
	t.Setenv("MINIO_USE_SSL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "pointboard", cfg.MongoDB)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Equal(t, 4*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 30*time.Second, cfg.LeaderboardTTL)
	assert.Equal(t, "deleted-accounts", cfg.ArchiveBucket)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.MinioEndpoint)
	assert.False(t, cfg.MinioUseSSL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"secret missing outside dev", "APP_ENV", "prod"},
		{"bad ttl", "JWT_TTL", "forever"},
		{"negative ttl", "LEADERBOARD_TTL", "-1s"},
		{"cost not a number", "BCRYPT_COST", "ten"},
		{"cost too high", "BCRYPT_COST", "99"},
		{"bad ssl flag", "MINIO_USE_SSL", "maybe"},
		{"bad log level", "LOG_LEVEL", "verbose"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "")
			t.Setenv("JWT_SECRET", "")
			t.Setenv(tc.key, tc.val)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
