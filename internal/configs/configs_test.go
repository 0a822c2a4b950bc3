package configs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linewatch/internal/configs"
)

// clearEnv blanks every variable LoadConfig reads so tests start from a clean slate.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS",
		"ADMIN_USERNAME", "ADMIN_PASSWORD",
		"LINE_CHANNEL_SECRET", "LINE_CHANNEL_ACCESS_TOKEN",
		"STRIPE_WEBHOOK_SECRET", "DATABASE_URL",
		"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := configs.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, 8080, cfg.Port)
		assert.Empty(t, cfg.AllowedOrigins)
		assert.Empty(t, cfg.AdminUsername)
		assert.Empty(t, cfg.LineChannelSecret)
		assert.Empty(t, cfg.DatabaseDSN)
	})

	t.Run("values are read", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("PORT", "9000")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
		t.Setenv("ADMIN_USERNAME", "admin")
		t.Setenv("ADMIN_PASSWORD", "pw")
		t.Setenv("LINE_CHANNEL_SECRET", " secret ")
		t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/linewatch")

		cfg, err := configs.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
		assert.Equal(t, "admin", cfg.AdminUsername)
		assert.Equal(t, "pw", cfg.AdminPassword)
		assert.Equal(t, "secret", cfg.LineChannelSecret, "secret is trimmed")
		assert.Equal(t, "postgres://localhost/linewatch", cfg.DatabaseDSN)
	})

	t.Run("invalid port is rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "not-a-port")

		_, err := configs.LoadConfig()
		require.Error(t, err)
	})

	t.Run("privileged port is rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "80")

		_, err := configs.LoadConfig()
		require.Error(t, err)
	})

	t.Run("partial S3 settings are rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("S3_BUCKET_NAME", "avatars")

		_, err := configs.LoadConfig()
		require.ErrorContains(t, err, "S3")
	})

	t.Run("complete S3 settings pass", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("S3_BUCKET_NAME", "avatars")
		t.Setenv("S3_ENDPOINT", "https://s3.example")
		t.Setenv("S3_ACCESS_KEY_ID", "key")
		t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

		cfg, err := configs.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "avatars", cfg.S3BucketName)
	})
}
