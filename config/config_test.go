package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/jobtracker")
		t.Setenv("JWT_SECRET", testSecret)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 24*time.Hour, cfg.AccessTTL)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
		assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
		assert.True(t, cfg.DBAutoMigrate)
	})

	t.Run("Should read overrides from environment", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/jobtracker")
		t.Setenv("JWT_SECRET", testSecret)
		t.Setenv("PORT", "9090")
		t.Setenv("ACCESS_TOKEN_TTL", "2h")
		t.Setenv("FRONTEND_URL", "https://tracker.example.com/")
		t.Setenv("DB_AUTO_MIGRATE", "false")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 2*time.Hour, cfg.AccessTTL)
		assert.Equal(t, "https://tracker.example.com", cfg.FrontendURL)
		assert.False(t, cfg.DBAutoMigrate)
	})

	t.Run("Should fail without database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", testSecret)

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("Should reject short secrets", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/jobtracker")
		t.Setenv("JWT_SECRET", "short")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
