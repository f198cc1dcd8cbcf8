package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigReadsEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")

	assert.Equal(t, "db.internal", Config("DB_HOST"))
	assert.Equal(t, "5432", Config("DB_PORT"))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8002", cfg.App.Port)
	assert.Equal(t, 100*1024*1024, cfg.App.BodyLimit)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, "v19.0", cfg.WhatsApp.Version)
	assert.Equal(t, 3, cfg.WhatsApp.RetryCount)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
