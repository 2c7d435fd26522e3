package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Geocode.APIKey)
	assert.Empty(t, cfg.Auth.JWKSURL)
	assert.Equal(t, "http://localhost:5173", cfg.CORS.FrontendOrigin)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("ARCGIS_API_KEY", "key")
	t.Setenv("FRONTEND_ORIGIN", "https://rms.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "key", cfg.Geocode.APIKey)
	assert.Equal(t, "https://rms.example.com", cfg.CORS.FrontendOrigin)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = "8080"
	assert.Error(t, cfg.Validate())

	cfg.Database.Host = "localhost"
	assert.Error(t, cfg.Validate())

	cfg.Database.Name = "rms"
	assert.NoError(t, cfg.Validate())
}
