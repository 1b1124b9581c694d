package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "*", cfg.CORS.Origin)
	assert.Equal(t, 2, cfg.Shield.TimeoutSeconds)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := []byte(`
env: production
server:
  port: "9090"
database:
  url: "postgres://localhost/acquisitions"
cors:
  origin: "https://app.example.com"
shield:
  url: "https://shield.example.com"
  api_key: "k"
  timeout_seconds: 5
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/acquisitions", cfg.Database.URL)
	assert.Equal(t, "https://app.example.com", cfg.CORS.Origin)
	assert.Equal(t, "https://shield.example.com", cfg.Shield.URL)
	assert.Equal(t, 5, cfg.Shield.TimeoutSeconds)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("env: development\nserver:\n  port: \"8080\"\n"), 0o600))

	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "3000")
	t.Setenv("SECRET", "from-env")
	t.Setenv("CORS_ORIGIN", "https://other.example.com")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "https://other.example.com", cfg.CORS.Origin)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
