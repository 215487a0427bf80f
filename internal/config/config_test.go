package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 10, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, "https://api.igdb.com/v4", cfg.IGDB.BaseURL)
	assert.Equal(t, "https://id.twitch.tv/oauth2/token", cfg.IGDB.TokenURL)
	assert.Equal(t, "https://boardgamegeek.com/xmlapi2", cfg.BGG.BaseURL)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.HasIGDBCredentials())
}

func TestConfig_Getters(t *testing.T) {
	empty := &Config{}

	assert.Equal(t, "5000", empty.GetPort())
	assert.Equal(t, 300*time.Second, empty.GetCacheTTL())
	assert.Equal(t, 10*time.Second, empty.GetUpstreamTimeout())
	assert.Equal(t, "memory", empty.GetCacheBackend())
	assert.Equal(t, "@every 5m", empty.GetWarmSchedule())

	custom := &Config{
		Server:   ServerConfig{Port: "8080"},
		Cache:    CacheConfig{TTLSeconds: 60, Backend: "sqlite"},
		Upstream: UpstreamConfig{TimeoutSeconds: 3},
	}
	assert.Equal(t, "8080", custom.GetPort())
	assert.Equal(t, time.Minute, custom.GetCacheTTL())
	assert.Equal(t, 3*time.Second, custom.GetUpstreamTimeout())
	assert.Equal(t, "sqlite", custom.GetCacheBackend())
}

func TestConfig_GetWarmSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		expected string
	}{
		{"default when empty", "", "@every 5m"},
		{"off disables", "off", ""},
		{"disabled disables", "disabled", ""},
		{"custom spec", "*/10 * * * *", "*/10 * * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Scheduler: SchedulerConfig{WarmSchedule: tt.schedule}}
			assert.Equal(t, tt.expected, cfg.GetWarmSchedule())
		})
	}
}

func TestLoad_FromEnvPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
server:
  port: "7000"
igdb:
  client_id: file-id
  client_secret: file-secret
cache:
  backend: sqlite
  ttl_seconds: 120
  path: /tmp/cache.db
logging:
  format: json
  level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644)) // #nosec G306

	t.Setenv("GAMEROOM_CONFIG", configPath)
	t.Setenv("IGDB_CLIENT_ID", "")
	t.Setenv("IGDB_CLIENT_SECRET", "env-secret")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "file-id", cfg.IGDB.ClientID)
	assert.Equal(t, "env-secret", cfg.IGDB.ClientSecret)
	assert.Equal(t, "sqlite", cfg.Cache.Backend)
	assert.Equal(t, 2*time.Minute, cfg.GetCacheTTL())
	assert.Equal(t, "/tmp/cache.db", cfg.Cache.Path)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Unset sections keep their defaults.
	assert.Equal(t, "https://boardgamegeek.com/xmlapi2", cfg.BGG.BaseURL)
	assert.True(t, cfg.HasIGDBCredentials())
}

func TestLoad_MissingEnvPath(t *testing.T) {
	t.Setenv("GAMEROOM_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server: [unclosed"), 0644)) // #nosec G306
	t.Setenv("GAMEROOM_CONFIG", configPath)

	_, err := Load()
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("GAMEROOM_CACHE_BACKEND", "redis")
	t.Setenv("BGG_API_TOKEN", "bgg-token")
	t.Setenv("GAMEROOM_WARM_SCHEDULE", "off")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "redis://cache:6379/1", cfg.Cache.RedisURL)
	assert.Equal(t, "redis", cfg.GetCacheBackend())
	assert.Equal(t, "bgg-token", cfg.BGG.Token)
	assert.Empty(t, cfg.GetWarmSchedule())
}
