package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort          = "5000"
	defaultCacheTTL      = 300
	defaultTimeout       = 10
	defaultCacheBackend  = "memory"
	defaultCachePath     = "gameroom-cache.db"
	defaultWarmSchedule  = "@every 5m"
	defaultIGDBBaseURL   = "https://api.igdb.com/v4"
	defaultIGDBTokenURL  = "https://id.twitch.tv/oauth2/token"
	defaultBGGBaseURL    = "https://boardgamegeek.com/xmlapi2"
	defaultBGGUserAgent  = "PawsPlayGameroom/1.0"
	defaultLoggingFormat = "text"
	defaultLoggingLevel  = "info"
	defaultRedisURL      = "redis://localhost:6379"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	IGDB      IGDBConfig      `yaml:"igdb"`
	BGG       BGGConfig       `yaml:"bgg"`
	Cache     CacheConfig     `yaml:"cache"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// IGDBConfig holds the catalog API credentials and endpoints.
type IGDBConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
}

// BGGConfig holds the board-game wiki endpoint settings.
type BGGConfig struct {
	BaseURL   string `yaml:"base_url"`
	Token     string `yaml:"token"`
	UserAgent string `yaml:"user_agent"`
}

// CacheConfig selects and configures the response cache backend.
type CacheConfig struct {
	Backend    string `yaml:"backend"` // "memory", "sqlite" or "redis"
	TTLSeconds int    `yaml:"ttl_seconds"`
	Path       string `yaml:"path"`
	RedisURL   string `yaml:"redis_url"`
}

// UpstreamConfig holds settings shared by the upstream clients.
type UpstreamConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// SchedulerConfig holds the cache warm-up schedule. "off" disables it.
type SchedulerConfig struct {
	WarmSchedule string `yaml:"warm_schedule"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: defaultPort},
		IGDB: IGDBConfig{
			BaseURL:  defaultIGDBBaseURL,
			TokenURL: defaultIGDBTokenURL,
		},
		BGG: BGGConfig{
			BaseURL:   defaultBGGBaseURL,
			UserAgent: defaultBGGUserAgent,
		},
		Cache: CacheConfig{
			Backend:    defaultCacheBackend,
			TTLSeconds: defaultCacheTTL,
			Path:       defaultCachePath,
			RedisURL:   defaultRedisURL,
		},
		Upstream:  UpstreamConfig{TimeoutSeconds: defaultTimeout},
		Scheduler: SchedulerConfig{WarmSchedule: defaultWarmSchedule},
		Logging: LoggingConfig{
			Format: defaultLoggingFormat,
			Level:  defaultLoggingLevel,
		},
	}
}

// configPaths returns the list of paths to search for config file.
func configPaths() []string {
	paths := []string{
		".gameroom.yaml",
		".gameroom.yml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "gameroom", "config.yaml"),
			filepath.Join(home, ".config", "gameroom", "config.yml"),
		)
	}

	return paths
}

// Load loads configuration from file or returns defaults.
// A .env file in the working directory is loaded into the environment first.
// Priority: env overrides > GAMEROOM_CONFIG > search paths > defaults
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if envPath := os.Getenv("GAMEROOM_CONFIG"); envPath != "" {
		if err := cfg.loadFromFile(envPath); err != nil {
			return nil, err
		}
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.loadFromFile(path); err != nil {
				return nil, err
			}
			break
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"IGDB_CLIENT_ID", &c.IGDB.ClientID},
		{"IGDB_CLIENT_SECRET", &c.IGDB.ClientSecret},
		{"PORT", &c.Server.Port},
		{"BGG_API_TOKEN", &c.BGG.Token},
		{"GAMEROOM_CACHE_BACKEND", &c.Cache.Backend},
		{"GAMEROOM_CACHE_PATH", &c.Cache.Path},
		{"REDIS_URL", &c.Cache.RedisURL},
		{"GAMEROOM_WARM_SCHEDULE", &c.Scheduler.WarmSchedule},
		{"LOG_LEVEL", &c.Logging.Level},
		{"LOG_FORMAT", &c.Logging.Format},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

// GetPort returns the HTTP port, applying defaults.
func (c *Config) GetPort() string {
	if c.Server.Port != "" {
		return c.Server.Port
	}
	return defaultPort
}

// GetCacheTTL returns the response cache TTL.
func (c *Config) GetCacheTTL() time.Duration {
	if c.Cache.TTLSeconds > 0 {
		return time.Duration(c.Cache.TTLSeconds) * time.Second
	}
	return defaultCacheTTL * time.Second
}

// GetUpstreamTimeout returns the per-request timeout for upstream calls.
func (c *Config) GetUpstreamTimeout() time.Duration {
	if c.Upstream.TimeoutSeconds > 0 {
		return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
	}
	return defaultTimeout * time.Second
}

// GetCacheBackend returns the cache backend name.
func (c *Config) GetCacheBackend() string {
	if c.Cache.Backend != "" {
		return c.Cache.Backend
	}
	return defaultCacheBackend
}

// GetWarmSchedule returns the cron spec for cache warm-up, or "" when disabled.
func (c *Config) GetWarmSchedule() string {
	switch c.Scheduler.WarmSchedule {
	case "off", "disabled", "none":
		return ""
	case "":
		return defaultWarmSchedule
	}
	return c.Scheduler.WarmSchedule
}

// HasIGDBCredentials reports whether catalog API credentials are configured.
func (c *Config) HasIGDBCredentials() bool {
	return c.IGDB.ClientID != "" && c.IGDB.ClientSecret != ""
}
