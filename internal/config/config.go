// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers a YAML file and PODIUM_* environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"time"
)

// Persistence backends accepted by Store.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

const maxFrameRate = 240

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store picks the persistence backend: memory, sqlite, redis or postgres.
	Store string `koanf:"store"`

	SQLitePath    string `koanf:"sqlite_path"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	PostgresURL   string `koanf:"postgres_url"`

	// FrameRate is the display driver tick rate in frames per second.
	FrameRate int `koanf:"frame_rate"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// MaxImportBytes caps the body of POST /import.
	MaxImportBytes int64 `koanf:"max_import_bytes"`

	// OpenAIAPIKey enables the LLM import parser when set.
	OpenAIAPIKey  string `koanf:"openai_api_key"`
	OpenAIModel   string `koanf:"openai_model"`
	OpenAIBaseURL string `koanf:"openai_base_url"`

	// ServerURL is the API base used by the display and seed tools.
	ServerURL string `koanf:"server_url"`

	// RefreshInterval controls how often the terminal display reloads the roster.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsRefreshInterval controls how often the system gauges are sampled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		Store:               StoreMemory,
		SQLitePath:          "podium.db",
		RedisAddr:           "localhost:6379",
		FrameRate:           30,
		MaxLeaderboardLimit: 100,
		MaxImportBytes:      1 << 20,
		OpenAIModel:         "gpt-4o",
		ServerURL:           "http://localhost:9080",
		RefreshInterval:     30 * time.Second,

		MetricsNamespace:       "podium",
		MetricsRefreshInterval: 10 * time.Second,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	case c.FrameRate <= 0 || c.FrameRate > maxFrameRate:
		return fmt.Errorf("%w: frame_rate must be in 1..%d", ErrInvalidConfig, maxFrameRate)
	case c.MaxLeaderboardLimit <= 0:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	case c.MaxImportBytes <= 0:
		return fmt.Errorf("%w: max_import_bytes must be positive", ErrInvalidConfig)
	case c.RefreshInterval <= 0:
		return fmt.Errorf("%w: refresh_interval must be positive", ErrInvalidConfig)
	case c.MetricsRefreshInterval <= 0:
		return fmt.Errorf("%w: metrics_refresh_interval must be positive", ErrInvalidConfig)
	}

	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path is required for the sqlite store", ErrInvalidConfig)
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr is required for the redis store", ErrInvalidConfig)
		}
	case StorePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("%w: postgres_url is required for the postgres store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	return nil
}

// FrameInterval is the display tick period derived from FrameRate.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}
