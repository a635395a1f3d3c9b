package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/planetgame/internal/services/fleet"
)

// Storage backends for the identity registry
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the server configuration, read from the environment
type Config struct {
	Host            string        `env:"PLANETGAME_HOST"`
	Port            int           `env:"PLANETGAME_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"PLANETGAME_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"PLANETGAME_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"PLANETGAME_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageType string        `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string        `env:"REDIS_URL"`
	IdentityTTL time.Duration `env:"PLANETGAME_IDENTITY_TTL"`

	MapWidth          int    `env:"PLANETGAME_MAP_WIDTH" envDefault:"10"`
	MapHeight         int    `env:"PLANETGAME_MAP_HEIGHT" envDefault:"10"`
	DeployPolicy      string `env:"PLANETGAME_DEPLOY_POLICY" envDefault:"positive"`
	MinPlayersToStart int    `env:"MIN_PLAYERS_TO_START" envDefault:"2"`

	// Requests per second per client IP; zero disables rate limiting
	RateLimit      float64  `env:"PLANETGAME_RATE_LIMIT" envDefault:"20"`
	RateBurst      int      `env:"PLANETGAME_RATE_BURST" envDefault:"40"`
	TrustProxy     bool     `env:"PLANETGAME_TRUST_PROXY"`
	AllowedOrigins []string `env:"PLANETGAME_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads an optional .env file and then parses the environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}

	if c.MapWidth <= 0 || c.MapHeight <= 0 {
		return fmt.Errorf("map size must be positive, got %dx%d", c.MapWidth, c.MapHeight)
	}
	if c.MinPlayersToStart < 1 {
		return fmt.Errorf("MIN_PLAYERS_TO_START must be at least 1, got %d", c.MinPlayersToStart)
	}
	if _, err := fleet.ParseDeployPolicy(c.DeployPolicy); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Policy returns the parsed deploy policy
func (c Config) Policy() fleet.DeployPolicy {
	policy, err := fleet.ParseDeployPolicy(c.DeployPolicy)
	if err != nil {
		return fleet.DefaultPolicy
	}
	return policy
}

// SlogLevel returns the log level as a slog.Level
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}
