package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the settings shared by both binaries. The gateway reads the
// Upstream block; the server reads Mongo and Redis.
type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=company_mgmt"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// UpstreamConfig names the backend base URL per route prefix. They all
// default to the single server binary; a split deployment overrides them
// individually.
type UpstreamConfig struct {
	Auth     string `env:"UPSTREAM_AUTH,     default=http://localhost:8080"`
	Users    string `env:"UPSTREAM_USERS,    default=http://localhost:8080"`
	Projects string `env:"UPSTREAM_PROJECTS, default=http://localhost:8080"`
	Catalog  string `env:"UPSTREAM_CATALOG,  default=http://localhost:8080"`
	Requests string `env:"UPSTREAM_REQUESTS, default=http://localhost:8080"`
	Messages string `env:"UPSTREAM_MESSAGES, default=http://localhost:8080"`
	Realtime string `env:"UPSTREAM_REALTIME, default=http://localhost:8080"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return &cfg, nil
}

// IsDevelopment reports whether the process runs outside production.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}
