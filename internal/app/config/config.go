// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`

	// DatabaseURL is a postgres DSN. When empty the server falls back to a
	// local SQLite file, which is only intended for development.
	DatabaseURL   string `envconfig:"DATABASE_URL" default:""`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"recipe.db"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	// RedisAddr enables the Redis session store and the recipe list cache.
	// The server runs without either when it is empty.
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	// MediaDir is where the local image store writes uploads. When S3Bucket
	// is set the S3 store is used instead.
	MediaDir    string `envconfig:"MEDIA_DIR" default:"media"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:""`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT" default:""`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" default:""`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" default:""`

	// Rate limit applied to registration and login.
	AuthRatePerMinute int `envconfig:"AUTH_RATE_PER_MINUTE" default:"10"`
	AuthRateBurst     int `envconfig:"AUTH_RATE_BURST" default:"10"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &cfg, nil
}
