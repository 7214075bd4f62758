// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

/*
Package config handles application-wide settings and environment parsing.

Values come from the process environment, optionally seeded from a local
.env file, and are mapped into a typed struct by 'caarlos0/env'. [Load]
validates everything eagerly so a misconfigured process never starts.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/campusfm/facility/internal/platform/constants"
	"github.com/campusfm/facility/internal/platform/sec"
)

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Session store backends.
const (
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the facility API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Token signing secret (HS256)
	JWTSecret string `env:"JWT_SECRET,required"`

	// PasswordHasher selects the credential digest ("sha256" or "bcrypt").
	PasswordHasher string `env:"PASSWORD_HASHER" envDefault:"sha256"`

	// SessionStore selects where refresh-token sessions live ("postgres" or "redis").
	SessionStore string `env:"SESSION_STORE" envDefault:"postgres"`

	// Key-Value store (Redis), required only for the redis session store
	RedisURL string `env:"REDIS_URL"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file, parses environment variables into a
// [Config] and validates the result.
func Load() (*Config, error) {

	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("config: failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field and format rules that env tags cannot express.
func (c *Config) Validate() error {
	var problems []error

	if err := validateDatabaseURL(c.DatabaseURL); err != nil {
		problems = append(problems, err)
	}

	if len(c.JWTSecret) < constants.MinSecretLength {
		problems = append(problems, fmt.Errorf("JWT_SECRET must be at least %d characters", constants.MinSecretLength))
	}

	switch c.Environment {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		problems = append(problems, fmt.Errorf("ENVIRONMENT must be one of development, test, production (got %q)", c.Environment))
	}

	switch c.PasswordHasher {
	case sec.HasherSHA256, sec.HasherBcrypt:
	default:
		problems = append(problems, fmt.Errorf("PASSWORD_HASHER must be sha256 or bcrypt (got %q)", c.PasswordHasher))
	}

	switch c.SessionStore {
	case SessionStorePostgres:
	case SessionStoreRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			problems = append(problems, errors.New("REDIS_URL is required when SESSION_STORE=redis"))
		}
	default:
		problems = append(problems, fmt.Errorf("SESSION_STORE must be postgres or redis (got %q)", c.SessionStore))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(problems...))
	}
	return nil
}

func validateDatabaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL must use the postgres:// scheme (got %q)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("DATABASE_URL must include a host")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// UsesRedis reports whether a Redis connection is needed.
func (c *Config) UsesRedis() bool {
	return c.SessionStore == SessionStoreRedis || c.RedisURL != ""
}

// Origins returns the CORS allow-list. Part of [middleware.AppConfig].
func (c *Config) Origins() []string {
	return c.AllowedOrigins
}
