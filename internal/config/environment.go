// Package config provides configuration loading for the namesmith API.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"

	"github.com/roguepikachu/namesmith/pkg/logger"
)

// Quota store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds environment configuration for the namesmith application.
type Config struct {
	Port string `env:"NAMESMITH_PORT" envDefault:"8080"`

	// Generation endpoint.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIURL    string `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	// OmitEmptyFilters drops unset filters from the prompt instead of sending blank labels.
	OmitEmptyFilters bool `env:"OMIT_EMPTY_FILTERS" envDefault:"false"`

	// Domain lookup endpoint.
	WhoisURL              string `env:"WHOIS_API_URL" envDefault:"https://whois.freeaiapi.xyz/check"`
	DomainCacheTTLSeconds int    `env:"DOMAIN_CACHE_TTL_SECONDS" envDefault:"0"`

	// Quota policy.
	MaxRequests  int    `env:"MAX_REQUESTS" envDefault:"10"`
	WindowHours  int    `env:"WINDOW_HOURS" envDefault:"24"`
	QuotaBackend string `env:"QUOTA_BACKEND" envDefault:"memory"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	PostgresURL      string `env:"POSTGRES_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"127.0.0.1"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"namesmith"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

// Conf holds the global configuration for the namesmith application.
var Conf Config

// Validate checks the quota policy and backend selection.
func (c Config) Validate() error {
	if c.MaxRequests < 1 {
		return fmt.Errorf("MAX_REQUESTS must be positive, got %d", c.MaxRequests)
	}
	if c.WindowHours < 1 {
		return fmt.Errorf("WINDOW_HOURS must be positive, got %d", c.WindowHours)
	}
	switch c.QuotaBackend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown QUOTA_BACKEND %q", c.QuotaBackend)
	}
	if c.DomainCacheTTLSeconds < 0 {
		return fmt.Errorf("DOMAIN_CACHE_TTL_SECONDS must not be negative")
	}
	return nil
}

// PostgresDSN returns POSTGRES_URL when set, otherwise a DSN built from the parts.
func (c Config) PostgresDSN() string {
	if c.PostgresURL != "" {
		return c.PostgresURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSLMode)
}

func loadDotEnv() error {
	// Does not override variables already in the environment.
	path := os.Getenv("DOTENV_PATHS")
	if path == "" {
		return nil
	}
	return godotenv.Load(strings.Split(path, ",")...)
}

// Load reads .env files listed in DOTENV_PATHS and parses the environment.
func Load() (Config, error) {
	var c Config
	if err := loadDotEnv(); err != nil {
		return c, fmt.Errorf("load dotenv: %w", err)
	}
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// InitConf initializes the global configuration, exiting on failure.
func InitConf() {
	c, err := Load()
	if err != nil {
		logger.Fatal(context.Background(), "config: %v", err)
	}
	Conf = c
}
