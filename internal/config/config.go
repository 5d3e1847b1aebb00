package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DatabasePostgres = "pgsql"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Service  ServiceConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Auth     AuthConfig
}

type ServiceConfig struct {
	Address        string   `envconfig:"JOBHUNT_ADDRESS" default:":8080"`
	LogLevel       string   `envconfig:"JOBHUNT_LOG_LEVEL" default:"info"`
	AllowedOrigins []string `envconfig:"JOBHUNT_ALLOWED_ORIGINS" default:"*"`
}

type DatabaseConfig struct {
	Type string `envconfig:"DATABASE_TYPE" default:"pgsql"`
	// URL is a libpq DSN for pgsql, or a file path (":memory:" allowed) for sqlite.
	URL string `envconfig:"DATABASE_URL" default:""`
}

type LLMConfig struct {
	APIKey  string        `envconfig:"GEMINI_API_KEY" default:""`
	Model   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	Timeout time.Duration `envconfig:"GEMINI_TIMEOUT" default:"5s"`
}

type AuthConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" default:""`
	TokenTTL time.Duration `envconfig:"JWT_TTL" default:"30m"`
}

// New reads the configuration from the environment and validates it.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Type {
	case DatabasePostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL must be set when DATABASE_TYPE is pgsql")
		}
	case DatabaseSQLite:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL must name a sqlite file or :memory:")
		}
	default:
		return fmt.Errorf("DATABASE_TYPE %q must be one of: pgsql, sqlite", c.Database.Type)
	}

	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be > 0")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("GEMINI_TIMEOUT must be > 0")
	}
	return nil
}
