package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "host=localhost user=postgres dbname=jobhunt")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestNew_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Service.Address)
	assert.Equal(t, "info", cfg.Service.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.Service.AllowedOrigins)
	assert.Equal(t, DatabasePostgres, cfg.Database.Type)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestNew_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("JOBHUNT_ADDRESS", ":9090")
	t.Setenv("JOBHUNT_ALLOWED_ORIGINS", "http://localhost:8501,https://jobhunt.example.com")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("DATABASE_URL", ":memory:")
	t.Setenv("GEMINI_TIMEOUT", "2s")
	t.Setenv("JWT_TTL", "1h")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Service.Address)
	assert.Equal(t, []string{"http://localhost:8501", "https://jobhunt.example.com"}, cfg.Service.AllowedOrigins)
	assert.Equal(t, DatabaseSQLite, cfg.Database.Type)
	assert.Equal(t, 2*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestNew_MissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "host=localhost")
	t.Setenv("JWT_SECRET", "")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Type: DatabaseSQLite, URL: ":memory:"},
			LLM:      LLMConfig{Timeout: time.Second},
			Auth:     AuthConfig{Secret: "x", TokenTTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown db type", mutate: func(c *Config) { c.Database.Type = "mysql" }, wantErr: "DATABASE_TYPE"},
		{name: "pgsql without dsn", mutate: func(c *Config) { c.Database.Type = DatabasePostgres; c.Database.URL = "" }, wantErr: "DATABASE_URL"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Database.URL = "" }, wantErr: "DATABASE_URL"},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTL = 0 }, wantErr: "JWT_TTL"},
		{name: "zero timeout", mutate: func(c *Config) { c.LLM.Timeout = 0 }, wantErr: "GEMINI_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
