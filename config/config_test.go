package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "recipes.db", cfg.SQLitePath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://api.nal.usda.gov/fdc/v1", cfg.USDABaseURL)
	assert.Equal(t, 0.6, cfg.LLMTemperature)
	assert.Equal(t, 700, cfg.LLMMaxTokens)
	assert.Equal(t, 6, cfg.LookupWorkers)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.CacheEnabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_DB_DRIVER", "postgres")
	t.Setenv("APP_DB_POSTGRES_DSN", "host=localhost user=test dbname=test")
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("USDA_API_KEY", "test-key")
	t.Setenv("APP_LOOKUP_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "host=localhost user=test dbname=test", cfg.PostgresDSN)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "test-key", cfg.USDAAPIKey)
	assert.Equal(t, 4, cfg.LookupWorkers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DBDriver = "oracle" },
			wantErr: "unsupported db.driver",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.SQLitePath = "" },
			wantErr: "db.sqlite_path is required",
		},
		{
			name: "postgres without dsn",
			mutate: func(c *Config) {
				c.DBDriver = "postgres"
				c.PostgresDSN = ""
			},
			wantErr: "db.postgres_dsn is required",
		},
		{
			name:    "cache without redis",
			mutate:  func(c *Config) { c.CacheEnabled = true },
			wantErr: "redis.addr is required",
		},
		{
			name:    "bad temperature",
			mutate:  func(c *Config) { c.LLMTemperature = 3.5 },
			wantErr: "llm.temperature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DBDriver:       "sqlite",
				SQLitePath:     "recipes.db",
				ServerPort:     "8080",
				LLMTemperature: 0.6,
				LLMMaxTokens:   700,
				LookupWorkers:  6,
			}
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateClampsWorkers(t *testing.T) {
	cfg := &Config{
		DBDriver:       "sqlite",
		SQLitePath:     "recipes.db",
		ServerPort:     "8080",
		LLMTemperature: 0.6,
		LLMMaxTokens:   700,
		LookupWorkers:  32,
	}
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 8, cfg.LookupWorkers)

	cfg.LookupWorkers = 0
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 1, cfg.LookupWorkers)
}
