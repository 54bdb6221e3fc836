package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost   string
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database configuration
	DBDriver    string // "sqlite" or "postgres"
	SQLitePath  string
	PostgresDSN string

	// Redis configuration (optional macro lookup cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheEnabled  bool
	CacheTTL      time.Duration

	// USDA FoodData Central configuration
	USDAAPIKey  string
	USDABaseURL string
	USDATimeout time.Duration

	// LLM configuration
	LLMAPIKey      string
	LLMAPIURL      string
	LLMModel       string
	LLMTemperature float64
	LLMMaxTokens   int
	LLMTimeout     time.Duration

	// Pipeline configuration
	LookupWorkers int

	LogLevel string
}

// Load reads configuration from .env and APP_-prefixed environment variables
func Load() (*Config, error) {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys that ship without the APP_ prefix in deployment environments
	_ = v.BindEnv("usda.api_key", "USDA_API_KEY")
	_ = v.BindEnv("llm.api_key", "GROQ_API_KEY")
	_ = v.BindEnv("llm.api_url", "GROQ_API_URL")

	cfg := &Config{
		ServerHost:     v.GetString("server.host"),
		ServerPort:     v.GetString("server.port"),
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		DBDriver:       v.GetString("db.driver"),
		SQLitePath:     v.GetString("db.sqlite_path"),
		PostgresDSN:    v.GetString("db.postgres_dsn"),
		RedisAddr:      v.GetString("redis.addr"),
		RedisPassword:  v.GetString("redis.password"),
		RedisDB:        v.GetInt("redis.db"),
		CacheEnabled:   v.GetBool("cache.enabled"),
		CacheTTL:       v.GetDuration("cache.ttl"),
		USDAAPIKey:     v.GetString("usda.api_key"),
		USDABaseURL:    v.GetString("usda.base_url"),
		USDATimeout:    v.GetDuration("usda.timeout"),
		LLMAPIKey:      v.GetString("llm.api_key"),
		LLMAPIURL:      v.GetString("llm.api_url"),
		LLMModel:       v.GetString("llm.model"),
		LLMTemperature: v.GetFloat64("llm.temperature"),
		LLMMaxTokens:   v.GetInt("llm.max_tokens"),
		LLMTimeout:     v.GetDuration("llm.timeout"),
		LookupWorkers:  v.GetInt("lookup.workers"),
		LogLevel:       v.GetString("log_level"),
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.sqlite_path", "recipes.db")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc/v1")
	v.SetDefault("usda.timeout", 20*time.Second)

	v.SetDefault("llm.api_url", "https://api.groq.com/openai/v1/chat/completions")
	v.SetDefault("llm.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.temperature", 0.6)
	v.SetDefault("llm.max_tokens", 700)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("lookup.workers", 6)

	v.SetDefault("log_level", "info")
}

// Validate checks that the configuration is usable
func Validate(cfg *Config) error {
	switch cfg.DBDriver {
	case "sqlite":
		if cfg.SQLitePath == "" {
			return fmt.Errorf("db.sqlite_path is required when db.driver is sqlite")
		}
	case "postgres":
		if cfg.PostgresDSN == "" {
			return fmt.Errorf("db.postgres_dsn is required when db.driver is postgres")
		}
	default:
		return fmt.Errorf("unsupported db.driver: %q", cfg.DBDriver)
	}

	if cfg.ServerPort == "" {
		return fmt.Errorf("server.port must not be empty")
	}

	if cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %v", cfg.LLMTemperature)
	}
	if cfg.LLMMaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", cfg.LLMMaxTokens)
	}

	// Keeps concurrent USDA calls polite
	if cfg.LookupWorkers < 1 {
		cfg.LookupWorkers = 1
	}
	if cfg.LookupWorkers > 8 {
		cfg.LookupWorkers = 8
	}

	if cfg.CacheEnabled && cfg.RedisAddr == "" {
		return fmt.Errorf("redis.addr is required when cache.enabled is true")
	}

	return nil
}
