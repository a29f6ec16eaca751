// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// CacheConfig holds the per-domain Redis settings and entry TTLs.
// Every domain shares one Redis server but owns its own database, so
// evictions and key counts stay isolated per domain.
type CacheConfig struct {
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`

	CarsDB    int `env:"REDIS_DB_CARS" envDefault:"0"`
	FlightsDB int `env:"REDIS_DB_FLIGHTS" envDefault:"1"`
	HotelsDB  int `env:"REDIS_DB_HOTELS" envDefault:"2"`

	SearchTTL time.Duration `env:"CACHE_SEARCH_TTL" envDefault:"600s"`
	DetailTTL time.Duration `env:"CACHE_DETAIL_TTL" envDefault:"1800s"`
}

// DatabaseConfig holds the backing store settings.
// Driver "memory" runs the service against seeded in-process data.
type DatabaseConfig struct {
	Driver string `env:"REPOSITORY_DRIVER" envDefault:"mysql"`
	DSN    string `env:"DATABASE_DSN" envDefault:"tripdeck:tripdeck@tcp(localhost:3306)/tripdeck?parseTime=true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	if cfg.Cache.SearchTTL <= 0 {
		return fmt.Errorf("CACHE_SEARCH_TTL must be positive")
	}
	if cfg.Cache.DetailTTL <= 0 {
		return fmt.Errorf("CACHE_DETAIL_TTL must be positive")
	}

	// Each domain needs its own Redis database for namespace isolation.
	dbs := map[int]string{cfg.Cache.CarsDB: "REDIS_DB_CARS"}
	if other, ok := dbs[cfg.Cache.FlightsDB]; ok {
		return fmt.Errorf("REDIS_DB_FLIGHTS must differ from %s", other)
	}
	dbs[cfg.Cache.FlightsDB] = "REDIS_DB_FLIGHTS"
	if other, ok := dbs[cfg.Cache.HotelsDB]; ok {
		return fmt.Errorf("REDIS_DB_HOTELS must differ from %s", other)
	}

	validDrivers := map[string]bool{"mysql": true, "memory": true}
	if !validDrivers[cfg.Database.Driver] {
		return fmt.Errorf("REPOSITORY_DRIVER must be one of: mysql, memory; got %q", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "mysql" && cfg.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required when REPOSITORY_DRIVER is mysql")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
