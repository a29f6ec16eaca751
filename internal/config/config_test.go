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

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 0, cfg.Cache.CarsDB)
	assert.Equal(t, 1, cfg.Cache.FlightsDB)
	assert.Equal(t, 2, cfg.Cache.HotelsDB)
	assert.Equal(t, 600*time.Second, cfg.Cache.SearchTTL)
	assert.Equal(t, 1800*time.Second, cfg.Cache.DetailTTL)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REPOSITORY_DRIVER", "memory")
	t.Setenv("CACHE_SEARCH_TTL", "5m")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.SearchTTL)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.IsProduction())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "port out of range",
			env:     map[string]string{"SERVER_PORT": "70000"},
			wantErr: "SERVER_PORT",
		},
		{
			name:    "non-positive search TTL",
			env:     map[string]string{"CACHE_SEARCH_TTL": "0s"},
			wantErr: "CACHE_SEARCH_TTL",
		},
		{
			name:    "non-positive detail TTL",
			env:     map[string]string{"CACHE_DETAIL_TTL": "-5s"},
			wantErr: "CACHE_DETAIL_TTL",
		},
		{
			name: "redis databases must differ",
			env: map[string]string{
				"REDIS_DB_CARS":    "1",
				"REDIS_DB_FLIGHTS": "1",
			},
			wantErr: "REDIS_DB_FLIGHTS must differ",
		},
		{
			name: "hotels database collides with cars",
			env: map[string]string{
				"REDIS_DB_HOTELS": "0",
			},
			wantErr: "REDIS_DB_HOTELS must differ",
		},
		{
			name:    "unknown repository driver",
			env:     map[string]string{"REPOSITORY_DRIVER": "postgres"},
			wantErr: "REPOSITORY_DRIVER",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"LOG_FORMAT": "xml"},
			wantErr: "LOG_FORMAT",
		},
		{
			name:    "unknown environment",
			env:     map[string]string{"APP_ENV": "qa"},
			wantErr: "APP_ENV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMustLoadPanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "-1")

	assert.Panics(t, func() {
		MustLoad()
	})
}
