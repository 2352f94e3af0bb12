package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "STORE_DRIVER", "DEFAULT_COUNTRY_CODE", "NOTIFY_INTERVAL", "RETENTION_PERIOD", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "TWILIO_VALIDATE_SIGNATURE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "+61", cfg.DefaultCountryCode)
	assert.Equal(t, 100*time.Millisecond, cfg.NotifyInterval)
	assert.Equal(t, 168*time.Hour, cfg.RetentionPeriod)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.False(t, cfg.Twilio.ValidateSignature)
}

func TestLoad_EnvironmentAndFlags(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "turfvote")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("NOTIFY_INTERVAL", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load([]string{"-addr", ":9090", "-country-code", "+44"})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "+44", cfg.DefaultCountryCode)
	assert.Equal(t, 250*time.Millisecond, cfg.NotifyInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "postgres://app:secret@db:5432/turfvote?sslmode=disable", cfg.Postgres.ConnString())
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown driver", []string{"-store", "sqlite"}},
		{"postgres without host", []string{"-store", "postgres"}},
		{"signature check without token", []string{"-twilio-validate"}},
		{"bad log level", []string{"-log-level", "loud"}},
		{"negative interval", []string{"-notify-interval", "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}
