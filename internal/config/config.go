// Package config reads server settings from the environment, an optional
// .env file and command-line flags. Flags win over the environment.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Addr         string
	StoreDriver  string
	Postgres     PostgresConfig
	RedisURL     string
	AllowOrigins []string

	Twilio TwilioConfig

	DefaultCountryCode string
	CurrencySymbol     string
	NotifyInterval     time.Duration
	RetentionPeriod    time.Duration
	AppURL             string
	LogLevel           slog.Level
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

// ConnString returns a lib/pq connection URL.
func (c PostgresConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.DB)
}

type TwilioConfig struct {
	AccountSID        string
	AuthToken         string
	WhatsAppNumber    string
	WebhookURL        string
	ValidateSignature bool
}

// Load reads a .env file when present, then parses args (without the
// program name) on top of the environment.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("turfvote", flag.ContinueOnError)

	var cfg Config
	var origins, logLevel string
	var notifyInterval, retention time.Duration

	fs.StringVar(&cfg.Addr, "addr", getenv("ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&cfg.StoreDriver, "store", getenv("STORE_DRIVER", DriverMemory), "Storage driver: memory, postgres or redis")
	fs.StringVar(&cfg.Postgres.Host, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	fs.StringVar(&cfg.Postgres.Port, "db-port", getenv("POSTGRES_PORT", "5432"), "Database port")
	fs.StringVar(&cfg.Postgres.User, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	fs.StringVar(&cfg.Postgres.Password, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	fs.StringVar(&cfg.Postgres.DB, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	fs.StringVar(&cfg.RedisURL, "redis-url", getenv("REDIS_URL", "redis://localhost:6379/0"), "Redis URL")
	fs.StringVar(&origins, "cors-origins", getenv("CORS_ALLOWED_ORIGINS", "*"), "Comma separated allowed origins")

	fs.StringVar(&cfg.Twilio.AccountSID, "twilio-sid", os.Getenv("TWILIO_ACCOUNT_SID"), "Twilio account SID")
	fs.StringVar(&cfg.Twilio.AuthToken, "twilio-token", os.Getenv("TWILIO_AUTH_TOKEN"), "Twilio auth token")
	fs.StringVar(&cfg.Twilio.WhatsAppNumber, "twilio-from", os.Getenv("TWILIO_WHATSAPP_NUMBER"), "WhatsApp sender number")
	fs.StringVar(&cfg.Twilio.WebhookURL, "twilio-webhook-url", os.Getenv("TWILIO_WEBHOOK_URL"), "Public webhook URL used for signature checks")
	fs.BoolVar(&cfg.Twilio.ValidateSignature, "twilio-validate", getbool("TWILIO_VALIDATE_SIGNATURE", false), "Reject webhook calls with a bad signature")

	fs.StringVar(&cfg.DefaultCountryCode, "country-code", getenv("DEFAULT_COUNTRY_CODE", "+61"), "Country code for local phone numbers")
	fs.StringVar(&cfg.CurrencySymbol, "currency", getenv("CURRENCY_SYMBOL", "$"), "Currency symbol in messages")
	fs.DurationVar(&notifyInterval, "notify-interval", getduration("NOTIFY_INTERVAL", 100*time.Millisecond), "Pause between outgoing messages")
	fs.DurationVar(&retention, "retention", getduration("RETENTION_PERIOD", 7*24*time.Hour), "How long events are kept after their date")
	fs.StringVar(&cfg.AppURL, "app-url", os.Getenv("APP_URL"), "Public URL mentioned in help replies")
	fs.StringVar(&logLevel, "log-level", getenv("LOG_LEVEL", "info"), "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.NotifyInterval = notifyInterval
	cfg.RetentionPeriod = retention
	cfg.AllowOrigins = splitList(origins)
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverRedis:
	case DriverPostgres:
		if cfg.Postgres.Host == "" || cfg.Postgres.DB == "" {
			return nil, fmt.Errorf("postgres store requires POSTGRES_HOST and POSTGRES_DB")
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.Twilio.ValidateSignature && (cfg.Twilio.AuthToken == "" || cfg.Twilio.WebhookURL == "") {
		return nil, fmt.Errorf("signature validation requires TWILIO_AUTH_TOKEN and TWILIO_WEBHOOK_URL")
	}
	if cfg.NotifyInterval < 0 || cfg.RetentionPeriod <= 0 {
		return nil, fmt.Errorf("notify interval must be >= 0 and retention period > 0")
	}

	return &cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getduration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
