package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	SLA          SLAConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// MongoConfig holds the connection values for the marketing-site store.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// SLAConfig carries per-priority response/resolution hours.
type SLAConfig struct {
	P1ResponseHours   int
	P1ResolutionHours int
	P2ResponseHours   int
	P2ResolutionHours int
	P3ResponseHours   int
	P3ResolutionHours int
	P4ResponseHours   int
	P4ResolutionHours int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	defaults := domain.DefaultSLAPolicy()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "helpdesk-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: getEnv("MONGODB_DATABASE", "marketing"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		SLA: SLAConfig{
			P1ResponseHours:   getEnvAsInt("SLA_P1_RESPONSE_HOURS", defaults[domain.TicketPriorityP1].ResponseHours),
			P1ResolutionHours: getEnvAsInt("SLA_P1_RESOLUTION_HOURS", defaults[domain.TicketPriorityP1].ResolutionHours),
			P2ResponseHours:   getEnvAsInt("SLA_P2_RESPONSE_HOURS", defaults[domain.TicketPriorityP2].ResponseHours),
			P2ResolutionHours: getEnvAsInt("SLA_P2_RESOLUTION_HOURS", defaults[domain.TicketPriorityP2].ResolutionHours),
			P3ResponseHours:   getEnvAsInt("SLA_P3_RESPONSE_HOURS", defaults[domain.TicketPriorityP3].ResponseHours),
			P3ResolutionHours: getEnvAsInt("SLA_P3_RESOLUTION_HOURS", defaults[domain.TicketPriorityP3].ResolutionHours),
			P4ResponseHours:   getEnvAsInt("SLA_P4_RESPONSE_HOURS", defaults[domain.TicketPriorityP4].ResponseHours),
			P4ResolutionHours: getEnvAsInt("SLA_P4_RESOLUTION_HOURS", defaults[domain.TicketPriorityP4].ResolutionHours),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Policy materializes the SLA policy table from configuration.
func (s SLAConfig) Policy() domain.SLAPolicy {
	return domain.SLAPolicy{
		domain.TicketPriorityP1: {ResponseHours: s.P1ResponseHours, ResolutionHours: s.P1ResolutionHours},
		domain.TicketPriorityP2: {ResponseHours: s.P2ResponseHours, ResolutionHours: s.P2ResolutionHours},
		domain.TicketPriorityP3: {ResponseHours: s.P3ResponseHours, ResolutionHours: s.P3ResolutionHours},
		domain.TicketPriorityP4: {ResponseHours: s.P4ResponseHours, ResolutionHours: s.P4ResolutionHours},
	}
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
