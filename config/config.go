package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port            string
	Env             string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver       string // mongo, postgres, mysql, sqlite or memory
	MongoURI     string
	Database     string
	DSN          string
	PollInterval time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	SigningKey string
	Expiration time.Duration
	Issuer     string
}

type MailConfig struct {
	SendGridAPIKey  string
	From            string
	FromName        string
	AdminInbox      string
	SchedulingLink  string
	// RelayRecipients are the addresses the public mail endpoint may send to
	// besides AdminInbox.
	RelayRecipients []string
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Prefix string
}

type Config struct {
	ServiceName string
	Server      ServerConfig
	Store       StoreConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Mail        MailConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// Load reads .env when present and then the process environment.
func Load(serviceName string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	cfg := &Config{
		ServiceName: serviceName,
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Env:             getEnv("APP_ENV", "development"),
			AllowedOrigins:  []string{getEnv("CORS_ORIGIN", "*")},
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver:       getEnv("STORE_DRIVER", "mongo"),
			MongoURI:     getEnv("MONGOURI", ""),
			Database:     getEnv("DB", "realty"),
			DSN:          getEnv("DATABASE_DSN", ""),
			PollInterval: getEnvAsDuration("STORE_POLL_INTERVAL", 5*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADD", "localhost:6379"),
			Password: getEnv("REDIS_PASS", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("CACHE_TTL", 10*time.Minute),
		},
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_KEY", ""),
			Expiration: getEnvAsDuration("JWT_EXPIRATION", 12*time.Hour),
			Issuer:     getEnv("JWT_ISSUER", "realty_portal"),
		},
		Mail: MailConfig{
			SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
			From:            getEnv("MAIL_FROM", "admin@sudharealty.in"),
			FromName:        getEnv("MAIL_FROM_NAME", "Sudha Realty"),
			AdminInbox:      getEnv("ADMIN_INBOX", "admin@sudharealty.in"),
			SchedulingLink:  getEnv("SCHEDULING_LINK", "https://cal.com/jayendrat/property-consultation"),
			RelayRecipients: getEnvAsList("MAIL_RELAY_RECIPIENTS"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "realty"),
		},
	}

	if cfg.JWT.SigningKey == "" {
		if cfg.Server.Env == "production" {
			return nil, fmt.Errorf("JWT_KEY not set in environment")
		}
		cfg.JWT.SigningKey = "development-signing-key"
	}
	return cfg, nil
}

func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("store_driver", c.Store.Driver),
		zap.String("database", c.Store.Database),
		zap.Bool("redis_enabled", c.Redis.Enabled),
		zap.Bool("mail_configured", c.Mail.SendGridAPIKey != ""),
		zap.String("port", c.Server.Port),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
