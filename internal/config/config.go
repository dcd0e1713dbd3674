package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at start-up.
type Config struct {
	Env      string
	LogLevel string
	Port     string

	DatabaseURL     string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	AccountCacheTTL time.Duration

	JWTSecret       string
	RateLimitMax    int
	RateLimitWindow time.Duration
	ShutdownTimeout time.Duration

	// OTelCollectorEndpoint enables OTLP metric export when set.
	OTelCollectorEndpoint string
	MetricsExportInterval time.Duration
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Env:      GetEnv("ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		Port:     GetEnv("PORT", "1234"),

		DatabaseURL:     DatabaseURL(),
		MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),

		RedisHost:       GetEnv("REDIS_HOST", "localhost"),
		RedisPort:       GetEnv("REDIS_PORT", "6379"),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		RedisDB:         GetIntEnv("REDIS_DB", 0),
		AccountCacheTTL: GetDurationEnv("ACCOUNT_CACHE_TTL", 10*time.Minute),

		JWTSecret:       GetEnv("AUTH_JWT_SECRET", ""),
		RateLimitMax:    GetIntEnv("RATE_LIMIT_MAX", 0),
		RateLimitWindow: GetDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		ShutdownTimeout: GetDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),

		OTelCollectorEndpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		MetricsExportInterval: GetDurationEnv("METRICS_EXPORT_INTERVAL", time.Minute),
	}
}

// DatabaseURL returns DATABASE_URL, or a DSN assembled from the DB_* variables.
func DatabaseURL() string {
	if url := GetEnv("DATABASE_URL", ""); url != "" {
		return url
	}
	return "host=" + GetEnv("DB_HOST", "localhost") +
		" user=" + GetEnv("DB_USER", "postgres") +
		" password=" + GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + GetEnv("DB_NAME", "moneytransfer") +
		" port=" + GetEnv("DB_PORT", "5432") +
		" sslmode=" + GetEnv("DB_SSLMODE", "disable")
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
		log.Printf("invalid %s=%q, using default: %d", key, val, defaultVal)
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using default: %s", key, val, defaultVal)
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
