package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Rate store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	RateSource RateSourceConfig
	Scheduler  SchedulerConfig
	CORS       CORSConfig
	LogLevel   string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// StorageConfig selects where rate snapshots are cached.
type StorageConfig struct {
	RateStore string
	Redis     RedisConfig
}

// RedisConfig holds the connection settings used when RATE_STORE=redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateSourceConfig describes the external rate document.
type RateSourceConfig struct {
	URL        string
	Format     string
	PrimaryTab string
	LegacyTab  string

	// Timeout of zero leaves fetches unbounded except by the request context.
	Timeout time.Duration
}

// SchedulerConfig holds the optional rate warm-up schedule.
type SchedulerConfig struct {
	WarmupCron string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("RATE_SOURCE_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_SOURCE_TIMEOUT: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/import_cost.db"),
		},
		Storage: StorageConfig{
			RateStore: strings.ToLower(getEnv("RATE_STORE", StoreSQLite)),
			Redis: RedisConfig{
				Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       redisDB,
			},
		},
		RateSource: RateSourceConfig{
			URL:        getEnv("RATE_SOURCE_URL", "https://www.primbank.ru/"),
			Format:     strings.ToLower(getEnv("RATE_SOURCE_FORMAT", "html")),
			PrimaryTab: getEnv("RATE_SOURCE_PRIMARY_TAB", "online"),
			LegacyTab:  getEnv("RATE_SOURCE_LEGACY_TAB", "offices"),
			Timeout:    timeout,
		},
		Scheduler: SchedulerConfig{
			WarmupCron: os.Getenv("RATE_WARMUP_CRON"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	switch config.Storage.RateStore {
	case StoreSQLite, StoreRedis:
	default:
		return nil, fmt.Errorf("invalid RATE_STORE %q: must be %s or %s", config.Storage.RateStore, StoreSQLite, StoreRedis)
	}

	switch config.RateSource.Format {
	case "html", "json":
	default:
		return nil, fmt.Errorf("invalid RATE_SOURCE_FORMAT %q: must be html or json", config.RateSource.Format)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
