package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	ApiServicePort     string
	PostgreSQLHost     string
	PostgreSQLPort     int64
	PostgreSQLUser     string
	PostgreSQLPassword string
	PostgreSQLDatabase string

	// Token secrets are kept separate so a leaked access secret cannot be
	// used to forge API tokens, and vice versa.
	AccessTokenSecret     string
	ApiTokenSecret        string
	AccessTokenExpiration int64
	ApiTokenExpiration    int64

	BcryptCost int64

	RedisHost       string
	RedisPort       int64
	RedisPassword   string
	RedisDB         int64
	RateLimitWindow int64
	RateLimitMax    int64
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),            // Default development
		LogLevel:           getLogLevel(),                               // Default INFO
		ApiServicePort:     getEnv("API_SERVICE_PORT", "8080"),          // Default 8080
		PostgreSQLHost:     getEnv("POSTGRESQL_HOST", "db"),             // Default db
		PostgreSQLPort:     getEnvAsInt64("POSTGRESQL_PORT", 5432),      // Default 5432
		PostgreSQLUser:     getEnv("POSTGRESQL_USER", "gadget_user"),    // Default user
		PostgreSQLPassword: getEnv("POSTGRESQL_PASSWORD", "gadget_pwd"), // Default password
		PostgreSQLDatabase: getEnv("POSTGRESQL_DATABASE", "gadget_db"),  // Default database name

		AccessTokenSecret:     getEnv("JWT_ACCESS_TOKEN_SECRET", "fallback-secret-key"),  // Default secret key
		ApiTokenSecret:        getEnv("JWT_API_TOKEN_SECRET", "fallback-refresh-secret"), // Default secret key
		AccessTokenExpiration: getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 3600),            // Default 1 hour
		ApiTokenExpiration:    getEnvAsInt64("API_TOKEN_EXPIRATION", 604800),             // Default 7 days

		BcryptCost: getEnvAsInt64("BCRYPT_COST", 12), // Default cost 12

		RedisHost:       getEnv("REDIS_HOST", "redis"),           // Default redis
		RedisPort:       getEnvAsInt64("REDIS_PORT", 6379),       // Default 6379
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),            // Default empty
		RedisDB:         getEnvAsInt64("REDIS_DATABASE", 0),      // Default 0
		RateLimitWindow: getEnvAsInt64("RATE_LIMIT_WINDOW", 900), // Default 15 minutes
		RateLimitMax:    getEnvAsInt64("RATE_LIMIT_MAX", 100),    // Default 100 requests/window
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
