package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	AppName    string
	AppVersion string

	Server struct {
		Host         string
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}

	Database struct {
		Path string
	}

	JWT struct {
		Secret     string
		Expiration time.Duration
	}

	OpenAI struct {
		APIKey string
		Model  string
	}

	Redis struct {
		// URL enables the Redis-backed rate limit store when set;
		// empty keeps the in-memory store.
		URL string
	}

	CORS struct {
		AllowedOrigins []string
	}

	LogLevel string
}

// Load reads configuration from environment variables, applying
// defaults for anything unset.
func Load() *Config {
	cfg := &Config{}

	cfg.AppName = getEnv("APP_NAME", "MuhsinAI")
	cfg.AppVersion = getEnv("APP_VERSION", "1.0.0")

	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = getEnv("SERVER_PORT", "8000")
	cfg.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", "10s")
	cfg.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", "30s")
	cfg.Server.IdleTimeout = getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s")

	cfg.Database.Path = getEnv("DATABASE_PATH", "./data/muhsinai.db")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "dev-secret-change-me")
	cfg.JWT.Expiration = getEnvAsDuration("JWT_EXPIRATION", "30m")

	cfg.OpenAI.APIKey = getEnv("OPENAI_API_KEY", "")
	cfg.OpenAI.Model = getEnv("OPENAI_MODEL", "gpt-3.5-turbo")

	cfg.Redis.URL = getEnv("REDIS_URL", "")

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, trimmed)
		}
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	val := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(val)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsInt(key string, defaultValue int) int {
	val := getEnv(key, strconv.Itoa(defaultValue))
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}
