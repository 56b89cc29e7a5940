package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment      string
	LogLevel         slog.Level
	RedisURL         string
	DataDir          string
	GameLanguage     string
	AutoPlayInterval time.Duration
}

func Load() *Config {
	return &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		LogLevel:         parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:         getEnv("REDIS_URL", "localhost:6379"),
		DataDir:          getEnv("DATA_DIR", "./data"),
		GameLanguage:     getEnv("GAME_LANGUAGE", "ko"),
		AutoPlayInterval: parseSeconds(getEnv("AUTOPLAY_INTERVAL", "3"), 3),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseSeconds(value string, fallback int) time.Duration {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
