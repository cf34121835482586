package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Server
	Port     string
	LogLevel string // debug, info, warn, error

	// API keys. Either may be absent; the corresponding endpoint then
	// reports the missing credential per request instead of failing startup.
	AnthropicKey string

	// Open-model host (any OpenAI-compatible inference server).
	OpenModelBaseURL string
	OpenModelKey     string

	// Agent config
	MaxSteps int
	Timeout  time.Duration
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() *Config {
	godotenv.Load() // Load .env file if present

	return &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		AnthropicKey:     os.Getenv("ANTHROPIC_API_KEY"),
		OpenModelBaseURL: os.Getenv("OPENMODEL_BASE_URL"),
		OpenModelKey:     os.Getenv("OPENMODEL_API_KEY"),
		MaxSteps:         getEnvIntOrDefault("AGENT_MAX_STEPS", 0),
		Timeout:          getEnvDurationOrDefault("AGENT_TIMEOUT", 2*time.Minute),
	}
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
