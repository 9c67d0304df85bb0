package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env holds process configuration for the API server.
type Env struct {
	Port string
	// Mode is "production" for gin release mode; anything else runs in debug mode.
	Mode           string
	ProjectDir     string
	AllowedOrigins []string
	LogLevel       string
	// SolveCacheTTL keeps API solve results for reuse; zero disables the cache.
	SolveCacheTTL time.Duration
}

// LoadEnv reads configuration from environment variables and an optional .env file.
func LoadEnv() *Env {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return &Env{
		Port:           getEnv("API_PORT", "8080"),
		Mode:           getEnv("API_ENV", "development"),
		ProjectDir:     getEnv("PROJECT_DIR", "./examples/projects"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		SolveCacheTTL:  getDuration("SOLVE_CACHE_TTL", 10*time.Minute),
	}
}

func (e *Env) Production() bool {
	return e.Mode == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
