// Package config loads process configuration from the environment (and a
// local .env file when present).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds everything main needs to wire the service together.
type Config struct {
	Port     int
	Env      string
	LogLevel string

	DatabaseURL    string
	DBMaxConns     int32
	CORSOrigins    []string
	JWTSecret      string
	ProfileCacheSz int
	ProfileTTL     time.Duration

	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration
	GeminiBaseURL string
}

// Load reads configuration with defaults. It never fails; call Validate for
// the settings the service cannot start without.
func Load() Config {
	return Config{
		Port:     getEnvInt("PORT", 8001),
		Env:      normalizeEnv(getEnv("APP_ENV", "development")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBMaxConns:     int32(getEnvInt("DB_MAX_CONNS", 10)),
		CORSOrigins:    splitAndTrim(getEnv("CORS_ORIGINS", "*")),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ProfileCacheSz: getEnvInt("PROFILE_CACHE_SIZE", 256),
		ProfileTTL:     getEnvDuration("PROFILE_CACHE_TTL", 30*time.Second),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		GeminiTimeout: getEnvDuration("GEMINI_TIMEOUT", 60*time.Second),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
	}
}

// Validate reports settings that are required to serve traffic.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

// IsDevelopment reports whether human-friendly console logging should be used.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// getEnvDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "development"
	}
}
