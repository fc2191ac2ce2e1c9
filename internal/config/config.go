package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars. Secrets are read
// once at startup and treated as immutable for the process lifetime.
type Config struct {
	Port           string
	DatabaseURL    string
	HashingSecret  string
	JWTSecret      string
	JWTTTL         time.Duration
	CORSOrigins    []string
	GlobalRateRPM  int
	AuthRatePer15m int
}

// Load reads configuration from the environment and validates it. Secret
// length checks happen here, once, so the token manager and hasher never see
// an unusable secret at request time.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HashingSecret: strings.TrimSpace(os.Getenv("HASHING_SECRET_KEY")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	hours := fallback(os.Getenv("JWT_TTL_HOURS"), "24")
	if ttlHours, err := strconv.Atoi(hours); err == nil && ttlHours > 0 {
		cfg.JWTTTL = time.Duration(ttlHours) * time.Hour
	} else {
		cfg.JWTTTL = 24 * time.Hour
	}

	cfg.GlobalRateRPM = intFallback(os.Getenv("RATE_LIMIT_GLOBAL_PER_MINUTE"), 100)
	cfg.AuthRatePer15m = intFallback(os.Getenv("RATE_LIMIT_AUTH_PER_15M"), 10)

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if len(cfg.HashingSecret) < 16 {
		return Config{}, errors.New("HASHING_SECRET_KEY must be at least 16 characters")
	}
	if len(cfg.JWTSecret) < 32 {
		return Config{}, errors.New("JWT_SECRET must be at least 32 characters of base64")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func intFallback(value string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return n
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
