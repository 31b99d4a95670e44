package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultJWTTTL        = "24h"
	defaultStripeTimeout = "15s"
	defaultCurrency      = "usd"
	defaultLogLevel      = "info"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	StripeAPIKey  string
	StripeBaseURL string
	StripeTimeout time.Duration
	Currency      string

	LogLevel string
}

// Load reads configuration from the environment, with .env as a
// development convenience.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        strings.ToLower(getEnv("APP_ENV", "dev")),
		HTTPAddr:      getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		StripeAPIKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeBaseURL: os.Getenv("STRIPE_BASE_URL"),
		Currency:      strings.ToLower(getEnv("PAYMENT_CURRENCY", defaultCurrency)),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.StripeTimeout, err = parseDurationEnv("STRIPE_TIMEOUT", defaultStripeTimeout)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return d, nil
}
