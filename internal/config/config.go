package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config collects every environment-driven setting read at startup.
type Config struct {
	DatabaseURL string
	ServerAddr  string

	JWTSecret string
	TokenTTL  time.Duration

	// SeedDemoData enables the idempotent demo seeder at startup.
	SeedDemoData bool

	// Recommendation provider. An empty API key disables the provider and
	// every request falls back to the canned list.
	RecommenderAPIKey  string
	RecommenderBaseURL string
	RecommenderModel   string
	RecommenderTimeout time.Duration
}

const (
	defaultServerAddr         = ":8080"
	defaultTokenTTL           = 24 * time.Hour
	defaultRecommenderBaseURL = "https://api.openai.com/v1"
	defaultRecommenderModel   = "gpt-4o-mini"
	defaultRecommenderTimeout = 10 * time.Second
)

// Load reads configuration from the environment, after loading a local .env
// file when present.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		ServerAddr:         getEnv("SERVER_ADDR", defaultServerAddr),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           defaultTokenTTL,
		SeedDemoData:       os.Getenv("SEED_DEMO_DATA") == "true",
		RecommenderAPIKey:  os.Getenv("RECOMMENDER_API_KEY"),
		RecommenderBaseURL: getEnv("RECOMMENDER_BASE_URL", defaultRecommenderBaseURL),
		RecommenderModel:   getEnv("RECOMMENDER_MODEL", defaultRecommenderModel),
		RecommenderTimeout: defaultRecommenderTimeout,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = parsed
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
