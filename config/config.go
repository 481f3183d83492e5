package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the backend.
type Config struct {
	Port      string
	Env       string
	MongoURL  string
	MongoDB   string
	RedisURL  string
	JWTSecret string
	TokenTTL  time.Duration
	CartTTL   time.Duration
}

// Load reads configuration from the environment, optionally seeded from a
// .env file, and validates required fields.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		Env:       getEnv("APP_ENV", "development"),
		MongoURL:  getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "mock-ecom-cart"),
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  time.Hour * 24 * 7,
		CartTTL:   time.Hour * 24 * 7,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
