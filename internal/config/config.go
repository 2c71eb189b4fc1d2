package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds server settings read from the environment
type Config struct {
	HTTPPort      string        `validate:"required,numeric"`
	StoreBackend  string        `validate:"oneof=redis sqlite memory"`
	RedisAddr     string        `validate:"required_if=StoreBackend redis"`
	SQLitePath    string        `validate:"required_if=StoreBackend sqlite"`
	AnswerTTL     time.Duration `validate:"min=0"`
	StoreTimeout  time.Duration `validate:"gt=0"`
	ContentSource string        `validate:"oneof=embedded mongo"`
	MongoURI      string        `validate:"required_if=ContentSource mongo"`
	MongoDB       string        `validate:"required_if=ContentSource mongo"`
	ContentVer    string        `validate:"required"`
	JWTSecret     string        `validate:"required"`
	LogLevel      string        `validate:"oneof=debug info warn error"`
	CORS          CORSConfig
}

// CORSConfig controls the CORS headers added to every response
type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

var validate = validator.New()

// Load reads the configuration from environment variables, applying defaults
func Load() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("ANSWER_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse ANSWER_TTL: %w", err)
	}

	storeTimeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("parse STORE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		HTTPPort:      getEnv("PORT", "8080"),
		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", "redis")),
		RedisAddr:     strings.TrimPrefix(getEnv("REDIS_URI", "redis:6379"), "redis://"),
		SQLitePath:    getEnv("SQLITE_PATH", "careertest.db"),
		AnswerTTL:     ttl,
		StoreTimeout:  storeTimeout,
		ContentSource: strings.ToLower(getEnv("CONTENT_SOURCE", "embedded")),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "careertest"),
		ContentVer:    getEnv("CONTENT_VERSION", "career-growth-v1"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
