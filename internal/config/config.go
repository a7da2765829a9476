package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all runtime configuration, read from the environment
type Config struct {
	HTTPPort string

	MongoURI string
	MongoDB  string

	RedisAddr  string
	SessionTTL time.Duration

	// CatalogFile, when set, overrides the stored and built-in catalogs
	CatalogFile string
	CatalogName string

	JWTSecret    string
	HostUsername string
	HostPassword string

	LogLevel    string
	CORSOrigins string
}

// Load reads configuration from the environment, falling back to defaults
func Load() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "2h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}

	cfg := &Config{
		HTTPPort:     getEnv("PORT", "8080"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "wellcheck"),
		RedisAddr:    strings.TrimPrefix(getEnv("REDIS_URI", "localhost:6379"), "redis://"),
		SessionTTL:   ttl,
		CatalogFile:  os.Getenv("CATALOG_FILE"),
		CatalogName:  getEnv("CATALOG_NAME", "wellness-v1"),
		JWTSecret:    getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		HostUsername: getEnv("HOST_USERNAME", "admin"),
		HostPassword: getEnv("HOST_PASSWORD", "password123"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// NewLogger builds the production zap logger at the configured level
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
