package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr            string
	DatabaseURL     string
	Environment     string
	ActorHeader     string
	SeedFile        string
	RunMigrations   bool
	RunSeed         bool
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:            getEnv("APP_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		Environment:     getEnv("APP_ENV", "development"),
		ActorHeader:     getEnv("ACTOR_HEADER", "X-Actor-ID"),
		SeedFile:        getEnv("SEED_FILE", "seed/fixtures.yaml"),
		RunMigrations:   getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:         getEnvBool("RUN_SEED", true),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.ActorHeader) == "" {
		return fmt.Errorf("ACTOR_HEADER must not be blank")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.Environment == "production" && c.RunSeed && strings.TrimSpace(c.SeedFile) == "" {
		return fmt.Errorf("SEED_FILE must be set or RUN_SEED disabled in production")
	}
	return nil
}
