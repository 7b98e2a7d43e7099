package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studybuddy/internal/llm"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DBPath            string
	Addr              string
	JWTSecret         string
	TokenTTL          time.Duration
	CORSOrigins       []string
	LogLevel          slog.Level
	PlanRetention     int
	RetentionSchedule string
	MaxInFlight       int
	LLM               llm.LLMConfig
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables with defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:            getEnv("STUDYBUDDY_DB", defaultDBPath()),
		Addr:              getEnv("STUDYBUDDY_ADDR", ":5000"),
		JWTSecret:         os.Getenv("STUDYBUDDY_JWT_SECRET"),
		CORSOrigins:       splitList(getEnv("STUDYBUDDY_CORS_ORIGINS", "http://localhost:3000")),
		RetentionSchedule: getEnv("STUDYBUDDY_RETENTION_SCHEDULE", "@daily"),
		LLM:               llm.LoadConfig(),
	}

	var err error
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("STUDYBUDDY_TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("STUDYBUDDY_TOKEN_TTL: %w", err)
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(getEnv("STUDYBUDDY_LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("STUDYBUDDY_LOG_LEVEL: %w", err)
	}
	if cfg.PlanRetention, err = getEnvInt("STUDYBUDDY_PLAN_RETENTION", 0); err != nil {
		return nil, err
	}
	if cfg.MaxInFlight, err = getEnvInt("STUDYBUDDY_MAX_INFLIGHT_GENERATIONS", 0); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "studybuddy.db"
	}
	return filepath.Join(home, ".studybuddy", "studybuddy.db")
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
