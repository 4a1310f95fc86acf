// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"account_backend/internal/platform/db"
	"account_backend/internal/platform/logging"
	"account_backend/internal/platform/redis"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	HTTPAddr        string
	GinMode         string
	ShutdownTimeout time.Duration

	DB    db.Config
	Redis redis.Config
	Log   logging.Config

	CacheTTL  time.Duration
	JWTSecret string
	RateLimit RateLimit
}

// RateLimit はクライアント単位のレート制限設定です。RPS が0以下の場合は無効です。
type RateLimit struct {
	RPS   float64
	Burst int
}

// Enabled reports whether rate limiting is configured.
func (r RateLimit) Enabled() bool { return r.RPS > 0 }

// AuthEnabled reports whether resource routes require a bearer token.
func (c Config) AuthEnabled() bool { return c.JWTSecret != "" }

// Load reads the configuration from the environment.
// .env files must already be loaded by the caller.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		GinMode:         os.Getenv("GIN_MODE"),
		ShutdownTimeout: 10 * time.Second,
		DB:              db.LoadConfigFromEnv(),
		Redis: redis.Config{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Log: logging.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", logging.FormatJSON),
		},
		CacheTTL:  5 * time.Minute,
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", cfg.CacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if cfg.RateLimit.RPS, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
	}
	cfg.RateLimit.Burst = int(cfg.RateLimit.RPS)
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if cfg.RateLimit.Burst, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
	}

	switch cfg.DB.Driver {
	case db.DriverSQLite, db.DriverPostgres, db.DriverMySQL:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, v)
	}
	return d, nil
}
