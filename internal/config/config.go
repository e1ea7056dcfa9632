// Package config reads server settings from the environment. A .env file in
// the working directory is loaded first when present; variables already set
// in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StoreSQLite   = "sqlite"
	StoreMongoDB  = "mongodb"
	StoreSupabase = "supabase"
)

type Config struct {
	Port        int
	Store       string
	DBPath      string
	MongoURI    string
	MongoDB     string
	SupabaseURL string
	SupabaseKey string

	JWTSecret     string
	TokenDuration time.Duration

	TelegramToken string
}

// Load reads the configuration, applying defaults and checking that the
// selected storage backend has what it needs.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Store:         getEnv("STORE", StoreSQLite),
		DBPath:        getEnv("DB_PATH", "./data/pocketbook.db"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "pocketbook"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	cfg.TokenDuration, err = time.ParseDuration(getEnv("TOKEN_DURATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_DURATION: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	case StoreMongoDB:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for mongodb")
		}
	case StoreSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY are required for supabase")
		}
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
