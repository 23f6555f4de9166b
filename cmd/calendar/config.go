package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	storageFile     = "file"
	storageMemory   = "memory"
	storageRedis    = "redis"
	storagePostgres = "postgres"
)

type config struct {
	Storage string `toml:"storage"`
	DataDir string `toml:"data_dir"`

	Redis struct {
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`

	Postgres struct {
		DSN string `toml:"dsn"`
	} `toml:"postgres"`
}

// loadConfig layers defaults, an optional config.toml and environment
// variables, in that order. A .env next to the binary is honored for the
// Redis and Postgres credentials.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	cfg.Storage = storageFile
	cfg.Redis.Host = "localhost"
	cfg.Redis.Port = "6379"

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("cannot resolve home directory: %w", err)
	}
	cfg.DataDir = filepath.Join(home, ".kanso-calendar")

	if confDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(confDir, "kanso-calendar", "config.toml")
		if raw, err := os.ReadFile(path); err == nil {
			if err := toml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("config file %s is invalid: %w", path, err)
			}
		}
	}

	if v := os.Getenv("CALENDAR_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("CALENDAR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = n
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}

	switch cfg.Storage {
	case storageFile, storageMemory, storageRedis, storagePostgres:
	default:
		return cfg, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	return cfg, nil
}
