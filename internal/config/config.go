package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the client core.
type Config struct {
	AppName     string
	Environment string
	Backend     BackendConfig
	Storage     StorageConfig
	Routes      RoutesConfig
	Logger      LoggerConfig
}

type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type StorageConfig struct {
	Path string
}

type RoutesConfig struct {
	LoginPath     string
	DashboardPath string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the core can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "clientcore"),
		Environment: getString("APP_ENV", "development"),
		Backend: BackendConfig{
			BaseURL:        getString("BACKEND_URL", "http://localhost:8080"),
			RequestTimeout: getDuration("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
		},
		Storage: StorageConfig{
			Path: getString("STORAGE_PATH", "./data/client.db"),
		},
		Routes: RoutesConfig{
			LoginPath:     getString("LOGIN_PATH", "/login"),
			DashboardPath: getString("DASHBOARD_PATH", "/dashboard"),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
