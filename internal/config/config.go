package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEnv       = "development"
	defaultDBPath    = "./dev.db"
	defaultPort      = "8080"
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env       string
	DBPath    string
	Port      string
	LogLevel  string
	LogFormat string

	// Warnings lists settings that were rejected and replaced by defaults.
	// They are reported once a logger exists.
	Warnings []string
}

// Load reads environment variables and returns a populated Config. A .env
// file in the working directory is applied first without overriding values
// already present in the environment.
func Load() Config {
	return loadFrom(".env")
}

func loadFrom(path string) Config {
	// A missing file is fine; production injects real environment.
	_ = godotenv.Load(path)

	cfg := Config{
		Env:       strings.ToLower(os.Getenv("APP_ENV")),
		DBPath:    os.Getenv("DB_PATH"),
		Port:      os.Getenv("PORT"),
		LogLevel:  strings.ToLower(os.Getenv("LOG_LEVEL")),
		LogFormat: strings.ToLower(os.Getenv("LOG_FORMAT")),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = defaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown LOG_LEVEL %q, using %s", cfg.LogLevel, defaultLogLevel))
		cfg.LogLevel = defaultLogLevel
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = defaultLogFormat
		if cfg.IsDev() {
			cfg.LogFormat = "console"
		}
	case "json", "console":
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown LOG_FORMAT %q, using %s", cfg.LogFormat, defaultLogFormat))
		cfg.LogFormat = defaultLogFormat
	}

	return cfg
}

// IsDev reports whether the application runs in development mode, where
// migrations are applied on startup.
func (c Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
