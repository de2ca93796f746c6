package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Roadmap backend API
	API APIConfig

	// Session persistence
	Session SessionConfig

	// Observability
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
	Version     string
}

// APIConfig holds backend API settings.
type APIConfig struct {
	// Base URL of the roadmap backend
	BaseURL string

	// Request timeout
	RequestTimeout time.Duration
}

// SessionConfig holds durable session settings.
type SessionConfig struct {
	// Directory for the session state file
	StateDir string
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.App = loadAppConfig()
	cfg.API = loadAPIConfig()

	var err error
	cfg.Session, err = loadSessionConfig()
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	cfg.Observability = loadObservabilityConfig()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadAppConfig() AppConfig {
	env := Environment(getEnv("APP_ENV", "development"))

	return AppConfig{
		Name:        getEnv("APP_NAME", "roadmap-hub"),
		Environment: env,
		Debug:       getEnvBool("APP_DEBUG", false),
		Version:     getEnv("APP_VERSION", "0.1.0"),
	}
}

func loadAPIConfig() APIConfig {
	return APIConfig{
		BaseURL:        getEnv("ROADMAP_API_URL", "http://localhost:5000/api"),
		RequestTimeout: getEnvDuration("ROADMAP_API_TIMEOUT", 30*time.Second),
	}
}

func loadSessionConfig() (SessionConfig, error) {
	dir := getEnv("ROADMAP_STATE_DIR", "")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return SessionConfig{}, fmt.Errorf("resolve state dir: %w", err)
		}
		dir = filepath.Join(home, ".roadmap-hub")
	}
	return SessionConfig{StateDir: dir}, nil
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		errs = append(errs, "ROADMAP_API_URL must be a valid URL")
	}

	if c.API.RequestTimeout <= 0 {
		errs = append(errs, "ROADMAP_API_TIMEOUT must be positive")
	}

	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "LOG_LEVEL must be one of debug, info, warn, error")
	}

	switch c.Observability.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, "LOG_FORMAT must be json or text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
