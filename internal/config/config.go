// Package config provides configuration for the client
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	API     APIConfig
	State   StateConfig
	Logging LoggingConfig
}

// APIConfig holds REST collaborator settings
type APIConfig struct {
	BaseURL string
	// Timeout of zero leaves requests without a deadline: an in-flight
	// request is allowed to complete or fail on its own.
	Timeout time.Duration
}

// StateConfig holds persisted session state settings
type StateConfig struct {
	Dir string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// API configuration
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api" // default backend
	}
	cfg.API.BaseURL = baseURL

	timeoutStr := os.Getenv("API_TIMEOUT")
	if timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}

	// State directory configuration
	stateDir := os.Getenv("STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".miniairbnb")
	}
	cfg.State.Dir = stateDir

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	return cfg, nil
}
