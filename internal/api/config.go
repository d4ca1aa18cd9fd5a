package api

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds backend API client configuration.
type Config struct {
	// BaseURL is the root of the backend API, e.g.
	// "http://localhost:8000/api".
	BaseURL string

	// Timeout is the maximum duration for a single request. The backend
	// generates content with a model, so this is generous by default.
	Timeout time.Duration

	// Retry configures the bounded retry applied to question generation.
	Retry RetryConfig
}

// RetryConfig configures the bounded retry decorator.
type RetryConfig struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000/api",
		Timeout: 60 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			Backoff:     2 * time.Second,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("LERNIX_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("LERNIX_API_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}
	if n := os.Getenv("LERNIX_API_RETRIES"); n != "" {
		if i, err := strconv.Atoi(n); err == nil && i > 0 {
			cfg.Retry.MaxAttempts = i
		}
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid LERNIX_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid LERNIX_API_URL: scheme must be http or https, got %q", u.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1")
	}
	return nil
}
