package client

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Defaults applied when the environment sets nothing.
const (
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	DefaultTimeout = 10 * time.Second
)

// Config is everything the client needs to reach the registry API.
type Config struct {
	// BaseURL includes the /api prefix.
	BaseURL string
	// Timeout bounds each attempt, not the whole retried call.
	Timeout time.Duration
	// RetryMax is the number of retries after the first attempt for
	// idempotent requests. Zero disables retries.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultConfig returns the configuration a local server expects.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultTimeout,
		RetryMax:     2,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: time.Second,
	}
}

// ConfigFromEnv reads DISTCTL_BASE_URL and DISTCTL_TIMEOUT over the defaults.
func ConfigFromEnv() (Config, error) {
	return configFrom(os.Getenv)
}

func configFrom(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if v := strings.TrimSpace(getenv("DISTCTL_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(getenv("DISTCTL_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("DISTCTL_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("DISTCTL_TIMEOUT must be positive, got %s", d)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
