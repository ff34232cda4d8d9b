// Package config loads workspace connection settings from the
// environment. A .env file in the working directory is honored when
// present; real environment variables win over it.
//
// Supported authentication methods:
//  1. Personal access token (DATABRICKS_TOKEN)
//  2. OAuth M2M service principal (DATABRICKS_CLIENT_ID + _CLIENT_SECRET)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the polling protocol and LLM endpoint.
const (
	DefaultTimeout         = 300 * time.Second
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxRetries      = 3
	DefaultServingEndpoint = "databricks-dbrx-instruct"
)

// Config carries everything needed to talk to a workspace. It is built
// once at process start and injected into the components that need it —
// no ambient global state.
type Config struct {
	// Host is the workspace URL, e.g. https://my-workspace.cloud.databricks.com.
	Host string

	Token        string
	ClientID     string
	ClientSecret string

	Timeout         time.Duration
	PollInterval    time.Duration
	MaxRetries      int
	ServingEndpoint string
}

// Load reads configuration from the environment (and .env if present)
// and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:            os.Getenv("DATABRICKS_HOST"),
		Token:           os.Getenv("DATABRICKS_TOKEN"),
		ClientID:        os.Getenv("DATABRICKS_CLIENT_ID"),
		ClientSecret:    os.Getenv("DATABRICKS_CLIENT_SECRET"),
		Timeout:         envSeconds("DATABRICKS_TIMEOUT_SECONDS", DefaultTimeout),
		PollInterval:    envSeconds("DATABRICKS_POLL_INTERVAL_SECONDS", DefaultPollInterval),
		MaxRetries:      envInt("DATABRICKS_MAX_RETRIES", DefaultMaxRetries),
		ServingEndpoint: envDefault("DATABRICKS_SERVING_ENDPOINT_NAME", DefaultServingEndpoint),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("DATABRICKS_HOST is required (your workspace URL)")
	}
	if c.Token == "" && (c.ClientID == "" || c.ClientSecret == "") {
		return errors.New("set DATABRICKS_TOKEN, or both DATABRICKS_CLIENT_ID and DATABRICKS_CLIENT_SECRET")
	}
	if c.Timeout <= 0 || c.PollInterval <= 0 {
		return fmt.Errorf("timeout (%s) and poll interval (%s) must be positive", c.Timeout, c.PollInterval)
	}
	return nil
}

// UsesOAuth reports whether the OAuth M2M flow should be used instead of
// a personal access token.
func (c *Config) UsesOAuth() bool {
	return c.Token == "" && c.ClientID != ""
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
