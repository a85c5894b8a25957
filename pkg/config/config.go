// Package config holds client configuration for applications embedding the
// library (and for the CLI). Configuration can come from a YAML file or
// environment variables; environment variables always override YAML values.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/datawheel/olap-client-go/pkg/retry"
)

// Dialect names accepted by Config.
const (
	DialectTesseract = "tesseract"
	DialectMondrian  = "mondrian"
)

// Config holds the settings for one OLAP server connection.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Retry  RetryConfig  `yaml:"retry"`
}

// ServerConfig identifies the server and the defaults applied to queries.
type ServerConfig struct {
	// URL is the base URL of the OLAP server. Credentials embedded here are
	// never logged; see pkg/logging.
	URL string `yaml:"url" env:"OLAP_SERVER_URL"`

	// Dialect selects the URL convention: "tesseract" or "mondrian".
	Dialect string `yaml:"dialect" env:"OLAP_DIALECT" env-default:"tesseract"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"OLAP_TIMEOUT_SECONDS" env-default:"30"`

	// Locale is the default locale requested on queries, empty for none.
	Locale string `yaml:"locale" env:"OLAP_LOCALE" env-default:""`

	// Format is the default response format requested on queries.
	Format string `yaml:"format" env:"OLAP_FORMAT" env-default:"jsonrecords"`
}

// RetryConfig tunes the transport backoff policy.
type RetryConfig struct {
	MaxRetries     int `yaml:"max_retries" env:"OLAP_RETRY_MAX" env-default:"2"`
	InitialDelayMS int `yaml:"initial_delay_ms" env:"OLAP_RETRY_INITIAL_DELAY_MS" env-default:"250"`
	MaxDelayMS     int `yaml:"max_delay_ms" env:"OLAP_RETRY_MAX_DELAY_MS" env-default:"5000"`
}

// Load reads configuration from path (a YAML file) with environment
// variable overrides. When path is empty only the environment is read.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for usability.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server url is required (OLAP_SERVER_URL)")
	}
	switch c.Server.Dialect {
	case DialectTesseract, DialectMondrian:
	default:
		return fmt.Errorf("unknown dialect %q", c.Server.Dialect)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.Server.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// RetryPolicy converts the retry settings into a transport retry config.
func (c *Config) RetryPolicy() *retry.Config {
	policy := retry.DefaultConfig()
	policy.MaxRetries = c.Retry.MaxRetries
	policy.InitialDelay = time.Duration(c.Retry.InitialDelayMS) * time.Millisecond
	policy.MaxDelay = time.Duration(c.Retry.MaxDelayMS) * time.Millisecond
	return policy
}
