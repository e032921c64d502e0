// Package config resolves the connection configuration for the connector.
//
// Values come from an optional HCL file, with environment variables taking
// precedence, so a deployment can ship a checked-in config and still override
// credentials per environment. There is no process-wide singleton: the
// resolved Config is constructed once at startup and injected into whatever
// needs it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
)

const (
	defaultTimeoutSeconds = 30
	defaultMaxRetries     = 3
	defaultLogLevel       = "INFO"
)

// Config holds the resolved ServiceNow connection parameters.
type Config struct {
	// Instance is the ServiceNow instance URL, e.g.
	// https://dev12345.service-now.com
	Instance string `hcl:"instance,optional"`

	// Username for basic authentication. Required, but may arrive from the
	// environment rather than the file.
	Username string `hcl:"username,optional"`

	// Password for basic authentication. Kept out of logs.
	Password string `hcl:"password,optional"`

	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `hcl:"timeout_seconds,optional"`

	// MaxRetries caps transport-level retries of transient errors.
	MaxRetries int `hcl:"max_retries,optional"`

	// LogLevel is one of TRACE, DEBUG, INFO, WARN, ERROR.
	LogLevel string `hcl:"log_level,optional"`
}

// fileConfig is the wire shape of an HCL config file:
//
//	servicenow {
//	  instance = "https://dev12345.service-now.com"
//	  username = "asset.reader"
//	}
type fileConfig struct {
	ServiceNow *Config `hcl:"servicenow,block"`
}

// FromEnv builds a Config from the environment, loading a .env file first
// when one exists. When path is non-empty the HCL file at path supplies
// defaults that the environment overrides.
func FromEnv(path string) (*Config, error) {
	// A missing .env file is not an error; explicit environment still wins
	// inside godotenv, which never overwrites existing variables.
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		var parsed fileConfig
		if err := hclsimple.DecodeFile(path, nil, &parsed); err != nil {
			return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
		}
		if parsed.ServiceNow != nil {
			*cfg = *parsed.ServiceNow
		}
	}

	if v := os.Getenv("SERVICENOW_INSTANCE"); v != "" {
		cfg.Instance = v
	}
	if v := os.Getenv("SERVICENOW_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("SERVICENOW_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("SERVICENOW_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVICENOW_TIMEOUT %q: %w", v, err)
		}
		cfg.TimeoutSeconds = n
	}
	if v := os.Getenv("SERVICENOW_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVICENOW_MAX_RETRIES %q: %w", v, err)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ForTesting builds a validated Config without touching the environment.
func ForTesting(instance, username, password string) *Config {
	cfg := &Config{
		Instance: instance,
		Username: username,
		Password: password,
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

// Validate reports every missing required value at once; missing credentials
// are a fatal startup condition.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Instance == "" {
		result = multierror.Append(result, fmt.Errorf("SERVICENOW_INSTANCE is required"))
	}
	if c.Username == "" {
		result = multierror.Append(result, fmt.Errorf("SERVICENOW_USERNAME is required"))
	}
	if c.Password == "" {
		result = multierror.Append(result, fmt.Errorf("SERVICENOW_PASSWORD is required"))
	}
	if c.TimeoutSeconds < 1 {
		result = multierror.Append(result, fmt.Errorf("timeout must be at least 1 second"))
	}
	if c.MaxRetries < 0 {
		result = multierror.Append(result, fmt.Errorf("max retries cannot be negative"))
	}

	return result.ErrorOrNil()
}

// BaseURL returns the Table API base URL: the instance with any trailing
// slash stripped and the fixed API path appended.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.Instance, "/") + "/api/now"
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
