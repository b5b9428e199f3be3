// Package config loads skyclock settings from a YAML file, a .env file and
// SKYCLOCK_* environment variables, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/skyclock"
)

// Environment names understood by the logger.
const (
	EnvLocal = "local"
	EnvDev   = "development"
	EnvProd  = "production"
)

// Config is the top-level configuration.
type Config struct {
	Env      string         `yaml:"env"`       // local, development, production
	LogLevel string         `yaml:"log_level"` // debug, info, warn, error
	Observer ObserverConfig `yaml:"observer"`
	Server   ServerConfig   `yaml:"server"`

	// Thresholds replaces the built-in sun event list when UseDefaults is
	// false, and extends it otherwise.
	Thresholds ThresholdConfig `yaml:"thresholds"`
}

// ObserverConfig is the default location used when a command is given none.
type ObserverConfig struct {
	skyclock.Coordinates `yaml:",inline"`

	// Timezone is an IANA name used to pick the calendar day and to print
	// local times. Empty means the system zone.
	Timezone string `yaml:"timezone"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr         string  `yaml:"addr"`
	ReadTimeout  string  `yaml:"read_timeout"`
	WriteTimeout string  `yaml:"write_timeout"`
	RateLimit    float64 `yaml:"rate_limit"` // requests per second, 0 disables
	Burst        int     `yaml:"burst"`
}

// ThresholdConfig configures the sun event table.
type ThresholdConfig struct {
	UseDefaults bool                 `yaml:"use_defaults"`
	Extra       []skyclock.Threshold `yaml:"extra"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Env:      EnvProd,
		LogLevel: "info",
		Observer: ObserverConfig{
			Coordinates: skyclock.Coordinates{Lat: 51.4779, Lon: -0.0015}, // Greenwich
			Timezone:    "UTC",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "5s",
			WriteTimeout: "10s",
			RateLimit:    20,
			Burst:        40,
		},
		Thresholds: ThresholdConfig{
			UseDefaults: true,
		},
	}
}

// Load reads path (a missing file yields the defaults), then applies a .env
// file from the working directory and SKYCLOCK_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// .env is optional; existing environment variables win over it.
	_ = godotenv.Load()

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes c to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies SKYCLOCK_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SKYCLOCK_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("SKYCLOCK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SKYCLOCK_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SKYCLOCK_TZ"); v != "" {
		c.Observer.Timezone = v
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"SKYCLOCK_LAT", &c.Observer.Lat},
		{"SKYCLOCK_LON", &c.Observer.Lon},
		{"SKYCLOCK_ELEVATION", &c.Observer.Elevation},
		{"SKYCLOCK_RATE_LIMIT", &c.Server.RateLimit},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.key, err)
		}
		*f.dst = parsed
	}
	return nil
}

// Validate checks the observer, server and threshold settings.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("invalid env: %q (valid: %s, %s, %s)", c.Env, EnvLocal, EnvDev, EnvProd)
	}

	if err := c.Observer.Validate(); err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %v", c.Server.RateLimit)
	}
	if _, err := time.ParseDuration(c.Server.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout %q: %w", c.Server.ReadTimeout, err)
	}
	if _, err := time.ParseDuration(c.Server.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write_timeout %q: %w", c.Server.WriteTimeout, err)
	}

	if _, err := c.Calculator(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

// Location resolves Observer.Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Observer.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Observer.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Observer.Timezone, err)
	}
	return loc, nil
}

// Calculator builds the sun event calculator described by Thresholds.
func (c *Config) Calculator() (*skyclock.Calculator, error) {
	var opts []skyclock.Option
	if !c.Thresholds.UseDefaults {
		opts = append(opts, skyclock.WithoutDefaults())
	}
	if len(c.Thresholds.Extra) > 0 {
		opts = append(opts, skyclock.WithThresholds(c.Thresholds.Extra...))
	}
	return skyclock.NewCalculator(opts...)
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
