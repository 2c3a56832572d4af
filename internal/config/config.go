// Package config loads and validates the kiosk client configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/campuskiosk/orderflow/internal/interpolation"
)

const (
	// DefaultPollInterval is the pause between payment status polls.
	DefaultPollInterval = 2500 * time.Millisecond

	// DefaultPollBudget is the total wall-clock time spent polling for a
	// terminal payment outcome before giving up with a timeout.
	DefaultPollBudget = 90 * time.Second

	DefaultLogLevel = "info"
)

// Config holds the kiosk client settings.
type Config struct {
	// APIBaseURL is the root of the ordering backend, e.g. "https://order.example.edu".
	APIBaseURL string `env_interpolation:"yes" toml:"api_base_url"`

	// StoragePath is the JSON document holding persisted wizard state.
	// Empty means in-memory storage (demo/kiosk-reset-on-boot mode).
	StoragePath string `env_interpolation:"yes" toml:"storage_path"`

	PollInterval Duration `toml:"poll_interval"`
	PollBudget   Duration `toml:"poll_budget"`

	LogLevel string `toml:"log_level"`
}

// Default returns a Config populated with default values. APIBaseURL has no
// default and must be supplied by the caller or the config file.
func Default() *Config {
	return &Config{
		PollInterval: FromDuration(DefaultPollInterval),
		PollBudget:   FromDuration(DefaultPollBudget),
		LogLevel:     DefaultLogLevel,
	}
}

// NewFromBytes parses TOML source into a Config, applying defaults for
// absent fields and expanding ${VAR} references in path and URL fields.
func NewFromBytes(source []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(source, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	if err := interpolation.InterpolateStruct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return cfg, nil
}

// NewConfig reads and parses the TOML config file at path.
func NewConfig(path string) (*Config, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return NewFromBytes(source)
}

// Validate checks the config for internal consistency.
func (c *Config) Validate() error {
	var errz []error

	if c.APIBaseURL == "" {
		errz = append(errz, ErrMissingAPIBaseURL)
	}
	if c.PollInterval.AsDuration() <= 0 {
		errz = append(errz, fmt.Errorf("%w: %s", ErrInvalidPollInterval, c.PollInterval))
	}
	if c.PollBudget.AsDuration() < c.PollInterval.AsDuration() {
		errz = append(errz, fmt.Errorf("%w: budget %s is shorter than interval %s",
			ErrInvalidPollBudget, c.PollBudget, c.PollInterval))
	}

	if len(errz) > 0 {
		return fmt.Errorf("%w: %w", ErrFailedToValidateConfig, errors.Join(errz...))
	}
	return nil
}

// MaxPollAttempts derives the bounded attempt count from the poll budget and
// interval: floor(budget / interval).
func (c *Config) MaxPollAttempts() int {
	return int(c.PollBudget.AsDuration() / c.PollInterval.AsDuration())
}
