package cliconfig

import (
	"fmt"
	"strings"
	"time"
)

// Config holds CLI configuration for joker.
type Config struct {
	RegistryPath string

	DialTimeout  time.Duration
	WriteTimeout time.Duration

	LogLevel  string
	LogFormat string
	NoColor   bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		RegistryPath: DefaultRegistryPath(),
		DialTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		LogLevel:     "warn",
		LogFormat:    "console",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.RegistryPath == "" {
		return fmt.Errorf("registry path is required (set --registry or JOKER_REGISTRY_PATH)")
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("dial timeout must not be negative")
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("write timeout must not be negative")
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
// "0" is accepted and disables the corresponding timeout.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
