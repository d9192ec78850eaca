package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (JOKER_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("registry", expandTilde(os.Getenv("JOKER_REGISTRY_PATH")), &cfg.RegistryPath)
	s.setString("log-level", os.Getenv("JOKER_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("JOKER_LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("dial-timeout", os.Getenv("JOKER_DIAL_TIMEOUT"), &cfg.DialTimeout); err != nil {
		return err
	}
	if err := s.setDuration("write-timeout", os.Getenv("JOKER_WRITE_TIMEOUT"), &cfg.WriteTimeout); err != nil {
		return err
	}

	s.setBoolFromString("no-color", os.Getenv("JOKER_NO_COLOR"), &cfg.NoColor)

	return nil
}
