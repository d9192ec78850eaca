package cliconfig

import "fmt"

// Resolve layers the config file and JOKER_* environment onto cfg, which
// already holds defaults and flag values, then validates the result.
// Precedence: defaults < file < env < explicitly set flags.
//
// A missing file at the default path is fine; a missing file passed with
// --config is an error.
func Resolve(cfg *Config, cfgPath string, changed map[string]bool) error {
	explicit := cfgPath != ""
	if !explicit {
		cfgPath = DefaultConfigPath()
	}

	if cfgPath != "" && (explicit || FileExists(cfgPath)) {
		fc, err := LoadFileConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	return cfg.Validate()
}
