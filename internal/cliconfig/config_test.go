package cliconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.DialTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, DefaultRegistryPath(), cfg.RegistryPath)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{RegistryPath: "/tmp/daemons.toml", LogFormat: "json"},
			wantErr: false,
		},
		{
			name:    "zero timeouts disable limits",
			config:  Config{RegistryPath: "/tmp/d.toml", LogFormat: "console"},
			wantErr: false,
		},
		{
			name:    "missing registry path",
			config:  Config{LogFormat: "console"},
			wantErr: true,
		},
		{
			name:    "negative dial timeout",
			config:  Config{RegistryPath: "/tmp/d.toml", LogFormat: "console", DialTimeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "negative write timeout",
			config:  Config{RegistryPath: "/tmp/d.toml", LogFormat: "console", WriteTimeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "unknown log format",
			config:  Config{RegistryPath: "/tmp/d.toml", LogFormat: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
