package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jansctx "jansctl/internal/context"
	"jansctl/pkg/logging"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// DefaultConfigPath returns ~/.config/jansctl.
func DefaultConfigPath() (string, error) {
	return jansctx.DefaultConfigDir()
}

// LoadConfig reads config.yaml from configPath over the defaults. A missing
// file yields the defaults.
func LoadConfig(configPath string) (Config, error) {
	cfg := Default()
	path := filepath.Join(configPath, configFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No config.yaml found at %s, using defaults", path)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("error reading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	logging.Debug("Config", "Loaded configuration from %s", path)
	return cfg, nil
}

// SaveConfig writes cfg to configPath/config.yaml with owner-only
// permissions, as it may hold the client secret.
func SaveConfig(configPath string, cfg Config) error {
	if err := os.MkdirAll(configPath, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(configPath, configFileName), data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
