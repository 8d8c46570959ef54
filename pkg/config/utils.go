package config

import (
	"fmt"
	"os"
	"path/filepath"

	"niri-workspaces/pkg/core"
)

const AppName = "niri-workspaces"

var configFileNames = []string{"config.json", "config.toml", "config.yaml", "config.yml"}

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeConfigDir, AppName), nil
}

// FindConfig locates and merges the configuration:
//  1. the provided path, if any (failure to load it is an error)
//  2. the first config.{json,toml,yaml,yml} in the default config directory
//  3. built-in defaults
func FindConfig(providedPath string, log core.Logger) (Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	if providedPath != "" {
		uc, err := LoadFile(providedPath, log)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		log.Info("Configuration loaded", "path", providedPath)
		return FromUser(uc, log), nil
	}

	dir, err := DefaultConfigDir()
	if err != nil {
		log.Warn("Failed to get user config directory, using defaults", "error", err.Error())
		return Default(log), nil
	}

	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		log.Debug("Checking possible config path", "path", path)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		uc, err := LoadFile(path, log)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		log.Info("Configuration loaded", "path", path)
		return FromUser(uc, log), nil
	}

	log.Info("No configuration file found, using defaults", "config_dir", dir)
	return Default(log), nil
}
