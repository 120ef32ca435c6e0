package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigName is the config file looked up in the working directory.
const ProjectConfigName = ".waitfile.yaml"

// UserConfigDir returns the per-user configuration directory.
func UserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "waitfile"), nil
}

// UserConfigPath returns the per-user configuration file path.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
