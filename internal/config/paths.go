package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	userConfigDirName = ".andocheck"
	userConfigFile    = "config.yml"
	projectConfigFile = ".andocheck.yml"
)

// UserConfigDir returns the directory holding the global configuration (~/.andocheck).
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, userConfigDirName), nil
}

// UserConfigPath returns the path of the global configuration file.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, userConfigFile), nil
}

// ProjectConfigPath returns the project-level configuration file, relative to
// the working directory.
func ProjectConfigPath() string {
	return projectConfigFile
}
