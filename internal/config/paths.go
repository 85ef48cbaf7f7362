package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/clogfmt/config.yml
// - macOS: ~/Library/Application Support/clogfmt/config.yml
// - Windows: %APPDATA%\clogfmt\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "clogfmt"), nil
}

// ProjectConfigPath returns the default project-level config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ".clogfmt.yml"
}

// ProjectConfigPaths lists the project config names in lookup order.
func ProjectConfigPaths() []string {
	return []string{ProjectConfigPath(), ".clogfmt.yaml", ".clogfmt.json"}
}

// FindProjectConfig returns the first project config in the current
// directory, or "" when there is none.
func FindProjectConfig() string {
	for _, path := range ProjectConfigPaths() {
		if fileExists(path) {
			return path
		}
	}
	return ""
}
