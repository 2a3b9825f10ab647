// Package config provides XDG path helpers, TOML overrides and .env loading.
package config

import (
	"os"
	"path/filepath"
)

// AppName names the config and data directories.
const AppName = "memoriz"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), AppName, "config.toml")
}

// DefaultExportDir is where dataset exports land when no path is given.
func DefaultExportDir() string {
	return filepath.Join(XDGConfigHome(), AppName, "exports")
}
