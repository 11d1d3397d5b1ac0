// Package paths resolves the XDG locations unity-mcp reads from.
package paths

import (
	"os"
	"path/filepath"
)

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns the config directory ($XDG_CONFIG_HOME/unity-mcp).
func ConfigDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "unity-mcp")
	}
	return filepath.Join(homeDir(), ".config", "unity-mcp")
}

// ConfigFile returns the path to config.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}
