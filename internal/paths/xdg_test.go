package paths

import (
	"path/filepath"
	"testing"
)

func TestConfigDirUsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/config-home")
	t.Setenv("HOME", "/tmp/home")

	got := ConfigDir()
	want := filepath.Join("/tmp/config-home", "unity-mcp")
	if got != want {
		t.Fatalf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDirFallsBackToHomeDotConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/tmp/home")

	got := ConfigDir()
	want := filepath.Join("/tmp/home", ".config", "unity-mcp")
	if got != want {
		t.Fatalf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigFileJoinsConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/config-home")

	got := ConfigFile()
	want := filepath.Join("/tmp/config-home", "unity-mcp", "config.toml")
	if got != want {
		t.Fatalf("ConfigFile() = %q, want %q", got, want)
	}
}
