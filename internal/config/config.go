package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lydakis/unity-mcp/internal/paths"
)

// Load reads the config file at the default path. A missing file is not
// an error: the defaults apply and flags may override them.
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom reads and parses a config file at the given path, filling
// unset fields from the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults restores zero-valued fields a partial file left unset.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.GatewayPort == 0 {
		cfg.GatewayPort = def.GatewayPort
	}
	if cfg.HostAddr == "" {
		cfg.HostAddr = def.HostAddr
	}
	if cfg.HostListenAddr == "" {
		cfg.HostListenAddr = def.HostListenAddr
	}
	if cfg.RequestTimeout == "" {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = def.RetryAttempts
	}
	if cfg.RetryInterval == "" {
		cfg.RetryInterval = def.RetryInterval
	}
	if cfg.ExecTimeout == "" {
		cfg.ExecTimeout = def.ExecTimeout
	}
	if cfg.TickInterval == "" {
		cfg.TickInterval = def.TickInterval
	}
}
