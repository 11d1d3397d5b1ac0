package config

import "time"

// Config is the top-level unity-mcp configuration. Durations are TOML
// strings ("10s", "500ms") so the file reads the way flags do.
type Config struct {
	// GatewayPort serves the MCP SSE endpoint; the management API
	// (health, tool list) listens on GatewayPort+1 because the SSE
	// transport owns its listening socket exclusively.
	GatewayPort int `toml:"gateway_port"`

	// HostAddr is the editor-side bridge server the gateway dials.
	HostAddr string `toml:"host_addr"`

	// HostListenAddr is where the host simulator listens when the
	// binary runs in __hostsim mode.
	HostListenAddr string `toml:"host_listen_addr"`

	Debug bool `toml:"debug"`

	// RequestTimeout bounds connect, write and read on the bridge
	// socket individually.
	RequestTimeout string `toml:"request_timeout"`

	// RetryAttempts and RetryInterval shape the gateway's bounded
	// retry loop for transport failures.
	RetryAttempts int    `toml:"retry_attempts"`
	RetryInterval string `toml:"retry_interval"`

	// ExecTimeout is the host-side per-call execution deadline.
	ExecTimeout string `toml:"exec_timeout"`

	// TickInterval paces the host simulator's main loop.
	TickInterval string `toml:"tick_interval"`
}

// Default returns the built-in configuration: the ports and deadlines
// the editor plugin ships with.
func Default() *Config {
	return &Config{
		GatewayPort:    13000,
		HostAddr:       "localhost:12000",
		HostListenAddr: ":12000",
		RequestTimeout: "10s",
		RetryAttempts:  3,
		RetryInterval:  "1s",
		ExecTimeout:    "30s",
		TickInterval:   "16ms",
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// RequestTimeoutDuration returns the parsed request timeout.
func (c *Config) RequestTimeoutDuration() time.Duration {
	return parseDuration(c.RequestTimeout, 10*time.Second)
}

// RetryIntervalDuration returns the parsed retry pause.
func (c *Config) RetryIntervalDuration() time.Duration {
	return parseDuration(c.RetryInterval, time.Second)
}

// ExecTimeoutDuration returns the parsed per-call execution deadline.
func (c *Config) ExecTimeoutDuration() time.Duration {
	return parseDuration(c.ExecTimeout, 30*time.Second)
}

// TickIntervalDuration returns the parsed main-loop tick interval.
func (c *Config) TickIntervalDuration() time.Duration {
	return parseDuration(c.TickInterval, 16*time.Millisecond)
}
