package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error

	if cfg.GatewayPort < 1 || cfg.GatewayPort > 65534 {
		// +1 must also be a valid port for the management API.
		errs = append(errs, fmt.Errorf("gateway_port %d out of range (1-65534)", cfg.GatewayPort))
	}
	if _, _, err := net.SplitHostPort(cfg.HostAddr); err != nil {
		errs = append(errs, fmt.Errorf("host_addr %q is not host:port: %w", cfg.HostAddr, err))
	}
	if cfg.RetryAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry_attempts %d must be at least 1", cfg.RetryAttempts))
	}

	for _, field := range []struct {
		name, value string
	}{
		{"request_timeout", cfg.RequestTimeout},
		{"retry_interval", cfg.RetryInterval},
		{"exec_timeout", cfg.ExecTimeout},
		{"tick_interval", cfg.TickInterval},
	} {
		if field.value == "" {
			continue
		}
		d, err := time.ParseDuration(field.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: %w", field.name, field.value, err))
			continue
		}
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %q", field.name, field.value))
		}
	}

	return errors.Join(errs...)
}
