package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	validSources    = []string{"sysfs", "procfs", "diskstats"}
	validLogLevels  = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}
	validLogFormats = []string{"json", "console"}
)

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	iostat := c.Monitoring.IOStat
	if iostat.Interval <= 0 {
		return fmt.Errorf("monitoring.iostat.interval must be > 0, got %v", iostat.Interval)
	}
	if !contains(validSources, iostat.Source) {
		return fmt.Errorf("monitoring.iostat.source must be one of %s, got %q",
			strings.Join(validSources, ", "), iostat.Source)
	}

	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path)
	}

	if c.Logs.Enabled {
		if !contains(validLogLevels, c.Logs.Level) {
			return fmt.Errorf("invalid log level: %s", c.Logs.Level)
		}
		if !contains(validLogFormats, c.Logs.Format) {
			return fmt.Errorf("invalid log format: %s", c.Logs.Format)
		}
	}

	if c.API.Auth.Enabled {
		if c.API.Auth.JWTSecret == "" {
			return errors.New("api.auth.jwt_secret is required when auth is enabled")
		}
		if c.API.Auth.Username == "" || c.API.Auth.Password == "" {
			return errors.New("api.auth.username and api.auth.password are required when auth is enabled")
		}
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
