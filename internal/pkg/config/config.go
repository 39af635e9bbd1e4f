package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration
type Config struct {
	AppName    string           `yaml:"app_name"`
	Server     ServerConfig     `yaml:"server"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logs       LogsConfig       `yaml:"logs"`
	API        API              `yaml:"api"`
}

// ServerConfig holds server related configuration
type ServerConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Port         int    `yaml:"port"`
	Host         string `yaml:"host"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	IdleTimeout  int    `yaml:"idle_timeout"`
}

// IOStatMonitoringConfig holds disk throughput monitoring configuration
type IOStatMonitoringConfig struct {
	Enabled bool `yaml:"enabled"`
	// Interval is the polling cadence in seconds.
	Interval float64 `yaml:"interval"`
	Source   string  `yaml:"source"`
	SysPath  string  `yaml:"sys_path"`
	ProcPath string  `yaml:"proc_path"`
}

// IntervalDuration converts the configured interval to a time.Duration.
func (c IOStatMonitoringConfig) IntervalDuration() time.Duration {
	return time.Duration(c.Interval * float64(time.Second))
}

// MonitoringConfig contains configuration for monitoring
type MonitoringConfig struct {
	IOStat IOStatMonitoringConfig `yaml:"iostat"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogsConfig holds logging configuration
type LogsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
	Format   string `yaml:"format"`
	Stdout   bool   `yaml:"stdout"`
}

// LoadConfig loads the configuration from the specified file path.
// Keys missing from the file keep their default values.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path
func SaveConfig(cfg *Config, filePath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		AppName: "IOStatDO",
		Server: ServerConfig{
			Enabled:      true,
			Port:         8080,
			Host:         "127.0.0.1",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  60,
		},
		Monitoring: MonitoringConfig{
			IOStat: IOStatMonitoringConfig{
				Enabled:  true,
				Interval: 1.0,
				Source:   "sysfs",
				SysPath:  "/sys",
				ProcPath: "/proc",
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Logs: LogsConfig{
			Enabled:  true,
			Level:    "info",
			FilePath: "logs",
			Format:   "json",
			Stdout:   true,
		},
		API: API{
			CORS: CORSConfig{
				Enabled:        false,
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "POST"},
			},
			Auth: AuthConfig{
				Enabled:       false,
				JWTExpiration: 86400,
			},
		},
	}
}
