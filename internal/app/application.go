package app

import (
	"IOStatDO/internal/pkg/config"
	"IOStatDO/internal/pkg/logger"
	"fmt"
)

// Application holds the loaded configuration of the running service
type Application struct {
	configPath string
	config     *config.Config
	isRunning  bool
}

// New creates a new application instance
func New(configPath string) *Application {
	return &Application{
		configPath: configPath,
	}
}

// Initialize loads configuration and initializes the logger
func (a *Application) Initialize() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.config = cfg

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application initialized successfully",
		logger.String("config", a.configPath),
		logger.String("iostat_source", cfg.Monitoring.IOStat.Source),
		logger.Float64("iostat_interval", cfg.Monitoring.IOStat.Interval))
	a.isRunning = true
	return nil
}

// GetConfig returns the application configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// GetConfigPath returns the path to the configuration file
func (a *Application) GetConfigPath() string {
	return a.configPath
}

// IsRunning reports whether Initialize succeeded and Shutdown has not run
func (a *Application) IsRunning() bool {
	return a.isRunning
}

// Shutdown flushes logs and marks the application stopped
func (a *Application) Shutdown() {
	logger.Info("Shutting down application...")

	if err := logger.Sync(); err != nil {
		fmt.Printf("Error flushing logs: %v\n", err)
	}

	a.isRunning = false
}
