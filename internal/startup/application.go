package startup

import (
	"IOStatDO/internal/app"
	"IOStatDO/internal/pkg/config"
	"IOStatDO/internal/pkg/logger"
	"IOStatDO/internal/utils/finder"
	"os"
)

// InitializeApplication initializes the application with the given config
// path and exits the process on failure
func InitializeApplication(configPath string) *app.Application {
	foundConfigPath, err := finder.FindConfigFile(configPath, true)
	if err != nil {
		logger.Error("Failed to find configuration", logger.Err(err))
		os.Exit(1)
	}

	logger.Info("Using configuration file", logger.String("path", foundConfigPath))

	application := app.New(foundConfigPath)
	if err := application.Initialize(); err != nil {
		logger.Error("Failed to initialize application", logger.Err(err))
		os.Exit(1)
	}

	return application
}

// LoadConfigOrDefault returns the configuration at configPath, or the
// defaults when the file does not exist
func LoadConfigOrDefault(configPath string) (*config.Config, error) {
	found, err := finder.FindConfigFile(configPath, false)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(found); os.IsNotExist(err) {
		return config.GetDefaultConfig(), nil
	}
	return config.LoadConfig(found)
}

// SetupDefaultLogger initializes a default logger for early startup
func SetupDefaultLogger() {
	cfg := config.GetDefaultConfig()
	// Nothing is written to disk before the real configuration is known
	cfg.Logs.FilePath = ""
	cfg.Logs.Format = "console"
	if err := logger.InitWithStdout(cfg, os.Stderr); err != nil {
		panic("Error initializing logger: " + err.Error())
	}
}
