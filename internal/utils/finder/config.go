package finder

import (
	"fmt"
	"os"
	"path/filepath"
)

// SearchPaths are tried in order when the requested file does not exist
var SearchPaths = []string{
	"conf/config.yaml",
	"/etc/iostatdo/config.yaml",
}

// FindConfigFile looks for a configuration file and returns its absolute
// path. When configPath is missing the SearchPaths are tried; if none
// exists and mustExist is false configPath is returned unchanged.
func FindConfigFile(configPath string, mustExist bool) (string, error) {
	candidates := append([]string{configPath}, SearchPaths...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			absPath, err := filepath.Abs(candidate)
			if err != nil {
				return "", fmt.Errorf("failed to get absolute path: %w", err)
			}
			return absPath, nil
		}
	}

	if mustExist {
		return "", fmt.Errorf("configuration file not found: %s", configPath)
	}
	return configPath, nil
}
