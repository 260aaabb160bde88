package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"loxharness/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/loxharness"
	projectConfigDir = ".loxharness"
	configFileName   = "config.yaml"
)

// LoadConfig loads the harness configuration by layering default, user and
// project settings, then the explicit file if one is given.
func LoadConfig(explicitPath string) (HarnessConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User-specific configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else {
		config, err = mergeOptionalFile(config, userConfigPath)
		if err != nil {
			return HarnessConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
	}

	// 3. Project-specific configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else {
		config, err = mergeOptionalFile(config, projectConfigPath)
		if err != nil {
			return HarnessConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
	}

	// 4. Explicit configuration file must exist
	if explicitPath != "" {
		explicitConfig, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return HarnessConfig{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, explicitConfig)
	}

	return config, nil
}

func mergeOptionalFile(base HarnessConfig, path string) (HarnessConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return HarnessConfig{}, err
	}
	logging.Debug("Config", "Merged configuration from %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a HarnessConfig from a YAML file.
func loadConfigFromFile(filePath string) (HarnessConfig, error) {
	var config HarnessConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return HarnessConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return HarnessConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Only fields set
// in overlay take effect.
func mergeConfigs(base, overlay HarnessConfig) HarnessConfig {
	merged := base

	if overlay.Interpreter.Path != "" {
		merged.Interpreter.Path = overlay.Interpreter.Path
	}
	if overlay.Interpreter.Timeout != 0 {
		merged.Interpreter.Timeout = overlay.Interpreter.Timeout
	}

	if overlay.Scripts.Dir != "" {
		merged.Scripts.Dir = overlay.Scripts.Dir
	}
	if overlay.Scripts.Sort != nil {
		merged.Scripts.Sort = overlay.Scripts.Sort
	}

	if overlay.Suite.Expectations != "" {
		merged.Suite.Expectations = overlay.Suite.Expectations
	}

	if overlay.Report.Format != "" {
		merged.Report.Format = overlay.Report.Format
	}
	if overlay.Report.Dir != "" {
		merged.Report.Dir = overlay.Report.Dir
	}

	if overlay.FailOnAnyFailure != nil {
		merged.FailOnAnyFailure = overlay.FailOnAnyFailure
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
