package main

// Config loading for the cardvault CLI.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir        = "data_dir"
	cfgKeyStoreImage     = "store_image_path"
	cfgKeyEldritchXML    = "eldritch_xml_path"
	cfgKeyLegacyArkham   = "legacy_arkham_paths"
	cfgKeyLegacyEldritch = "legacy_eldritch_paths"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# CardVault CLI configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Bundled migration inputs (optional)
# store_image_path:
# eldritch_xml_path:

# Extra candidate locations for legacy per-game databases
# legacy_arkham_paths: []
# legacy_eldritch_paths: []
`

// loadConfig reads config.yaml from the resolved config directory
// using Viper, creating the directory and a default file on first
// run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
