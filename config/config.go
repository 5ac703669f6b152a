// Package config provides configuration management for the OpenCami shell.
// It handles loading, saving, and watching application settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yllada/opencami-desktop/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
// The remote address is deliberately absent: it comes from the environment
// or the build.
type Config struct {
	// Theme sets the color scheme: "light", "dark", or "auto".
	Theme string `yaml:"theme"`
	// ShowNotifications enables desktop notifications.
	ShowNotifications bool `yaml:"show_notifications"`
	// StartHidden keeps the primary window hidden at startup.
	StartHidden bool `yaml:"start_hidden"`
	// Minimal runs without tray, secondary windows or hide-on-close.
	Minimal bool `yaml:"minimal"`
	// DeveloperTools enables the webview inspector.
	DeveloperTools bool `yaml:"developer_tools"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme:             common.ThemeAuto,
		ShowNotifications: true,
	}
}

// Path returns the configuration file location.
func Path() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.ConfigFileName), nil
}

// Load loads the configuration from the default location,
// writing the defaults there on first run.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, common.WrapError(err, common.ErrConfigLoad.Error())
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration stored at path.
func LoadFrom(path string) (*Config, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		return cfg, cfg.SaveTo(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := DefaultConfig()
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: parsing %s: %v", common.ErrConfigLoad, path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces invalid values with defaults.
func (c *Config) normalize() {
	switch c.Theme {
	case common.ThemeAuto, common.ThemeLight, common.ThemeDark:
	default:
		c.Theme = common.ThemeAuto
	}
}

// Save saves the configuration to the default location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return common.WrapError(err, common.ErrConfigSave.Error())
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}
	return nil
}
