// Package config provides configuration management for shimloader using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/seabright/shimloader/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "shimloader"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// GamePath overrides game-install autodetection. Empty means search
	// the per-platform default locations.
	GamePath string `mapstructure:"game_path" yaml:"game_path"`

	// ModsPath overrides the mods directory. Empty means <game>/Mods.
	ModsPath string `mapstructure:"mods_path" yaml:"mods_path"`

	// DeveloperMode enables trace resolution logging and keeps rewritten
	// mod binaries on disk for inspection.
	DeveloperMode bool `mapstructure:"developer_mode" yaml:"developer_mode"`

	// CheckUpdates controls the startup update check.
	CheckUpdates bool `mapstructure:"check_updates" yaml:"check_updates"`

	// BackupSaves snapshots the saves directory before each launch.
	BackupSaves bool `mapstructure:"backup_saves" yaml:"backup_saves"`

	// SaveBackupCount is how many save backups to retain. Zero means the
	// built-in default.
	SaveBackupCount int `mapstructure:"save_backup_count" yaml:"save_backup_count"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Version:      1,
		CheckUpdates: true,
		BackupSaves:  true,
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support
	viper.SetEnvPrefix("SHIMLOADER")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("check_updates", true)
	viper.SetDefault("backup_saves", true)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// DefaultPath returns the default config file location.
// Returns: <ConfigHome>/shimloader/config.yaml
func DefaultPath() string {
	return filepath.Join(paths.LoaderConfigDir(), "config.yaml")
}
