package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/file4you/f4y"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	File4You File4YouConfig `mapstructure:"file4you"`
}

// HistoryConfig stores move ledger settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// File4YouConfig stores organizer specific configurations.
type File4YouConfig struct {
	WatchDir               string        `mapstructure:"watchDir"`
	SchemaFile             string        `mapstructure:"schemaFile"`
	MappingFile            string        `mapstructure:"mappingFile"`
	IgnoreFile             string        `mapstructure:"ignoreFile"`
	IncludeHidden          bool          `mapstructure:"includeHidden"`
	ConflictPolicy         string        `mapstructure:"conflictPolicy"`
	History                HistoryConfig `mapstructure:"history"`
	OrganizeTimeoutMinutes int           `mapstructure:"organizeTimeoutMinutes"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("file4you.watchDir", internal.DefaultWatchDir)
	viper.SetDefault("file4you.schemaFile", internal.DefaultSchemaFile)
	viper.SetDefault("file4you.mappingFile", internal.DefaultMappingFile)
	viper.SetDefault("file4you.ignoreFile", internal.DefaultIgnoreFile)
	viper.SetDefault("file4you.includeHidden", false)
	viper.SetDefault("file4you.conflictPolicy", internal.DefaultConflictPolicy)
	viper.SetDefault("file4you.history.enabled", true)
	viper.SetDefault("file4you.history.path", internal.DefaultHistoryDBPath)
	viper.SetDefault("file4you.organizeTimeoutMinutes", internal.DefaultOrganizeTimeoutMinutes)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // Replace dots with underscores in env var names e.g. file4you.schemaFile becomes FILE4YOU_SCHEMAFILE

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used. This is not an
			// error for the application to halt on.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
