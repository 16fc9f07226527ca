package internal

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultConfigPath is the default path to the config file
	DefaultAppName        = "file4you"
	DefaultAppCMDShortCut = "f4y"
	DefaultConfigPath     = filepath.Join(getHomeDir(), ".config", DefaultAppName)
	DefaultSchemaFile     = filepath.Join(DefaultConfigPath, "categories.json")
	DefaultMappingFile    = filepath.Join(DefaultConfigPath, "folder_mapping.json")
	DefaultHistoryDBPath  = filepath.Join(DefaultConfigPath, "history.db")
	DefaultIgnoreFile     = ".file4you-ignore"
	DefaultWatchDir       = filepath.Join(getHomeDir(), "Downloads")

	// Fallback buckets for items that match no schema entry
	DefaultOtherCategory = "Other"
	DefaultMiscCategory  = "Miscellaneous"

	// Default operation settings
	DefaultConflictPolicy         = "rename"
	DefaultOrganizeTimeoutMinutes = 10
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory if home directory is unavailable
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			// Last resort - use tmp directory
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
