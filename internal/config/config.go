package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.vidscore)
	ConfigDir string

	// ProjectsDir is the default directory for project files
	ProjectsDir string

	// KeybindsFile is the user keybinding configuration file
	KeybindsFile string

	// SettingsFile is the scoring/playback settings file
	SettingsFile string

	// DatabasePath is the SQLite database file for the score log
	DatabasePath string

	// LogFile is the application log file
	LogFile string
)

// Initialize sets up the configuration directories and files
// It creates ~/.vidscore/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	// Set global paths
	ConfigDir = filepath.Join(homeDir, ".vidscore")
	ProjectsDir = filepath.Join(ConfigDir, "projects")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	SettingsFile = filepath.Join(ConfigDir, "settings.yaml")
	DatabasePath = filepath.Join(ConfigDir, "vidscore.db")
	LogFile = filepath.Join(ConfigDir, "vidscore.log")

	// Create directories if they don't exist
	dirs := []string{ConfigDir, ProjectsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ResolveProjectPath resolves a project argument to a file path.
// A bare name resolves into the projects directory with a .json extension.
func ResolveProjectPath(arg string) string {
	if arg == "" {
		return ""
	}
	if filepath.IsAbs(arg) || filepath.Ext(arg) == ".json" {
		return arg
	}
	return filepath.Join(ProjectsDir, arg+".json")
}
