package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDataDir returns the default database root directory for the
// host OS, preferring XDG_DATA_HOME and falling back to a dotdir in the
// user's home directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "sky")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./data"
	}

	// macOS: ~/Library/Application Support/Sky
	if isDir(filepath.Join(homeDir, "Library", "Application Support")) {
		return filepath.Join(homeDir, "Library", "Application Support", "Sky")
	}

	// Windows: %USERPROFILE%/AppData/Local/Sky
	if isDir(filepath.Join(homeDir, "AppData", "Local")) {
		return filepath.Join(homeDir, "AppData", "Local", "Sky")
	}

	return filepath.Join(homeDir, ".sky")
}

// ResolvePath resolves a database argument against the data directory.
// A bare name becomes a subdirectory of dataDir; an absolute path, or
// anything containing a path separator, is used as given.
func ResolvePath(dataDir, arg string) string {
	if filepath.IsAbs(arg) ||
		strings.ContainsRune(arg, '/') ||
		strings.ContainsRune(arg, os.PathSeparator) {
		return arg
	}
	return filepath.Join(dataDir, arg)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
