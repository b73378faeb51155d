package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	appName     = "loadout"
	configFile  = "config.toml"
	historyFile = "history.db"
)

// ErrHomeNotSet is returned when the HOME environment variable is absent.
var ErrHomeNotSet = errors.New("HOME is not set")

// HomeDir returns $HOME. Unlike os.UserHomeDir it never falls back to the
// password database, so an unset HOME is always reported.
func HomeDir() (string, error) {
	home, ok := os.LookupEnv("HOME")
	if !ok || home == "" {
		return "", ErrHomeNotSet
	}
	return home, nil
}

// ConfigDir returns the configuration directory for loadout.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := HomeDir() //nolint:errcheck
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the data directory for loadout.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := HomeDir() //nolint:errcheck
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFile)
}

// HistoryPath returns the full path to the history database.
func HistoryPath() string {
	return filepath.Join(DataDir(), historyFile)
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0755)
}
