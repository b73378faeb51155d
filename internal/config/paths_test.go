package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHomeDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	home, err := HomeDir()
	if err != nil {
		t.Fatalf("HomeDir() error: %v", err)
	}
	if home != "/home/tester" {
		t.Errorf("HomeDir() = %s, want /home/tester", home)
	}
}

func TestHomeDirUnset(t *testing.T) {
	t.Setenv("HOME", "")
	os.Unsetenv("HOME")

	if _, err := HomeDir(); !errors.Is(err, ErrHomeNotSet) {
		t.Errorf("HomeDir() error = %v, want ErrHomeNotSet", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")

	if got, want := ConfigDir(), "/home/tester/.config/loadout"; got != want {
		t.Errorf("ConfigDir() = %s, want %s", got, want)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/tester")

	if got, want := DataDir(), "/home/tester/.local/share/loadout"; got != want {
		t.Errorf("DataDir() = %s, want %s", got, want)
	}
}

func TestConfigPath(t *testing.T) {
	if path := ConfigPath(); !strings.HasSuffix(path, "config.toml") {
		t.Errorf("ConfigPath() should end with 'config.toml': %s", path)
	}
}

func TestHistoryPath(t *testing.T) {
	if path := HistoryPath(); !strings.HasSuffix(path, "history.db") {
		t.Errorf("HistoryPath() should end with 'history.db': %s", path)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() error: %v", err)
	}

	info, err := os.Stat(ConfigDir())
	if err != nil {
		t.Fatalf("Config directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("ConfigDir is not a directory")
	}
}

func TestEnsureDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if err := EnsureDataDir(); err != nil {
		t.Fatalf("EnsureDataDir() error: %v", err)
	}

	info, err := os.Stat(DataDir())
	if err != nil {
		t.Fatalf("Data directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("DataDir is not a directory")
	}
}

func TestXDGOverride(t *testing.T) {
	tmpDir := t.TempDir()
	customConfig := filepath.Join(tmpDir, "custom_config")
	customData := filepath.Join(tmpDir, "custom_data")

	t.Setenv("XDG_CONFIG_HOME", customConfig)
	t.Setenv("XDG_DATA_HOME", customData)

	if dir := ConfigDir(); !strings.HasPrefix(dir, customConfig) {
		t.Errorf("ConfigDir should use XDG_CONFIG_HOME: %s", dir)
	}
	if dir := DataDir(); !strings.HasPrefix(dir, customData) {
		t.Errorf("DataDir should use XDG_DATA_HOME: %s", dir)
	}
}
