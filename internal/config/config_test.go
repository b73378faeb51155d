package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Check default output settings
	if !cfg.Output.Color {
		t.Error("expected Color to be true by default")
	}
	if !cfg.Output.Unicode {
		t.Error("expected Unicode to be true by default")
	}
	if cfg.Output.Verbose {
		t.Error("expected Verbose to be false by default")
	}

	// Check general settings
	if cfg.General.AutoConfirm {
		t.Error("expected AutoConfirm to be false by default")
	}
	if cfg.General.DryRun {
		t.Error("expected DryRun to be false by default")
	}
	if cfg.General.History {
		t.Error("expected History to be off by default")
	}

	if cfg.Menu.PageSize != 15 {
		t.Errorf("PageSize = %d, want 15", cfg.Menu.PageSize)
	}
	if cfg.Setup.MaxParallelDownloads != 10 {
		t.Errorf("MaxParallelDownloads = %d, want 10", cfg.Setup.MaxParallelDownloads)
	}
}

func TestResolveAlias(t *testing.T) {
	cfg := &Config{
		Aliases: map[string]string{
			"vscode": "code",
			"nvim":   "neovim",
		},
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"vscode", "code"},
		{"nvim", "neovim"},
		{"git", "git"}, // No alias, returns original
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := cfg.ResolveAlias(tt.input)
			if result != tt.expected {
				t.Errorf("ResolveAlias(%s) = %s, want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestShouldUseColor(t *testing.T) {
	cfg := &Config{
		Output: OutputConfig{Color: true},
	}

	t.Setenv("NO_COLOR", "")
	if !cfg.ShouldUseColor() {
		t.Error("expected ShouldUseColor() to return true")
	}

	t.Setenv("NO_COLOR", "1")
	if cfg.ShouldUseColor() {
		t.Error("expected ShouldUseColor() to return false when NO_COLOR is set")
	}

	t.Setenv("NO_COLOR", "")
	cfg.Output.Color = false
	if cfg.ShouldUseColor() {
		t.Error("expected ShouldUseColor() to return false when Color is false")
	}
}

func TestLoadSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Aliases["vscode"] = "code"
	cfg.Setup.EPEL = false

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if loaded.ResolveAlias("vscode") != "code" {
		t.Error("loaded config doesn't have expected alias")
	}
	if loaded.Setup.EPEL {
		t.Error("loaded config should keep epel = false")
	}
}

func TestSaveCreatesConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "nested"))

	cfg := Default()
	cfg.General.History = true
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !loaded.General.History {
		t.Error("loaded config should keep history = true")
	}
}

func TestLoadPartialConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[menu]
show_mismatched = true
page_size = 0

[setup]
max_parallel_downloads = 5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if !cfg.Menu.ShowMismatched {
		t.Error("show_mismatched should be true")
	}
	if cfg.Menu.PageSize != 15 {
		t.Errorf("non-positive page_size should fall back to the default, got %d", cfg.Menu.PageSize)
	}
	if cfg.Setup.MaxParallelDownloads != 5 {
		t.Errorf("MaxParallelDownloads = %d, want 5", cfg.Setup.MaxParallelDownloads)
	}
	if !cfg.Output.Color {
		t.Error("unset keys should keep their defaults")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[menu\npage_size ="), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("LoadFrom() should fail on malformed TOML")
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	cfg, err := LoadFrom("/non/existent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadFrom() should not error for non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadFrom() should return default config for non-existent file")
	}

	if !cfg.Output.Color {
		t.Error("expected default Color to be true")
	}
}
