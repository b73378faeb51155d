package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the complete loadout configuration.
type Config struct {
	General GeneralConfig     `toml:"general"`
	Output  OutputConfig      `toml:"output"`
	Menu    MenuConfig        `toml:"menu"`
	Setup   SetupConfig       `toml:"setup"`
	Aliases map[string]string `toml:"aliases"`
}

// GeneralConfig contains general loadout settings.
type GeneralConfig struct {
	// AutoConfirm skips confirmation prompts when true (like -y flag).
	AutoConfirm bool `toml:"auto_confirm"`

	// DryRun shows what would happen without executing when true.
	DryRun bool `toml:"dry_run"`

	// History records every transition in a local journal.
	History bool `toml:"history"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (respects NO_COLOR env var).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose enables detailed output.
	Verbose bool `toml:"verbose"`
}

// MenuConfig controls the interactive menu.
type MenuConfig struct {
	// PageSize is the number of entries visible at once.
	PageSize int `toml:"page_size"`

	// ShowMismatched lists uninstalled packages for absent desktops.
	ShowMismatched bool `toml:"show_mismatched"`
}

// SetupConfig holds the defaults for Repository Setup.
type SetupConfig struct {
	// MaxParallelDownloads is written to dnf.conf.
	MaxParallelDownloads int `toml:"max_parallel_downloads"`

	// EPEL enables the Extra Packages for Enterprise Linux repository.
	EPEL bool `toml:"epel"`

	// RPMFusion enables the RPM Fusion free and nonfree repositories.
	RPMFusion bool `toml:"rpmfusion"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			AutoConfirm: false,
			DryRun:      false,
			History:     false,
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
			Verbose: false,
		},
		Menu: MenuConfig{
			PageSize:       15,
			ShowMismatched: false,
		},
		Setup: SetupConfig{
			MaxParallelDownloads: 10,
			EPEL:                 true,
			RPMFusion:            true,
		},
		Aliases: map[string]string{},
	}
}

// Load loads the configuration from the default path.
// If the config file doesn't exist, it returns the default configuration.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific path.
// If the config file doesn't exist, it returns the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if cfg.Menu.PageSize <= 0 {
		cfg.Menu.PageSize = Default().Menu.PageSize
	}
	if cfg.Setup.MaxParallelDownloads <= 0 {
		cfg.Setup.MaxParallelDownloads = Default().Setup.MaxParallelDownloads
	}

	return cfg, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// ResolveAlias returns the catalog key for an alias, or the original name if no alias exists.
func (c *Config) ResolveAlias(key string) string {
	if alias, ok := c.Aliases[key]; ok {
		return alias
	}
	return key
}

// ShouldUseColor returns true if colored output should be used.
// Respects the NO_COLOR environment variable.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
