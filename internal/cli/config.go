package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"loadout/internal/config"
	"loadout/internal/ui"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display where the configuration file lives and the settings in effect,
after command-line flags are applied.

Examples:
  loadout config               # Show settings
  loadout config init          # Write a config file with the defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func configFilePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := configFilePath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		path += " (not created; defaults in use)"
	}

	ui.HeaderMsg("Configuration")
	ui.PrintField("File", path)
	ui.PrintField("Dry run", strconv.FormatBool(cfg.General.DryRun))
	ui.PrintField("Auto confirm", strconv.FormatBool(cfg.General.AutoConfirm))
	ui.PrintField("History", strconv.FormatBool(cfg.General.History))
	ui.PrintField("Page size", strconv.Itoa(cfg.Menu.PageSize))
	ui.PrintField("Parallel downloads", strconv.Itoa(cfg.Setup.MaxParallelDownloads))
	ui.PrintField("EPEL / RPM Fusion", fmt.Sprintf("%t / %t", cfg.Setup.EPEL, cfg.Setup.RPMFusion))
	aliases := make([]string, 0, len(cfg.Aliases))
	for alias := range cfg.Aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		ui.PrintField("Alias "+alias, cfg.Aliases[alias])
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	var err error
	if cfgFile != "" {
		err = config.Default().SaveTo(cfgFile)
	} else {
		err = config.Default().Save()
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	ui.SuccessMsg("Wrote %s", path)
	return nil
}
