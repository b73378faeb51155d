// Package cli implements the command-line interface for loadout.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"loadout/internal/config"
	"loadout/internal/menu"
	"loadout/internal/ui"
)

var (
	// Global flags
	cfgFile string
	dryRun  bool
	yes     bool
	verbose bool
	noColor bool

	cfg *config.Config
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "loadout",
	Short: "Set up a Linux workstation from a curated package catalog",
	Long: `Loadout installs and removes applications from a curated catalog,
choosing per package between the distribution's repositories, Flatpak,
Snap or a vendor install script, and keeping each package installed
through exactly one of them.

Run without arguments for the interactive menu.

Examples:
  loadout                            # Interactive menu
  loadout install vlc --method repo  # Install VLC from the repositories
  loadout install gimp -m flatpak    # Install GIMP from Flathub
  loadout update                     # Update everything
  loadout setup gnome                # Apply GNOME settings`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
	RunE: runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(autoremoveCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(systemCmd)
}

// Execute runs the root command. SIGINT and SIGTERM cancel the context
// handed to every command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ui.ErrInterrupted), errors.Is(err, context.Canceled):
		ui.WarningMsg("Interrupted")
	default:
		menu.Report(err)
	}
	return err
}

// initializeApp loads configuration and applies the global flags.
func initializeApp() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if yes {
		cfg.General.AutoConfirm = true
	}
	if dryRun {
		cfg.General.DryRun = true
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}

	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)
	return nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	d := menu.New(menu.Options{
		Registry:       s.reg,
		Runner:         s.run,
		Prompter:       ui.NewTerminal(cfg.Menu.PageSize),
		History:        s.history,
		Setup:          setupOpts(),
		ShowMismatched: cfg.Menu.ShowMismatched,
	})
	err = d.Run(cmd.Context())
	if note := sessionFooter(s.history); note != "" {
		ui.MutedMsg("%s", note)
	}
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print loadout version",
	Run: func(cmd *cobra.Command, args []string) {
		ui.InfoMsg("loadout version %s", Version)
		if Commit != "unknown" {
			ui.MutedMsg("  Commit: %s", Commit)
		}
		if BuildTime != "unknown" {
			ui.MutedMsg("  Built:  %s", BuildTime)
		}
	},
}
