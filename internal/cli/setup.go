package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"loadout/internal/desktop"
	"loadout/internal/history"
	"loadout/internal/ui"
)

var (
	setupEPEL      bool
	setupRPMFusion bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure repositories or a desktop environment",
	Long: `Configure the package manager and extra repositories, or apply the
GNOME or KDE Plasma settings.

Examples:
  loadout setup repo                 # dnf tuning, EPEL/RPM Fusion, snapd
  loadout setup repo --epel=false    # Skip EPEL on enterprise distributions
  loadout setup gnome                # Apply GNOME settings
  loadout setup kde                  # Apply KDE Plasma settings`,
}

var setupRepoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Configure the package manager and extra repositories",
	Args:  cobra.NoArgs,
	RunE:  runSetupRepo,
}

var setupGnomeCmd = &cobra.Command{
	Use:   "gnome",
	Short: "Apply the GNOME settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetupDesktop(cmd.Context(), "gnome")
	},
}

var setupKDECmd = &cobra.Command{
	Use:   "kde",
	Short: "Apply the KDE Plasma settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetupDesktop(cmd.Context(), "kde")
	},
}

func init() {
	setupRepoCmd.Flags().BoolVar(&setupEPEL, "epel", true, "enable EPEL on enterprise distributions")
	setupRepoCmd.Flags().BoolVar(&setupRPMFusion, "rpmfusion", true, "enable RPM Fusion")

	setupCmd.AddCommand(setupRepoCmd)
	setupCmd.AddCommand(setupGnomeCmd)
	setupCmd.AddCommand(setupKDECmd)
}

func runSetupRepo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := setupOpts()
	if cmd.Flags().Changed("epel") {
		opts.EPEL = setupEPEL
	}
	if cmd.Flags().Changed("rpmfusion") {
		opts.RPMFusion = setupRPMFusion
	}

	err = s.reg.Setup(ctx, opts)
	s.track(history.OpSetup, "", "repo", err)
	if err != nil {
		return err
	}

	ui.SuccessMsg("Repositories configured for %s", s.reg.Dist)
	return nil
}

func runSetupDesktop(ctx context.Context, name string) error {
	s, err := openSession(ctx, false)
	if err != nil {
		return err
	}
	defer s.Close()

	var apply func(context.Context) error
	switch name {
	case "gnome":
		if !s.reg.Env.Gnome {
			return fmt.Errorf("%w: GNOME", ErrUnsupportedDesktop)
		}
		apply = func(ctx context.Context) error { return desktop.ApplyGnome(ctx, s.run) }
	case "kde":
		if !s.reg.Env.KDE {
			return fmt.Errorf("%w: KDE Plasma", ErrUnsupportedDesktop)
		}
		apply = func(ctx context.Context) error { return desktop.ApplyKDE(ctx, s.run) }
	}

	err = apply(ctx)
	s.track(history.OpSetup, "", name, err)
	if err != nil {
		return err
	}

	ui.SuccessMsg("%s settings applied", name)
	return nil
}
