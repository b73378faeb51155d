package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"loadout/internal/history"
	"loadout/internal/ui"
	"loadout/pkg/manager"
	"loadout/pkg/registry"
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall <package>",
	Aliases: []string{"remove", "rm"},
	Short:   "Remove a catalog package and its user data",
	Long: `Remove a package from every provider that holds it, then delete its
per-user data and sandbox directories.

Examples:
  loadout uninstall vlc          # Remove VLC
  loadout uninstall -y steam     # Remove without confirmation`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pkg, err := lookupPackage(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.reg.Installed(pkg) {
		ui.InfoMsg("%s is not installed", pkg.Label)
	}

	if len(pkg.UserData) > 0 {
		ui.WarningMsg("User data will also be removed:")
		for _, p := range pkg.UserData {
			ui.MutedMsg("  ~/%s", p)
		}
	}

	ok, err := confirm(fmt.Sprintf("Uninstall %s", pkg.Label))
	if err != nil {
		return err
	}
	if !ok {
		return ui.ErrAborted
	}

	err = s.reg.Apply(ctx, pkg, registry.Choice{Method: manager.Uninstall})
	s.track(history.OpUninstall, pkg.Key, manager.Uninstall.String(), err)
	if err != nil {
		return err
	}

	ui.SuccessMsg("%s uninstalled", pkg.Label)
	return nil
}
