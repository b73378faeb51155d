package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"loadout/internal/history"
	"loadout/internal/menu"
	"loadout/internal/ui"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
	"loadout/pkg/registry"
)

var (
	installMethod string
	installRemote string
)

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a catalog package",
	Long: `Install a package from the catalog through one provider, removing it
from every other provider first.

Without --method the package-select menu is shown.

Examples:
  loadout install vlc                      # Choose the method interactively
  loadout install vlc --method repo        # Install from the repositories
  loadout install gimp -m flatpak -r flathub-beta
  loadout install rust -m other -y         # Run the vendor script`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installMethod, "method", "m", "", "install method (repo, flatpak, snap, other)")
	installCmd.Flags().StringVarP(&installRemote, "remote", "r", "", "flatpak remote (defaults to the package's first remote)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pkg, err := lookupPackage(args[0])
	if err != nil {
		return err
	}

	var choice registry.Choice
	if installMethod != "" {
		if choice, err = installChoice(pkg, installMethod, installRemote); err != nil {
			return err
		}
	}

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if installMethod == "" {
		d := menu.New(menu.Options{
			Registry: s.reg,
			Runner:   s.run,
			Prompter: ui.NewTerminal(cfg.Menu.PageSize),
			History:  s.history,
		})
		return d.PackageSelect(ctx, pkg)
	}

	if current := s.reg.Method(pkg); current == choice.Method {
		ui.InfoMsg("%s is already installed via %s", pkg.Label, current.Label())
		return nil
	} else if current != manager.Uninstall {
		ui.InfoMsg("%s is installed via %s and will be moved", pkg.Label, current.Label())
	}

	ok, err := confirm(fmt.Sprintf("Install %s via %s", pkg.Label, choice.Method.Label()))
	if err != nil {
		return err
	}
	if !ok {
		return ui.ErrAborted
	}

	err = s.reg.Apply(ctx, pkg, choice)
	s.track(history.OpInstall, pkg.Key, choice.Method.String(), err)
	if err != nil {
		return err
	}

	ui.SuccessMsg("%s installed via %s", pkg.Label, choice.Method.Label())
	return nil
}

// installChoice is parseChoice restricted to the four providers.
func installChoice(pkg *catalog.Package, method, remote string) (registry.Choice, error) {
	choice, err := parseChoice(pkg, method, remote)
	if err != nil {
		return registry.Choice{}, err
	}
	if !choice.Method.IsProvider() {
		return registry.Choice{}, fmt.Errorf("use `loadout uninstall %s` to remove a package", pkg.Key)
	}
	return choice, nil
}

// parseChoice validates the --method and --remote flags for pkg.
func parseChoice(pkg *catalog.Package, method, remote string) (registry.Choice, error) {
	m, err := manager.ParseMethod(method)
	if err != nil {
		return registry.Choice{}, err
	}

	choice := registry.Choice{Method: m}
	if remote == "" {
		return choice, nil
	}

	if m != manager.Flatpak {
		return registry.Choice{}, fmt.Errorf("--remote only applies to --method flatpak")
	}
	if pkg.Flatpak != nil {
		for _, r := range pkg.Flatpak.Remotes {
			if string(r) == remote {
				choice.Remote = r
				return choice, nil
			}
		}
	}
	return registry.Choice{}, fmt.Errorf("%w: %s on %s", ErrUnknownRemote, pkg.Key, remote)
}
