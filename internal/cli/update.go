package cli

import (
	"github.com/spf13/cobra"

	"loadout/internal/history"
	"loadout/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade"},
	Short:   "Update everything every provider manages",
	Long: `Run each present provider's update in turn: the distribution's
package manager, Flatpak, Snap and the vendor tools.

Examples:
  loadout update            # Update all packages
  loadout update -n         # Show the commands only`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, m := range s.reg.Maintainers() {
		ui.MutedMsg("  - %s", m.Name())
	}

	err = s.reg.UpdateAll(ctx)
	s.track(history.OpUpdate, "", "", err)
	if err != nil {
		return err
	}

	ui.SuccessMsg("Packages updated")
	return nil
}
