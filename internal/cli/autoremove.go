package cli

import (
	"github.com/spf13/cobra"

	"loadout/internal/history"
	"loadout/internal/ui"
)

var autoremoveCmd = &cobra.Command{
	Use:     "autoremove",
	Aliases: []string{"orphans"},
	Short:   "Remove orphaned packages",
	Long: `Remove packages that were installed as dependencies but are no
longer required, on every provider that supports it.

Examples:
  loadout autoremove           # Remove orphaned packages
  loadout autoremove -y        # Remove without confirmation`,
	Args: cobra.NoArgs,
	RunE: runAutoremove,
}

func runAutoremove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ok, err := confirm("Remove orphaned packages")
	if err != nil {
		return err
	}
	if !ok {
		return ui.ErrAborted
	}

	skipped, err := s.reg.Autoremove(ctx)
	for _, name := range skipped {
		ui.WarningMsg("%s has no auto-remove; skipped", name)
	}
	s.track(history.OpAutoremove, "", "", err)
	if err != nil {
		return err
	}

	ui.SuccessMsg("Orphaned packages removed")
	return nil
}
