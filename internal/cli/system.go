package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"loadout/internal/config"
	"loadout/internal/executor"
	"loadout/internal/ui"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Show the detected platform",
	Long: `Display the detected distribution, desktop environment, sandboxed
runtimes and the providers that will be used.

Examples:
  loadout system               # Show system info`,
	Args: cobra.NoArgs,
	RunE: runSystem,
}

func runSystem(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.Close()

	ui.HeaderMsg("System Information")

	ui.PrintField("Distribution", s.reg.Dist.String())
	ui.PrintField("Package manager", string(s.reg.Dist.Dialect))

	desktops := s.reg.Env.Desktops()
	if len(desktops) == 0 {
		desktops = []string{"none detected"}
	}
	ui.PrintField("Desktop", strings.Join(desktops, ", "))

	names := make([]string, 0, 4)
	for _, m := range s.reg.Maintainers() {
		names = append(names, m.Name())
	}
	ui.PrintField("Providers", strings.Join(names, ", "))

	ui.PrintField("Config", configFilePath())
	if cfg.General.History {
		ui.PrintField("History", config.HistoryPath())
	}

	switch {
	case executor.IsRoot():
		ui.WarningMsg("Running as root; per-user files will be written to root's home")
	case !executor.CanElevate():
		ui.WarningMsg("sudo not found; installs will fail")
	}
	return nil
}
