package native

import (
	"bufio"
	"context"
	"strings"

	"loadout/internal/executor"
	"loadout/pkg/manager"
)

// rpmOstree drives image-based Fedora variants such as Silverblue.
type rpmOstree struct{}

func (rpmOstree) binary() string { return "rpm-ostree" }

func (rpmOstree) installArgs(id string) []string {
	return []string{"install", id, "-y"}
}

func (rpmOstree) removeArgs(id string) []string {
	return []string{"uninstall", id, "-y"}
}

func (rpmOstree) refreshArgs() []string {
	return []string{"refresh-md"}
}

func (rpmOstree) updateAll(ctx context.Context, run executor.Runner) error {
	return run.RunSudo(ctx, "rpm-ostree", "upgrade")
}

func (rpmOstree) autoremove(context.Context, executor.Runner) error {
	return manager.ErrNotSupported
}

func (rpmOstree) listCommand() (string, []string) {
	return "rpm", []string{"-qa"}
}

// parseInstalled reads NEVRA lines like "firefox-131.0-1.fc41.x86_64".
func (rpmOstree) parseInstalled(output string) []string {
	var ids []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		if name := stripVersion(strings.TrimSpace(scanner.Text())); name != "" {
			ids = append(ids, name)
		}
	}
	return ids
}

func (rpmOstree) classify(err error) error { return err }

// stripVersion cuts an rpm name at the first hyphen followed by a digit.
func stripVersion(nevra string) string {
	for i := 0; i+1 < len(nevra); i++ {
		if nevra[i] == '-' && nevra[i+1] >= '0' && nevra[i+1] <= '9' {
			return nevra[:i]
		}
	}
	return nevra
}
