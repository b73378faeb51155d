package native

import (
	"bufio"
	"context"
	"strings"

	"loadout/internal/executor"
)

// apt drives Debian and Ubuntu's APT.
type apt struct{}

func (apt) binary() string { return "apt" }

func (apt) installArgs(id string) []string {
	return []string{"install", id, "-Vy"}
}

func (apt) removeArgs(id string) []string {
	return []string{"remove", id, "-Vy"}
}

func (apt) refreshArgs() []string {
	return []string{"update"}
}

func (apt) updateAll(ctx context.Context, run executor.Runner) error {
	if err := run.RunSudo(ctx, "apt", "update"); err != nil {
		return err
	}
	return run.RunSudo(ctx, "apt", "upgrade", "-Vy")
}

func (apt) autoremove(ctx context.Context, run executor.Runner) error {
	return run.RunSudo(ctx, "apt", "autoremove", "-Vy")
}

func (apt) listCommand() (string, []string) {
	return "apt", []string{"list", "--installed"}
}

// parseInstalled reads lines like "vlc/noble,now 3.0.20-3build6 amd64 [installed]".
// The "Listing..." banner carries no slash and is skipped.
func (apt) parseInstalled(output string) []string {
	var ids []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		name, _, found := strings.Cut(scanner.Text(), "/")
		if !found || name == "" {
			continue
		}
		ids = append(ids, name)
	}
	return ids
}

func (apt) classify(err error) error { return err }
