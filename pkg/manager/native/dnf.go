package native

import (
	"bufio"
	"context"
	"strings"

	"loadout/internal/executor"
)

// dnf drives Fedora and the RedHat family's DNF.
type dnf struct{}

func (dnf) binary() string { return "dnf" }

func (dnf) installArgs(id string) []string {
	return []string{"install", id, "-y"}
}

func (dnf) removeArgs(id string) []string {
	return []string{"remove", id, "-y"}
}

func (dnf) refreshArgs() []string {
	return []string{"makecache"}
}

func (dnf) updateAll(ctx context.Context, run executor.Runner) error {
	return run.RunSudo(ctx, "dnf", "upgrade", "--refresh", "-y")
}

func (dnf) autoremove(ctx context.Context, run executor.Runner) error {
	return run.RunSudo(ctx, "dnf", "autoremove", "-y")
}

func (dnf) listCommand() (string, []string) {
	return "dnf", []string{"list", "installed"}
}

// parseInstalled reads lines like "vlc.x86_64  1:3.0.21-1.fc41  @rpmfusion-free".
// Headers have no architecture suffix, and continuation lines of wrapped
// entries start with whitespace.
func (dnf) parseInstalled(output string) []string {
	var ids []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		fields := strings.Fields(line)
		dot := strings.LastIndex(fields[0], ".")
		if dot <= 0 {
			continue
		}
		ids = append(ids, fields[0][:dot])
	}
	return ids
}

func (dnf) classify(err error) error { return err }
