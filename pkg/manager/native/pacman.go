package native

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"loadout/internal/executor"
)

// pacman drives Arch Linux's pacman.
type pacman struct{}

func (pacman) binary() string { return "pacman" }

func (pacman) installArgs(id string) []string {
	return []string{"-S", "--noconfirm", "--needed", id}
}

func (pacman) removeArgs(id string) []string {
	return []string{"-Rsun", "--noconfirm", id}
}

func (pacman) refreshArgs() []string {
	return []string{"-Sy"}
}

func (pacman) updateAll(ctx context.Context, run executor.Runner) error {
	return run.RunSudo(ctx, "pacman", "-Syu", "--noconfirm")
}

// autoremove removes the packages reported by "pacman -Qdtq". Nothing is run
// when there are no orphans; pacman signals that with exit status 1.
func (pacman) autoremove(ctx context.Context, run executor.Runner) error {
	output, err := run.Output(ctx, "pacman", "-Qdtq")
	if err != nil {
		var cmdErr *executor.CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
			return nil
		}
		return err
	}

	orphans := strings.Fields(output)
	if len(orphans) == 0 {
		return nil
	}

	args := append([]string{"-Rsun"}, orphans...)
	args = append(args, "--noconfirm")
	return run.RunSudo(ctx, "pacman", args...)
}

func (pacman) listCommand() (string, []string) {
	return "pacman", []string{"-Q"}
}

// parseInstalled reads lines like "vlc 3.0.21-11".
func (pacman) parseInstalled(output string) []string {
	var ids []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		if fields := strings.Fields(scanner.Text()); len(fields) > 0 {
			ids = append(ids, fields[0])
		}
	}
	return ids
}

// classify turns a failed pacman command into a *PacmanError when its
// stderr matches a known failure.
func (pacman) classify(err error) error {
	var cmdErr *executor.CommandError
	if !errors.As(err, &cmdErr) {
		return err
	}
	if pacErr := ParsePacmanError(cmdErr.Stderr, err); pacErr != nil {
		return pacErr
	}
	return err
}
