package detector

import (
	"context"

	"loadout/internal/executor"
)

// Environment records which desktops and application runtimes are present.
type Environment struct {
	Gnome   bool
	KDE     bool
	Flatpak bool
	Snap    bool
}

// probes maps each capability to the binary whose --version must succeed.
var probes = []struct {
	binary string
	set    func(*Environment)
}{
	{"gnome-shell", func(e *Environment) { e.Gnome = true }},
	{"plasmashell", func(e *Environment) { e.KDE = true }},
	{"flatpak", func(e *Environment) { e.Flatpak = true }},
	{"snap", func(e *Environment) { e.Snap = true }},
}

// ProbeEnvironment runs "<binary> --version" for each well-known binary.
// A failing probe only means the capability is absent.
func ProbeEnvironment(ctx context.Context, run executor.Runner) Environment {
	var env Environment
	for _, p := range probes {
		if _, err := run.Output(ctx, p.binary, "--version"); err == nil {
			p.set(&env)
		}
	}
	return env
}

// Desktops returns the names of the detected desktop environments.
func (e Environment) Desktops() []string {
	var names []string
	if e.Gnome {
		names = append(names, "GNOME")
	}
	if e.KDE {
		names = append(names, "KDE Plasma")
	}
	return names
}
