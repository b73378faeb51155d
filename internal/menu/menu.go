// Package menu drives the interactive session: the top-level menu, the
// category picker and package-select.
package menu

import (
	"context"
	"errors"
	"strings"

	"loadout/internal/desktop"
	"loadout/internal/executor"
	"loadout/internal/history"
	"loadout/internal/ui"
	"loadout/pkg/manager/native"
	"loadout/pkg/registry"
)

// Options configures a Driver.
type Options struct {
	Registry *registry.Registry
	Runner   executor.Runner
	Prompter ui.Prompter

	// History may be nil, which disables recording.
	History *history.Store

	Setup native.SetupOpts

	// ShowMismatched is the initial state of the DE-mismatch toggle.
	ShowMismatched bool
}

// Driver runs the interactive menus.
type Driver struct {
	reg     *registry.Registry
	run     executor.Runner
	prompt  ui.Prompter
	history *history.Store
	setup   native.SetupOpts

	showMismatched bool
}

// New creates a Driver.
func New(opts Options) *Driver {
	return &Driver{
		reg:            opts.Registry,
		run:            opts.Runner,
		prompt:         opts.Prompter,
		history:        opts.History,
		setup:          opts.Setup,
		showMismatched: opts.ShowMismatched,
	}
}

type action struct {
	label string
	run   func(ctx context.Context) error
}

// actions returns the top-level entries in display order. A nil run means Exit.
func (d *Driver) actions() []action {
	acts := []action{{"Repository Setup", d.RepositorySetup}}
	if d.reg.Env.Gnome {
		acts = append(acts, action{"GNOME Setup", d.GnomeSetup})
	}
	if d.reg.Env.KDE {
		acts = append(acts, action{"KDE Setup", d.KDESetup})
	}
	return append(acts,
		action{"Update Packages", d.Update},
		action{"Auto-Remove Packages", d.Autoremove},
		action{"Install Packages", d.PickCategory},
		action{"Exit", nil},
	)
}

// Run shows the top-level menu until Exit, an abort at the top level, or
// an interrupt. Failures of individual actions are printed and the menu
// re-enters at the next entry.
func (d *Driver) Run(ctx context.Context) error {
	acts := d.actions()
	labels := make([]string, len(acts))
	for i, a := range acts {
		labels[i] = a.label
	}

	cursor := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx, err := d.prompt.Select("What would you like to do?", labels, cursor)
		if errors.Is(err, ui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		a := acts[idx]
		if a.run == nil {
			return nil
		}

		if err := a.run(ctx); err != nil {
			if errors.Is(err, ui.ErrInterrupted) || errors.Is(err, context.Canceled) {
				return err
			}
			Report(err)
		}
		cursor = (idx + 1) % len(acts)
	}
}

// RepositorySetup configures the distribution's repositories.
func (d *Driver) RepositorySetup(ctx context.Context) error {
	err := d.reg.Setup(ctx, d.setup)
	d.track(history.OpSetup, "", "repo", err)
	if err == nil {
		ui.SuccessMsg("Repositories configured for %s", d.reg.Dist)
	}
	return err
}

// GnomeSetup applies the GNOME settings.
func (d *Driver) GnomeSetup(ctx context.Context) error {
	err := desktop.ApplyGnome(ctx, d.run)
	d.track(history.OpSetup, "", "gnome", err)
	if err == nil {
		ui.SuccessMsg("GNOME settings applied")
	}
	return err
}

// KDESetup applies the KDE Plasma settings.
func (d *Driver) KDESetup(ctx context.Context) error {
	err := desktop.ApplyKDE(ctx, d.run)
	d.track(history.OpSetup, "", "kde", err)
	if err == nil {
		ui.SuccessMsg("KDE settings applied")
	}
	return err
}

// Update runs every present provider's update.
func (d *Driver) Update(ctx context.Context) error {
	err := d.reg.UpdateAll(ctx)
	d.track(history.OpUpdate, "", "", err)
	if err == nil {
		ui.SuccessMsg("Packages updated")
	}
	return err
}

// Autoremove runs every present provider's autoremove and warns about the
// providers that have none.
func (d *Driver) Autoremove(ctx context.Context) error {
	skipped, err := d.reg.Autoremove(ctx)
	for _, name := range skipped {
		ui.WarningMsg("%s has no auto-remove; skipped", name)
	}
	d.track(history.OpAutoremove, "", "", err)
	if err == nil {
		ui.SuccessMsg("Unused packages removed")
	}
	return err
}

func (d *Driver) track(op history.Operation, pkg, method string, outcome error) {
	if err := d.history.Track(op, pkg, method, outcome); err != nil {
		ui.WarningMsg("could not record history: %v", err)
	}
}

// isBack reports whether err means "return to the previous level".
func isBack(err error) bool {
	return errors.Is(err, ui.ErrAborted)
}

// Report prints a failed action as a red one-liner. A classified pacman
// failure is followed by its explanation and suggested fix.
func Report(err error) {
	ui.ErrorMsg("%v", err)
	if pacErr, ok := native.AsPacmanError(err); ok {
		ui.Println("%s", strings.TrimRight(native.FormatPacmanError(pacErr), "\n"))
	}
}
