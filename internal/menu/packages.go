package menu

import (
	"context"
	"fmt"

	"loadout/internal/history"
	"loadout/internal/ui"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
	"loadout/pkg/registry"
)

const (
	labelBack   = "Back"
	labelCancel = "Cancel"
)

// PickCategory lists the categories that have something to offer and runs
// the category loop for the chosen one.
func (d *Driver) PickCategory(ctx context.Context) error {
	cursor := 0
	for {
		cats := d.categories()
		labels := make([]string, 0, len(cats)+1)
		for _, c := range cats {
			labels = append(labels, string(c))
		}
		labels = append(labels, labelBack)

		idx, err := d.prompt.Select("Choose a category", labels, cursor)
		if isBack(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx == len(cats) {
			return nil
		}

		if err := d.CategoryLoop(ctx, cats[idx]); err != nil {
			return err
		}
		cursor = idx
	}
}

func (d *Driver) categories() []catalog.Category {
	var out []catalog.Category
	for _, c := range catalog.Categories {
		for _, p := range catalog.InCategory(c) {
			if d.reg.Available(p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Mismatched reports whether pkg targets a desktop that is not running.
func (d *Driver) Mismatched(pkg *catalog.Package) bool {
	return pkg.Desktop != catalog.AnyDesktop && !pkg.Desktop.Present(d.reg.Env)
}

// Visible returns the packages of c the category loop shows: available ones,
// minus uninstalled DE-mismatched ones unless the toggle is on.
func (d *Driver) Visible(c catalog.Category) []*catalog.Package {
	var out []*catalog.Package
	for _, p := range catalog.InCategory(c) {
		if !d.reg.Available(p) {
			continue
		}
		if d.Mismatched(p) && !d.showMismatched && !d.reg.Installed(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (d *Driver) toggleLabel() string {
	if d.showMismatched {
		return "Hide uninstalled desktop-environment packages"
	}
	return "Show uninstalled desktop-environment packages"
}

// CategoryLoop lists the packages of c and runs package-select for the
// chosen one, re-entering at the next entry afterwards.
func (d *Driver) CategoryLoop(ctx context.Context, c catalog.Category) error {
	cursor := 0
	for {
		pkgs := d.Visible(c)
		labels := make([]string, 0, len(pkgs)+2)
		for _, p := range pkgs {
			labels = append(labels, d.entryLabel(p))
		}
		labels = append(labels, d.toggleLabel(), labelBack)

		idx, err := d.prompt.Select(string(c), labels, cursor)
		if isBack(err) {
			return nil
		}
		if err != nil {
			return err
		}

		switch idx {
		case len(pkgs):
			d.showMismatched = !d.showMismatched
			cursor = idx
			continue
		case len(pkgs) + 1:
			return nil
		}

		if err := d.PackageSelect(ctx, pkgs[idx]); err != nil {
			return err
		}
		cursor = idx + 1
	}
}

func (d *Driver) entryLabel(p *catalog.Package) string {
	label := fmt.Sprintf("%s %s", p.Label, ui.MethodTag(d.reg.Method(p)))
	if d.Mismatched(p) {
		label += " " + ui.Mismatch.Sprint("(DE mismatch)")
	}
	return label
}

// PackageSelect asks how pkg should be installed and moves it there. Cancel
// and aborts change nothing.
func (d *Driver) PackageSelect(ctx context.Context, pkg *catalog.Package) error {
	current := d.reg.Method(pkg)

	methods := append(d.reg.AvailableMethods(pkg), manager.Uninstall)
	labels := make([]string, 0, len(methods)+1)
	cursor := 0
	for i, m := range methods {
		label := ui.MethodTag(m) + " " + m.Label()
		if m == current {
			label += " (current)"
			cursor = i
		}
		labels = append(labels, label)
	}
	labels = append(labels, labelCancel)

	idx, err := d.prompt.Select(fmt.Sprintf("How should %s be installed?", pkg.Label), labels, cursor)
	if isBack(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if idx == len(methods) {
		return nil
	}

	choice := registry.Choice{Method: methods[idx]}
	if choice.Method == manager.Flatpak {
		remote, ok, err := d.pickRemote(pkg)
		if err != nil || !ok {
			return err
		}
		choice.Remote = remote
	}

	return d.apply(ctx, pkg, choice)
}

// pickRemote prompts for a remote when pkg is published on more than one.
// ok is false when the user cancelled.
func (d *Driver) pickRemote(pkg *catalog.Package) (remote catalog.Remote, ok bool, err error) {
	remotes := pkg.Flatpak.Remotes
	if len(remotes) <= 1 {
		return pkg.Flatpak.DefaultRemote(), true, nil
	}

	labels := make([]string, 0, len(remotes)+1)
	for _, r := range remotes {
		labels = append(labels, string(r))
	}
	labels = append(labels, labelCancel)

	idx, err := d.prompt.Select("Install from which remote?", labels, 0)
	if isBack(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if idx == len(remotes) {
		return "", false, nil
	}
	return remotes[idx], true, nil
}

func (d *Driver) apply(ctx context.Context, pkg *catalog.Package, choice registry.Choice) error {
	op := history.OpInstall
	if choice.Method == manager.Uninstall {
		op = history.OpUninstall
	}

	err := d.reg.Apply(ctx, pkg, choice)
	d.track(op, pkg.Key, choice.Method.String(), err)
	if err != nil {
		return err
	}

	if choice.Method == manager.Uninstall {
		ui.SuccessMsg("%s uninstalled", pkg.Label)
	} else {
		ui.SuccessMsg("%s installed via %s", pkg.Label, choice.Method.Label())
	}
	return nil
}
