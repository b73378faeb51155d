// Package native drives the distribution's own package manager.
package native

import (
	"context"
	"fmt"

	"loadout/internal/executor"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
	"loadout/pkg/manager/detector"
)

// dialect translates provider operations into one package manager's
// command lines.
type dialect interface {
	binary() string
	installArgs(id string) []string
	removeArgs(id string) []string
	refreshArgs() []string
	updateAll(ctx context.Context, run executor.Runner) error
	autoremove(ctx context.Context, run executor.Runner) error
	listCommand() (string, []string)
	parseInstalled(output string) []string
	classify(err error) error
}

func dialectFor(d detector.Dialect) (dialect, error) {
	switch d {
	case detector.DialectApt:
		return apt{}, nil
	case detector.DialectDnf:
		return dnf{}, nil
	case detector.DialectPacman:
		return pacman{}, nil
	case detector.DialectRpmOstree:
		return rpmOstree{}, nil
	}
	return nil, fmt.Errorf("%w: %s", detector.ErrUnsupportedDistribution, d)
}

// Distro is the distribution provider.
type Distro struct {
	dist    detector.Distribution
	dialect dialect
	run     executor.Runner
	cache   *manager.Installed

	// DNFConfPath is the dnf configuration file Setup appends to.
	DNFConfPath string
}

// New creates the provider for dist. Installs and removals are recorded in
// cache under manager.Repository.
func New(dist detector.Distribution, run executor.Runner, cache *manager.Installed) (*Distro, error) {
	d, err := dialectFor(dist.Dialect)
	if err != nil {
		return nil, err
	}
	return &Distro{
		dist:        dist,
		dialect:     d,
		run:         run,
		cache:       cache,
		DNFConfPath: "/etc/dnf/dnf.conf",
	}, nil
}

// Name returns the dialect name, e.g. "apt".
func (d *Distro) Name() string {
	return string(d.dist.Dialect)
}

// Available reports whether pkg has native identifiers for this family.
func (d *Distro) Available(pkg *catalog.Package) bool {
	return len(pkg.RepoIDs(d.dist.Family)) > 0
}

// Installed reports whether every native identifier of pkg is installed.
func (d *Distro) Installed(pkg *catalog.Package) bool {
	ids := pkg.RepoIDs(d.dist.Family)
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !d.cache.Has(manager.Repository, id) {
			return false
		}
	}
	return true
}

// Install installs every native identifier of pkg.
func (d *Distro) Install(ctx context.Context, pkg *catalog.Package) error {
	for _, id := range pkg.RepoIDs(d.dist.Family) {
		if err := d.InstallOne(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Uninstall removes every native identifier of pkg.
func (d *Distro) Uninstall(ctx context.Context, pkg *catalog.Package) error {
	for _, id := range pkg.RepoIDs(d.dist.Family) {
		if err := d.UninstallOne(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// InstallOne installs a single identifier unless it is already cached.
func (d *Distro) InstallOne(ctx context.Context, id string) error {
	if d.cache.Has(manager.Repository, id) {
		return nil
	}
	if err := d.run.RunSudo(ctx, d.dialect.binary(), d.dialect.installArgs(id)...); err != nil {
		return d.dialect.classify(err)
	}
	d.cache.Add(manager.Repository, id)
	return nil
}

// UninstallOne removes a single identifier if it is cached.
func (d *Distro) UninstallOne(ctx context.Context, id string) error {
	if !d.cache.Has(manager.Repository, id) {
		return nil
	}
	if err := d.run.RunSudo(ctx, d.dialect.binary(), d.dialect.removeArgs(id)...); err != nil {
		return d.dialect.classify(err)
	}
	d.cache.Remove(manager.Repository, id)
	return nil
}

// Refresh re-reads repository metadata, e.g. after a hook adds a repository.
func (d *Distro) Refresh(ctx context.Context) error {
	return d.run.RunSudo(ctx, d.dialect.binary(), d.dialect.refreshArgs()...)
}

// UpdateAll upgrades every installed package.
func (d *Distro) UpdateAll(ctx context.Context) error {
	return d.dialect.classify(d.dialect.updateAll(ctx, d.run))
}

// Autoremove removes orphaned dependencies.
func (d *Distro) Autoremove(ctx context.Context) error {
	return d.dialect.classify(d.dialect.autoremove(ctx, d.run))
}

// ListInstalled returns the native identifiers currently installed.
func (d *Distro) ListInstalled(ctx context.Context) ([]string, error) {
	name, args := d.dialect.listCommand()
	out, err := d.run.Output(ctx, name, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}
	return d.dialect.parseInstalled(out), nil
}

// Load replaces the cached Repository set with what is installed now.
func (d *Distro) Load(ctx context.Context) error {
	ids, err := d.ListInstalled(ctx)
	if err != nil {
		return err
	}
	d.cache.Replace(manager.Repository, ids)
	return nil
}
