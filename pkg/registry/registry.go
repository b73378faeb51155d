// Package registry arbitrates between the four providers: it answers which
// methods a package can use and which one holds it, and performs method
// transitions so that at most one provider owns a package afterwards.
package registry

import (
	"context"
	"errors"
	"fmt"

	"loadout/internal/executor"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
	"loadout/pkg/manager/detector"
	"loadout/pkg/manager/native"
	"loadout/pkg/manager/script"
	"loadout/pkg/manager/universal"
)

// ErrUnavailable is returned when a package cannot be installed through the
// requested method on this system.
var ErrUnavailable = errors.New("method not available for package")

// Options configures New.
type Options struct {
	Dist   detector.Distribution
	Env    detector.Environment
	Runner executor.Runner
	Home   string
	TmpDir string
}

// Registry owns the installed-state cache and every present provider.
type Registry struct {
	Dist detector.Distribution
	Env  detector.Environment

	Distro  *native.Distro
	Flatpak *universal.Flatpak // nil when flatpak is absent
	Snap    *universal.Snap    // nil when snapd is absent
	Other   *script.Script

	// Root is prefixed to system paths hooks inspect; empty means "/".
	Root string

	cache  *manager.Installed
	run    executor.Runner
	home   string
	tmpDir string
}

// New creates the providers for the platform. Nothing is run until Load.
func New(opts Options) (*Registry, error) {
	cache := manager.NewInstalled()

	distro, err := native.New(opts.Dist, opts.Runner, cache)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		Dist:   opts.Dist,
		Env:    opts.Env,
		Distro: distro,
		Other:  script.New(opts.Runner, cache, opts.Home),
		cache:  cache,
		run:    opts.Runner,
		home:   opts.Home,
		tmpDir: opts.TmpDir,
	}
	if opts.Env.Flatpak {
		r.Flatpak = universal.NewFlatpak(opts.Runner, cache)
	}
	if opts.Env.Snap {
		r.Snap = universal.NewSnap(opts.Runner, cache)
	}
	return r, nil
}

// Cache returns the installed-state cache shared by the providers.
func (r *Registry) Cache() *manager.Installed {
	return r.cache
}

// Load fills the cache from every present provider's list of installed
// packages.
func (r *Registry) Load(ctx context.Context) error {
	if err := r.Distro.Load(ctx); err != nil {
		return err
	}
	if r.Flatpak != nil {
		if err := r.Flatpak.Load(ctx); err != nil {
			return err
		}
	}
	if r.Snap != nil {
		if err := r.Snap.Load(ctx); err != nil {
			return err
		}
	}
	return r.Other.Load(ctx)
}

// Maintainers returns the present providers in precedence order.
func (r *Registry) Maintainers() []manager.Maintainer {
	ms := []manager.Maintainer{r.Distro}
	if r.Flatpak != nil {
		ms = append(ms, r.Flatpak)
	}
	if r.Snap != nil {
		ms = append(ms, r.Snap)
	}
	return append(ms, r.Other)
}

// Offers reports whether provider m can install pkg on this system.
func (r *Registry) Offers(m manager.Method, pkg *catalog.Package) bool {
	switch m {
	case manager.Repository:
		return r.Distro.Available(pkg)
	case manager.Flatpak:
		return r.Flatpak != nil && r.Flatpak.Available(pkg)
	case manager.Snap:
		return r.Snap != nil && r.Snap.Available(pkg)
	case manager.Other:
		return r.Other.Available(pkg)
	}
	return false
}

// InstalledVia reports whether provider m holds pkg.
func (r *Registry) InstalledVia(m manager.Method, pkg *catalog.Package) bool {
	switch m {
	case manager.Repository:
		return r.Distro.Installed(pkg)
	case manager.Flatpak:
		return r.Flatpak != nil && r.Flatpak.Installed(pkg)
	case manager.Snap:
		return r.Snap != nil && r.Snap.Installed(pkg)
	case manager.Other:
		return r.Other.Installed(pkg)
	}
	return false
}

// AvailableMethods lists the providers that can install pkg, in order.
func (r *Registry) AvailableMethods(pkg *catalog.Package) []manager.Method {
	var methods []manager.Method
	for _, m := range manager.Providers {
		if r.Offers(m, pkg) {
			methods = append(methods, m)
		}
	}
	return methods
}

// Available reports whether any provider can install pkg.
func (r *Registry) Available(pkg *catalog.Package) bool {
	return len(r.AvailableMethods(pkg)) > 0
}

// Installed reports whether any provider holds pkg.
func (r *Registry) Installed(pkg *catalog.Package) bool {
	return r.Method(pkg) != manager.Uninstall
}

// Method returns the first provider holding pkg, or manager.Uninstall.
func (r *Registry) Method(pkg *catalog.Package) manager.Method {
	for _, m := range manager.Providers {
		if r.InstalledVia(m, pkg) {
			return m
		}
	}
	return manager.Uninstall
}

// Install installs pkg through provider m. remote is only used by Flatpak;
// empty means the package's default remote.
func (r *Registry) Install(ctx context.Context, pkg *catalog.Package, m manager.Method, remote catalog.Remote) error {
	if !r.Offers(m, pkg) {
		return fmt.Errorf("%w: %s via %s", ErrUnavailable, pkg.Key, m)
	}
	switch m {
	case manager.Repository:
		return r.Distro.Install(ctx, pkg)
	case manager.Flatpak:
		return r.Flatpak.Install(ctx, pkg, remote)
	case manager.Snap:
		return r.Snap.Install(ctx, pkg)
	case manager.Other:
		return r.Other.Install(ctx, pkg)
	}
	return fmt.Errorf("%w: %s via %s", ErrUnavailable, pkg.Key, m)
}

// Uninstall removes pkg from provider m if it is installed there.
func (r *Registry) Uninstall(ctx context.Context, pkg *catalog.Package, m manager.Method) error {
	if !r.InstalledVia(m, pkg) {
		return nil
	}
	switch m {
	case manager.Repository:
		return r.Distro.Uninstall(ctx, pkg)
	case manager.Flatpak:
		return r.Flatpak.Uninstall(ctx, pkg)
	case manager.Snap:
		return r.Snap.Uninstall(ctx, pkg)
	case manager.Other:
		return r.Other.Uninstall(ctx, pkg)
	}
	return nil
}

// UninstallOthers removes pkg from every provider except keep and returns
// the providers it was removed from.
func (r *Registry) UninstallOthers(ctx context.Context, pkg *catalog.Package, keep manager.Method) ([]manager.Method, error) {
	var vacated []manager.Method
	for _, m := range manager.Providers {
		if m == keep || !r.InstalledVia(m, pkg) {
			continue
		}
		if err := r.Uninstall(ctx, pkg, m); err != nil {
			return vacated, fmt.Errorf("failed to remove %s from %s: %w", pkg.Key, m, err)
		}
		vacated = append(vacated, m)
	}
	return vacated, nil
}

// HookEnv returns the environment hooks run in.
func (r *Registry) HookEnv() *catalog.HookEnv {
	return &catalog.HookEnv{
		Dist:   r.Dist,
		Repo:   r.Distro,
		Run:    r.run,
		Home:   r.home,
		TmpDir: r.tmpDir,
		Root:   r.Root,
	}
}
