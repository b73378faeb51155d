// Package script is the provider for packages whose canonical install is a
// vendor script rather than a package manager.
package script

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"loadout/internal/executor"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
)

// vendor describes how one package manages itself.
type vendor struct {
	install   string
	uninstall func(home string) []string
	update    func(home string) []string
	probe     func(home string) string
}

var vendors = map[string]vendor{
	"rust": {
		install: "curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y",
		uninstall: func(home string) []string {
			return []string{filepath.Join(home, ".cargo", "bin", "rustup"), "self", "uninstall", "-y"}
		},
		update: func(home string) []string {
			return []string{filepath.Join(home, ".cargo", "bin", "rustup"), "update"}
		},
		probe: func(home string) string {
			return filepath.Join(home, ".cargo", "bin", "rustup")
		},
	},
	"deno": {
		install: "curl -fsSL https://deno.land/install.sh | sh -s -- -y",
		uninstall: func(home string) []string {
			return []string{"rm", "-rf", filepath.Join(home, ".deno")}
		},
		update: func(home string) []string {
			return []string{filepath.Join(home, ".deno", "bin", "deno"), "upgrade"}
		},
		probe: func(home string) string {
			return filepath.Join(home, ".deno", "bin", "deno")
		},
	},
}

// Keys returns the package keys this provider can install, sorted.
func Keys() []string {
	keys := make([]string, 0, len(vendors))
	for k := range vendors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Script is the "other" provider. The cache is keyed by package key.
type Script struct {
	run   executor.Runner
	cache *manager.Installed
	home  string
}

// New creates the provider. Scripts install into home.
func New(run executor.Runner, cache *manager.Installed, home string) *Script {
	return &Script{run: run, cache: cache, home: home}
}

// Name returns the short identifier.
func (s *Script) Name() string {
	return "other"
}

// Available reports whether pkg is marked Other and has a known script.
func (s *Script) Available(pkg *catalog.Package) bool {
	_, ok := vendors[pkg.Key]
	return pkg.Other && ok
}

// Installed reports whether pkg was found by its probe or installed here.
func (s *Script) Installed(pkg *catalog.Package) bool {
	return s.Available(pkg) && s.cache.Has(manager.Other, pkg.Key)
}

// Install runs the vendor's install script.
func (s *Script) Install(ctx context.Context, pkg *catalog.Package) error {
	v, ok := vendors[pkg.Key]
	if !ok || !pkg.Other {
		return fmt.Errorf("%s has no install script", pkg.Key)
	}
	if s.Installed(pkg) {
		return nil
	}
	if err := s.run.Run(ctx, "sh", "-c", v.install); err != nil {
		return err
	}
	s.cache.Add(manager.Other, pkg.Key)
	return nil
}

// Uninstall runs the vendor's self-uninstall.
func (s *Script) Uninstall(ctx context.Context, pkg *catalog.Package) error {
	if !s.Installed(pkg) {
		return nil
	}
	argv := vendors[pkg.Key].uninstall(s.home)
	if err := s.run.Run(ctx, argv[0], argv[1:]...); err != nil {
		return err
	}
	s.cache.Remove(manager.Other, pkg.Key)
	return nil
}

// UpdateAll runs each installed tool's self-update.
func (s *Script) UpdateAll(ctx context.Context) error {
	for _, key := range s.cache.IDs(manager.Other) {
		v, ok := vendors[key]
		if !ok {
			continue
		}
		argv := v.update(s.home)
		if err := s.run.Run(ctx, argv[0], argv[1:]...); err != nil {
			return fmt.Errorf("failed to update %s: %w", key, err)
		}
	}
	return nil
}

// Autoremove is not supported by vendor scripts.
func (s *Script) Autoremove(context.Context) error {
	return manager.ErrNotSupported
}

// ListInstalled probes each tool's own binary with --version.
func (s *Script) ListInstalled(ctx context.Context) ([]string, error) {
	var keys []string
	for _, key := range Keys() {
		if _, err := s.run.Output(ctx, vendors[key].probe(s.home), "--version"); err == nil {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Load replaces the cached Other set with what the probes find.
func (s *Script) Load(ctx context.Context) error {
	keys, err := s.ListInstalled(ctx)
	if err != nil {
		return err
	}
	s.cache.Replace(manager.Other, keys)
	return nil
}
