// Package universal implements the cross-distribution providers, Flatpak
// and Snap.
package universal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"loadout/internal/executor"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
)

// ErrUnknownRemote is returned for a Flatpak remote loadout has no URL for.
var ErrUnknownRemote = errors.New("unknown flatpak remote")

var remoteURLs = map[catalog.Remote]string{
	catalog.Flathub:        "https://dl.flathub.org/repo/flathub.flatpakrepo",
	catalog.FlathubBeta:    "https://flathub.org/beta-repo/flathub-beta.flatpakrepo",
	catalog.FedoraFlatpaks: "oci+https://registry.fedoraproject.org",
}

// RemoteURL returns the repository URL for a recognised remote.
func RemoteURL(r catalog.Remote) (string, bool) {
	url, ok := remoteURLs[r]
	return url, ok
}

// Flatpak is the sandboxed-app provider.
type Flatpak struct {
	binary  string
	run     executor.Runner
	cache   *manager.Installed
	remotes map[catalog.Remote]bool
}

// NewFlatpak creates the Flatpak provider. Installs and removals are
// recorded in cache under manager.Flatpak.
func NewFlatpak(run executor.Runner, cache *manager.Installed) *Flatpak {
	return &Flatpak{
		binary:  "flatpak",
		run:     run,
		cache:   cache,
		remotes: make(map[catalog.Remote]bool),
	}
}

// Name returns the short identifier.
func (f *Flatpak) Name() string {
	return "flatpak"
}

// Available reports whether pkg is published as a Flatpak.
func (f *Flatpak) Available(pkg *catalog.Package) bool {
	return pkg.Flatpak != nil && pkg.Flatpak.ID != ""
}

// Installed reports whether pkg's application ID is installed.
func (f *Flatpak) Installed(pkg *catalog.Package) bool {
	return f.Available(pkg) && f.cache.Has(manager.Flatpak, pkg.Flatpak.ID)
}

// EnsureRemote adds a recognised remote if it is not configured yet.
func (f *Flatpak) EnsureRemote(ctx context.Context, r catalog.Remote) error {
	if f.remotes[r] {
		return nil
	}
	url, ok := RemoteURL(r)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRemote, r)
	}
	if err := f.run.Run(ctx, f.binary, "remote-add", "--if-not-exists", string(r), url); err != nil {
		return err
	}
	f.remotes[r] = true
	return nil
}

// Install installs pkg from remote. An empty remote means the package's
// default remote.
func (f *Flatpak) Install(ctx context.Context, pkg *catalog.Package, remote catalog.Remote) error {
	if !f.Available(pkg) {
		return fmt.Errorf("%s is not available as a flatpak", pkg.Key)
	}
	if f.Installed(pkg) {
		return nil
	}
	if remote == "" {
		remote = pkg.Flatpak.DefaultRemote()
	}
	if err := f.EnsureRemote(ctx, remote); err != nil {
		return err
	}
	if err := f.run.Run(ctx, f.binary, "install", string(remote), pkg.Flatpak.ID, "-y"); err != nil {
		return err
	}
	f.cache.Add(manager.Flatpak, pkg.Flatpak.ID)
	return nil
}

// Uninstall removes pkg if it is installed.
func (f *Flatpak) Uninstall(ctx context.Context, pkg *catalog.Package) error {
	if !f.Installed(pkg) {
		return nil
	}
	if err := f.run.Run(ctx, f.binary, "remove", pkg.Flatpak.ID, "-y"); err != nil {
		return err
	}
	f.cache.Remove(manager.Flatpak, pkg.Flatpak.ID)
	return nil
}

// UpdateAll updates every installed application and runtime.
func (f *Flatpak) UpdateAll(ctx context.Context) error {
	return f.run.Run(ctx, f.binary, "update", "-y")
}

// Autoremove removes runtimes no application uses anymore.
func (f *Flatpak) Autoremove(ctx context.Context) error {
	return f.run.Run(ctx, f.binary, "remove", "--unused", "-y")
}

// ListInstalled returns the installed application IDs.
func (f *Flatpak) ListInstalled(ctx context.Context) ([]string, error) {
	output, err := f.run.Output(ctx, f.binary, "list", "--app")
	if err != nil {
		return nil, fmt.Errorf("failed to list flatpaks: %w", err)
	}
	return parseFlatpakList(output), nil
}

// Load replaces the cached Flatpak set with what is installed now.
func (f *Flatpak) Load(ctx context.Context) error {
	ids, err := f.ListInstalled(ctx)
	if err != nil {
		return err
	}
	f.cache.Replace(manager.Flatpak, ids)
	return nil
}

// parseFlatpakList reads tab-separated "Name\tApplication ID\tVersion..." rows.
func parseFlatpakList(output string) []string {
	var ids []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		cols := strings.Split(scanner.Text(), "\t")
		if len(cols) < 2 {
			continue
		}
		if id := strings.TrimSpace(cols[1]); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
