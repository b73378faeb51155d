package universal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"loadout/internal/executor"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
	"loadout/pkg/manager/detector"
)

// Snap is the confined-snap provider.
type Snap struct {
	binary string
	run    executor.Runner
	cache  *manager.Installed

	// LinkPath is where classic snaps expect /var/lib/snapd/snap to be
	// linked on distributions that do not ship the link.
	LinkPath string
}

// NewSnap creates the Snap provider. Installs and removals are recorded in
// cache under manager.Snap.
func NewSnap(run executor.Runner, cache *manager.Installed) *Snap {
	return &Snap{
		binary:   "snap",
		run:      run,
		cache:    cache,
		LinkPath: "/snap",
	}
}

// Name returns the short identifier.
func (s *Snap) Name() string {
	return "snap"
}

// Available reports whether pkg is published as a snap.
func (s *Snap) Available(pkg *catalog.Package) bool {
	return pkg.Snap != nil && pkg.Snap.ID != ""
}

// Installed reports whether pkg's snap is installed.
func (s *Snap) Installed(pkg *catalog.Package) bool {
	return s.Available(pkg) && s.cache.Has(manager.Snap, pkg.Snap.ID)
}

// InstallArgs builds the "snap install" arguments for ref.
func InstallArgs(ref *catalog.SnapRef) []string {
	args := []string{"install", ref.ID}
	if ref.Classic {
		args = append(args, "--classic")
	}
	if ref.Channel != "" {
		args = append(args, "--channel", ref.Channel)
	}
	return args
}

// Install installs pkg's snap with its confinement and channel.
func (s *Snap) Install(ctx context.Context, pkg *catalog.Package) error {
	if !s.Available(pkg) {
		return fmt.Errorf("%s is not available as a snap", pkg.Key)
	}
	if s.Installed(pkg) {
		return nil
	}
	if err := s.run.RunSudo(ctx, s.binary, InstallArgs(pkg.Snap)...); err != nil {
		return err
	}
	s.cache.Add(manager.Snap, pkg.Snap.ID)
	return nil
}

// Uninstall removes pkg's snap if it is installed.
func (s *Snap) Uninstall(ctx context.Context, pkg *catalog.Package) error {
	if !s.Installed(pkg) {
		return nil
	}
	if err := s.run.RunSudo(ctx, s.binary, "remove", pkg.Snap.ID); err != nil {
		return err
	}
	s.cache.Remove(manager.Snap, pkg.Snap.ID)
	return nil
}

// UpdateAll refreshes every installed snap.
func (s *Snap) UpdateAll(ctx context.Context) error {
	return s.run.RunSudo(ctx, s.binary, "refresh")
}

// Autoremove is not supported; snapd garbage-collects old revisions itself.
func (s *Snap) Autoremove(context.Context) error {
	return manager.ErrNotSupported
}

// ListInstalled returns the installed snap names.
func (s *Snap) ListInstalled(ctx context.Context) ([]string, error) {
	output, err := s.run.Output(ctx, s.binary, "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list snaps: %w", err)
	}
	return parseSnapList(output), nil
}

// Load replaces the cached Snap set with what is installed now.
func (s *Snap) Load(ctx context.Context) error {
	ids, err := s.ListInstalled(ctx)
	if err != nil {
		return err
	}
	s.cache.Replace(manager.Snap, ids)
	return nil
}

// Setup enables snapd on dnf-based distributions, which ship it disabled
// and without the /snap link classic snaps need.
func (s *Snap) Setup(ctx context.Context, dist detector.Distribution) error {
	if dist.Dialect != detector.DialectDnf {
		return nil
	}

	state, _ := s.run.Output(ctx, "systemctl", "is-enabled", "snapd.socket") //nolint:errcheck
	if strings.TrimSpace(state) != "enabled" {
		if err := s.run.RunSudo(ctx, "systemctl", "enable", "--now", "snapd.socket"); err != nil {
			return err
		}
	}

	if _, err := os.Lstat(s.LinkPath); errors.Is(err, fs.ErrNotExist) {
		return s.run.RunSudo(ctx, "ln", "-s", "/var/lib/snapd/snap", s.LinkPath)
	}
	return nil
}

// parseSnapList reads "snap list" output, skipping the header row.
func parseSnapList(output string) []string {
	var ids []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	headerSkipped := false
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !headerSkipped {
			headerSkipped = true
			continue
		}
		ids = append(ids, fields[0])
	}
	return ids
}
