package native

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"loadout/pkg/manager"
	"loadout/pkg/manager/detector"
)

// Release versions baked into the third-party release RPM URLs. Bump these
// when EPEL or Fedora ship a new major release.
const (
	EnterpriseMajorVersion = "9"
	FedoraReleaseVersion   = "42"
)

const (
	epelPackage             = "epel-release"
	rpmFusionFreePackage    = "rpmfusion-free-release"
	rpmFusionNonfreePackage = "rpmfusion-nonfree-release"

	parallelDownloadsKey = "max_parallel_downloads"
)

// SetupOpts selects what Repository Setup configures.
type SetupOpts struct {
	EPEL                 bool
	RPMFusion            bool
	MaxParallelDownloads int
}

// Setup tunes the package manager and enables extra repositories. It only
// acts on the dnf and rpm-ostree dialects and is a no-op when run again.
func (d *Distro) Setup(ctx context.Context, opts SetupOpts) error {
	if d.dist.Dialect == detector.DialectDnf {
		if err := d.ensureParallelDownloads(ctx, opts.MaxParallelDownloads); err != nil {
			return err
		}
	}

	changed := false

	if opts.EPEL && d.dist.Family == detector.FamilyRedHat && d.dist.Dialect == detector.DialectDnf {
		installed, err := d.installRelease(ctx, epelPackage, epelURL())
		if err != nil {
			return err
		}
		if installed {
			if err := d.run.RunSudo(ctx, "dnf", "config-manager", "--set-enabled", "crb"); err != nil {
				return err
			}
			changed = true
		}
	}

	if opts.RPMFusion && (d.dist.Dialect == detector.DialectDnf || d.dist.Dialect == detector.DialectRpmOstree) {
		for _, rel := range []struct{ name, repo string }{
			{rpmFusionFreePackage, "free"},
			{rpmFusionNonfreePackage, "nonfree"},
		} {
			installed, err := d.installRelease(ctx, rel.name, rpmFusionURL(d.dist.Family, rel.repo))
			if err != nil {
				return err
			}
			changed = changed || installed
		}
	}

	if changed {
		return d.UpdateAll(ctx)
	}
	return nil
}

// ensureParallelDownloads appends the parallel download limit to dnf.conf
// unless the key is already present.
func (d *Distro) ensureParallelDownloads(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}

	raw, err := os.ReadFile(d.DNFConfPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", d.DNFConfPath, err)
	}
	if strings.Contains(string(raw), parallelDownloadsKey) {
		return nil
	}

	line := fmt.Sprintf("%s=%d\n", parallelDownloadsKey, n)
	return d.run.RunSudoInput(ctx, line, "tee", "-a", d.DNFConfPath)
}

// installRelease installs a release RPM from url unless name is already
// installed. It reports whether anything was installed.
func (d *Distro) installRelease(ctx context.Context, name, url string) (bool, error) {
	if d.cache.Has(manager.Repository, name) {
		return false, nil
	}
	if err := d.run.RunSudo(ctx, d.dialect.binary(), d.dialect.installArgs(url)...); err != nil {
		return false, fmt.Errorf("failed to install %s: %w", name, err)
	}
	d.cache.Add(manager.Repository, name)
	return true, nil
}

func epelURL() string {
	return "https://dl.fedoraproject.org/pub/epel/epel-release-latest-" + EnterpriseMajorVersion + ".noarch.rpm"
}

func rpmFusionURL(family detector.Family, repo string) string {
	if family == detector.FamilyFedora {
		return fmt.Sprintf("https://mirrors.rpmfusion.org/%s/fedora/rpmfusion-%s-release-%s.noarch.rpm", repo, repo, FedoraReleaseVersion)
	}
	return fmt.Sprintf("https://mirrors.rpmfusion.org/%s/el/rpmfusion-%s-release-%s.noarch.rpm", repo, repo, EnterpriseMajorVersion)
}
