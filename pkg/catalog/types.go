// Package catalog holds the curated, compile-time table of packages loadout
// knows how to install, together with the hooks that run around installs.
package catalog

import (
	"context"
	"path/filepath"
	"strings"

	"loadout/internal/executor"
	"loadout/pkg/manager"
	"loadout/pkg/manager/detector"
)

// Category groups packages in the menu.
type Category string

const (
	Browsers       Category = "Browsers"
	Communication  Category = "Communication"
	Development    Category = "Development"
	Games          Category = "Games"
	Multimedia     Category = "Multimedia"
	Office         Category = "Office"
	Security       Category = "Security"
	System         Category = "System"
	Utilities      Category = "Utilities"
	Virtualization Category = "Virtualization"
)

// Categories lists every category in menu order.
var Categories = []Category{
	Browsers, Communication, Development, Games, Multimedia,
	Office, Security, System, Utilities, Virtualization,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// Desktop is the desktop environment a package is meant for.
type Desktop int

const (
	AnyDesktop Desktop = iota
	Gnome
	KDE
)

// String returns the desktop's display name.
func (d Desktop) String() string {
	switch d {
	case Gnome:
		return "GNOME"
	case KDE:
		return "KDE"
	default:
		return "any"
	}
}

// Present reports whether the desktop is available in env.
func (d Desktop) Present(env detector.Environment) bool {
	switch d {
	case Gnome:
		return env.Gnome
	case KDE:
		return env.KDE
	default:
		return true
	}
}

// Remote names a Flatpak remote.
type Remote string

const (
	Flathub        Remote = "flathub"
	FlathubBeta    Remote = "flathub-beta"
	FedoraFlatpaks Remote = "fedora"
)

// FlatpakRef locates a package on Flatpak. The first remote is the default.
type FlatpakRef struct {
	ID      string
	Remotes []Remote
}

// DefaultRemote returns the first listed remote, or flathub.
func (f *FlatpakRef) DefaultRemote() Remote {
	if len(f.Remotes) == 0 {
		return Flathub
	}
	return f.Remotes[0]
}

// SnapRef locates a package on the Snap store.
type SnapRef struct {
	ID       string
	Official bool   // published by the upstream project
	Classic  bool   // needs --classic
	Channel  string // passed as --channel when set
}

// RepoInstaller is the slice of the distribution provider that hooks use to
// pull in prerequisites. Installs through it update the installed cache.
type RepoInstaller interface {
	InstallOne(ctx context.Context, id string) error
	Refresh(ctx context.Context) error
}

// HookEnv is what a hook can act on.
type HookEnv struct {
	Dist   detector.Distribution
	Repo   RepoInstaller
	Run    executor.Runner
	Home   string
	TmpDir string

	// Root is prefixed to system paths hooks inspect; empty means "/".
	Root string
}

// SystemPath returns p under Root.
func (e *HookEnv) SystemPath(p string) string {
	if e.Root == "" {
		return p
	}
	return filepath.Join(e.Root, p)
}

// Hook runs before or after an install. It receives the method being
// switched to, which is manager.Uninstall when the package is being removed.
// Hooks must be idempotent.
type Hook func(ctx context.Context, env *HookEnv, m manager.Method) error

// Package is one catalog entry.
type Package struct {
	Key      string
	Label    string
	Category Category
	Desktop  Desktop

	// Repo lists the native identifiers per family. A family may map to
	// several identifiers, all of which are installed.
	Repo    map[detector.Family][]string
	Flatpak *FlatpakRef
	Snap    *SnapRef
	Other   bool

	// UserData lists paths relative to $HOME removed on uninstall.
	UserData []string

	PreInstall  Hook
	PostInstall Hook
}

// RepoIDs returns the native identifiers for family.
func (p *Package) RepoIDs(family detector.Family) []string {
	return p.Repo[family]
}
