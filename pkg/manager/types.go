// Package manager provides the provider vocabulary shared by every backend:
// the install method enum and the installed-state cache.
package manager

import (
	"errors"
	"fmt"
)

// ErrNotSupported is returned when a provider has no equivalent for an
// operation, such as autoremove on rpm-ostree.
var ErrNotSupported = errors.New("operation not supported")

// Method identifies the provider a package is installed through. The zero
// value, Uninstall, doubles as the "not installed" status.
type Method int

const (
	Uninstall Method = iota
	Repository
	Flatpak
	Snap
	Other
)

// Providers lists the four providers in precedence order.
var Providers = []Method{Repository, Flatpak, Snap, Other}

// String returns the short identifier used on the command line.
func (m Method) String() string {
	switch m {
	case Repository:
		return "repo"
	case Flatpak:
		return "flatpak"
	case Snap:
		return "snap"
	case Other:
		return "other"
	default:
		return "uninstall"
	}
}

// Label returns the menu label for choosing this method.
func (m Method) Label() string {
	switch m {
	case Repository:
		return "Repository"
	case Flatpak:
		return "Flatpak"
	case Snap:
		return "Snap"
	case Other:
		return "Other"
	default:
		return "Uninstall"
	}
}

// Tag returns the short status tag shown next to a package.
func (m Method) Tag() string {
	switch m {
	case Repository:
		return "[repo]"
	case Flatpak:
		return "[flatpak]"
	case Snap:
		return "[snap]"
	case Other:
		return "[other]"
	default:
		return "[uninstalled]"
	}
}

// IsProvider reports whether m names one of the four providers.
func (m Method) IsProvider() bool {
	return m >= Repository && m <= Other
}

// ParseMethod parses the command-line identifier of a method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "repo", "repository", "native":
		return Repository, nil
	case "flatpak":
		return Flatpak, nil
	case "snap":
		return Snap, nil
	case "other", "script":
		return Other, nil
	case "uninstall", "none":
		return Uninstall, nil
	}
	return Uninstall, fmt.Errorf("unknown install method %q", s)
}
