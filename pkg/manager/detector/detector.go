// Package detector handles distribution and desktop environment detection.
package detector

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// OSReleasePath is where the distribution identification file lives.
const OSReleasePath = "/etc/os-release"

// ErrUnsupportedDistribution is returned when os-release names none of the
// recognised distributions.
var ErrUnsupportedDistribution = errors.New("unsupported distribution")

// Family is the repository family a distribution draws packages from.
type Family string

const (
	FamilyArch   Family = "arch"
	FamilyDebian Family = "debian"
	FamilyFedora Family = "fedora"
	FamilyRedHat Family = "redhat"
	FamilyUbuntu Family = "ubuntu"
)

// Families lists every family in display order.
var Families = []Family{FamilyArch, FamilyDebian, FamilyFedora, FamilyRedHat, FamilyUbuntu}

// Dialect is the command-line dialect of the native package manager.
type Dialect string

const (
	DialectApt       Dialect = "apt"
	DialectDnf       Dialect = "dnf"
	DialectPacman    Dialect = "pacman"
	DialectRpmOstree Dialect = "rpm-ostree"
)

// Distribution pairs a repository family with its package-manager dialect.
type Distribution struct {
	Family  Family
	Dialect Dialect
	Marker  string // os-release text that identified it
}

// String returns a short human-readable description.
func (d Distribution) String() string {
	return fmt.Sprintf("%s (%s family, %s)", d.Marker, d.Family, d.Dialect)
}

// distroMarkers is searched in order; the first marker found wins. Silverblue
// must precede Fedora and Mint must precede Ubuntu since their os-release
// files mention both.
var distroMarkers = []struct {
	marker  string
	family  Family
	dialect Dialect
}{
	{"Arch", FamilyArch, DialectPacman},
	{"Alma", FamilyRedHat, DialectDnf},
	{"CentOS", FamilyRedHat, DialectDnf},
	{"Debian", FamilyDebian, DialectApt},
	{"Silverblue", FamilyFedora, DialectRpmOstree},
	{"Fedora", FamilyFedora, DialectDnf},
	{"Mint", FamilyUbuntu, DialectApt},
	{"Ubuntu", FamilyUbuntu, DialectApt},
	{"Red Hat", FamilyRedHat, DialectDnf},
}

// ParseDistribution identifies the distribution from os-release content.
func ParseDistribution(osRelease string) (Distribution, error) {
	for _, m := range distroMarkers {
		if strings.Contains(osRelease, m.marker) {
			return Distribution{Family: m.family, Dialect: m.dialect, Marker: m.marker}, nil
		}
	}
	return Distribution{}, ErrUnsupportedDistribution
}

// DetectDistribution reads the os-release file at path and identifies the
// distribution.
func DetectDistribution(path string) (Distribution, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Distribution{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseDistribution(string(raw))
}
