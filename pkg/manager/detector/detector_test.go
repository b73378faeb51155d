package detector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"loadout/internal/executor/executortest"
)

const (
	ubuntuRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
ID=ubuntu
ID_LIKE=debian
`
	mintRelease = `NAME="Linux Mint"
VERSION="22 (Wilma)"
ID=linuxmint
ID_LIKE="ubuntu debian"
PRETTY_NAME="Linux Mint 22"
UBUNTU_CODENAME=noble
`
	silverblueRelease = `NAME="Fedora Linux"
VERSION="41.20241105.0 (Silverblue)"
ID=fedora
VARIANT="Silverblue"
VARIANT_ID=silverblue
`
	almaRelease = `NAME="AlmaLinux"
VERSION="9.4 (Seafoam Ocelot)"
ID="almalinux"
ID_LIKE="rhel centos fedora"
`
)

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		name    string
		content string
		family  Family
		dialect Dialect
	}{
		{"arch", `NAME="Arch Linux"` + "\nID=arch\n", FamilyArch, DialectPacman},
		{"alma", almaRelease, FamilyRedHat, DialectDnf},
		{"centos", `NAME="CentOS Stream"`, FamilyRedHat, DialectDnf},
		{"debian", `PRETTY_NAME="Debian GNU/Linux 12 (bookworm)"`, FamilyDebian, DialectApt},
		{"silverblue", silverblueRelease, FamilyFedora, DialectRpmOstree},
		{"fedora", `NAME="Fedora Linux"` + "\nVERSION_ID=41\n", FamilyFedora, DialectDnf},
		{"mint", mintRelease, FamilyUbuntu, DialectApt},
		{"ubuntu", ubuntuRelease, FamilyUbuntu, DialectApt},
		{"rhel", `NAME="Red Hat Enterprise Linux"`, FamilyRedHat, DialectDnf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := ParseDistribution(tt.content)
			if err != nil {
				t.Fatalf("ParseDistribution() error: %v", err)
			}
			if dist.Family != tt.family {
				t.Errorf("Family = %s, want %s", dist.Family, tt.family)
			}
			if dist.Dialect != tt.dialect {
				t.Errorf("Dialect = %s, want %s", dist.Dialect, tt.dialect)
			}
		})
	}
}

func TestParseDistributionUnsupported(t *testing.T) {
	_, err := ParseDistribution("NAME=\"Gentoo\"\nID=gentoo\n")
	if !errors.Is(err, ErrUnsupportedDistribution) {
		t.Errorf("error = %v, want ErrUnsupportedDistribution", err)
	}
}

func TestDetectDistribution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(ubuntuRelease), 0644); err != nil {
		t.Fatal(err)
	}

	dist, err := DetectDistribution(path)
	if err != nil {
		t.Fatalf("DetectDistribution() error: %v", err)
	}
	if dist.Marker != "Ubuntu" {
		t.Errorf("Marker = %s, want Ubuntu", dist.Marker)
	}

	if _, err := DetectDistribution(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("DetectDistribution() on a missing file should error")
	}
}

func TestProbeEnvironment(t *testing.T) {
	rec := executortest.New()
	rec.Missing["plasmashell"] = true
	rec.Missing["snap"] = true

	env := ProbeEnvironment(context.Background(), rec)

	if !env.Gnome || env.KDE || !env.Flatpak || env.Snap {
		t.Errorf("ProbeEnvironment() = %+v", env)
	}
	if got := env.Desktops(); len(got) != 1 || got[0] != "GNOME" {
		t.Errorf("Desktops() = %v", got)
	}
	if len(rec.Commands) != 4 {
		t.Errorf("expected 4 probes, got %v", rec.Commands)
	}
}
