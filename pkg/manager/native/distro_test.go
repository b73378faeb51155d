package native

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"loadout/internal/executor"
	"loadout/internal/executor/executortest"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
	"loadout/pkg/manager/detector"
)

var (
	fedora     = detector.Distribution{Family: detector.FamilyFedora, Dialect: detector.DialectDnf, Marker: "Fedora"}
	alma       = detector.Distribution{Family: detector.FamilyRedHat, Dialect: detector.DialectDnf, Marker: "Alma"}
	silverblue = detector.Distribution{Family: detector.FamilyFedora, Dialect: detector.DialectRpmOstree, Marker: "Silverblue"}
	debian     = detector.Distribution{Family: detector.FamilyDebian, Dialect: detector.DialectApt, Marker: "Debian"}
	ubuntu     = detector.Distribution{Family: detector.FamilyUbuntu, Dialect: detector.DialectApt, Marker: "Ubuntu"}
	arch       = detector.Distribution{Family: detector.FamilyArch, Dialect: detector.DialectPacman, Marker: "Arch"}
)

func newDistro(t *testing.T, dist detector.Distribution) (*Distro, *executortest.Recorder, *manager.Installed) {
	t.Helper()
	rec := executortest.New()
	cache := manager.NewInstalled()
	d, err := New(dist, rec, cache)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	d.DNFConfPath = filepath.Join(t.TempDir(), "dnf.conf")
	return d, rec, cache
}

func lookup(t *testing.T, key string) *catalog.Package {
	t.Helper()
	pkg, ok := catalog.Lookup(key)
	if !ok {
		t.Fatalf("catalog has no %q", key)
	}
	return pkg
}

func TestNewUnsupportedDialect(t *testing.T) {
	_, err := New(detector.Distribution{Dialect: "zypper"}, executortest.New(), manager.NewInstalled())
	if !errors.Is(err, detector.ErrUnsupportedDistribution) {
		t.Errorf("New() error = %v, want ErrUnsupportedDistribution", err)
	}
}

func TestInstallVLCOnFedora(t *testing.T) {
	d, rec, cache := newDistro(t, fedora)
	vlc := lookup(t, "vlc")

	if !d.Available(vlc) {
		t.Fatal("vlc should be available on Fedora")
	}
	if err := d.Install(context.Background(), vlc); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	want := []string{"sudo dnf install vlc -y"}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands = %v, want %v", rec.Commands, want)
	}
	if !d.Installed(vlc) {
		t.Error("vlc should be installed via the distribution")
	}
	if !cache.Has(manager.Repository, "vlc") {
		t.Error("cache should contain vlc")
	}
}

func TestInstallOneSkipsCached(t *testing.T) {
	d, rec, cache := newDistro(t, debian)
	cache.Add(manager.Repository, "wget")

	if err := d.InstallOne(context.Background(), "wget"); err != nil {
		t.Fatal(err)
	}
	if err := d.UninstallOne(context.Background(), "gpg"); err != nil {
		t.Fatal(err)
	}
	if len(rec.Commands) != 0 {
		t.Errorf("expected no commands, got %v", rec.Commands)
	}
}

func TestInstallFailureLeavesCache(t *testing.T) {
	d, rec, cache := newDistro(t, ubuntu)
	rec.Failures["sudo apt install vlc -Vy"] = &executor.CommandError{Program: "apt", ExitCode: 100}

	err := d.InstallOne(context.Background(), "vlc")
	var cmdErr *executor.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("InstallOne() error = %v, want *CommandError", err)
	}
	if cache.Has(manager.Repository, "vlc") {
		t.Error("failed install must not be cached")
	}
}

func TestInstalledNeedsEveryID(t *testing.T) {
	d, _, cache := newDistro(t, fedora)
	pkg := &catalog.Package{Key: "toolchain", Repo: map[detector.Family][]string{
		detector.FamilyFedora: {"gcc", "make"},
	}}

	cache.Add(manager.Repository, "gcc")
	if d.Installed(pkg) {
		t.Error("partially installed package should not report installed")
	}
	cache.Add(manager.Repository, "make")
	if !d.Installed(pkg) {
		t.Error("package should report installed")
	}

	empty := &catalog.Package{Key: "none"}
	if d.Available(empty) || d.Installed(empty) {
		t.Error("package without identifiers is neither available nor installed")
	}
}

func TestDialectCommandLines(t *testing.T) {
	tests := []struct {
		dist      detector.Distribution
		install   string
		uninstall string
		refresh   string
		update    []string
	}{
		{debian, "sudo apt install htop -Vy", "sudo apt remove htop -Vy", "sudo apt update",
			[]string{"sudo apt update", "sudo apt upgrade -Vy"}},
		{fedora, "sudo dnf install htop -y", "sudo dnf remove htop -y", "sudo dnf makecache",
			[]string{"sudo dnf upgrade --refresh -y"}},
		{arch, "sudo pacman -S --noconfirm --needed htop", "sudo pacman -Rsun --noconfirm htop", "sudo pacman -Sy",
			[]string{"sudo pacman -Syu --noconfirm"}},
		{silverblue, "sudo rpm-ostree install htop -y", "sudo rpm-ostree uninstall htop -y", "sudo rpm-ostree refresh-md",
			[]string{"sudo rpm-ostree upgrade"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.dist.Dialect), func(t *testing.T) {
			d, rec, _ := newDistro(t, tt.dist)
			ctx := context.Background()

			if err := d.InstallOne(ctx, "htop"); err != nil {
				t.Fatal(err)
			}
			if err := d.UninstallOne(ctx, "htop"); err != nil {
				t.Fatal(err)
			}
			if err := d.Refresh(ctx); err != nil {
				t.Fatal(err)
			}
			want := []string{tt.install, tt.uninstall, tt.refresh}
			if !reflect.DeepEqual(rec.Commands, want) {
				t.Errorf("commands = %v, want %v", rec.Commands, want)
			}

			rec.Reset()
			if err := d.UpdateAll(ctx); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(rec.Commands, tt.update) {
				t.Errorf("update commands = %v, want %v", rec.Commands, tt.update)
			}
		})
	}
}

func TestPacmanAutoremoveOrphans(t *testing.T) {
	d, rec, _ := newDistro(t, arch)
	rec.Outputs["pacman -Qdtq"] = "a\nb\n"

	if err := d.Autoremove(context.Background()); err != nil {
		t.Fatalf("Autoremove() error: %v", err)
	}

	want := []string{"pacman -Qdtq", "sudo pacman -Rsun a b --noconfirm"}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands = %v, want %v", rec.Commands, want)
	}
}

func TestPacmanAutoremoveNoOrphans(t *testing.T) {
	d, rec, _ := newDistro(t, arch)
	rec.Failures["pacman -Qdtq"] = &executor.CommandError{Program: "pacman", ExitCode: 1}

	if err := d.Autoremove(context.Background()); err != nil {
		t.Fatalf("Autoremove() error: %v", err)
	}
	if len(rec.Commands) != 1 {
		t.Errorf("only the orphan query should run, got %v", rec.Commands)
	}
}

func TestPacmanInstallClassifiesErrors(t *testing.T) {
	d, rec, _ := newDistro(t, arch)
	rec.Failures["sudo pacman -S --noconfirm --needed nope"] = &executor.CommandError{
		Program:  "pacman",
		ExitCode: 1,
		Stderr:   "error: target not found: nope\n",
	}

	err := d.InstallOne(context.Background(), "nope")
	pacErr, ok := AsPacmanError(err)
	if !ok {
		t.Fatalf("error = %v, want *PacmanError", err)
	}
	if pacErr.ErrorType != PacmanErrorPackageNotFound {
		t.Errorf("ErrorType = %v", pacErr.ErrorType)
	}
	var cmdErr *executor.CommandError
	if !errors.As(err, &cmdErr) {
		t.Error("the command error should stay in the chain")
	}
}

func TestAutoremoveCommands(t *testing.T) {
	tests := []struct {
		dist detector.Distribution
		want string
	}{
		{debian, "sudo apt autoremove -Vy"},
		{alma, "sudo dnf autoremove -y"},
	}
	for _, tt := range tests {
		d, rec, _ := newDistro(t, tt.dist)
		if err := d.Autoremove(context.Background()); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(rec.Commands, []string{tt.want}) {
			t.Errorf("%s: commands = %v, want %s", tt.dist.Dialect, rec.Commands, tt.want)
		}
	}
}

func TestRpmOstreeAutoremoveUnsupported(t *testing.T) {
	d, rec, _ := newDistro(t, silverblue)
	if err := d.Autoremove(context.Background()); !errors.Is(err, manager.ErrNotSupported) {
		t.Errorf("Autoremove() error = %v, want ErrNotSupported", err)
	}
	if len(rec.Commands) != 0 {
		t.Errorf("nothing should run, got %v", rec.Commands)
	}
}

func TestParseInstalled(t *testing.T) {
	tests := []struct {
		name   string
		dist   detector.Distribution
		output string
		want   []string
	}{
		{
			name: "apt",
			dist: ubuntu,
			output: "Listing... Done\n" +
				"vlc/noble,now 3.0.20-3build6 amd64 [installed]\n" +
				"wget/noble-updates,now 1.21.4-1ubuntu4.1 amd64 [installed,automatic]\n",
			want: []string{"vlc", "wget"},
		},
		{
			name: "dnf",
			dist: fedora,
			output: "Installed Packages\n" +
				"vlc.x86_64                 1:3.0.21-1.fc41       @rpmfusion-free\n" +
				"python3.12.x86_64          3.12.7-1.fc41         @updates\n" +
				"some-really-long-package-name.noarch\n" +
				"                           1.0-1.fc41            @fedora\n",
			want: []string{"vlc", "python3.12", "some-really-long-package-name"},
		},
		{
			name:   "pacman",
			dist:   arch,
			output: "vlc 3.0.21-11\nzoxide 0.9.6-1\n",
			want:   []string{"vlc", "zoxide"},
		},
		{
			name:   "rpm-ostree",
			dist:   silverblue,
			output: "firefox-131.0-1.fc41.x86_64\npython3-libs-3.13.0-1.fc41.x86_64\nrpmfusion-free-release-41-1.noarch\n",
			want:   []string{"firefox", "python3-libs", "rpmfusion-free-release"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec, cache := newDistro(t, tt.dist)
			name, args := d.dialect.listCommand()
			rec.Outputs[executortest.Line(name, args...)] = tt.output

			if err := d.Load(context.Background()); err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			for _, id := range tt.want {
				if !cache.Has(manager.Repository, id) {
					t.Errorf("cache is missing %q (have %v)", id, cache.IDs(manager.Repository))
				}
			}
			if len(cache.IDs(manager.Repository)) != len(tt.want) {
				t.Errorf("cache = %v, want %v", cache.IDs(manager.Repository), tt.want)
			}
		})
	}
}

func TestListInstalledFailure(t *testing.T) {
	d, rec, _ := newDistro(t, fedora)
	rec.Failures["dnf list installed"] = &executor.CommandError{Program: "dnf", ExitCode: 1}

	if _, err := d.ListInstalled(context.Background()); err == nil {
		t.Error("ListInstalled() should fail")
	}
}

// Installing and then uninstalling any package leaves the cache as it was.
func TestRoundTripLeavesCacheUnchanged(t *testing.T) {
	for _, dist := range []detector.Distribution{fedora, alma, silverblue, debian, ubuntu, arch} {
		for _, pkg := range catalog.All() {
			if len(pkg.RepoIDs(dist.Family)) == 0 {
				continue
			}
			d, _, cache := newDistro(t, dist)
			cache.Add(manager.Repository, "unrelated")
			before := cache.IDs(manager.Repository)

			ctx := context.Background()
			if err := d.Install(ctx, pkg); err != nil {
				t.Fatal(err)
			}
			if err := d.Uninstall(ctx, pkg); err != nil {
				t.Fatal(err)
			}
			if after := cache.IDs(manager.Repository); !reflect.DeepEqual(before, after) {
				t.Errorf("%s on %s: cache %v -> %v", pkg.Key, dist.Dialect, before, after)
			}
		}
	}
}

func TestSetupFedora(t *testing.T) {
	d, rec, _ := newDistro(t, fedora)
	ctx := context.Background()
	opts := SetupOpts{EPEL: true, RPMFusion: true, MaxParallelDownloads: 10}

	if err := d.Setup(ctx, opts); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	want := []string{
		"sudo tee -a " + d.DNFConfPath,
		"sudo dnf install " + rpmFusionURL(detector.FamilyFedora, "free") + " -y",
		"sudo dnf install " + rpmFusionURL(detector.FamilyFedora, "nonfree") + " -y",
		"sudo dnf upgrade --refresh -y",
	}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands = %v, want %v", rec.Commands, want)
	}
	if got := rec.Inputs["sudo tee -a "+d.DNFConfPath]; got != "max_parallel_downloads=10\n" {
		t.Errorf("tee input = %q", got)
	}

	// What tee would have written.
	if err := os.WriteFile(d.DNFConfPath, []byte("[main]\nmax_parallel_downloads=10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rec.Reset()
	if err := d.Setup(ctx, opts); err != nil {
		t.Fatalf("second Setup() error: %v", err)
	}
	if len(rec.Commands) != 0 {
		t.Errorf("second run should be a no-op, got %v", rec.Commands)
	}
}

func TestSetupEPELOnRedHat(t *testing.T) {
	d, rec, cache := newDistro(t, alma)
	if err := os.WriteFile(d.DNFConfPath, []byte("max_parallel_downloads=20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := d.Setup(context.Background(), SetupOpts{EPEL: true, MaxParallelDownloads: 10}); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"sudo dnf install " + epelURL() + " -y",
		"sudo dnf config-manager --set-enabled crb",
		"sudo dnf upgrade --refresh -y",
	}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands = %v, want %v", rec.Commands, want)
	}
	if !cache.Has(manager.Repository, "epel-release") {
		t.Error("epel-release should be cached by package name")
	}
}

func TestSetupApt(t *testing.T) {
	d, rec, _ := newDistro(t, debian)
	if err := d.Setup(context.Background(), SetupOpts{EPEL: true, RPMFusion: true, MaxParallelDownloads: 10}); err != nil {
		t.Fatal(err)
	}
	if len(rec.Commands) != 0 {
		t.Errorf("apt has nothing to set up, got %v", rec.Commands)
	}
}

func TestStripVersion(t *testing.T) {
	tests := map[string]string{
		"firefox-131.0-1.fc41.x86_64":     "firefox",
		"gpg-pubkey-a15b79cc-63d04c2c":    "gpg-pubkey-a15b79cc",
		"xorg-x11-server-Xwayland-24.1.4": "xorg-x11-server-Xwayland",
		"noversion":                       "noversion",
	}
	for in, want := range tests {
		if got := stripVersion(in); got != want {
			t.Errorf("stripVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
