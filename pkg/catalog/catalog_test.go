package catalog

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"loadout/internal/executor/executortest"
	"loadout/pkg/manager"
	"loadout/pkg/manager/detector"
)

func TestKeysUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range All() {
		if seen[p.Key] {
			t.Errorf("duplicate key %q", p.Key)
		}
		seen[p.Key] = true
	}
	if len(Keys()) != len(All()) {
		t.Errorf("Keys() has %d entries, All() has %d", len(Keys()), len(All()))
	}
}

// The installed-state cache is keyed by store identifier, so two packages
// sharing a snap or flatpak would report each other as installed.
func TestStoreIDsUnique(t *testing.T) {
	snaps := make(map[string]string)
	flatpaks := make(map[string]string)
	for _, p := range All() {
		if p.Snap != nil {
			if other, ok := snaps[p.Snap.ID]; ok {
				t.Errorf("snap %q is shared by %s and %s", p.Snap.ID, other, p.Key)
			}
			snaps[p.Snap.ID] = p.Key
		}
		if p.Flatpak != nil {
			if other, ok := flatpaks[p.Flatpak.ID]; ok {
				t.Errorf("flatpak %q is shared by %s and %s", p.Flatpak.ID, other, p.Key)
			}
			flatpaks[p.Flatpak.ID] = p.Key
		}
	}
}

func TestEveryPackageIsInstallable(t *testing.T) {
	valid := make(map[Category]bool)
	for _, c := range Categories {
		valid[c] = true
	}

	for _, p := range All() {
		if p.Label == "" {
			t.Errorf("%s has no label", p.Key)
		}
		if !valid[p.Category] {
			t.Errorf("%s has unknown category %q", p.Key, p.Category)
		}
		if len(p.Repo) == 0 && p.Flatpak == nil && p.Snap == nil && !p.Other {
			t.Errorf("%s has no provider", p.Key)
		}
		if p.Flatpak != nil && len(p.Flatpak.Remotes) == 0 {
			t.Errorf("%s lists no flatpak remote", p.Key)
		}
		for family, list := range p.Repo {
			if len(list) == 0 {
				t.Errorf("%s has an empty identifier list for %s", p.Key, family)
			}
		}
	}
}

func TestCategories(t *testing.T) {
	if len(Categories) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(Categories))
	}
	if Categories[0] != Browsers || Categories[9] != Virtualization {
		t.Errorf("unexpected category order: %v", Categories)
	}

	c, ok := ParseCategory("multimedia")
	if !ok || c != Multimedia {
		t.Errorf("ParseCategory(multimedia) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("toys"); ok {
		t.Error("ParseCategory(toys) should fail")
	}
}

func TestInCategorySortedByLabel(t *testing.T) {
	for _, c := range Categories {
		pkgs := InCategory(c)
		if len(pkgs) == 0 {
			t.Errorf("category %s is empty", c)
		}
		for i := 1; i < len(pkgs); i++ {
			if pkgs[i-1].Label > pkgs[i].Label {
				t.Errorf("%s: %q listed before %q", c, pkgs[i-1].Label, pkgs[i].Label)
			}
		}
		for _, p := range pkgs {
			if p.Category != c {
				t.Errorf("%s listed under %s", p.Key, c)
			}
		}
	}
}

func TestDesktopPresent(t *testing.T) {
	env := detector.Environment{Gnome: true}
	if !Gnome.Present(env) || KDE.Present(env) || !AnyDesktop.Present(env) {
		t.Error("Desktop.Present mismatch")
	}
}

func TestDefaultRemote(t *testing.T) {
	ref := &FlatpakRef{ID: "x", Remotes: []Remote{FedoraFlatpaks, Flathub}}
	if ref.DefaultRemote() != FedoraFlatpaks {
		t.Errorf("DefaultRemote() = %s", ref.DefaultRemote())
	}
	if (&FlatpakRef{ID: "x"}).DefaultRemote() != Flathub {
		t.Error("missing remotes should default to flathub")
	}
}

// fakeRepo records prerequisite installs in the same log as the runner.
type fakeRepo struct {
	rec *executortest.Recorder
}

func (f fakeRepo) InstallOne(ctx context.Context, id string) error {
	return f.rec.RunSudo(ctx, "install-one", id)
}

func (f fakeRepo) Refresh(ctx context.Context) error {
	return f.rec.RunSudo(ctx, "refresh")
}

func newHookEnv(t *testing.T, dist detector.Distribution) (*HookEnv, *executortest.Recorder) {
	t.Helper()
	rec := executortest.New()
	return &HookEnv{
		Dist:   dist,
		Repo:   fakeRepo{rec},
		Run:    rec,
		Home:   t.TempDir(),
		TmpDir: "/tmp/loadout",
		Root:   t.TempDir(),
	}, rec
}

var (
	debianDist = detector.Distribution{Family: detector.FamilyDebian, Dialect: detector.DialectApt}
	fedoraDist = detector.Distribution{Family: detector.FamilyFedora, Dialect: detector.DialectDnf}
)

func TestVSCodeRepoOnApt(t *testing.T) {
	env, rec := newHookEnv(t, debianDist)
	code, _ := Lookup("code")

	if err := code.PreInstall(context.Background(), env, manager.Repository); err != nil {
		t.Fatalf("PreInstall() error: %v", err)
	}

	want := []string{
		"sudo install-one wget",
		"sudo install-one gpg",
		"wget -qO /tmp/loadout/vscode.key https://packages.microsoft.com/keys/microsoft.asc",
		"gpg --dearmor --yes -o /tmp/loadout/vscode.gpg /tmp/loadout/vscode.key",
		"sudo install -D -o root -g root -m 644 /tmp/loadout/vscode.gpg /etc/apt/keyrings/packages.microsoft.gpg",
		"sudo tee /etc/apt/sources.list.d/vscode.list",
		"sudo refresh",
	}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands =\n%v\nwant\n%v", strings.Join(rec.Commands, "\n"), strings.Join(want, "\n"))
	}
	if line := rec.Inputs["sudo tee /etc/apt/sources.list.d/vscode.list"]; !strings.Contains(line, "packages.microsoft.com/repos/code") {
		t.Errorf("sources line = %q", line)
	}
}

func TestVSCodeRepoOnDnf(t *testing.T) {
	env, rec := newHookEnv(t, fedoraDist)
	code, _ := Lookup("code")

	if err := code.PreInstall(context.Background(), env, manager.Repository); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"sudo rpm --import https://packages.microsoft.com/keys/microsoft.asc",
		"sudo tee /etc/yum.repos.d/vscode.repo",
		"sudo refresh",
	}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands = %v, want %v", rec.Commands, want)
	}
}

func TestRepoHookRemovesOnlyExistingFiles(t *testing.T) {
	env, rec := newHookEnv(t, debianDist)
	code, _ := Lookup("code")
	ctx := context.Background()

	// Nothing was ever added: nothing to remove.
	if err := code.PreInstall(ctx, env, manager.Flatpak); err != nil {
		t.Fatal(err)
	}
	if len(rec.Commands) != 0 {
		t.Fatalf("expected no commands, got %v", rec.Commands)
	}

	list := env.SystemPath("/etc/apt/sources.list.d/vscode.list")
	if err := os.MkdirAll(filepath.Dir(list), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(list, []byte("deb x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := code.PreInstall(ctx, env, manager.Uninstall); err != nil {
		t.Fatal(err)
	}
	want := []string{"sudo rm -f /etc/apt/sources.list.d/vscode.list"}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands = %v, want %v", rec.Commands, want)
	}
}

func TestVSCodeSettings(t *testing.T) {
	env, _ := newHookEnv(t, debianDist)
	code, _ := Lookup("code")

	for _, m := range []manager.Method{manager.Repository, manager.Flatpak} {
		if err := code.PostInstall(context.Background(), env, m); err != nil {
			t.Fatal(err)
		}
		raw, err := os.ReadFile(filepath.Join(env.Home, vscodeSettingsPath(m)))
		if err != nil {
			t.Fatalf("%s: settings not written: %v", m, err)
		}
		if !strings.Contains(string(raw), "editor.formatOnSave") {
			t.Errorf("%s: unexpected settings %s", m, raw)
		}
	}
	if vscodeSettingsPath(manager.Repository) != ".config/Code/User/settings.json" {
		t.Errorf("unexpected path %s", vscodeSettingsPath(manager.Repository))
	}
}

func TestZoxideAppendIsIdempotent(t *testing.T) {
	env, _ := newHookEnv(t, debianDist)
	zoxide, _ := Lookup("zoxide")
	bashrc := filepath.Join(env.Home, ".bashrc")
	if err := os.WriteFile(bashrc, []byte("alias ll='ls -l'"), 0644); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := zoxide.PostInstall(context.Background(), env, manager.Repository); err != nil {
			t.Fatal(err)
		}
	}

	raw, err := os.ReadFile(bashrc)
	if err != nil {
		t.Fatal(err)
	}
	want := "alias ll='ls -l'\neval \"$(zoxide init bash)\"\n"
	if string(raw) != want {
		t.Errorf(".bashrc = %q, want %q", raw, want)
	}
}

func TestSteamEnablesI386Once(t *testing.T) {
	env, rec := newHookEnv(t, debianDist)
	steam, _ := Lookup("steam")
	ctx := context.Background()

	if err := steam.PreInstall(ctx, env, manager.Repository); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"dpkg --print-foreign-architectures",
		"sudo dpkg --add-architecture i386",
		"sudo refresh",
	}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands = %v, want %v", rec.Commands, want)
	}

	rec.Reset()
	rec.Outputs["dpkg --print-foreign-architectures"] = "i386\n"
	if err := steam.PreInstall(ctx, env, manager.Repository); err != nil {
		t.Fatal(err)
	}
	if len(rec.Mutations()) != 0 {
		t.Errorf("second run should do nothing, got %v", rec.Mutations())
	}

	rec.Reset()
	if err := steam.PreInstall(ctx, env, manager.Flatpak); err != nil {
		t.Fatal(err)
	}
	if len(rec.Commands) != 0 {
		t.Errorf("flatpak installs need no i386, got %v", rec.Commands)
	}
}
