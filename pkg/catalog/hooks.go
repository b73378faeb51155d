package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"loadout/pkg/manager"
	"loadout/pkg/manager/detector"
)

// aptSource is a third-party APT repository.
type aptSource struct {
	keyURL  string
	armored bool   // key needs gpg --dearmor
	keyring string // under /etc/apt/keyrings
	list    string // under /etc/apt/sources.list.d
	line    string // sources.list entry
}

// yumSource is a third-party dnf repository.
type yumSource struct {
	keyURL string
	file   string // under /etc/yum.repos.d
	body   string
}

// thirdPartyRepo is a vendor repository that is added when a package is
// installed from the distribution and removed when it moves elsewhere.
type thirdPartyRepo struct {
	name string
	apt  *aptSource
	yum  *yumSource
}

// repoHook adds r for Repository installs and removes it for every other
// method, including Uninstall.
func repoHook(r thirdPartyRepo) Hook {
	return func(ctx context.Context, env *HookEnv, m manager.Method) error {
		if m == manager.Repository {
			return r.add(ctx, env)
		}
		return r.remove(ctx, env)
	}
}

func (r thirdPartyRepo) add(ctx context.Context, env *HookEnv) error {
	switch env.Dist.Dialect {
	case detector.DialectApt:
		if r.apt == nil {
			return nil
		}
		return r.addApt(ctx, env)
	case detector.DialectDnf, detector.DialectRpmOstree:
		if r.yum == nil {
			return nil
		}
		return r.addYum(ctx, env)
	}
	return nil
}

func (r thirdPartyRepo) addApt(ctx context.Context, env *HookEnv) error {
	src := r.apt
	for _, prereq := range []string{"wget", "gpg"} {
		if err := env.Repo.InstallOne(ctx, prereq); err != nil {
			return fmt.Errorf("failed to install %s for the %s repository: %w", prereq, r.name, err)
		}
	}

	key := filepath.Join(env.TmpDir, r.name+".key")
	if err := env.Run.Run(ctx, "wget", "-qO", key, src.keyURL); err != nil {
		return err
	}
	if src.armored {
		dearmored := filepath.Join(env.TmpDir, r.name+".gpg")
		if err := env.Run.Run(ctx, "gpg", "--dearmor", "--yes", "-o", dearmored, key); err != nil {
			return err
		}
		key = dearmored
	}

	keyring := filepath.Join("/etc/apt/keyrings", src.keyring)
	if err := env.Run.RunSudo(ctx, "install", "-D", "-o", "root", "-g", "root", "-m", "644", key, keyring); err != nil {
		return err
	}
	list := filepath.Join("/etc/apt/sources.list.d", src.list)
	if err := env.Run.RunSudoInput(ctx, src.line+"\n", "tee", list); err != nil {
		return err
	}
	return env.Repo.Refresh(ctx)
}

func (r thirdPartyRepo) addYum(ctx context.Context, env *HookEnv) error {
	src := r.yum
	if err := env.Run.RunSudo(ctx, "rpm", "--import", src.keyURL); err != nil {
		return err
	}
	if err := env.Run.RunSudoInput(ctx, src.body, "tee", filepath.Join("/etc/yum.repos.d", src.file)); err != nil {
		return err
	}
	return env.Repo.Refresh(ctx)
}

// remove deletes whatever repository files exist; nothing runs when the
// repository was never added.
func (r thirdPartyRepo) remove(ctx context.Context, env *HookEnv) error {
	var paths []string
	if r.apt != nil {
		paths = append(paths,
			filepath.Join("/etc/apt/sources.list.d", r.apt.list),
			filepath.Join("/etc/apt/keyrings", r.apt.keyring))
	}
	if r.yum != nil {
		paths = append(paths, filepath.Join("/etc/yum.repos.d", r.yum.file))
	}

	var present []string
	for _, p := range paths {
		if _, err := os.Stat(env.SystemPath(p)); err == nil {
			present = append(present, p)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return env.Run.RunSudo(ctx, "rm", append([]string{"-f"}, present...)...)
}

// writeHomeFile writes content to a path relative to $HOME, creating parent
// directories.
func writeHomeFile(env *HookEnv, rel, content string) error {
	path := filepath.Join(env.Home, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// appendHomeLine appends line to a file under $HOME unless the file
// already contains it.
func appendHomeLine(env *HookEnv, rel, line string) error {
	path := filepath.Join(env.Home, rel)
	raw, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if strings.Contains(string(raw), line) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	prefix := ""
	if len(raw) > 0 && !strings.HasSuffix(string(raw), "\n") {
		prefix = "\n"
	}
	_, err = f.WriteString(prefix + line + "\n")
	return err
}

var vscodeRepo = thirdPartyRepo{
	name: "vscode",
	apt: &aptSource{
		keyURL:  "https://packages.microsoft.com/keys/microsoft.asc",
		armored: true,
		keyring: "packages.microsoft.gpg",
		list:    "vscode.list",
		line:    "deb [arch=amd64,arm64,armhf signed-by=/etc/apt/keyrings/packages.microsoft.gpg] https://packages.microsoft.com/repos/code stable main",
	},
	yum: &yumSource{
		keyURL: "https://packages.microsoft.com/keys/microsoft.asc",
		file:   "vscode.repo",
		body: `[code]
name=Visual Studio Code
baseurl=https://packages.microsoft.com/yumrepos/vscode
enabled=1
gpgcheck=1
gpgkey=https://packages.microsoft.com/keys/microsoft.asc
`,
	},
}

var braveRepo = thirdPartyRepo{
	name: "brave-browser",
	apt: &aptSource{
		keyURL:  "https://brave-browser-apt-release.s3.brave.com/brave-browser-archive-keyring.gpg",
		keyring: "brave-browser-archive-keyring.gpg",
		list:    "brave-browser-release.list",
		line:    "deb [signed-by=/etc/apt/keyrings/brave-browser-archive-keyring.gpg] https://brave-browser-apt-release.s3.brave.com/ stable main",
	},
	yum: &yumSource{
		keyURL: "https://brave-browser-rpm-release.s3.brave.com/brave-core.asc",
		file:   "brave-browser.repo",
		body: `[brave-browser]
name=Brave Browser
baseurl=https://brave-browser-rpm-release.s3.brave.com/$basearch
enabled=1
gpgcheck=1
gpgkey=https://brave-browser-rpm-release.s3.brave.com/brave-core.asc
`,
	},
}

const vscodeSettings = `{
    "editor.fontSize": 14,
    "editor.formatOnSave": true,
    "editor.minimap.enabled": false,
    "editor.rulers": [100],
    "files.trimTrailingWhitespace": true,
    "telemetry.telemetryLevel": "off",
    "workbench.startupEditor": "none"
}
`

// vscodeSettingsPath returns where VS Code reads user settings for m.
func vscodeSettingsPath(m manager.Method) string {
	if m == manager.Flatpak {
		return filepath.Join(".var", "app", "com.visualstudio.code", "config", "Code", "User", "settings.json")
	}
	return filepath.Join(".config", "Code", "User", "settings.json")
}

func vscodePostInstall(_ context.Context, env *HookEnv, m manager.Method) error {
	return writeHomeFile(env, vscodeSettingsPath(m), vscodeSettings)
}

const vimrc = `set nocompatible
syntax on
filetype plugin indent on
set number
set relativenumber
set expandtab
set tabstop=4
set shiftwidth=4
set incsearch
set hlsearch
set mouse=a
`

func vimPostInstall(_ context.Context, env *HookEnv, _ manager.Method) error {
	return writeHomeFile(env, ".vimrc", vimrc)
}

func zoxidePostInstall(_ context.Context, env *HookEnv, _ manager.Method) error {
	return appendHomeLine(env, ".bashrc", `eval "$(zoxide init bash)"`)
}

// steamPreInstall enables the i386 architecture Steam's native package
// depends on.
func steamPreInstall(ctx context.Context, env *HookEnv, m manager.Method) error {
	if m != manager.Repository || env.Dist.Dialect != detector.DialectApt {
		return nil
	}
	archs, err := env.Run.Output(ctx, "dpkg", "--print-foreign-architectures")
	if err != nil {
		return err
	}
	if strings.Contains(archs, "i386") {
		return nil
	}
	if err := env.Run.RunSudo(ctx, "dpkg", "--add-architecture", "i386"); err != nil {
		return err
	}
	return env.Repo.Refresh(ctx)
}

func libvirtPostInstall(ctx context.Context, env *HookEnv, m manager.Method) error {
	if m != manager.Repository {
		return nil
	}
	return env.Run.RunSudo(ctx, "systemctl", "enable", "--now", "libvirtd")
}

func syncthingPostInstall(ctx context.Context, env *HookEnv, m manager.Method) error {
	if m != manager.Repository {
		return nil
	}
	return env.Run.Run(ctx, "systemctl", "--user", "enable", "--now", "syncthing.service")
}
