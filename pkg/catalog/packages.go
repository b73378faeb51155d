package catalog

import "loadout/pkg/manager/detector"

const (
	arch   = detector.FamilyArch
	debian = detector.FamilyDebian
	fedora = detector.FamilyFedora
	redhat = detector.FamilyRedHat
	ubuntu = detector.FamilyUbuntu
)

type ids = map[detector.Family][]string

// everywhere maps every family to the same identifiers.
func everywhere(names ...string) ids {
	m := make(ids, len(detector.Families))
	for _, f := range detector.Families {
		m[f] = names
	}
	return m
}

// except is everywhere minus the listed families.
func except(names []string, skip ...detector.Family) ids {
	m := everywhere(names...)
	for _, f := range skip {
		delete(m, f)
	}
	return m
}

func flathub(id string) *FlatpakRef {
	return &FlatpakRef{ID: id, Remotes: []Remote{Flathub}}
}

func snap(id string) *SnapRef {
	return &SnapRef{ID: id}
}

var packages = []Package{
	// Browsers
	{
		Key: "firefox", Label: "Firefox", Category: Browsers,
		Repo: ids{
			arch: {"firefox"}, debian: {"firefox-esr"}, fedora: {"firefox"},
			redhat: {"firefox"}, ubuntu: {"firefox"},
		},
		Flatpak: &FlatpakRef{ID: "org.mozilla.firefox", Remotes: []Remote{Flathub, FedoraFlatpaks}},
		Snap:    &SnapRef{ID: "firefox", Official: true},
	},
	{
		Key: "firefox-esr", Label: "Firefox ESR", Category: Browsers,
		Repo: ids{debian: {"firefox-esr"}},
	},
	{
		Key: "chromium", Label: "Chromium", Category: Browsers,
		Repo:    ids{arch: {"chromium"}, debian: {"chromium"}, fedora: {"chromium"}},
		Flatpak: flathub("org.chromium.Chromium"),
		Snap:    snap("chromium"),
	},
	{
		Key: "brave", Label: "Brave", Category: Browsers,
		Repo:       ids{debian: {"brave-browser"}, fedora: {"brave-browser"}, redhat: {"brave-browser"}, ubuntu: {"brave-browser"}},
		Flatpak:    flathub("com.brave.Browser"),
		Snap:       &SnapRef{ID: "brave", Official: true},
		PreInstall: repoHook(braveRepo),
	},
	{
		Key: "torbrowser-launcher", Label: "Tor Browser", Category: Browsers,
		Repo:    except([]string{"torbrowser-launcher"}, redhat),
		Flatpak: flathub("org.torproject.torbrowser-launcher"),
	},

	// Communication
	{
		Key: "discord", Label: "Discord", Category: Communication,
		Repo:     ids{arch: {"discord"}},
		Flatpak:  flathub("com.discordapp.Discord"),
		Snap:     snap("discord"),
		UserData: []string{".config/discord"},
	},
	{
		Key: "signal", Label: "Signal", Category: Communication,
		Repo:     ids{arch: {"signal-desktop"}},
		Flatpak:  flathub("org.signal.Signal"),
		Snap:     snap("signal-desktop"),
		UserData: []string{".config/Signal"},
	},
	{
		Key: "thunderbird", Label: "Thunderbird", Category: Communication,
		Repo:    everywhere("thunderbird"),
		Flatpak: &FlatpakRef{ID: "org.mozilla.Thunderbird", Remotes: []Remote{Flathub, FedoraFlatpaks}},
		Snap:    &SnapRef{ID: "thunderbird", Official: true},
	},
	{
		Key: "element", Label: "Element", Category: Communication,
		Flatpak: flathub("im.riot.Riot"),
		Snap:    snap("element-desktop"),
	},
	{
		Key: "slack", Label: "Slack", Category: Communication,
		Flatpak: flathub("com.slack.Slack"),
		Snap:    &SnapRef{ID: "slack", Official: true, Classic: true},
	},
	{
		Key: "zoom", Label: "Zoom", Category: Communication,
		Flatpak:  flathub("us.zoom.Zoom"),
		UserData: []string{".zoom"},
	},

	// Development
	{
		Key: "code", Label: "Visual Studio Code", Category: Development,
		Repo:        everywhere("code"),
		Flatpak:     flathub("com.visualstudio.code"),
		Snap:        &SnapRef{ID: "code", Official: true, Classic: true},
		UserData:    []string{".config/Code", ".vscode"},
		PreInstall:  repoHook(vscodeRepo),
		PostInstall: vscodePostInstall,
	},
	{
		Key: "git", Label: "Git", Category: Development,
		Repo: everywhere("git"),
	},
	{
		Key: "rust", Label: "Rust", Category: Development,
		Repo: ids{
			arch:   {"rust"},
			debian: {"rustc", "cargo", "rustfmt"},
			fedora: {"rust", "cargo", "clippy", "rustfmt"},
			redhat: {"rust", "cargo", "clippy", "rustfmt"},
			ubuntu: {"rustc", "cargo", "rustfmt"},
		},
		Other: true,
	},
	{
		Key: "deno", Label: "Deno", Category: Development,
		Repo:  ids{arch: {"deno"}},
		Other: true,
	},
	{
		Key: "neovim", Label: "Neovim", Category: Development,
		Repo:    everywhere("neovim"),
		Flatpak: flathub("io.neovim.nvim"),
		Snap:    &SnapRef{ID: "nvim", Classic: true},
	},
	{
		Key: "vim", Label: "Vim", Category: Development,
		Repo: ids{
			arch: {"vim"}, debian: {"vim"}, fedora: {"vim-enhanced"},
			redhat: {"vim-enhanced"}, ubuntu: {"vim"},
		},
		UserData:    []string{".vimrc", ".vim"},
		PostInstall: vimPostInstall,
	},
	{
		Key: "podman", Label: "Podman", Category: Development,
		Repo: everywhere("podman"),
	},
	{
		Key: "pycharm", Label: "PyCharm Community", Category: Development,
		Repo:    ids{arch: {"pycharm-community-edition"}},
		Flatpak: flathub("com.jetbrains.PyCharm-Community"),
		Snap:    &SnapRef{ID: "pycharm-community", Official: true, Classic: true},
	},
	{
		Key: "godot", Label: "Godot", Category: Development,
		Repo:    ids{arch: {"godot"}, fedora: {"godot"}},
		Flatpak: flathub("org.godotengine.Godot"),
	},
	{
		Key: "c-toolchain", Label: "C/C++ Toolchain", Category: Development,
		Repo: ids{
			arch:   {"gcc", "make", "gdb", "clang"},
			debian: {"build-essential", "gdb", "clang"},
			fedora: {"gcc", "gcc-c++", "make", "gdb", "clang"},
			redhat: {"gcc", "gcc-c++", "make", "gdb", "clang"},
			ubuntu: {"build-essential", "gdb", "clang"},
		},
	},

	// Games
	{
		Key: "steam", Label: "Steam", Category: Games,
		Repo:       ids{arch: {"steam"}, debian: {"steam-installer"}, fedora: {"steam"}, ubuntu: {"steam-installer"}},
		Flatpak:    flathub("com.valvesoftware.Steam"),
		Snap:       snap("steam"),
		PreInstall: steamPreInstall,
	},
	{
		Key: "lutris", Label: "Lutris", Category: Games,
		Repo:    except([]string{"lutris"}, redhat),
		Flatpak: flathub("net.lutris.Lutris"),
	},
	{
		Key: "prismlauncher", Label: "Prism Launcher", Category: Games,
		Repo:    ids{arch: {"prismlauncher"}},
		Flatpak: flathub("org.prismlauncher.PrismLauncher"),
	},

	// Multimedia
	{
		Key: "vlc", Label: "VLC", Category: Multimedia,
		Repo:     except([]string{"vlc"}, redhat),
		Flatpak:  flathub("org.videolan.VLC"),
		Snap:     &SnapRef{ID: "vlc", Official: true},
		UserData: []string{".config/vlc"},
	},
	{
		Key: "mpv", Label: "mpv", Category: Multimedia,
		Repo:    except([]string{"mpv"}, redhat),
		Flatpak: flathub("io.mpv.Mpv"),
	},
	{
		Key: "obs", Label: "OBS Studio", Category: Multimedia,
		Repo:    except([]string{"obs-studio"}, redhat),
		Flatpak: flathub("com.obsproject.Studio"),
	},
	{
		Key: "gimp", Label: "GIMP", Category: Multimedia,
		Repo:    except([]string{"gimp"}, redhat),
		Flatpak: &FlatpakRef{ID: "org.gimp.GIMP", Remotes: []Remote{Flathub, FlathubBeta, FedoraFlatpaks}},
		Snap:    snap("gimp"),
	},
	{
		Key: "inkscape", Label: "Inkscape", Category: Multimedia,
		Repo:    except([]string{"inkscape"}, redhat),
		Flatpak: flathub("org.inkscape.Inkscape"),
		Snap:    &SnapRef{ID: "inkscape", Official: true},
	},
	{
		Key: "krita", Label: "Krita", Category: Multimedia,
		Repo:    except([]string{"krita"}, redhat),
		Flatpak: flathub("org.kde.krita"),
		Snap:    snap("krita"),
	},
	{
		Key: "audacity", Label: "Audacity", Category: Multimedia,
		Repo:    except([]string{"audacity"}, redhat),
		Flatpak: flathub("org.audacityteam.Audacity"),
	},
	{
		Key: "kdenlive", Label: "Kdenlive", Category: Multimedia, Desktop: KDE,
		Repo:    except([]string{"kdenlive"}, redhat),
		Flatpak: flathub("org.kde.kdenlive"),
	},
	{
		Key: "spotify", Label: "Spotify", Category: Multimedia,
		Flatpak:  flathub("com.spotify.Client"),
		Snap:     snap("spotify"),
		UserData: []string{".config/spotify"},
	},

	// Office
	{
		Key: "libreoffice", Label: "LibreOffice", Category: Office,
		Repo: ids{
			arch: {"libreoffice-fresh"}, debian: {"libreoffice"},
			fedora: {"libreoffice"}, ubuntu: {"libreoffice"},
		},
		Flatpak: &FlatpakRef{ID: "org.libreoffice.LibreOffice", Remotes: []Remote{Flathub, FedoraFlatpaks}},
		Snap:    snap("libreoffice"),
	},
	{
		Key: "onlyoffice", Label: "ONLYOFFICE", Category: Office,
		Flatpak: flathub("org.onlyoffice.desktopeditors"),
		Snap:    snap("onlyoffice-desktopeditors"),
	},
	{
		Key: "okular", Label: "Okular", Category: Office, Desktop: KDE,
		Repo:    except([]string{"okular"}, redhat),
		Flatpak: flathub("org.kde.okular"),
	},
	{
		Key: "evince", Label: "Document Viewer", Category: Office, Desktop: Gnome,
		Repo:    everywhere("evince"),
		Flatpak: flathub("org.gnome.Evince"),
	},
	{
		Key: "obsidian", Label: "Obsidian", Category: Office,
		Flatpak:  flathub("md.obsidian.Obsidian"),
		Snap:     &SnapRef{ID: "obsidian", Classic: true},
		UserData: []string{".config/obsidian"},
	},

	// Security
	{
		Key: "keepassxc", Label: "KeePassXC", Category: Security,
		Repo:    except([]string{"keepassxc"}, redhat),
		Flatpak: flathub("org.keepassxc.KeePassXC"),
		Snap:    snap("keepassxc"),
	},
	{
		Key: "bitwarden", Label: "Bitwarden", Category: Security,
		Flatpak: flathub("com.bitwarden.desktop"),
		Snap:    &SnapRef{ID: "bitwarden", Official: true},
	},

	// System
	{
		Key: "htop", Label: "htop", Category: System,
		Repo: everywhere("htop"),
		Snap: snap("htop"),
	},
	{
		Key: "gnome-tweaks", Label: "GNOME Tweaks", Category: System, Desktop: Gnome,
		Repo: everywhere("gnome-tweaks"),
	},
	{
		Key: "extension-manager", Label: "Extension Manager", Category: System, Desktop: Gnome,
		Repo:    ids{ubuntu: {"gnome-shell-extension-manager"}, debian: {"gnome-shell-extension-manager"}},
		Flatpak: flathub("com.mattjakeman.ExtensionManager"),
	},
	{
		Key: "dconf-editor", Label: "dconf Editor", Category: System, Desktop: Gnome,
		Repo:    except([]string{"dconf-editor"}, redhat),
		Flatpak: flathub("ca.desrt.dconf-editor"),
	},
	{
		Key: "filelight", Label: "Filelight", Category: System, Desktop: KDE,
		Repo:    except([]string{"filelight"}, redhat),
		Flatpak: flathub("org.kde.filelight"),
	},
	{
		Key: "gparted", Label: "GParted", Category: System,
		Repo: except([]string{"gparted"}, redhat),
	},
	{
		Key: "timeshift", Label: "Timeshift", Category: System,
		Repo: except([]string{"timeshift"}, redhat),
	},
	{
		Key: "flatseal", Label: "Flatseal", Category: System,
		Flatpak: flathub("com.github.tchx84.Flatseal"),
	},

	// Utilities
	{
		Key: "zoxide", Label: "zoxide", Category: Utilities,
		Repo:        except([]string{"zoxide"}, redhat),
		PostInstall: zoxidePostInstall,
	},
	{
		Key: "ripgrep", Label: "ripgrep", Category: Utilities,
		Repo: everywhere("ripgrep"),
	},
	{
		Key: "fastfetch", Label: "Fastfetch", Category: Utilities,
		Repo: except([]string{"fastfetch"}, redhat),
	},
	{
		Key: "syncthing", Label: "Syncthing", Category: Utilities,
		Repo:        except([]string{"syncthing"}, redhat),
		PostInstall: syncthingPostInstall,
	},

	// Virtualization
	{
		Key: "virt-manager", Label: "Virtual Machine Manager", Category: Virtualization,
		Repo:        everywhere("virt-manager"),
		PostInstall: libvirtPostInstall,
	},
	{
		Key: "gnome-boxes", Label: "Boxes", Category: Virtualization, Desktop: Gnome,
		Repo:    except([]string{"gnome-boxes"}, redhat),
		Flatpak: flathub("org.gnome.Boxes"),
	},
	{
		Key: "virtualbox", Label: "VirtualBox", Category: Virtualization,
		Repo: ids{arch: {"virtualbox"}, fedora: {"VirtualBox"}, ubuntu: {"virtualbox"}},
	},
	{
		Key: "distrobox", Label: "Distrobox", Category: Virtualization,
		Repo: except([]string{"distrobox"}, redhat),
	},
}
