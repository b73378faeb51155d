// Package desktop applies opinionated settings to GNOME and KDE Plasma
// through their own command-line tools. Nothing is read back; values are
// overwritten unconditionally.
package desktop

import (
	"context"
	"strings"

	"loadout/internal/executor"
)

// Setting is one schema key and its GVariant value.
type Setting struct {
	Schema string
	Key    string
	Value  string
}

// Folder is a GNOME app-grid folder.
type Folder struct {
	ID   string
	Name string
	Apps []string
}

const appFoldersSchema = "org.gnome.desktop.app-folders"

// GnomeSettings are applied first, in order.
var GnomeSettings = []Setting{
	{"org.gnome.desktop.interface", "clock-format", "'24h'"},
	{"org.gnome.desktop.interface", "clock-show-weekday", "true"},
	{"org.gnome.desktop.interface", "color-scheme", "'prefer-dark'"},
	{"org.gnome.desktop.interface", "show-battery-percentage", "true"},
	{"org.gnome.desktop.session", "idle-delay", "uint32 900"},
	{"org.gnome.settings-daemon.plugins.power", "sleep-inactive-ac-type", "'nothing'"},
	{"org.gnome.desktop.peripherals.touchpad", "tap-to-click", "true"},
	{"org.gnome.desktop.peripherals.touchpad", "natural-scroll", "true"},
	{"org.gnome.desktop.peripherals.mouse", "accel-profile", "'flat'"},
	{"org.gnome.desktop.wm.preferences", "button-layout", "'appmenu:minimize,maximize,close'"},
	{"org.gnome.mutter", "center-new-windows", "true"},
	{"org.gnome.nautilus.preferences", "default-folder-viewer", "'list-view'"},
}

// GnomeFolders replace whatever app-grid folders exist.
var GnomeFolders = []Folder{
	{
		ID:   "Utilities",
		Name: "Utilities",
		Apps: []string{
			"org.gnome.Calculator.desktop", "org.gnome.Characters.desktop", "org.gnome.clocks.desktop",
			"org.gnome.font-viewer.desktop", "org.gnome.Loupe.desktop", "org.gnome.Evince.desktop",
			"org.gnome.FileRoller.desktop", "org.gnome.TextEditor.desktop",
		},
	},
	{
		ID:   "System",
		Name: "System",
		Apps: []string{
			"org.gnome.DiskUtility.desktop", "org.gnome.baobab.desktop", "org.gnome.SystemMonitor.desktop",
			"org.gnome.Logs.desktop", "org.gnome.tweaks.desktop", "com.mattjakeman.ExtensionManager.desktop",
			"ca.desrt.dconf-editor.desktop", "com.github.tchx84.Flatseal.desktop", "gparted.desktop",
			"timeshift-gtk.desktop", "htop.desktop",
		},
	},
	{
		ID:   "Office",
		Name: "Office",
		Apps: []string{
			"libreoffice-startcenter.desktop", "libreoffice-writer.desktop", "libreoffice-calc.desktop",
			"libreoffice-impress.desktop", "org.onlyoffice.desktopeditors.desktop", "md.obsidian.Obsidian.desktop",
		},
	},
	{
		ID:   "Multimedia",
		Name: "Multimedia",
		Apps: []string{
			"vlc.desktop", "org.videolan.VLC.desktop", "mpv.desktop", "com.obsproject.Studio.desktop",
			"gimp.desktop", "org.gimp.GIMP.desktop", "org.inkscape.Inkscape.desktop",
			"org.audacityteam.Audacity.desktop", "com.spotify.Client.desktop",
		},
	},
	{
		ID:   "Games",
		Name: "Games",
		Apps: []string{
			"steam.desktop", "com.valvesoftware.Steam.desktop", "net.lutris.Lutris.desktop",
			"org.prismlauncher.PrismLauncher.desktop",
		},
	},
}

// GnomeFavorites is the dash, in order.
var GnomeFavorites = []string{
	"firefox.desktop",
	"org.gnome.Nautilus.desktop",
	"org.gnome.Ptyxis.desktop",
	"code.desktop",
	"thunderbird.desktop",
	"org.gnome.Settings.desktop",
}

// ApplyGnome writes the GNOME settings, rebuilds the app folders and sets
// the favourites.
func ApplyGnome(ctx context.Context, run executor.Runner) error {
	for _, s := range GnomeSettings {
		if err := run.Run(ctx, "gsettings", "set", s.Schema, s.Key, s.Value); err != nil {
			return err
		}
	}

	if err := run.Run(ctx, "gsettings", "reset-recursively", appFoldersSchema); err != nil {
		return err
	}

	ids := make([]string, len(GnomeFolders))
	for i, f := range GnomeFolders {
		ids[i] = f.ID
	}
	if err := run.Run(ctx, "gsettings", "set", appFoldersSchema, "folder-children", strv(ids)); err != nil {
		return err
	}

	for _, f := range GnomeFolders {
		schema := folderSchema(f.ID)
		if err := run.Run(ctx, "gsettings", "set", schema, "name", quote(f.Name)); err != nil {
			return err
		}
		if err := run.Run(ctx, "gsettings", "set", schema, "apps", strv(f.Apps)); err != nil {
			return err
		}
	}

	return run.Run(ctx, "gsettings", "set", "org.gnome.shell", "favorite-apps", strv(GnomeFavorites))
}

// folderSchema returns the relocatable schema path of one folder.
func folderSchema(id string) string {
	return "org.gnome.desktop.app-folders.folder:/org/gnome/desktop/app-folders/folders/" + id + "/"
}

// strv renders a GVariant string array.
func strv(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
