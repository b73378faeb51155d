package desktop

import (
	"context"

	"loadout/internal/executor"
)

// KConfigEntry is one kwriteconfig6 write.
type KConfigEntry struct {
	File  string
	Group string
	Key   string
	Value string
}

// KDESettings are written in order.
var KDESettings = []KConfigEntry{
	{"kdeglobals", "KDE", "SingleClick", "false"},
	{"kdeglobals", "General", "ColorScheme", "BreezeDark"},
	{"plasma-localerc", "Formats", "LC_TIME", "en_GB.UTF-8"},
	{"kscreenlockerrc", "Daemon", "Timeout", "15"},
	{"kcminputrc", "Mouse", "XLbInptAccelProfileFlat", "true"},
	{"kwinrc", "NightColor", "Active", "true"},
	{"kwinrc", "Windows", "Placement", "Centered"},
	{"ksmserverrc", "General", "loginMode", "emptySession"},
	{"dolphinrc", "General", "ShowFullPath", "true"},
	{"dolphinrc", "General", "RememberOpenedTabs", "false"},
}

// ApplyKDE writes the KDE Plasma settings.
func ApplyKDE(ctx context.Context, run executor.Runner) error {
	for _, e := range KDESettings {
		if err := run.Run(ctx, "kwriteconfig6", "--file", e.File, "--group", e.Group, "--key", e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}
