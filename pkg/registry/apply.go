package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"loadout/pkg/catalog"
	"loadout/pkg/manager"
)

// Choice is the outcome of package-select.
type Choice struct {
	Method manager.Method
	Remote catalog.Remote // Flatpak only; empty means default
}

// Apply moves pkg to the chosen method:
//  1. uninstall from every other provider,
//  2. remove per-user caches of the vacated providers, and user data on
//     Uninstall,
//  3. run the pre-install hook (also for Uninstall; skipped when pkg is
//     already installed through the chosen provider),
//  4. install through the chosen provider,
//  5. run the post-install hook.
//
// A failing step aborts the rest; nothing is rolled back.
func (r *Registry) Apply(ctx context.Context, pkg *catalog.Package, choice Choice) error {
	if choice.Method != manager.Uninstall && !r.Offers(choice.Method, pkg) {
		return fmt.Errorf("%w: %s via %s", ErrUnavailable, pkg.Key, choice.Method)
	}

	reinstall := choice.Method != manager.Uninstall && r.InstalledVia(choice.Method, pkg)

	vacated, err := r.UninstallOthers(ctx, pkg, choice.Method)
	if err != nil {
		return err
	}

	if err := r.cleanup(pkg, vacated, choice.Method == manager.Uninstall); err != nil {
		return err
	}

	env := r.HookEnv()
	if pkg.PreInstall != nil && !reinstall {
		if err := pkg.PreInstall(ctx, env, choice.Method); err != nil {
			return fmt.Errorf("%s pre-install: %w", pkg.Key, err)
		}
	}

	if choice.Method == manager.Uninstall {
		return nil
	}

	if err := r.Install(ctx, pkg, choice.Method, choice.Remote); err != nil {
		return err
	}

	if pkg.PostInstall != nil {
		if err := pkg.PostInstall(ctx, env, choice.Method); err != nil {
			return fmt.Errorf("%s post-install: %w", pkg.Key, err)
		}
	}
	return nil
}

// cleanup removes per-user cache directories left by the vacated
// providers. On uninstall it also removes the package's user data and its
// sandbox data roots.
func (r *Registry) cleanup(pkg *catalog.Package, vacated []manager.Method, uninstall bool) error {
	var paths []string
	for _, m := range vacated {
		switch {
		case m == manager.Flatpak && pkg.Flatpak != nil:
			paths = append(paths, filepath.Join(".var", "app", pkg.Flatpak.ID, "cache"))
		case m == manager.Snap && pkg.Snap != nil:
			paths = append(paths, filepath.Join("snap", pkg.Snap.ID, "common", ".cache"))
		}
	}

	if uninstall {
		paths = append(paths, pkg.UserData...)
		if pkg.Flatpak != nil {
			paths = append(paths, filepath.Join(".var", "app", pkg.Flatpak.ID))
		}
		if pkg.Snap != nil {
			paths = append(paths, filepath.Join("snap", pkg.Snap.ID))
		}
	}

	for _, p := range paths {
		if err := os.RemoveAll(filepath.Join(r.home, p)); err != nil {
			return fmt.Errorf("failed to remove ~/%s: %w", p, err)
		}
	}
	return nil
}
