package registry

import (
	"context"
	"errors"
	"fmt"

	"loadout/pkg/manager"
	"loadout/pkg/manager/native"
)

// UpdateAll runs every present provider's update, in order.
func (r *Registry) UpdateAll(ctx context.Context) error {
	for _, m := range r.Maintainers() {
		if err := m.UpdateAll(ctx); err != nil {
			return fmt.Errorf("%s update failed: %w", m.Name(), err)
		}
	}
	return nil
}

// Autoremove runs every present provider's autoremove. Providers without
// one are skipped and returned by name.
func (r *Registry) Autoremove(ctx context.Context) (skipped []string, err error) {
	for _, m := range r.Maintainers() {
		err := m.Autoremove(ctx)
		switch {
		case errors.Is(err, manager.ErrNotSupported):
			skipped = append(skipped, m.Name())
		case err != nil:
			return skipped, fmt.Errorf("%s autoremove failed: %w", m.Name(), err)
		}
	}
	return skipped, nil
}

// Setup configures the distribution's repositories and, where present,
// snapd.
func (r *Registry) Setup(ctx context.Context, opts native.SetupOpts) error {
	if err := r.Distro.Setup(ctx, opts); err != nil {
		return err
	}
	if r.Snap != nil {
		return r.Snap.Setup(ctx, r.Dist)
	}
	return nil
}
