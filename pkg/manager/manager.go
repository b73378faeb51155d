package manager

import "context"

// Maintainer is the package-independent half of a provider: the operations
// the registry fans out to every present provider. Package-specific
// operations are dispatched by Method in the registry.
type Maintainer interface {
	// Name returns the short identifier for this provider (e.g., "dnf", "flatpak").
	Name() string

	// UpdateAll upgrades everything the provider manages.
	UpdateAll(ctx context.Context) error

	// Autoremove removes orphaned packages. Providers without an
	// equivalent return ErrNotSupported.
	Autoremove(ctx context.Context) error

	// ListInstalled returns the provider-side identifiers currently installed.
	ListInstalled(ctx context.Context) ([]string, error)
}
