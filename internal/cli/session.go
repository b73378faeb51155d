package cli

import (
	"context"
	"fmt"
	"os"

	"loadout/internal/config"
	"loadout/internal/executor"
	"loadout/internal/history"
	"loadout/internal/ui"
	"loadout/pkg/catalog"
	"loadout/pkg/manager/detector"
	"loadout/pkg/manager/native"
	"loadout/pkg/registry"
)

// session is the platform state a command works against.
type session struct {
	reg     *registry.Registry
	run     executor.Runner
	history *history.Store // nil unless general.history is on
	tmpDir  string         // private to this process; keys are staged here
}

// Replaced in tests.
var (
	osReleasePath = detector.OSReleasePath
	newRunner     = func() executor.Runner {
		return executor.New(cfg.General.DryRun, cfg.Output.Verbose)
	}
)

// openSession probes the platform in the fixed startup order: HOME, the
// distribution, the desktop and runtimes, then the providers. With load set
// the installed state is read from every provider behind a spinner.
func openSession(ctx context.Context, load bool) (*session, error) {
	home, err := config.HomeDir()
	if err != nil {
		return nil, err
	}

	dist, err := detector.DetectDistribution(osReleasePath)
	if err != nil {
		return nil, err
	}

	run := newRunner()
	env := detector.ProbeEnvironment(ctx, run)

	tmpDir, err := os.MkdirTemp("", "loadout-")
	if err != nil {
		return nil, fmt.Errorf("failed to create a working directory: %w", err)
	}

	reg, err := registry.New(registry.Options{
		Dist:   dist,
		Env:    env,
		Runner: run,
		Home:   home,
		TmpDir: tmpDir,
	})
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	s := &session{reg: reg, run: run, tmpDir: tmpDir}

	if load {
		err := ui.WithSpinner("Reading installed packages", func() error {
			return reg.Load(ctx)
		})
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	if cfg.General.History {
		store, err := history.Open()
		if err != nil {
			ui.WarningMsg("History disabled: %v", err)
		} else {
			s.history = store
		}
	}

	return s, nil
}

// Close releases the history store and removes the working directory.
func (s *session) Close() error {
	err := s.history.Close()
	if rmErr := os.RemoveAll(s.tmpDir); err == nil {
		err = rmErr
	}
	return err
}

func (s *session) track(op history.Operation, pkg, method string, outcome error) {
	if err := s.history.Track(op, pkg, method, outcome); err != nil {
		ui.WarningMsg("could not record history: %v", err)
	}
}

// lookupPackage resolves a key through the configured aliases.
func lookupPackage(key string) (*catalog.Package, error) {
	pkg, ok := catalog.Lookup(cfg.ResolveAlias(key))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, key)
	}
	return pkg, nil
}

// setupOpts returns the Repository Setup options from configuration.
func setupOpts() native.SetupOpts {
	return native.SetupOpts{
		EPEL:                 cfg.Setup.EPEL,
		RPMFusion:            cfg.Setup.RPMFusion,
		MaxParallelDownloads: cfg.Setup.MaxParallelDownloads,
	}
}

// confirm asks before a mutation unless -y or a dry run says otherwise.
func confirm(label string) (bool, error) {
	if cfg.General.AutoConfirm || cfg.General.DryRun {
		return true, nil
	}
	return ui.NewTerminal(cfg.Menu.PageSize).Confirm(label)
}
