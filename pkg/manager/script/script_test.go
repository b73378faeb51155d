package script

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"loadout/internal/executor/executortest"
	"loadout/pkg/catalog"
	"loadout/pkg/manager"
)

func TestKeys(t *testing.T) {
	if got := Keys(); !reflect.DeepEqual(got, []string{"deno", "rust"}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestRustLifecycle(t *testing.T) {
	rec := executortest.New()
	cache := manager.NewInstalled()
	s := New(rec, cache, "/home/tester")
	rust := &catalog.Package{Key: "rust", Other: true}
	ctx := context.Background()

	if !s.Available(rust) {
		t.Fatal("rust should be available")
	}
	if err := s.Install(ctx, rust); err != nil {
		t.Fatal(err)
	}
	if !s.Installed(rust) {
		t.Error("rust should be installed")
	}
	if err := s.UpdateAll(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Uninstall(ctx, rust); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"sh -c curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y",
		"/home/tester/.cargo/bin/rustup update",
		"/home/tester/.cargo/bin/rustup self uninstall -y",
	}
	if !reflect.DeepEqual(rec.Commands, want) {
		t.Errorf("commands = %v, want %v", rec.Commands, want)
	}
	if len(cache.IDs(manager.Other)) != 0 {
		t.Error("cache should be empty after uninstall")
	}
}

func TestDenoUninstallRemovesDirectory(t *testing.T) {
	rec := executortest.New()
	cache := manager.NewInstalled()
	cache.Add(manager.Other, "deno")
	s := New(rec, cache, "/home/tester")

	if err := s.Uninstall(context.Background(), &catalog.Package{Key: "deno", Other: true}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rec.Commands, []string{"rm -rf /home/tester/.deno"}) {
		t.Errorf("commands = %v", rec.Commands)
	}
}

func TestUnavailable(t *testing.T) {
	s := New(executortest.New(), manager.NewInstalled(), "/home/tester")

	if s.Available(&catalog.Package{Key: "rust"}) {
		t.Error("package without the Other marker is unavailable")
	}
	if s.Available(&catalog.Package{Key: "vlc", Other: true}) {
		t.Error("package without a script is unavailable")
	}
	if err := s.Install(context.Background(), &catalog.Package{Key: "vlc", Other: true}); err == nil {
		t.Error("Install() should fail without a script")
	}
	if err := s.Autoremove(context.Background()); !errors.Is(err, manager.ErrNotSupported) {
		t.Errorf("Autoremove() error = %v", err)
	}
}

func TestLoadProbes(t *testing.T) {
	rec := executortest.New()
	rec.Missing["/home/tester/.deno/bin/deno"] = true
	cache := manager.NewInstalled()
	s := New(rec, cache, "/home/tester")

	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := cache.IDs(manager.Other); !reflect.DeepEqual(got, []string{"rust"}) {
		t.Errorf("IDs = %v, want [rust]", got)
	}
}
