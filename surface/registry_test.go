// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/life/render"
	"github.com/gogpu/wgpu/hal/noop"
)

func newNoopDevice(t *testing.T) *render.Device {
	t.Helper()
	dev, err := render.OpenDevice(noop.API{})
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	t.Cleanup(dev.Close)
	return dev
}

// TestRegistryRegister tests selector registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 50, Offscreen(4, 4), nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered selector not found")
	}

	if entry.Selector != "test" {
		t.Errorf("Selector = %s, want test", entry.Selector)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("selector should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests selector removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()

	r.Register("temp", 10, Offscreen(4, 4), nil)

	if _, ok := r.Get("temp"); !ok {
		t.Fatal("selector should exist before unregister")
	}

	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("selector should not exist after unregister")
	}
}

// TestRegistryList tests priority ordering.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()

	r.Register("low", 10, Offscreen(1, 1), nil)
	r.Register("high", 100, Offscreen(1, 1), nil)
	r.Register("mid", 50, Offscreen(1, 1), nil)
	r.Register("also-mid", 50, Offscreen(1, 1), nil)

	want := []string{"high", "also-mid", "mid", "low"}
	if got := r.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

// TestRegistryAvailable tests filtering of unavailable selectors.
func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry()

	r.Register("window", 100, Offscreen(1, 1), func() bool { return false })
	r.Register("offscreen", 10, Offscreen(1, 1), nil)

	if got := r.Available(); !slices.Equal(got, []string{"offscreen"}) {
		t.Errorf("Available() = %v, want [offscreen]", got)
	}
	if got := r.List(); len(got) != 2 {
		t.Errorf("List() = %v, want both selectors", got)
	}
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register("a", 1, Offscreen(1, 1), nil)

	entry, _ := r.Get("a")
	entry.Priority = 99

	again, _ := r.Get("a")
	if again.Priority != 1 {
		t.Errorf("Get returned a shared entry, priority now %d", again.Priority)
	}
}

func TestRegistryResolve(t *testing.T) {
	dev := newNoopDevice(t)
	r := NewRegistry()
	r.Register("small", 10, Offscreen(16, 8), nil)

	target, err := r.Resolve("small", dev)
	if err != nil {
		t.Fatalf("Resolve(small) failed: %v", err)
	}
	defer target.Destroy()

	if w, h := target.Size(); w != 16 || h != 8 {
		t.Errorf("Size() = %dx%d, want 16x8", w, h)
	}
	if _, ok := target.(*render.TextureTarget); !ok {
		t.Errorf("Resolve(small) returned %T, want *render.TextureTarget", target)
	}
}

func TestRegistryResolveErrors(t *testing.T) {
	dev := newNoopDevice(t)
	r := NewRegistry()

	if _, err := r.Resolve("", dev); !errors.Is(err, ErrNoTargetAvailable) {
		t.Errorf("empty registry error = %v, want ErrNoTargetAvailable", err)
	}

	var notFound *SelectorNotFoundError
	if _, err := r.Resolve("missing", dev); !errors.As(err, &notFound) || notFound.Selector != "missing" {
		t.Errorf("Resolve(missing) error = %v, want SelectorNotFoundError", err)
	}

	r.Register("gone", 10, Offscreen(1, 1), func() bool { return false })
	var unavailable *TargetUnavailableError
	if _, err := r.Resolve("gone", dev); !errors.As(err, &unavailable) {
		t.Errorf("Resolve(gone) error = %v, want TargetUnavailableError", err)
	}

	r.Register("bad", 10, Offscreen(0, 0), nil)
	if _, err := r.Resolve("bad", dev); !errors.Is(err, render.ErrInvalidTargetSize) {
		t.Errorf("Resolve(bad) error = %v, want ErrInvalidTargetSize", err)
	}
}

func TestRegistryResolveBest(t *testing.T) {
	dev := newNoopDevice(t)
	r := NewRegistry()

	r.Register("broken", 100, Offscreen(0, 0), nil)
	r.Register("hidden", 50, Offscreen(2, 2), func() bool { return false })
	r.Register("fallback", 10, Offscreen(3, 3), nil)

	target, err := r.Resolve("", dev)
	if err != nil {
		t.Fatalf("Resolve(\"\") failed: %v", err)
	}
	defer target.Destroy()

	if w, _ := target.Size(); w != 3 {
		t.Errorf("best target width = %d, want the fallback's 3", w)
	}
}

func TestWindowFactory(t *testing.T) {
	dev := newNoopDevice(t)
	r := NewRegistry()
	r.Register("window", 100, Window(0, 0, gpucontext.NullWindowProvider{W: 320, H: 240}), nil)

	target, err := r.Resolve("window", dev)
	if err != nil {
		t.Fatalf("Resolve(window) failed: %v", err)
	}
	defer target.Destroy()

	if w, h := target.Size(); w != 320 || h != 240 {
		t.Errorf("Size() = %dx%d, want 320x240", w, h)
	}
}

func TestDefaultRegistryHasOffscreen(t *testing.T) {
	if Default() != globalRegistry {
		t.Fatal("Default() is not the global registry")
	}
	entry, ok := Get("offscreen")
	if !ok {
		t.Fatal("offscreen selector not registered")
	}
	if entry.Priority != 10 {
		t.Errorf("offscreen priority = %d, want 10", entry.Priority)
	}
	if !slices.Contains(Available(), "offscreen") {
		t.Errorf("Available() = %v, missing offscreen", Available())
	}

	Register("zz-global", 1, Offscreen(1, 1), nil)
	if !slices.Contains(List(), "zz-global") {
		t.Error("global Register did not add selector")
	}
	Unregister("zz-global")
	if slices.Contains(List(), "zz-global") {
		t.Error("global Unregister did not remove selector")
	}

	dev := newNoopDevice(t)
	target, err := Resolve("offscreen", dev)
	if err != nil {
		t.Fatalf("Resolve(offscreen) failed: %v", err)
	}
	defer target.Destroy()
	if w, h := target.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size() = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
}
