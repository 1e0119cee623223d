// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/life/render"
)

// Factory creates a drawing target on a device.
// Implementations should validate their parameters and return descriptive errors.
type Factory func(dev *render.Device) (render.Target, error)

// Entry represents a registered surface selector.
type Entry struct {
	// Selector is the unique name hosts pass to Resolve.
	Selector string

	// Priority determines selection order for the empty selector
	// (higher = preferred). Standard priorities:
	//   - 100: window surfaces
	//   - 10: offscreen textures
	Priority int

	// Factory creates the target.
	Factory Factory

	// Available reports if the target can be created on this system.
	Available func() bool
}

// Default size of the built-in "offscreen" target.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry maps surface selectors to target factories.
//
// Hosts register the surfaces they can provide, usually from init:
//
//	func init() {
//	    surface.Register("main-window", 100, surface.Window(display, hwnd, provider), nil)
//	}
//
// and the simulation resolves a selector to a target:
//
//	target, err := surface.Resolve("main-window", dev)
//	// or the best available surface:
//	target, err := surface.Resolve("", dev)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Resolve.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Default returns the global registry.
func Default() *Registry { return globalRegistry }

// Register adds a selector to the global registry.
//
// If available is nil, the target is assumed always available.
// Registering a selector that already exists replaces the previous entry.
func Register(selector string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(selector, priority, factory, available)
}

// Unregister removes a selector from the global registry.
func Unregister(selector string) {
	globalRegistry.Unregister(selector)
}

// List returns all registered selectors sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns the available selectors sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific selector.
func Get(selector string) (*Entry, bool) {
	return globalRegistry.Get(selector)
}

// Resolve creates the target registered under selector in the global
// registry. The empty selector picks the best available entry.
func Resolve(selector string, dev *render.Device) (render.Target, error) {
	return globalRegistry.Resolve(selector, dev)
}

// Register adds a selector to this registry.
func (r *Registry) Register(selector string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[selector] = &Entry{
		Selector:  selector,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a selector from this registry.
func (r *Registry) Unregister(selector string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, selector)
}

// List returns all registered selectors sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedSelectors(false)
}

// Available returns the available selectors sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedSelectors(true)
}

// Get returns information about a specific selector.
func (r *Registry) Get(selector string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[selector]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// Resolve creates the target registered under selector.
//
// The empty selector tries every available entry in priority order and
// returns the first target that could be created.
func (r *Registry) Resolve(selector string, dev *render.Device) (render.Target, error) {
	if selector != "" {
		return r.resolveSelector(selector, dev)
	}

	r.mu.RLock()
	available := r.sortedSelectors(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoTargetAvailable
	}

	var lastErr error
	for _, name := range available {
		t, err := r.resolveSelector(name, dev)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (r *Registry) resolveSelector(selector string, dev *render.Device) (render.Target, error) {
	r.mu.RLock()
	entry, ok := r.entries[selector]
	r.mu.RUnlock()

	if !ok {
		return nil, &SelectorNotFoundError{Selector: selector}
	}

	if !entry.Available() {
		return nil, &TargetUnavailableError{Selector: selector}
	}

	return entry.Factory(dev)
}

// sortedSelectors returns selectors sorted by priority (highest first),
// ties broken by name. If onlyAvailable is true, filters to available
// entries only. Must be called with lock held.
func (r *Registry) sortedSelectors(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		selector string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for selector, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{selector: selector, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].selector < entries[j].selector
	})

	selectors := make([]string, len(entries))
	for i, e := range entries {
		selectors[i] = e.selector
	}
	return selectors
}

// Errors.
var (
	// ErrNoTargetAvailable is returned when no surface selectors are
	// registered or available on the current system.
	ErrNoTargetAvailable = errors.New("surface: no target available")
)

// SelectorNotFoundError indicates a selector is not registered.
type SelectorNotFoundError struct {
	Selector string
}

func (e *SelectorNotFoundError) Error() string {
	return "surface: selector not found: " + e.Selector
}

// TargetUnavailableError indicates a selector exists but its target cannot
// be created on this system.
type TargetUnavailableError struct {
	Selector string
}

func (e *TargetUnavailableError) Error() string {
	return "surface: target unavailable: " + e.Selector
}

// Offscreen returns a factory for a width×height render.TextureTarget.
func Offscreen(width, height uint32) Factory {
	return func(dev *render.Device) (render.Target, error) {
		return render.NewTextureTarget(dev, width, height)
	}
}

// Window returns a factory for a render.SurfaceTarget on a native window.
// display and window are the platform handles (X11 Display* and Window,
// HWND, CAMetalLayer); provider reports the window's size.
func Window(display, window uintptr, provider gpucontext.WindowProvider) Factory {
	return func(dev *render.Device) (render.Target, error) {
		return render.NewSurfaceTarget(dev, display, window, provider)
	}
}

// init registers the built-in offscreen target.
func init() {
	Register("offscreen", 10, Offscreen(DefaultWidth, DefaultHeight), nil)
}
