// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package life

import (
	"github.com/gogpu/life/render"
	"github.com/gogpu/life/surface"
)

// Option configures a Universe during creation.
//
// Example:
//
//	// Software rendering to the built-in offscreen target
//	u, err := life.New("offscreen", 64, 64)
//
//	// A host-owned device and a noise-seeded board
//	u, err := life.New("main", 256, 256,
//	    life.WithDevice(dev),
//	    life.WithSeeder(life.NewNoiseSeeder(42, 0.1, 0)))
type Option func(*options)

// options holds optional configuration for Universe creation.
type options struct {
	backend    string
	device     *render.Device
	registry   *surface.Registry
	seeder     Seeder
	linkPolicy render.LinkPolicy
}

// defaultOptions returns the default universe options.
func defaultOptions() options {
	return options{
		backend:    "", // best registered backend
		registry:   surface.Default(),
		seeder:     ModuloSeeder,
		linkPolicy: render.LinkPermissive,
	}
}

// WithBackend selects the GPU backend by its registered name
// (see render.Backends). Ignored when WithDevice is also given.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithDevice makes the Universe draw with a device the caller opened.
// The Universe never closes a device supplied this way.
func WithDevice(dev *render.Device) Option {
	return func(o *options) {
		o.device = dev
	}
}

// WithRegistry resolves the surface selector in r instead of the global
// surface registry. A nil registry keeps the global one.
func WithRegistry(r *surface.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithSeeder chooses the initial board. A nil seeder starts empty.
func WithSeeder(s Seeder) Option {
	return func(o *options) {
		if s == nil {
			s = EmptySeeder
		}
		o.seeder = s
	}
}

// WithLinkPolicy controls whether a shader link failure fails New
// (render.LinkStrict) or yields a universe that only clears its frames
// (render.LinkPermissive, the default).
func WithLinkPolicy(policy render.LinkPolicy) Option {
	return func(o *options) {
		o.linkPolicy = policy
	}
}
