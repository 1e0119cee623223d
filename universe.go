// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package life

import (
	"fmt"

	"github.com/gogpu/life/render"
)

// Universe is a Game of Life grid bound to a drawing surface.
//
// A host calls Tick and then Paint once per frame. The camera offset and
// zoom are forwarded to the painter and take effect on the next Paint.
//
// Universe is not safe for concurrent use.
type Universe struct {
	grid    *Grid
	dev     *render.Device
	ownsDev bool
	target  render.Target
	painter *render.Painter

	destroyed bool
}

// New creates a width x height universe drawn to the surface registered
// under selector. The empty selector picks the best available surface.
//
// Unless WithDevice is given, New opens a device on the backend chosen by
// WithBackend and the Universe owns it. If any step fails, everything
// acquired so far is released and no Universe is returned.
func New(selector string, width, height uint32, opts ...Option) (*Universe, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	u := &Universe{dev: o.device}
	if u.dev == nil {
		dev, err := render.Open(o.backend)
		if err != nil {
			return nil, fmt.Errorf("life: open device: %w", err)
		}
		u.dev = dev
		u.ownsDev = true
	}

	target, err := o.registry.Resolve(selector, u.dev)
	if err != nil {
		u.release()
		return nil, fmt.Errorf("life: resolve surface %q: %w", selector, err)
	}
	u.target = target

	painter, err := render.NewPainter(u.dev, target, render.WithLinkPolicy(o.linkPolicy))
	if err != nil {
		u.release()
		return nil, fmt.Errorf("life: create painter: %w", err)
	}
	u.painter = painter

	u.grid = NewGridWithSeeder(width, height, o.seeder)

	slogger().Info("life: universe created",
		"selector", selector,
		"width", width,
		"height", height,
		"adapter", u.dev.Info().Name,
		"population", u.grid.Population())
	return u, nil
}

// Tick advances the grid by one generation.
func (u *Universe) Tick() {
	u.grid.Tick()
}

// Paint draws the current generation. It returns render.ErrDisposed after
// Destroy.
func (u *Universe) Paint() error {
	return render.PaintCells(u.painter, u.grid.Cells(), u.grid.Width(), u.grid.Height())
}

// Offset returns the camera offset in pixels.
func (u *Universe) Offset() (int, int) { return u.painter.Offset() }

// SetOffset pans the camera. Values are not validated.
func (u *Universe) SetOffset(x, y int) { u.painter.SetOffset(x, y) }

// Zoom returns the camera zoom factor.
func (u *Universe) Zoom() float32 { return u.painter.Zoom() }

// SetZoom sets the camera zoom factor. Values are not validated.
func (u *Universe) SetZoom(zoom float32) { u.painter.SetZoom(zoom) }

// Grid returns the simulated grid.
func (u *Universe) Grid() *Grid { return u.grid }

// Target returns the surface the universe draws to.
func (u *Universe) Target() render.Target { return u.target }

// Device returns the device the universe draws with.
func (u *Universe) Device() *render.Device { return u.dev }

// Stats returns statistics about painted frames.
func (u *Universe) Stats() render.FrameStats { return u.painter.Stats() }

// Destroy releases the painter, the target and, if the universe opened it,
// the device. Destroy is idempotent.
func (u *Universe) Destroy() {
	if u.destroyed {
		return
	}
	u.destroyed = true
	u.release()
	slogger().Info("life: universe destroyed")
}

func (u *Universe) release() {
	if u.painter != nil {
		u.painter.Dispose()
	}
	if u.target != nil {
		u.target.Destroy()
		u.target = nil
	}
	if u.ownsDev && u.dev != nil {
		u.dev.Close()
	}
}
