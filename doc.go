// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package life simulates Conway's Game of Life on a toroidal grid and draws
// it through a WebGPU hardware abstraction layer.
//
// # Overview
//
// A Grid holds width×height cells in row-major order. Tick advances every
// cell at once by the B3/S23 rule: a live cell with two or three live
// neighbours survives, a dead cell with exactly three is born, every other
// cell dies or stays dead. Neighbours wrap around both edges.
//
// A Universe pairs a Grid with a render.Painter bound to a drawing surface,
// which hosts pick by selector through the surface package.
//
// # Quick Start
//
//	import "github.com/gogpu/life"
//
//	u, err := life.New("offscreen", 128, 128)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer u.Destroy()
//
//	for range 100 {
//	    u.Tick()
//	    if err := u.Paint(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Seeding
//
// New grids use ModuloSeeder: the cell at flat index i starts alive when i
// is divisible by 2 or 7. NoiseSeeder thresholds Perlin noise instead, and
// any SeederFunc can be supplied with WithSeeder.
//
// # Camera
//
// SetOffset pans by whole pixels and SetZoom scales the board about the
// centre of the surface. Neither is validated.
//
// # Logging
//
// Nothing is logged by default. SetLogger installs a *slog.Logger for this
// package and the render package.
package life
