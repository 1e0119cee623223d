// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render rasterizes Game of Life cell grids through the gogpu
// WebGPU HAL.
//
// # Core Types
//
//   - Device: a HAL device and queue, opened from a named backend or wrapped
//     from a host application
//   - Target: the drawing surface (TextureTarget offscreen, SurfaceTarget for
//     a window)
//   - Painter: owns the shader program and camera, turns a cell snapshot
//     into one triangle-list draw per frame
//
// # Usage
//
//	dev, err := render.Open("") // best registered backend
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	target, err := render.NewTextureTarget(dev, 800, 600)
//	if err != nil {
//	    return err
//	}
//	defer target.Destroy()
//
//	painter, err := render.NewPainter(dev, target)
//	if err != nil {
//	    return err
//	}
//	defer painter.Dispose()
//
//	painter.SetZoom(1.5)
//	err = painter.Paint(cells, width, height)
//
// # Geometry
//
// Every cell becomes two triangles (six vertices) in normalized device
// coordinates, each vertex carrying (x, y, alive) as float32. The camera
// uniform scales x by zoom/aspect and y by zoom, where aspect is
// (targetW/targetH)·(gridH/gridW), then adds the pixel offset converted to
// NDC.
//
// # Backends
//
// The software rasterizer is always registered. Hardware backends become
// available after importing their HAL packages (or hal/allbackends) and
// calling RegisterHALBackends.
//
// # Thread Safety
//
// Painters and targets are NOT thread-safe. The backend registry and the
// package logger are.
package render
