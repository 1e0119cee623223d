// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface maps surface selectors to drawing targets.
//
// A selector is the name a host uses to identify where a universe is drawn:
// a native window, an offscreen texture, or a surface the host created
// itself. Hosts register a Factory per selector and the simulation resolves
// the selector against an opened render.Device.
//
//	surface.Register("main", 100, surface.Window(display, hwnd, provider), nil)
//
//	target, err := surface.Resolve("main", dev)
//
// The "offscreen" selector is always registered and creates a
// DefaultWidth×DefaultHeight texture target. The empty selector resolves
// to the highest-priority available entry.
package surface
