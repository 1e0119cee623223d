// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package life

import "fmt"

// Grid is a toroidal Game of Life board stored in row-major order.
//
// The top row neighbours the bottom row and the leftmost column neighbours
// the rightmost column, so the board has no edges.
//
// Grid is not safe for concurrent use.
type Grid struct {
	width  uint32
	height uint32

	// cells is the current generation. next is scratch space for Tick and
	// never aliases cells.
	cells []Cell
	next  []Cell

	generation uint64
}

// NewGrid creates a width x height grid seeded with ModuloSeeder.
//
// Both dimensions must be positive; NewGrid panics otherwise.
func NewGrid(width, height uint32) *Grid {
	return NewGridWithSeeder(width, height, ModuloSeeder)
}

// NewGridWithSeeder creates a width x height grid whose initial cells are
// chosen by s. A nil seeder yields an empty grid.
//
// Both dimensions must be positive; NewGridWithSeeder panics otherwise.
func NewGridWithSeeder(width, height uint32, s Seeder) *Grid {
	if width == 0 || height == 0 {
		panic(fmt.Sprintf("life: invalid grid dimensions %dx%d", width, height))
	}
	if s == nil {
		s = EmptySeeder
	}

	n := int(width) * int(height)
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, n),
		next:   make([]Cell, n),
	}
	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			idx := g.Index(row, col)
			g.cells[idx] = s.Seed(idx, row, col)
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() uint32 { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() uint32 { return g.height }

// Generation returns how many times Tick has been called.
func (g *Grid) Generation() uint64 { return g.generation }

// Cells returns the current generation in row-major order.
// The slice is owned by the grid and is only valid until the next Tick.
func (g *Grid) Cells() []Cell { return g.cells }

// Index returns the flat index of (row, col).
func (g *Grid) Index(row, col uint32) uint32 {
	return row*g.width + col
}

// At returns the cell at (row, col).
func (g *Grid) At(row, col uint32) Cell {
	return g.cells[g.Index(row, col)]
}

// Set stores c at (row, col).
func (g *Grid) Set(row, col uint32, c Cell) {
	g.cells[g.Index(row, col)] = c
}

// Clear kills every cell. The generation counter is left unchanged.
func (g *Grid) Clear() {
	clear(g.cells)
}

// Population returns the number of live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c == Alive {
			n++
		}
	}
	return n
}

// NeighborCount returns the number of live cells among the eight neighbours
// of (row, col), wrapping around the grid edges.
func (g *Grid) NeighborCount(row, col uint32) uint8 {
	var count uint8
	// height-1 and width-1 are -1 modulo the dimension.
	for _, dr := range [3]uint32{g.height - 1, 0, 1} {
		for _, dc := range [3]uint32{g.width - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr) % g.height
			c := (col + dc) % g.width
			count += uint8(g.cells[g.Index(r, c)])
		}
	}
	return count
}

// Tick advances the grid by one generation.
//
// Every cell's next state is computed from the previous generation only;
// the new generation replaces the old one after all cells are computed.
func (g *Grid) Tick() {
	for row := uint32(0); row < g.height; row++ {
		for col := uint32(0); col < g.width; col++ {
			idx := g.Index(row, col)
			g.next[idx] = nextState(g.cells[idx], g.NeighborCount(row, col))
		}
	}
	g.cells, g.next = g.next, g.cells
	g.generation++
}

// nextState applies the B3/S23 rule.
func nextState(c Cell, live uint8) Cell {
	switch {
	case c == Alive && live < 2:
		return Dead
	case c == Alive && (live == 2 || live == 3):
		return Alive
	case c == Alive && live > 3:
		return Dead
	case c == Dead && live == 3:
		return Alive
	default:
		return c
	}
}
