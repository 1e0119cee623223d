// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package life

// Cell is the state of a single grid cell.
type Cell uint8

const (
	// Dead is an empty cell.
	Dead Cell = 0
	// Alive is a populated cell.
	Alive Cell = 1
)

// String returns "alive" or "dead".
func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}
