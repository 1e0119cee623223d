// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package life_test

import (
	"fmt"

	"github.com/gogpu/life"
)

// ExampleGrid_Tick shows a blinker oscillating across the wrapped edge.
func ExampleGrid_Tick() {
	g := life.NewGridWithSeeder(5, 5, life.EmptySeeder)
	g.Set(0, 4, life.Alive)
	g.Set(0, 0, life.Alive)
	g.Set(0, 1, life.Alive)

	g.Tick()
	fmt.Println(g.At(4, 0), g.At(0, 0), g.At(1, 0), g.Population())
	// Output: alive alive alive 3
}

// ExampleNewGrid shows the default seed pattern.
func ExampleNewGrid() {
	g := life.NewGrid(7, 1)
	for _, c := range g.Cells() {
		if c == life.Alive {
			fmt.Print("#")
		} else {
			fmt.Print(".")
		}
	}
	fmt.Println()
	// Output: #.#.#.#
}
