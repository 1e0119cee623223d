// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package life

import perlin "github.com/aquilax/go-perlin"

// Seeder chooses the initial state of each cell of a new grid.
type Seeder interface {
	// Seed returns the state of the cell at flat index idx, which sits at
	// (row, col).
	Seed(idx, row, col uint32) Cell
}

// SeederFunc adapts a plain function to the Seeder interface.
type SeederFunc func(idx, row, col uint32) Cell

// Seed calls f(idx, row, col).
func (f SeederFunc) Seed(idx, row, col uint32) Cell { return f(idx, row, col) }

// Built-in seeders. Both are comparable, so options can be checked
// against them with ==.
var (
	// ModuloSeeder marks a cell alive when its flat index is divisible by
	// 2 or 7. It is the default seeder and is fully deterministic.
	ModuloSeeder Seeder = moduloSeeder{}

	// EmptySeeder leaves every cell dead.
	EmptySeeder Seeder = emptySeeder{}
)

type moduloSeeder struct{}

func (moduloSeeder) Seed(idx, _, _ uint32) Cell {
	if idx%2 == 0 || idx%7 == 0 {
		return Alive
	}
	return Dead
}

type emptySeeder struct{}

func (emptySeeder) Seed(_, _, _ uint32) Cell { return Dead }

// Perlin parameters. alpha is the weight of each octave, beta the frequency
// multiplier between octaves.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
)

// NoiseSeeder seeds organic-looking clusters from 2D Perlin noise.
// The same seed always produces the same grid.
type NoiseSeeder struct {
	noise     *perlin.Perlin
	scale     float64
	threshold float64
}

// NewNoiseSeeder returns a seeder that samples noise at (col*scale, row*scale)
// and marks cells alive where the sample exceeds threshold. Noise values lie
// roughly in [-1, 1]; a threshold of 0 yields about half live cells.
func NewNoiseSeeder(seed int64, scale, threshold float64) *NoiseSeeder {
	return &NoiseSeeder{
		noise:     perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
		scale:     scale,
		threshold: threshold,
	}
}

// Seed implements Seeder.
func (s *NoiseSeeder) Seed(_, row, col uint32) Cell {
	v := s.noise.Noise2D(float64(col)*s.scale, float64(row)*s.scale)
	if v > s.threshold {
		return Alive
	}
	return Dead
}
