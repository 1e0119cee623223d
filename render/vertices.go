// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"math"
)

// Vertex layout: (x, y, alive) as three little-endian float32.
const (
	floatsPerVertex = 3
	vertexStride    = floatsPerVertex * 4

	// VerticesPerCell is the number of vertices emitted for one cell:
	// two triangles covering the cell's square.
	VerticesPerCell = 6

	// MaxCells is the largest grid a single draw can cover: its vertex
	// count must fit in uint32.
	MaxCells = math.MaxUint32 / VerticesPerCell
)

// VertexCount returns the number of vertices drawn for a width×height grid.
func VertexCount(width, height uint32) uint64 {
	return uint64(width) * uint64(height) * VerticesPerCell
}

// buildVertices fills dst with the quad geometry of every cell in row-major
// order and returns it, growing dst if needed. Cell (row, col) covers
// x in [col·2/width−1, (col+1)·2/width−1] and y in [row·2/height−1,
// (row+1)·2/height−1]. The third component of each vertex is the raw cell
// value; the vertex stage treats anything above zero as alive.
func buildVertices[C ~uint8](dst []byte, cells []C, width, height uint32) []byte {
	size := int(VertexCount(width, height)) * vertexStride
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	fw, fh := float32(width), float32(height)
	off := 0
	for row := range height {
		y1 := float32(row)*2/fh - 1
		y2 := float32(row+1)*2/fh - 1
		for col := range width {
			x1 := float32(col)*2/fw - 1
			x2 := float32(col+1)*2/fw - 1
			alive := float32(cells[row*width+col])

			off = writeVertex(dst, off, x1, y1, alive)
			off = writeVertex(dst, off, x2, y1, alive)
			off = writeVertex(dst, off, x2, y2, alive)
			off = writeVertex(dst, off, x1, y1, alive)
			off = writeVertex(dst, off, x1, y2, alive)
			off = writeVertex(dst, off, x2, y2, alive)
		}
	}
	return dst
}

// writeVertex writes one vertex at off and returns the next offset.
func writeVertex(buf []byte, off int, x, y, alive float32) int {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(alive))
	return off + vertexStride
}
