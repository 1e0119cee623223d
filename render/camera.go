// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"math"
)

// Camera is the view transform applied to the grid: a pan offset in target
// pixels and a zoom factor. Values are stored as given; the Painter does not
// clamp them.
type Camera struct {
	OffsetX, OffsetY int
	Zoom             float32
}

// DefaultCamera returns an unpanned camera at zoom 1.
func DefaultCamera() Camera { return Camera{Zoom: 1} }

// cameraUniform is the uniform block consumed by the vertex stage.
// Layout matches the Camera struct in life.wgsl: two vec2<f32>.
type cameraUniform struct {
	scale  [2]float32
	offset [2]float32
}

// uniformSize is the byte size of cameraUniform.
const uniformSize = 16

// uniform computes the shader transform for a gridW×gridH grid drawn onto a
// surfW×surfH target.
//
// The x scale is divided by aspect = (surfW/surfH)·(gridH/gridW) so cells
// stay square regardless of the target's shape. The pixel offset is
// converted to NDC units, where the full target spans 2.
func (c Camera) uniform(surfW, surfH, gridW, gridH uint32) cameraUniform {
	aspect := (float32(surfW) / float32(surfH)) * (float32(gridH) / float32(gridW))
	return cameraUniform{
		scale: [2]float32{c.Zoom / aspect, c.Zoom},
		offset: [2]float32{
			float32(c.OffsetX) / float32(surfW) * 2,
			float32(c.OffsetY) / float32(surfH) * 2,
		},
	}
}

// bytes packs the uniform in little-endian order for upload.
func (u cameraUniform) bytes() []byte {
	buf := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(u.scale[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(u.scale[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(u.offset[0]))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(u.offset[1]))
	return buf
}
