// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrDisposed is returned by Paint after Dispose.
	ErrDisposed = errors.New("render: painter disposed")

	// ErrLinkFailed wraps shader compile or pipeline creation failures
	// under LinkStrict.
	ErrLinkFailed = errors.New("render: shader program link failed")

	// ErrShortCells is returned when a cell slice holds fewer than
	// width·height entries.
	ErrShortCells = errors.New("render: cell slice shorter than width*height")

	// ErrGridTooLarge is returned for grids of more than MaxCells cells.
	ErrGridTooLarge = errors.New("render: grid too large for a single draw")
)

// LinkPolicy decides what NewPainter does when the shader program cannot be
// compiled or linked.
type LinkPolicy int

const (
	// LinkPermissive logs the failure and returns a painter that clears
	// every frame but draws nothing.
	LinkPermissive LinkPolicy = iota

	// LinkStrict makes NewPainter fail with an error wrapping ErrLinkFailed.
	LinkStrict
)

// String returns the policy name.
func (p LinkPolicy) String() string {
	switch p {
	case LinkPermissive:
		return "permissive"
	case LinkStrict:
		return "strict"
	default:
		return fmt.Sprintf("LinkPolicy(%d)", int(p))
	}
}

// PainterOption configures a Painter.
type PainterOption func(*painterConfig)

type painterConfig struct {
	linkPolicy   LinkPolicy
	clearColor   gputypes.Color
	shaderSource string
}

func defaultPainterConfig() painterConfig {
	return painterConfig{
		linkPolicy:   LinkPermissive,
		clearColor:   gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		shaderSource: lifeShaderSource,
	}
}

// WithLinkPolicy sets how shader link failures are handled.
// The default is LinkPermissive.
func WithLinkPolicy(policy LinkPolicy) PainterOption {
	return func(c *painterConfig) {
		c.linkPolicy = policy
	}
}

// WithClearColor sets the color every frame is cleared to.
// The default is opaque black.
func WithClearColor(color gputypes.Color) PainterOption {
	return func(c *painterConfig) {
		c.clearColor = color
	}
}

// FrameStats describes the painter's recent work.
type FrameStats struct {
	// Frames is the number of frames painted since creation.
	Frames uint64

	// Vertices is the vertex count of the last draw, zero if nothing was drawn.
	Vertices uint32

	// FrameTime is the wall time spent in the last Paint call, including
	// the wait for the GPU.
	FrameTime time.Duration
}

// FPS returns the frame rate implied by the last frame time.
func (s FrameStats) FPS() float64 {
	if s.FrameTime <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.FrameTime)
}

// Painter rasterizes cell grids onto a Target.
//
// A Painter owns its shader program and camera. Each Paint call builds the
// frame's vertex data, uploads it into buffers that live only for that call,
// clears the target and issues a single triangle-list draw.
//
// A Painter is not safe for concurrent use.
type Painter struct {
	dev    *Device
	target Target

	prog    *program // nil if linking failed under LinkPermissive
	linkErr error

	camera     Camera
	clearColor gputypes.Color

	// staging is the CPU-side vertex buffer, reused across frames.
	staging []byte

	stats    FrameStats
	disposed bool
}

// NewPainter compiles and links the cell shader program for target's
// format. A link failure is fatal only under LinkStrict.
func NewPainter(dev *Device, target Target, opts ...PainterOption) (*Painter, error) {
	if dev == nil || dev.HAL() == nil {
		return nil, errors.New("render: painter requires a device")
	}
	if target == nil {
		return nil, errors.New("render: painter requires a target")
	}

	cfg := defaultPainterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Painter{
		dev:        dev,
		target:     target,
		camera:     DefaultCamera(),
		clearColor: cfg.clearColor,
	}

	prog, err := linkProgram(dev.HAL(), cfg.shaderSource, target.Format())
	if err != nil {
		if cfg.linkPolicy == LinkStrict {
			return nil, fmt.Errorf("%w: %w", ErrLinkFailed, err)
		}
		slogger().Warn("render: shader program link failed, frames will only be cleared",
			"policy", cfg.linkPolicy.String(), "err", err)
		p.linkErr = err
	}
	p.prog = prog

	slogger().Info("render: painter ready",
		"format", target.Format().String(), "linked", prog != nil)
	return p, nil
}

// Linked reports whether the shader program is usable.
func (p *Painter) Linked() bool { return p.prog != nil }

// LinkError returns the diagnostic from a permissive link failure, or nil.
func (p *Painter) LinkError() error { return p.linkErr }

// Target returns the painter's drawing surface.
func (p *Painter) Target() Target { return p.target }

// Offset returns the camera pan offset in target pixels.
func (p *Painter) Offset() (int, int) { return p.camera.OffsetX, p.camera.OffsetY }

// SetOffset sets the camera pan offset in target pixels.
func (p *Painter) SetOffset(x, y int) { p.camera.OffsetX, p.camera.OffsetY = x, y }

// Zoom returns the camera zoom factor.
func (p *Painter) Zoom() float32 { return p.camera.Zoom }

// SetZoom sets the camera zoom factor. The value is not validated.
func (p *Painter) SetZoom(zoom float32) { p.camera.Zoom = zoom }

// Camera returns the full camera state.
func (p *Painter) Camera() Camera { return p.camera }

// Stats returns statistics about painted frames.
func (p *Painter) Stats() FrameStats { return p.stats }

// Paint draws a width×height row-major snapshot of cells. Non-zero cells
// are drawn white, zero cells black.
func (p *Painter) Paint(cells []uint8, width, height uint32) error {
	return PaintCells(p, cells, width, height)
}

// PaintCells is Paint for any cell type whose underlying type is uint8.
func PaintCells[C ~uint8](p *Painter, cells []C, width, height uint32) error {
	if p.disposed {
		return ErrDisposed
	}
	n := uint64(width) * uint64(height)
	if n > MaxCells {
		return fmt.Errorf("%w: %dx%d", ErrGridTooLarge, width, height)
	}
	if uint64(len(cells)) < n {
		return fmt.Errorf("%w: have %d, need %d", ErrShortCells, len(cells), n)
	}

	start := time.Now()

	var vertexCount uint32
	if p.prog != nil && width > 0 && height > 0 {
		p.staging = buildVertices(p.staging, cells, width, height)
		vertexCount = uint32(VertexCount(width, height))
	}

	if err := p.renderFrame(vertexCount, width, height); err != nil {
		return err
	}

	p.stats.Frames++
	p.stats.Vertices = vertexCount
	p.stats.FrameTime = time.Since(start)
	slogger().Debug("render: frame painted",
		"frame", p.stats.Frames, "vertices", vertexCount, "duration", p.stats.FrameTime)
	return nil
}

// frameResources holds the GPU objects created for a single frame.
type frameResources struct {
	vertBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	vertCount  uint32
}

func (r *frameResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
	}
}

// buildFrameResources uploads the staged vertices and the camera uniform.
func (p *Painter) buildFrameResources(vertexCount uint32, u cameraUniform) (*frameResources, error) {
	device := p.dev.HAL()
	vertexData := p.staging[:int(vertexCount)*vertexStride]

	vertBuf, err := p.createAndUploadBuffer("life_cell_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	uniformBuf, err := p.createAndUploadBuffer("life_camera_uniform", u.bytes(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		device.DestroyBuffer(vertBuf)
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "life_camera_bind",
		Layout: p.prog.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		device.DestroyBuffer(uniformBuf)
		device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create camera bind group: %w", err)
	}

	return &frameResources{
		vertBuf:    vertBuf,
		uniformBuf: uniformBuf,
		bindGroup:  bindGroup,
		vertCount:  vertexCount,
	}, nil
}

func (p *Painter) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	device := p.dev.HAL()
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := p.dev.Queue().WriteBuffer(buf, 0, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	return buf, nil
}

// renderFrame encodes one clear-and-draw pass into the target, submits it
// and waits for the device before the frame's buffers are released.
func (p *Painter) renderFrame(vertexCount, gridW, gridH uint32) error {
	device, queue := p.dev.HAL(), p.dev.Queue()
	surfW, surfH := p.target.Size()

	view, err := p.target.Acquire()
	if err != nil {
		return fmt.Errorf("acquire target: %w", err)
	}
	presented := false
	defer func() {
		if !presented {
			p.target.Discard()
		}
	}()

	var res *frameResources
	if vertexCount > 0 {
		res, err = p.buildFrameResources(vertexCount, p.camera.uniform(surfW, surfH, gridW, gridH))
		if err != nil {
			return err
		}
		defer res.destroy(device)
	}

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "life_frame"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("life_frame"); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "life_cells_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: p.clearColor,
		}},
	})
	rp.SetViewport(0, 0, float32(surfW), float32(surfH), 0, 1)
	if res != nil {
		rp.SetPipeline(p.prog.pipeline)
		rp.SetBindGroup(0, res.bindGroup, nil)
		rp.SetVertexBuffer(0, res.vertBuf, 0)
		rp.Draw(res.vertCount, 1, 0, 0)
	}
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmd)

	if _, err := queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}
	if err := device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for frame: %w", err)
	}

	presented = true
	if err := p.target.Present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// Dispose releases the shader program. It is safe to call more than once;
// only the first call releases anything. Paint returns ErrDisposed afterwards.
// The target and device are not touched.
func (p *Painter) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	if p.prog != nil {
		p.prog.destroy(p.dev.HAL())
		p.prog = nil
	}
	p.staging = nil
	slogger().Info("render: painter disposed", "frames", p.stats.Frames)
}
