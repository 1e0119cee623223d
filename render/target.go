// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"math"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrInvalidTargetSize is returned when a target would have a zero dimension.
var ErrInvalidTargetSize = errors.New("render: target size must be positive")

// copyPitchAlignment is the BytesPerRow alignment required by
// texture-to-buffer copies.
const copyPitchAlignment = 256

// Target is the drawing surface a Painter rasterizes into.
//
// Every frame follows the same protocol: Acquire returns the view to render
// into, then exactly one of Present (the frame was submitted) or Discard
// (the frame was abandoned) hands the image back.
type Target interface {
	// Size returns the drawable size in physical pixels.
	Size() (width, height uint32)

	// Format returns the pixel format of the views returned by Acquire.
	Format() gputypes.TextureFormat

	// Acquire returns the texture view for the next frame.
	Acquire() (hal.TextureView, error)

	// Present hands a rendered frame to its consumer.
	Present() error

	// Discard abandons the acquired frame.
	Discard()

	// Destroy releases the target's GPU resources.
	Destroy()
}

// TextureTarget is an offscreen RGBA8 texture. Its contents can be read back
// with ReadPixels, which makes it the target for headless rendering and tests.
type TextureTarget struct {
	dev     *Device
	width   uint32
	height  uint32
	texture hal.Texture
	view    hal.TextureView
}

// NewTextureTarget creates an offscreen target of the given pixel size.
func NewTextureTarget(dev *Device, width, height uint32) (*TextureTarget, error) {
	t := &TextureTarget{dev: dev}
	if err := t.create(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TextureTarget) create(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, width, height)
	}
	device := t.dev.HAL()

	texture, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "life_target",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create target texture: %w", err)
	}

	view, err := device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label:           "life_target_view",
		Format:          gputypes.TextureFormatRGBA8Unorm,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		device.DestroyTexture(texture)
		return fmt.Errorf("create target view: %w", err)
	}

	t.texture, t.view = texture, view
	t.width, t.height = width, height
	return nil
}

// Size returns the texture size in pixels.
func (t *TextureTarget) Size() (uint32, uint32) { return t.width, t.height }

// Format returns gputypes.TextureFormatRGBA8Unorm.
func (t *TextureTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// Texture returns the backing HAL texture.
func (t *TextureTarget) Texture() hal.Texture { return t.texture }

// Acquire returns the texture's view. The same view is reused every frame.
func (t *TextureTarget) Acquire() (hal.TextureView, error) {
	if t.view == nil {
		return nil, errors.New("render: texture target destroyed")
	}
	return t.view, nil
}

// Present is a no-op; the rendered image stays in the texture.
func (t *TextureTarget) Present() error { return nil }

// Discard is a no-op.
func (t *TextureTarget) Discard() {}

// Resize recreates the texture at a new size. The previous contents are lost.
func (t *TextureTarget) Resize(width, height uint32) error {
	if width == t.width && height == t.height && t.texture != nil {
		return nil
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, width, height)
	}
	t.Destroy()
	return t.create(width, height)
}

// Destroy releases the texture and its view.
func (t *TextureTarget) Destroy() {
	device := t.dev.HAL()
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// ReadPixels copies the texture into a new image. It blocks until the GPU
// has finished all submitted work.
func (t *TextureTarget) ReadPixels() (*image.RGBA, error) {
	if t.texture == nil {
		return nil, errors.New("render: texture target destroyed")
	}
	device, queue := t.dev.HAL(), t.dev.Queue()
	w, h := t.width, t.height

	bytesPerRow := w * 4
	rowPitch := t.dev.copyRowPitch(bytesPerRow)
	size := uint64(rowPitch) * uint64(h)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "life_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create readback buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "life_readback"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("life_readback"); err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(t.texture, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: rowPitch, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: t.texture, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmd)

	if _, err := queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, fmt.Errorf("submit readback: %w", err)
	}
	if err := device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wait for readback: %w", err)
	}

	mapping, err := device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map readback buffer: %w", err)
	}
	data := unsafe.Slice((*byte)(mapping.Ptr), size) //nolint:gosec // mapped range is size bytes

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := range h {
		src := data[uint64(row)*uint64(rowPitch):]
		copy(img.Pix[int(row)*img.Stride:int(row)*img.Stride+int(bytesPerRow)], src[:bytesPerRow])
	}

	if err := device.UnmapBuffer(staging); err != nil {
		slogger().Warn("render: unmap readback buffer", "err", err)
	}
	return img, nil
}

// SurfaceTarget presents to a window surface. Its pixel size follows the
// window: the logical size reported by a gpucontext.WindowProvider scaled by
// its DPI factor. The surface is reconfigured whenever that size changes.
type SurfaceTarget struct {
	dev      *Device
	surface  hal.Surface
	provider gpucontext.WindowProvider
	format   gputypes.TextureFormat
	owned    bool

	width, height uint32

	current hal.SurfaceTexture
	view    hal.TextureView
}

// NewSurfaceTarget creates a surface for a native window and configures it
// at the provider's current pixel size. The device must own its HAL
// instance; see ErrNoInstance.
func NewSurfaceTarget(dev *Device, display, window uintptr, provider gpucontext.WindowProvider) (*SurfaceTarget, error) {
	instance := dev.Instance()
	if instance == nil {
		return nil, ErrNoInstance
	}
	surface, err := instance.CreateSurface(display, window)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	t, err := newSurfaceTarget(dev, surface, provider, true)
	if err != nil {
		surface.Destroy()
		return nil, err
	}
	return t, nil
}

// NewSurfaceTargetFromSurface wraps a surface created by the host.
// Destroy unconfigures the surface but does not destroy it.
func NewSurfaceTargetFromSurface(dev *Device, surface hal.Surface, provider gpucontext.WindowProvider) (*SurfaceTarget, error) {
	return newSurfaceTarget(dev, surface, provider, false)
}

func newSurfaceTarget(dev *Device, surface hal.Surface, provider gpucontext.WindowProvider, owned bool) (*SurfaceTarget, error) {
	if provider == nil {
		return nil, errors.New("render: surface target requires a window provider")
	}
	t := &SurfaceTarget{
		dev:      dev,
		surface:  surface,
		provider: provider,
		format:   gputypes.TextureFormatBGRA8Unorm,
		owned:    owned,
	}
	w, h := t.pixelSize()
	if err := t.configure(w, h); err != nil {
		return nil, err
	}
	return t, nil
}

// pixelSize converts the provider's logical size to physical pixels.
func (t *SurfaceTarget) pixelSize() (uint32, uint32) {
	w, h := t.provider.Size()
	sf := t.provider.ScaleFactor()
	return uint32(max(0, math.Round(float64(w)*sf))), uint32(max(0, math.Round(float64(h)*sf)))
}

func (t *SurfaceTarget) configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, width, height)
	}
	err := t.surface.Configure(t.dev.HAL(), &hal.SurfaceConfiguration{
		Width:       width,
		Height:      height,
		Format:      t.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: gputypes.PresentModeFifo,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
	})
	if err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, err)
	}
	t.width, t.height = width, height
	slogger().Debug("render: surface configured", "width", width, "height", height)
	return nil
}

// Size returns the window size in physical pixels.
func (t *SurfaceTarget) Size() (uint32, uint32) { return t.pixelSize() }

// Format returns the surface texture format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat { return t.format }

// Acquire reconfigures the surface if the window was resized, then acquires
// the next swapchain texture.
func (t *SurfaceTarget) Acquire() (hal.TextureView, error) {
	if t.current != nil {
		t.Discard()
	}
	if w, h := t.pixelSize(); w != t.width || h != t.height {
		if err := t.configure(w, h); err != nil {
			return nil, err
		}
	}

	acquired, err := t.surface.AcquireTexture(nil)
	if err != nil {
		return nil, fmt.Errorf("acquire surface texture: %w", err)
	}
	if acquired.Suboptimal {
		slogger().Debug("render: suboptimal surface texture")
	}

	view, err := t.dev.HAL().CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label:           "life_surface_view",
		Format:          t.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		t.surface.DiscardTexture(acquired.Texture)
		return nil, fmt.Errorf("create surface view: %w", err)
	}
	t.current, t.view = acquired.Texture, view
	return view, nil
}

// Present queues the acquired texture for display.
func (t *SurfaceTarget) Present() error {
	if t.current == nil {
		return nil
	}
	t.releaseView()
	texture := t.current
	t.current = nil
	if err := t.dev.Queue().Present(t.surface, texture, nil); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// Discard returns the acquired texture without presenting it.
func (t *SurfaceTarget) Discard() {
	if t.current == nil {
		return
	}
	t.releaseView()
	t.surface.DiscardTexture(t.current)
	t.current = nil
}

func (t *SurfaceTarget) releaseView() {
	if t.view != nil {
		t.dev.HAL().DestroyTextureView(t.view)
		t.view = nil
	}
}

// Destroy discards any acquired texture and unconfigures the surface.
// The surface itself is destroyed only if NewSurfaceTarget created it.
func (t *SurfaceTarget) Destroy() {
	if t.surface == nil {
		return
	}
	t.Discard()
	t.surface.Unconfigure(t.dev.HAL())
	if t.owned {
		t.surface.Destroy()
	}
	t.surface = nil
}
