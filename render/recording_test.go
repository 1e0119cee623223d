// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// newNoopDevice opens a Device on the noop HAL backend.
func newNoopDevice(t *testing.T) *Device {
	t.Helper()
	dev, err := OpenDevice(noop.API{})
	if err != nil {
		t.Fatalf("OpenDevice(noop) failed: %v", err)
	}
	t.Cleanup(dev.Close)
	return dev
}

// recordingDevice wraps a noop device and records buffer lifetimes and the
// commands encoded against it.
type recordingDevice struct {
	hal.Device

	live             map[hal.Buffer]gputypes.BufferUsage
	usages           map[hal.Buffer]gputypes.BufferUsage
	buffersCreated   int
	buffersDestroyed int
	shadersCreated   int
	shadersDestroyed int
	waitIdleCalls    int

	failPipeline error
	failBegin    error
	failEnd      error
	discards     int
	passes       []*recordingPass
}

// recordingQueue wraps a noop queue and keeps the last data written to
// each buffer.
type recordingQueue struct {
	hal.Queue

	writes  map[hal.Buffer][]byte
	submits int
}

// newRecordingDevice returns a Device backed by recording wrappers around
// a fresh noop device.
func newRecordingDevice(t *testing.T) (*Device, *recordingDevice, *recordingQueue) {
	t.Helper()
	inner := newNoopDevice(t)
	rd := &recordingDevice{
		Device: inner.HAL(),
		live:   make(map[hal.Buffer]gputypes.BufferUsage),
		usages: make(map[hal.Buffer]gputypes.BufferUsage),
	}
	rq := &recordingQueue{
		Queue:  inner.Queue(),
		writes: make(map[hal.Buffer][]byte),
	}
	return WrapDevice(rd, rq), rd, rq
}

func (d *recordingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	buf, err := d.Device.CreateBuffer(desc)
	if err == nil {
		d.live[buf] = desc.Usage
		d.usages[buf] = desc.Usage
		d.buffersCreated++
	}
	return buf, err
}

// usage returns the usage a buffer was created with, even after it was
// destroyed.
func (d *recordingDevice) usage(buf hal.Buffer) (gputypes.BufferUsage, bool) {
	u, ok := d.usages[buf]
	return u, ok
}

func (d *recordingDevice) DestroyBuffer(buf hal.Buffer) {
	delete(d.live, buf)
	d.buffersDestroyed++
	d.Device.DestroyBuffer(buf)
}

func (d *recordingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	m, err := d.Device.CreateShaderModule(desc)
	if err == nil {
		d.shadersCreated++
	}
	return m, err
}

func (d *recordingDevice) DestroyShaderModule(m hal.ShaderModule) {
	d.shadersDestroyed++
	d.Device.DestroyShaderModule(m)
}

func (d *recordingDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	if d.failPipeline != nil {
		return nil, d.failPipeline
	}
	return d.Device.CreateRenderPipeline(desc)
}

func (d *recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, dev: d}, nil
}

func (d *recordingDevice) WaitIdle() error {
	d.waitIdleCalls++
	return d.Device.WaitIdle()
}

// lastPass returns the most recently recorded render pass.
func (d *recordingDevice) lastPass(t *testing.T) *recordingPass {
	t.Helper()
	if len(d.passes) == 0 {
		t.Fatal("no render pass recorded")
	}
	return d.passes[len(d.passes)-1]
}

func (q *recordingQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	q.writes[buf] = append([]byte(nil), data...)
	return q.Queue.WriteBuffer(buf, offset, data)
}

func (q *recordingQueue) Submit(cmds []hal.CommandBuffer) (uint64, error) {
	q.submits++
	return q.Queue.Submit(cmds)
}

type recordingEncoder struct {
	hal.CommandEncoder
	dev *recordingDevice
}

func (e *recordingEncoder) BeginEncoding(label string) error {
	if e.dev.failBegin != nil {
		return e.dev.failBegin
	}
	return e.CommandEncoder.BeginEncoding(label)
}

func (e *recordingEncoder) EndEncoding() (hal.CommandBuffer, error) {
	if e.dev.failEnd != nil {
		return nil, e.dev.failEnd
	}
	return e.CommandEncoder.EndEncoding()
}

func (e *recordingEncoder) DiscardEncoding() {
	e.dev.discards++
	e.CommandEncoder.DiscardEncoding()
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	rp := &recordingPass{
		RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc),
		desc:              desc,
	}
	e.dev.passes = append(e.dev.passes, rp)
	return rp
}

// recordingPass records the state set and draws issued in a render pass.
type recordingPass struct {
	hal.RenderPassEncoder

	desc         *hal.RenderPassDescriptor
	viewport     [4]float32
	pipeline     hal.RenderPipeline
	vertexBuffer hal.Buffer
	draws        []uint32
	ended        bool
}

func (p *recordingPass) SetViewport(x, y, w, h, minDepth, maxDepth float32) {
	p.viewport = [4]float32{x, y, w, h}
	p.RenderPassEncoder.SetViewport(x, y, w, h, minDepth, maxDepth)
}

func (p *recordingPass) SetPipeline(pipeline hal.RenderPipeline) {
	p.pipeline = pipeline
	p.RenderPassEncoder.SetPipeline(pipeline)
}

func (p *recordingPass) SetVertexBuffer(slot uint32, buf hal.Buffer, offset uint64) {
	p.vertexBuffer = buf
	p.RenderPassEncoder.SetVertexBuffer(slot, buf, offset)
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.draws = append(p.draws, vertexCount)
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *recordingPass) End() {
	p.ended = true
	p.RenderPassEncoder.End()
}
