// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/software"
)

var (
	// ErrNoAdapter is returned when a backend exposes no usable adapter.
	ErrNoAdapter = errors.New("render: no GPU adapter available")

	// ErrUnknownBackend is returned by Open for a name that was never registered.
	ErrUnknownBackend = errors.New("render: unknown backend")

	// ErrNoInstance is returned when a window surface is requested from a
	// device that was wrapped without its HAL instance.
	ErrNoInstance = errors.New("render: device has no HAL instance")
)

// Device owns (or borrows) a HAL device and its queue.
//
// A Device created by OpenDevice or Open owns the whole HAL chain
// (instance, adapter, device) and releases it on Close. A Device created
// by WrapDevice borrows a host's device; Close leaves it untouched.
//
// The concrete backend is chosen when the Device is opened, so painters and
// targets never need to downcast an opaque context to reach the GPU.
type Device struct {
	instance hal.Instance
	adapter  hal.Adapter
	device   hal.Device
	queue    hal.Queue
	info     gputypes.AdapterInfo
	owned    bool
	closed   bool
}

// Open opens a device on the backend registered under name.
// An empty name selects the highest-priority registered backend.
func Open(name string) (*Device, error) {
	if name == "" {
		name = backends.BestName()
	}
	if !backends.Has(name) {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Backends())
	}
	dev, err := OpenDevice(backends.Get(name))
	if err != nil {
		return nil, fmt.Errorf("render: open %s backend: %w", name, err)
	}
	return dev, nil
}

// OpenDevice creates an instance on backend, enumerates its adapters and
// opens the first one with default limits.
func OpenDevice(backend hal.Backend) (*Device, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrUnknownBackend)
	}

	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{
		Backends: gputypes.BackendsAll,
	})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	exposed := adapters[0]

	open, err := exposed.Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open adapter %q: %w", exposed.Info.Name, err)
	}

	slogger().Info("render: device opened",
		"adapter", exposed.Info.Name,
		"backend", exposed.Info.Backend.String(),
		"driver", exposed.Info.Driver,
	)

	return &Device{
		instance: instance,
		adapter:  exposed.Adapter,
		device:   open.Device,
		queue:    open.Queue,
		info:     exposed.Info,
		owned:    true,
	}, nil
}

// WrapDevice wraps a device and queue owned by the host application.
// Close on the returned Device does not destroy them.
func WrapDevice(device hal.Device, queue hal.Queue) *Device {
	return &Device{device: device, queue: queue}
}

// HAL returns the underlying HAL device.
func (d *Device) HAL() hal.Device { return d.device }

// Queue returns the device's command queue.
func (d *Device) Queue() hal.Queue { return d.queue }

// Instance returns the HAL instance, or nil for a wrapped device.
func (d *Device) Instance() hal.Instance { return d.instance }

// Info returns metadata about the adapter the device was opened on.
// It is the zero value for a wrapped device.
func (d *Device) Info() gputypes.AdapterInfo { return d.info }

// Owned reports whether Close releases the HAL device.
func (d *Device) Owned() bool { return d.owned }

// Close waits for outstanding GPU work and releases the device, adapter
// and instance if this Device owns them. Safe to call more than once.
func (d *Device) Close() {
	if d == nil || d.closed {
		return
	}
	d.closed = true
	if !d.owned {
		return
	}
	if err := d.device.WaitIdle(); err != nil {
		slogger().Warn("render: wait idle on close", "err", err)
	}
	d.device.Destroy()
	if d.adapter != nil {
		d.adapter.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
	}
	slogger().Info("render: device closed", "adapter", d.info.Name)
}

// copyRowPitch returns the buffer row pitch of a texture-to-buffer copy of
// rows bytesPerRow wide. The CPU rasterizer packs rows tightly; GPU backends
// pad each row to copyPitchAlignment.
func (d *Device) copyRowPitch(bytesPerRow uint32) uint32 {
	if _, ok := d.device.(*software.Device); ok {
		return bytesPerRow
	}
	return (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}
