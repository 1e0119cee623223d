// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/software"
)

// Backend names understood by Open.
const (
	BackendVulkan   = "vulkan"
	BackendMetal    = "metal"
	BackendDX12     = "dx12"
	BackendGL       = "gl"
	BackendSoftware = "software"
)

// backends maps backend names to HAL backends. Hardware APIs are preferred
// over the CPU rasterizer when Open is called with an empty name.
var backends = gpucontext.NewRegistry[hal.Backend](
	gpucontext.WithPriority(BackendVulkan, BackendMetal, BackendDX12, BackendGL, BackendSoftware),
)

func init() {
	backends.Register(BackendSoftware, func() hal.Backend { return software.API{} })
}

// RegisterBackend makes a HAL backend available to Open under name.
// Registering an existing name replaces it. A nil backend is ignored.
func RegisterBackend(name string, backend hal.Backend) {
	if backend == nil {
		return
	}
	backends.Register(name, func() hal.Backend { return backend })
}

// UnregisterBackend removes the backend registered under name.
func UnregisterBackend(name string) {
	backends.Unregister(name)
}

// RegisterHALBackends adopts every hardware backend present in the HAL
// registry, typically populated by importing github.com/gogpu/wgpu/hal/allbackends
// or a single backend package for side effects. The empty variant is skipped
// because it is shared by the noop and software backends.
//
// Returns the names that were registered.
func RegisterHALBackends() []string {
	var names []string
	for _, variant := range hal.AvailableBackends() {
		if variant == gputypes.BackendEmpty {
			continue
		}
		b, ok := hal.GetBackend(variant)
		if !ok {
			continue
		}
		name := backendName(variant)
		RegisterBackend(name, b)
		names = append(names, name)
	}
	if len(names) > 0 {
		slogger().Debug("render: adopted HAL backends", "backends", names)
	}
	return names
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	names := backends.Available()
	slices.Sort(names)
	return names
}

// backendName returns the registry name for a HAL backend variant.
func backendName(v gputypes.Backend) string {
	switch v {
	case gputypes.BackendVulkan:
		return BackendVulkan
	case gputypes.BackendMetal:
		return BackendMetal
	case gputypes.BackendDX12:
		return BackendDX12
	case gputypes.BackendGL:
		return BackendGL
	default:
		return strings.ToLower(v.String())
	}
}
