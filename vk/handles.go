// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Vulkan object handles. Each is a distinct type over uintptr so the Go
// compiler catches a sampler passed where a pipeline layout is expected;
// the underlying representation matches Vulkan's own non-dispatchable
// handle width on every platform this module targets.
type (
	Device               uintptr
	Queue                uintptr
	CommandBuffer        uintptr
	Image                uintptr
	Buffer               uintptr
	Sampler              uintptr
	RenderPass           uintptr
	Pipeline             uintptr
	PipelineLayout       uintptr
	PipelineCache        uintptr
	DescriptorSetLayout  uintptr
	DescriptorPool       uintptr
	DescriptorSet        uintptr
	Semaphore            uintptr
	Fence                uintptr
	ShaderModule         uintptr
)

// Null is the zero handle shared by every handle type (VK_NULL_HANDLE).
const Null = 0
