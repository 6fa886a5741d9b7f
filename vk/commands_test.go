// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "testing"

// An unloaded Commands has every function pointer nil (no library was ever
// bound via LoadDevice). Every method must degrade gracefully: Create/Get
// calls return ErrorInitializationFailed, Destroy/void calls simply no-op.
// This is the behavior the cache/descriptor/dependency packages' tests rely
// on to exercise their own logic without a real Vulkan driver.

func TestUnloadedCommandsCreateCallsFail(t *testing.T) {
	c := NewCommands()
	device := Device(1)

	var layout DescriptorSetLayout
	if res := c.CreateDescriptorSetLayout(device, nil, &layout); res != ErrorInitializationFailed {
		t.Errorf("CreateDescriptorSetLayout = %v, want ErrorInitializationFailed", res)
	}

	var sampler Sampler
	if res := c.CreateSampler(device, nil, &sampler); res != ErrorInitializationFailed {
		t.Errorf("CreateSampler = %v, want ErrorInitializationFailed", res)
	}

	var pool DescriptorPool
	if res := c.CreateDescriptorPool(device, nil, &pool); res != ErrorInitializationFailed {
		t.Errorf("CreateDescriptorPool = %v, want ErrorInitializationFailed", res)
	}

	var sem Semaphore
	if res := c.CreateSemaphore(device, nil, &sem); res != ErrorInitializationFailed {
		t.Errorf("CreateSemaphore = %v, want ErrorInitializationFailed", res)
	}
}

func TestUnloadedCommandsDestroyCallsNoop(t *testing.T) {
	c := NewCommands()
	device := Device(1)

	// None of these must panic against a nil function pointer.
	c.DestroyDescriptorSetLayout(device, DescriptorSetLayout(1))
	c.DestroySampler(device, Sampler(1))
	c.DestroyPipelineLayout(device, PipelineLayout(1))
	c.DestroyRenderPass(device, RenderPass(1))
	c.DestroyPipeline(device, Pipeline(1))
	c.DestroyPipelineCache(device, PipelineCache(1))
	c.DestroyDescriptorPool(device, DescriptorPool(1))
	c.DestroySemaphore(device, Semaphore(1))
	c.DestroyFence(device, Fence(1))
	c.UpdateDescriptorSets(device, 0, nil, 0, nil)
	c.CmdPipelineBarrier(CommandBuffer(1), PipelineStageTopOfPipe, PipelineStageBottomOfPipe, 0, nil, 0, nil, 0, nil)
}

func TestUnloadedCommandsResetReturnsFailure(t *testing.T) {
	c := NewCommands()
	if res := c.ResetDescriptorPool(Device(1), DescriptorPool(1), 0); res != ErrorInitializationFailed {
		t.Errorf("ResetDescriptorPool = %v, want ErrorInitializationFailed", res)
	}
	if res := c.DeviceWaitIdle(Device(1)); res != ErrorInitializationFailed {
		t.Errorf("DeviceWaitIdle = %v, want ErrorInitializationFailed", res)
	}
}
