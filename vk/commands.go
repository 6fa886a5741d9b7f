// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Commands holds the device-level Vulkan function pointers this module
// calls directly. Fields are populated by [Commands.LoadDevice]; an
// invocation method whose pointer was never loaded makes no call: methods
// returning a Result report ErrorInitializationFailed, the others do
// nothing, so a caller
// running against a driver missing an optional entry point degrades
// rather than crashes.
type Commands struct {
	createDescriptorSetLayout  unsafe.Pointer
	destroyDescriptorSetLayout unsafe.Pointer
	createPipelineLayout       unsafe.Pointer
	destroyPipelineLayout      unsafe.Pointer
	createSampler              unsafe.Pointer
	destroySampler             unsafe.Pointer
	createRenderPass           unsafe.Pointer
	destroyRenderPass          unsafe.Pointer
	createGraphicsPipelines    unsafe.Pointer
	createComputePipelines     unsafe.Pointer
	destroyPipeline            unsafe.Pointer
	createPipelineCache        unsafe.Pointer
	destroyPipelineCache       unsafe.Pointer
	getPipelineCacheData       unsafe.Pointer
	mergePipelineCaches        unsafe.Pointer
	createDescriptorPool       unsafe.Pointer
	destroyDescriptorPool      unsafe.Pointer
	resetDescriptorPool        unsafe.Pointer
	allocateDescriptorSets     unsafe.Pointer
	freeDescriptorSets         unsafe.Pointer
	updateDescriptorSets       unsafe.Pointer
	createFence                unsafe.Pointer
	destroyFence               unsafe.Pointer
	resetFences                unsafe.Pointer
	getFenceStatus             unsafe.Pointer
	waitForFences              unsafe.Pointer
	createSemaphore            unsafe.Pointer
	destroySemaphore           unsafe.Pointer
	cmdPipelineBarrier         unsafe.Pointer
	queueSubmit                unsafe.Pointer
	deviceWaitIdle             unsafe.Pointer
}

// NewCommands returns an empty Commands. Call [Commands.LoadDevice] before
// invoking any method.
func NewCommands() *Commands {
	return &Commands{}
}

// LoadDevice resolves every entry point this package uses against an
// already-created device. Returns an error if an entry point this module
// cannot function without (vkCreateDescriptorPool, vkCreateGraphicsPipelines,
// vkQueueSubmit) is missing; the error does not name which one.
func (c *Commands) LoadDevice(device Device) error {
	if device == 0 {
		return fmt.Errorf("vk: invalid device handle")
	}

	c.createDescriptorSetLayout = getDeviceProcAddr(device, "vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = getDeviceProcAddr(device, "vkDestroyDescriptorSetLayout")
	c.createPipelineLayout = getDeviceProcAddr(device, "vkCreatePipelineLayout")
	c.destroyPipelineLayout = getDeviceProcAddr(device, "vkDestroyPipelineLayout")
	c.createSampler = getDeviceProcAddr(device, "vkCreateSampler")
	c.destroySampler = getDeviceProcAddr(device, "vkDestroySampler")
	c.createRenderPass = getDeviceProcAddr(device, "vkCreateRenderPass")
	c.destroyRenderPass = getDeviceProcAddr(device, "vkDestroyRenderPass")
	c.createGraphicsPipelines = getDeviceProcAddr(device, "vkCreateGraphicsPipelines")
	c.createComputePipelines = getDeviceProcAddr(device, "vkCreateComputePipelines")
	c.destroyPipeline = getDeviceProcAddr(device, "vkDestroyPipeline")
	c.createPipelineCache = getDeviceProcAddr(device, "vkCreatePipelineCache")
	c.destroyPipelineCache = getDeviceProcAddr(device, "vkDestroyPipelineCache")
	c.getPipelineCacheData = getDeviceProcAddr(device, "vkGetPipelineCacheData")
	c.mergePipelineCaches = getDeviceProcAddr(device, "vkMergePipelineCaches")
	c.createDescriptorPool = getDeviceProcAddr(device, "vkCreateDescriptorPool")
	c.destroyDescriptorPool = getDeviceProcAddr(device, "vkDestroyDescriptorPool")
	c.resetDescriptorPool = getDeviceProcAddr(device, "vkResetDescriptorPool")
	c.allocateDescriptorSets = getDeviceProcAddr(device, "vkAllocateDescriptorSets")
	c.freeDescriptorSets = getDeviceProcAddr(device, "vkFreeDescriptorSets")
	c.updateDescriptorSets = getDeviceProcAddr(device, "vkUpdateDescriptorSets")
	c.createFence = getDeviceProcAddr(device, "vkCreateFence")
	c.destroyFence = getDeviceProcAddr(device, "vkDestroyFence")
	c.resetFences = getDeviceProcAddr(device, "vkResetFences")
	c.getFenceStatus = getDeviceProcAddr(device, "vkGetFenceStatus")
	c.waitForFences = getDeviceProcAddr(device, "vkWaitForFences")
	c.createSemaphore = getDeviceProcAddr(device, "vkCreateSemaphore")
	c.destroySemaphore = getDeviceProcAddr(device, "vkDestroySemaphore")
	c.cmdPipelineBarrier = getDeviceProcAddr(device, "vkCmdPipelineBarrier")
	c.queueSubmit = getDeviceProcAddr(device, "vkQueueSubmit")
	c.deviceWaitIdle = getDeviceProcAddr(device, "vkDeviceWaitIdle")

	if c.createDescriptorPool == nil || c.createGraphicsPipelines == nil || c.queueSubmit == nil {
		return fmt.Errorf("vk: failed to load critical device functions")
	}
	return nil
}

func callResult(cif *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) Result {
	if fn == nil {
		return ErrorInitializationFailed
	}
	var result int32
	if err := ffi.CallFunction(cif, fn, unsafe.Pointer(&result), args); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// CreateDescriptorSetLayout wraps vkCreateDescriptorSetLayout.
func (c *Commands) CreateDescriptorSetLayout(device Device, createInfo unsafe.Pointer, layout *DescriptorSetLayout) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&layout)}
	return callResult(&sigResultHandlePtrPtr, c.createDescriptorSetLayout, args)
}

// DestroyDescriptorSetLayout wraps vkDestroyDescriptorSetLayout.
func (c *Commands) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout) {
	if c.destroyDescriptorSetLayout == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&layout)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyDescriptorSetLayout, nil, args)
}

// CreatePipelineLayout wraps vkCreatePipelineLayout.
func (c *Commands) CreatePipelineLayout(device Device, createInfo unsafe.Pointer, layout *PipelineLayout) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&layout)}
	return callResult(&sigResultHandlePtrPtr, c.createPipelineLayout, args)
}

// DestroyPipelineLayout wraps vkDestroyPipelineLayout.
func (c *Commands) DestroyPipelineLayout(device Device, layout PipelineLayout) {
	if c.destroyPipelineLayout == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&layout)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyPipelineLayout, nil, args)
}

// CreateSampler wraps vkCreateSampler.
func (c *Commands) CreateSampler(device Device, createInfo unsafe.Pointer, sampler *Sampler) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&sampler)}
	return callResult(&sigResultHandlePtrPtr, c.createSampler, args)
}

// DestroySampler wraps vkDestroySampler.
func (c *Commands) DestroySampler(device Device, sampler Sampler) {
	if c.destroySampler == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sampler)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroySampler, nil, args)
}

// CreateRenderPass wraps vkCreateRenderPass.
func (c *Commands) CreateRenderPass(device Device, createInfo unsafe.Pointer, pass *RenderPass) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&pass)}
	return callResult(&sigResultHandlePtrPtr, c.createRenderPass, args)
}

// DestroyRenderPass wraps vkDestroyRenderPass.
func (c *Commands) DestroyRenderPass(device Device, pass RenderPass) {
	if c.destroyRenderPass == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pass)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyRenderPass, nil, args)
}

// CreateGraphicsPipelines wraps vkCreateGraphicsPipelines. cache may be
// [Null]; count is always 1 in this module (the cache never batches
// creation across callers).
func (c *Commands) CreateGraphicsPipelines(device Device, cache PipelineCache, count uint32, createInfos unsafe.Pointer, pipelines *Pipeline) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count),
		unsafe.Pointer(&createInfos), unsafe.Pointer(&pipelines),
	}
	return callResult(&sigResultCreatePipelines, c.createGraphicsPipelines, args)
}

// CreateComputePipelines wraps vkCreateComputePipelines.
func (c *Commands) CreateComputePipelines(device Device, cache PipelineCache, count uint32, createInfos unsafe.Pointer, pipelines *Pipeline) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count),
		unsafe.Pointer(&createInfos), unsafe.Pointer(&pipelines),
	}
	return callResult(&sigResultCreatePipelines, c.createComputePipelines, args)
}

// DestroyPipeline wraps vkDestroyPipeline.
func (c *Commands) DestroyPipeline(device Device, pipeline Pipeline) {
	if c.destroyPipeline == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pipeline)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyPipeline, nil, args)
}

// CreatePipelineCache wraps vkCreatePipelineCache.
func (c *Commands) CreatePipelineCache(device Device, createInfo unsafe.Pointer, cache *PipelineCache) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&cache)}
	return callResult(&sigResultHandlePtrPtr, c.createPipelineCache, args)
}

// DestroyPipelineCache wraps vkDestroyPipelineCache.
func (c *Commands) DestroyPipelineCache(device Device, cache PipelineCache) {
	if c.destroyPipelineCache == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyPipelineCache, nil, args)
}

// GetPipelineCacheData wraps vkGetPipelineCacheData.
func (c *Commands) GetPipelineCacheData(device Device, cache PipelineCache, size *uint64, data unsafe.Pointer) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&size), unsafe.Pointer(&data)}
	return callResult(&sigResultHandleHandlePtrPtr, c.getPipelineCacheData, args)
}

// MergePipelineCaches wraps vkMergePipelineCaches.
func (c *Commands) MergePipelineCaches(device Device, dst PipelineCache, count uint32, srcs unsafe.Pointer) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&dst), unsafe.Pointer(&count), unsafe.Pointer(&srcs)}
	return callResult(&sigResultHandleHandleU32Ptr, c.mergePipelineCaches, args)
}

// CreateDescriptorPool wraps vkCreateDescriptorPool.
func (c *Commands) CreateDescriptorPool(device Device, createInfo unsafe.Pointer, pool *DescriptorPool) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&pool)}
	return callResult(&sigResultHandlePtrPtr, c.createDescriptorPool, args)
}

// DestroyDescriptorPool wraps vkDestroyDescriptorPool.
func (c *Commands) DestroyDescriptorPool(device Device, pool DescriptorPool) {
	if c.destroyDescriptorPool == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyDescriptorPool, nil, args)
}

// ResetDescriptorPool wraps vkResetDescriptorPool.
func (c *Commands) ResetDescriptorPool(device Device, pool DescriptorPool, flags uint32) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&flags)}
	return callResult(&sigResultHandleHandleU32, c.resetDescriptorPool, args)
}

// AllocateDescriptorSets wraps vkAllocateDescriptorSets.
func (c *Commands) AllocateDescriptorSets(device Device, allocInfo unsafe.Pointer, sets *DescriptorSet) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&allocInfo), unsafe.Pointer(&sets)}
	return callResult(&sigResultHandlePtrPtr, c.allocateDescriptorSets, args)
}

// FreeDescriptorSets wraps vkFreeDescriptorSets.
func (c *Commands) FreeDescriptorSets(device Device, pool DescriptorPool, count uint32, sets unsafe.Pointer) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&sets)}
	return callResult(&sigResultHandleHandleU32Ptr, c.freeDescriptorSets, args)
}

// UpdateDescriptorSets wraps vkUpdateDescriptorSets.
func (c *Commands) UpdateDescriptorSets(device Device, writeCount uint32, writes unsafe.Pointer, copyCount uint32, copies unsafe.Pointer) {
	if c.updateDescriptorSets == nil {
		return
	}
	args := []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&writeCount), unsafe.Pointer(&writes),
		unsafe.Pointer(&copyCount), unsafe.Pointer(&copies),
	}
	_ = ffi.CallFunction(&sigVoidHandleU32PtrU32Ptr, c.updateDescriptorSets, nil, args)
}

// CreateFence wraps vkCreateFence.
func (c *Commands) CreateFence(device Device, createInfo unsafe.Pointer, fence *Fence) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&fence)}
	return callResult(&sigResultHandlePtrPtr, c.createFence, args)
}

// DestroyFence wraps vkDestroyFence.
func (c *Commands) DestroyFence(device Device, fence Fence) {
	if c.destroyFence == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyFence, nil, args)
}

// ResetFences wraps vkResetFences.
func (c *Commands) ResetFences(device Device, count uint32, fences unsafe.Pointer) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences)}
	return callResult(&sigResultHandleU32Ptr, c.resetFences, args)
}

// GetFenceStatus wraps vkGetFenceStatus.
func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)}
	return callResult(&sigResultHandleHandle, c.getFenceStatus, args)
}

// WaitForFences wraps vkWaitForFences.
func (c *Commands) WaitForFences(device Device, count uint32, fences unsafe.Pointer, waitAll Bool32, timeout uint64) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences),
		unsafe.Pointer(&waitAll), unsafe.Pointer(&timeout),
	}
	return callResult(&sigResultWaitForFences, c.waitForFences, args)
}

// CreateSemaphore wraps vkCreateSemaphore.
func (c *Commands) CreateSemaphore(device Device, createInfo unsafe.Pointer, semaphore *Semaphore) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&semaphore)}
	return callResult(&sigResultHandlePtrPtr, c.createSemaphore, args)
}

// DestroySemaphore wraps vkDestroySemaphore.
func (c *Commands) DestroySemaphore(device Device, semaphore Semaphore) {
	if c.destroySemaphore == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&semaphore)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroySemaphore, nil, args)
}

// CmdPipelineBarrier wraps vkCmdPipelineBarrier.
func (c *Commands) CmdPipelineBarrier(cmd CommandBuffer, srcStage, dstStage PipelineStageFlags,
	memCount uint32, memBarriers unsafe.Pointer,
	bufCount uint32, bufBarriers unsafe.Pointer,
	imgCount uint32, imgBarriers unsafe.Pointer) {
	if c.cmdPipelineBarrier == nil {
		return
	}
	args := []unsafe.Pointer{
		unsafe.Pointer(&cmd), unsafe.Pointer(&srcStage), unsafe.Pointer(&dstStage),
		unsafe.Pointer(&memCount), unsafe.Pointer(&memBarriers),
		unsafe.Pointer(&bufCount), unsafe.Pointer(&bufBarriers),
		unsafe.Pointer(&imgCount), unsafe.Pointer(&imgBarriers),
	}
	_ = ffi.CallFunction(&sigVoidCmdPipelineBarrier, c.cmdPipelineBarrier, nil, args)
}

// QueueSubmit wraps vkQueueSubmit.
func (c *Commands) QueueSubmit(queue Queue, count uint32, submits unsafe.Pointer, fence Fence) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&queue), unsafe.Pointer(&count), unsafe.Pointer(&submits), unsafe.Pointer(&fence),
	}
	return callResult(&sigResultHandleU32PtrHandle, c.queueSubmit, args)
}

// DeviceWaitIdle wraps vkDeviceWaitIdle.
func (c *Commands) DeviceWaitIdle(device Device) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device)}
	return callResult(&sigResultHandle, c.deviceWaitIdle, args)
}
