// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cache

import "github.com/gogpu/vkcore/vk"

// Kind discriminates the six object families the cache knows how to build
// and tear down. It plays the same role here that VkStructureType plays in
// structkey: a single tag that every generic path switches on.
type Kind uint8

const (
	KindDescriptorSetLayout Kind = iota
	KindPipelineLayout
	KindSampler
	KindRenderPass
	KindGraphicsPipeline
	KindComputePipeline
)

func (k Kind) String() string {
	switch k {
	case KindDescriptorSetLayout:
		return "descriptorSetLayout"
	case KindPipelineLayout:
		return "pipelineLayout"
	case KindSampler:
		return "sampler"
	case KindRenderPass:
		return "renderPass"
	case KindGraphicsPipeline:
		return "graphicsPipeline"
	case KindComputePipeline:
		return "computePipeline"
	default:
		return "unknown"
	}
}

// CacheElement is the cache's tagged union over the six cacheable Vulkan
// object kinds. Exactly one of the handle fields is valid for a given Kind;
// Pipeline backs both KindGraphicsPipeline and KindComputePipeline since
// VkPipeline is the same handle type for both.
type CacheElement struct {
	Kind Kind

	DescriptorSetLayout vk.DescriptorSetLayout
	PipelineLayout      vk.PipelineLayout
	Sampler             vk.Sampler
	RenderPass          vk.RenderPass
	Pipeline            vk.Pipeline
}

// handle returns the element's underlying handle as a uintptr, useful for
// logging and metrics labels without a type switch at every call site.
func (e *CacheElement) handle() uintptr {
	switch e.Kind {
	case KindDescriptorSetLayout:
		return uintptr(e.DescriptorSetLayout)
	case KindPipelineLayout:
		return uintptr(e.PipelineLayout)
	case KindSampler:
		return uintptr(e.Sampler)
	case KindRenderPass:
		return uintptr(e.RenderPass)
	case KindGraphicsPipeline, KindComputePipeline:
		return uintptr(e.Pipeline)
	default:
		return 0
	}
}

// destroy releases the element's Vulkan object. Clear calls it once for
// every element in either tier, and Get calls it on an element it built
// but did not insert because an element for the same key was already
// present.
func (e *CacheElement) destroy(cmds *vk.Commands, device vk.Device) {
	switch e.Kind {
	case KindDescriptorSetLayout:
		cmds.DestroyDescriptorSetLayout(device, e.DescriptorSetLayout)
	case KindPipelineLayout:
		cmds.DestroyPipelineLayout(device, e.PipelineLayout)
	case KindSampler:
		cmds.DestroySampler(device, e.Sampler)
	case KindRenderPass:
		cmds.DestroyRenderPass(device, e.RenderPass)
	case KindGraphicsPipeline, KindComputePipeline:
		cmds.DestroyPipeline(device, e.Pipeline)
	}
}
