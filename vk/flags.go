// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// AccessFlags mirrors VkAccessFlags.
type AccessFlags uint32

const (
	AccessIndirectCommandRead        AccessFlags = 1 << 0
	AccessIndexRead                  AccessFlags = 1 << 1
	AccessVertexAttributeRead        AccessFlags = 1 << 2
	AccessUniformRead                AccessFlags = 1 << 3
	AccessInputAttachmentRead        AccessFlags = 1 << 4
	AccessShaderRead                 AccessFlags = 1 << 5
	AccessShaderWrite                AccessFlags = 1 << 6
	AccessColorAttachmentRead        AccessFlags = 1 << 7
	AccessColorAttachmentWrite       AccessFlags = 1 << 8
	AccessDepthStencilAttachmentRead AccessFlags = 1 << 9
	AccessDepthStencilAttachmentWrite AccessFlags = 1 << 10
	AccessTransferRead               AccessFlags = 1 << 11
	AccessTransferWrite              AccessFlags = 1 << 12
	AccessHostRead                   AccessFlags = 1 << 13
	AccessHostWrite                  AccessFlags = 1 << 14
	AccessMemoryRead                 AccessFlags = 1 << 15
	AccessMemoryWrite                AccessFlags = 1 << 16
)

// IsWrite reports whether any write bit is set.
func (a AccessFlags) IsWrite() bool {
	const writeMask = AccessShaderWrite | AccessColorAttachmentWrite |
		AccessDepthStencilAttachmentWrite | AccessTransferWrite |
		AccessHostWrite | AccessMemoryWrite
	return a&writeMask != 0
}

// IsHostAccess reports whether a host read or write bit is set.
func (a AccessFlags) IsHostAccess() bool {
	return a&(AccessHostRead|AccessHostWrite) != 0
}

// PipelineStageFlags mirrors VkPipelineStageFlags.
type PipelineStageFlags uint32

const (
	PipelineStageTopOfPipe          PipelineStageFlags = 1 << 0
	PipelineStageDrawIndirect       PipelineStageFlags = 1 << 1
	PipelineStageVertexInput        PipelineStageFlags = 1 << 2
	PipelineStageVertexShader       PipelineStageFlags = 1 << 3
	PipelineStageFragmentShader     PipelineStageFlags = 1 << 7
	PipelineStageColorAttachmentOut PipelineStageFlags = 1 << 10
	PipelineStageComputeShader      PipelineStageFlags = 1 << 11
	PipelineStageTransfer           PipelineStageFlags = 1 << 12
	PipelineStageBottomOfPipe       PipelineStageFlags = 1 << 13
	PipelineStageHost               PipelineStageFlags = 1 << 14
	PipelineStageAllGraphics        PipelineStageFlags = 1 << 15
	PipelineStageAllCommands        PipelineStageFlags = 1 << 16
)

// ImageLayout mirrors VkImageLayout.
type ImageLayout uint32

const (
	ImageLayoutUndefined                    ImageLayout = 0
	ImageLayoutGeneral                      ImageLayout = 1
	ImageLayoutColorAttachmentOptimal       ImageLayout = 2
	ImageLayoutDepthStencilAttachmentOptimal ImageLayout = 3
	ImageLayoutShaderReadOnlyOptimal        ImageLayout = 5
	ImageLayoutTransferSrcOptimal           ImageLayout = 6
	ImageLayoutTransferDstOptimal           ImageLayout = 7
	ImageLayoutPresentSrc                   ImageLayout = 1000001002
)

// QueueFamilyIgnored mirrors VK_QUEUE_FAMILY_IGNORED: no ownership transfer
// is requested for a barrier carrying this value on both sides.
const QueueFamilyIgnored uint32 = 0xFFFFFFFF

// DescriptorType mirrors VkDescriptorType for the pool-sizing fields the
// descriptor pool cares about.
type DescriptorType uint32

const (
	DescriptorTypeSampler              DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeSampledImage         DescriptorType = 2
	DescriptorTypeStorageImage         DescriptorType = 3
	DescriptorTypeUniformTexelBuffer   DescriptorType = 4
	DescriptorTypeStorageTexelBuffer   DescriptorType = 5
	DescriptorTypeUniformBuffer        DescriptorType = 6
	DescriptorTypeStorageBuffer        DescriptorType = 7
	DescriptorTypeInputAttachment      DescriptorType = 10
)

// ShaderStageFlags mirrors VkShaderStageFlags.
type ShaderStageFlags uint32

const (
	ShaderStageVertexBit   ShaderStageFlags = 1 << 0
	ShaderStageFragmentBit ShaderStageFlags = 1 << 4
	ShaderStageComputeBit  ShaderStageFlags = 1 << 5
)

// DescriptorPoolCreateFlags mirrors VkDescriptorPoolCreateFlags.
type DescriptorPoolCreateFlags uint32

const DescriptorPoolCreateFreeDescriptorSetBit DescriptorPoolCreateFlags = 1 << 0

// SampleCountFlagBits mirrors VkSampleCountFlagBits.
type SampleCountFlagBits uint32

const SampleCount1 SampleCountFlagBits = 1

// MemoryPropertyFlags mirrors the host-visible bit of
// VkMemoryPropertyFlags. No package in this module reads it.
type MemoryPropertyFlags uint32

const MemoryPropertyHostVisible MemoryPropertyFlags = 1 << 1

// SharingMode mirrors VkSharingMode. No package in this module reads it;
// the dependency router takes cross-queue concurrency as a bool argument
// to RouteAccessMask instead.
type SharingMode uint32

const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)
