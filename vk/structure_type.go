// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// StructureType mirrors VkStructureType. Only the values this module's
// create-info structs and barriers actually carry are named; the numeric
// values match the Vulkan 1.3 core enum so a caller's own VkStructureType
// constants (from whatever loader they use upstream of this package) line
// up without translation.
type StructureType uint32

const (
	StructureTypeFenceCreateInfo               StructureType = 8
	StructureTypeSemaphoreCreateInfo           StructureType = 9
	StructureTypePipelineCacheCreateInfo       StructureType = 17
	StructureTypePipelineShaderStageCreateInfo StructureType = 18
	StructureTypeGraphicsPipelineCreateInfo    StructureType = 28
	StructureTypeComputePipelineCreateInfo     StructureType = 29
	StructureTypePipelineLayoutCreateInfo      StructureType = 30
	StructureTypeSamplerCreateInfo             StructureType = 31
	StructureTypeDescriptorSetLayoutCreateInfo StructureType = 32
	StructureTypeDescriptorPoolCreateInfo      StructureType = 33
	StructureTypeDescriptorSetAllocateInfo     StructureType = 34
	StructureTypeWriteDescriptorSet            StructureType = 35
	StructureTypeCopyDescriptorSet             StructureType = 36
	StructureTypeRenderPassCreateInfo          StructureType = 38
	StructureTypeBufferMemoryBarrier           StructureType = 44
	StructureTypeImageMemoryBarrier            StructureType = 45
	StructureTypeMemoryBarrier                 StructureType = 46
)

// CacheableTags lists the structure-type tags of the six create-info kinds
// the structural key extractor (package structkey) supports, per spec
// §4.2. Extract dispatches on the create-info's Go type rather than on
// this list and returns ErrUnknownTag for any other type; the object cache
// (package cache) does not consult it.
var CacheableTags = [...]StructureType{
	StructureTypeDescriptorSetLayoutCreateInfo,
	StructureTypePipelineLayoutCreateInfo,
	StructureTypeSamplerCreateInfo,
	StructureTypeRenderPassCreateInfo,
	StructureTypeGraphicsPipelineCreateInfo,
	StructureTypeComputePipelineCreateInfo,
}

// IsCacheable reports whether tag is one of CacheableTags.
func IsCacheable(tag StructureType) bool {
	for _, t := range CacheableTags {
		if t == tag {
			return true
		}
	}
	return false
}
