// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "testing"

func TestIsCacheable(t *testing.T) {
	for _, tag := range CacheableTags {
		if !IsCacheable(tag) {
			t.Errorf("IsCacheable(%v) = false, want true (listed in CacheableTags)", tag)
		}
	}

	notCacheable := []StructureType{
		StructureTypeFenceCreateInfo,
		StructureTypeSemaphoreCreateInfo,
		StructureTypePipelineCacheCreateInfo,
		StructureTypeWriteDescriptorSet,
		StructureTypeBufferMemoryBarrier,
		StructureType(9999),
	}
	for _, tag := range notCacheable {
		if IsCacheable(tag) {
			t.Errorf("IsCacheable(%v) = true, want false", tag)
		}
	}
}

func TestCacheableTagsHasNoDuplicates(t *testing.T) {
	seen := make(map[StructureType]bool, len(CacheableTags))
	for _, tag := range CacheableTags {
		if seen[tag] {
			t.Errorf("CacheableTags contains duplicate tag %v", tag)
		}
		seen[tag] = true
	}
}

// buildSamplerCreateInfo and friends below exercise createinfo.go's struct
// literals through the compiler; these structs carry no behavior of their
// own (they are hashed and dispatched by the structkey and cache packages),
// so the useful assertion is that the zero values and nested pointer fields
// build and read back as expected.

func TestGraphicsPipelineCreateInfoOptionalFields(t *testing.T) {
	info := GraphicsPipelineCreateInfo{
		SType: StructureTypeGraphicsPipelineCreateInfo,
		Stages: []PipelineShaderStageCreateInfo{
			{SType: StructureTypePipelineShaderStageCreateInfo, Stage: ShaderStageVertexBit},
		},
	}
	if info.DepthStencilState != nil {
		t.Error("DepthStencilState should default to nil when omitted")
	}
	if info.DynamicState != nil {
		t.Error("DynamicState should default to nil when omitted")
	}
	if len(info.Stages) != 1 {
		t.Errorf("len(Stages) = %d, want 1", len(info.Stages))
	}

	depthStencil := PipelineDepthStencilStateCreateInfo{DepthTestEnable: True}
	info.DepthStencilState = &depthStencil
	if info.DepthStencilState.DepthTestEnable != True {
		t.Error("DepthStencilState.DepthTestEnable did not round-trip through the pointer field")
	}
}

func TestDescriptorPoolCreateInfoPoolSizes(t *testing.T) {
	info := DescriptorPoolCreateInfo{
		SType:   StructureTypeDescriptorPoolCreateInfo,
		MaxSets: 16,
		PoolSizes: []DescriptorPoolSize{
			{Type: DescriptorTypeSampler, DescriptorCount: 4},
			{Type: DescriptorTypeCombinedImageSampler, DescriptorCount: 8},
		},
	}
	var total uint32
	for _, ps := range info.PoolSizes {
		total += ps.DescriptorCount
	}
	if total != 12 {
		t.Errorf("total descriptor count = %d, want 12", total)
	}
}
