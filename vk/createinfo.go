// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// The six cacheable create-info structs, one per tag in [CacheableTags], plus
// the substructures they embed. Field sets are trimmed to what the
// structural key extractor and the real vkCreate* calls need. There are no
// pNext fields, since this module never forwards an extension chain
// through the cache; optional substructures are typed Go pointers rather
// than unsafe.Pointer.

// DescriptorSetLayoutBinding mirrors VkDescriptorSetLayoutBinding.
type DescriptorSetLayoutBinding struct {
	Binding           uint32
	DescriptorType    DescriptorType
	DescriptorCount   uint32
	StageFlags        ShaderStageFlags
	ImmutableSamplers []Sampler
}

// DescriptorSetLayoutCreateInfo mirrors VkDescriptorSetLayoutCreateInfo.
type DescriptorSetLayoutCreateInfo struct {
	SType    StructureType
	Flags    uint32
	Bindings []DescriptorSetLayoutBinding
}

// PushConstantRange mirrors VkPushConstantRange.
type PushConstantRange struct {
	StageFlags ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// PipelineLayoutCreateInfo mirrors VkPipelineLayoutCreateInfo.
type PipelineLayoutCreateInfo struct {
	SType          StructureType
	Flags          uint32
	SetLayouts     []DescriptorSetLayout
	PushConstants  []PushConstantRange
}

// SamplerCreateInfo mirrors VkSamplerCreateInfo. Filter/AddressMode/
// CompareOp are left as raw uint32 fields: this package never interprets
// them, only hashes and compares them, so no enum type is worth adding.
type SamplerCreateInfo struct {
	SType                   StructureType
	Flags                   uint32
	MagFilter               uint32
	MinFilter               uint32
	MipmapMode              uint32
	AddressModeU            uint32
	AddressModeV            uint32
	AddressModeW            uint32
	MipLodBias              float32
	AnisotropyEnable        Bool32
	MaxAnisotropy           float32
	CompareEnable           Bool32
	CompareOp               uint32
	MinLod                  float32
	MaxLod                  float32
	BorderColor             uint32
	UnnormalizedCoordinates Bool32
}

// AttachmentDescription mirrors VkAttachmentDescription.
type AttachmentDescription struct {
	Flags          uint32
	Format         uint32
	Samples        SampleCountFlagBits
	LoadOp         uint32
	StoreOp        uint32
	StencilLoadOp  uint32
	StencilStoreOp uint32
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

// AttachmentReference mirrors VkAttachmentReference.
type AttachmentReference struct {
	Attachment uint32
	Layout     ImageLayout
}

// SubpassDescription mirrors VkSubpassDescription.
type SubpassDescription struct {
	PipelineBindPoint      uint32
	InputAttachments       []AttachmentReference
	ColorAttachments       []AttachmentReference
	ResolveAttachments     []AttachmentReference
	DepthStencilAttachment *AttachmentReference
	PreserveAttachments    []uint32
}

// SubpassDependency mirrors VkSubpassDependency.
type SubpassDependency struct {
	SrcSubpass    uint32
	DstSubpass    uint32
	SrcStageMask  PipelineStageFlags
	DstStageMask  PipelineStageFlags
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
}

// RenderPassCreateInfo mirrors VkRenderPassCreateInfo.
type RenderPassCreateInfo struct {
	SType        StructureType
	Flags        uint32
	Attachments  []AttachmentDescription
	Subpasses    []SubpassDescription
	Dependencies []SubpassDependency
}

// SpecializationMapEntry mirrors VkSpecializationMapEntry.
type SpecializationMapEntry struct {
	ConstantID uint32
	Offset     uint32
	Size       uint64
}

// SpecializationInfo mirrors VkSpecializationInfo.
type SpecializationInfo struct {
	MapEntries []SpecializationMapEntry
	Data       []byte
}

// PipelineShaderStageCreateInfo mirrors VkPipelineShaderStageCreateInfo.
type PipelineShaderStageCreateInfo struct {
	SType          StructureType
	Flags          uint32
	Stage          ShaderStageFlags
	Module         ShaderModule
	EntryPoint     string
	Specialization *SpecializationInfo
}

// VertexInputBindingDescription mirrors VkVertexInputBindingDescription.
type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate uint32
}

// VertexInputAttributeDescription mirrors VkVertexInputAttributeDescription.
type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   uint32
	Offset   uint32
}

// PipelineVertexInputStateCreateInfo mirrors VkPipelineVertexInputStateCreateInfo.
type PipelineVertexInputStateCreateInfo struct {
	Bindings   []VertexInputBindingDescription
	Attributes []VertexInputAttributeDescription
}

// PipelineInputAssemblyStateCreateInfo mirrors VkPipelineInputAssemblyStateCreateInfo.
type PipelineInputAssemblyStateCreateInfo struct {
	Topology               uint32
	PrimitiveRestartEnable Bool32
}

// PipelineRasterizationStateCreateInfo mirrors VkPipelineRasterizationStateCreateInfo.
type PipelineRasterizationStateCreateInfo struct {
	DepthClampEnable        Bool32
	RasterizerDiscardEnable Bool32
	PolygonMode             uint32
	CullMode                uint32
	FrontFace               uint32
	DepthBiasEnable         Bool32
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

// PipelineMultisampleStateCreateInfo mirrors VkPipelineMultisampleStateCreateInfo.
type PipelineMultisampleStateCreateInfo struct {
	RasterizationSamples SampleCountFlagBits
	SampleShadingEnable   Bool32
	MinSampleShading      float32
	AlphaToCoverageEnable Bool32
	AlphaToOneEnable      Bool32
}

// StencilOpState mirrors VkStencilOpState.
type StencilOpState struct {
	FailOp      uint32
	PassOp      uint32
	DepthFailOp uint32
	CompareOp   uint32
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

// PipelineDepthStencilStateCreateInfo mirrors VkPipelineDepthStencilStateCreateInfo.
type PipelineDepthStencilStateCreateInfo struct {
	DepthTestEnable       Bool32
	DepthWriteEnable      Bool32
	DepthCompareOp        uint32
	DepthBoundsTestEnable Bool32
	StencilTestEnable     Bool32
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

// PipelineColorBlendAttachmentState mirrors VkPipelineColorBlendAttachmentState.
type PipelineColorBlendAttachmentState struct {
	BlendEnable         Bool32
	SrcColorBlendFactor uint32
	DstColorBlendFactor uint32
	ColorBlendOp        uint32
	SrcAlphaBlendFactor uint32
	DstAlphaBlendFactor uint32
	AlphaBlendOp        uint32
	ColorWriteMask      uint32
}

// PipelineColorBlendStateCreateInfo mirrors VkPipelineColorBlendStateCreateInfo.
type PipelineColorBlendStateCreateInfo struct {
	LogicOpEnable   Bool32
	LogicOp         uint32
	Attachments     []PipelineColorBlendAttachmentState
	BlendConstants  [4]float32
}

// PipelineViewportStateCreateInfo mirrors VkPipelineViewportStateCreateInfo.
// Only the counts matter for hashing; actual viewport/scissor rects are
// almost always dynamic state in practice.
type PipelineViewportStateCreateInfo struct {
	ViewportCount uint32
	ScissorCount  uint32
}

// PipelineDynamicStateCreateInfo mirrors VkPipelineDynamicStateCreateInfo.
type PipelineDynamicStateCreateInfo struct {
	DynamicStates []uint32
}

// GraphicsPipelineCreateInfo mirrors VkGraphicsPipelineCreateInfo.
type GraphicsPipelineCreateInfo struct {
	SType              StructureType
	Flags              uint32
	Stages             []PipelineShaderStageCreateInfo
	VertexInputState   PipelineVertexInputStateCreateInfo
	InputAssemblyState PipelineInputAssemblyStateCreateInfo
	ViewportState      PipelineViewportStateCreateInfo
	RasterizationState PipelineRasterizationStateCreateInfo
	MultisampleState   PipelineMultisampleStateCreateInfo
	DepthStencilState  *PipelineDepthStencilStateCreateInfo
	ColorBlendState    PipelineColorBlendStateCreateInfo
	DynamicState       *PipelineDynamicStateCreateInfo
	Layout             PipelineLayout
	RenderPass         RenderPass
	Subpass            uint32
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

// ComputePipelineCreateInfo mirrors VkComputePipelineCreateInfo.
type ComputePipelineCreateInfo struct {
	SType              StructureType
	Flags              uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

// PipelineCacheCreateInfo mirrors VkPipelineCacheCreateInfo; used only for
// seeding a fresh PipelineCache handle from a persisted blob, never run
// through the structural key extractor.
type PipelineCacheCreateInfo struct {
	SType       StructureType
	Flags       uint32
	InitialData []byte
}

// DescriptorPoolSize mirrors VkDescriptorPoolSize.
type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

// DescriptorPoolCreateInfo mirrors VkDescriptorPoolCreateInfo.
type DescriptorPoolCreateInfo struct {
	SType     StructureType
	Flags     DescriptorPoolCreateFlags
	MaxSets   uint32
	PoolSizes []DescriptorPoolSize
}

// DescriptorSetAllocateInfo mirrors VkDescriptorSetAllocateInfo.
type DescriptorSetAllocateInfo struct {
	SType          StructureType
	Pool           DescriptorPool
	SetLayouts     []DescriptorSetLayout
}

// DescriptorImageInfo mirrors VkDescriptorImageInfo.
type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   uintptr
	ImageLayout ImageLayout
}

// DescriptorBufferInfo mirrors VkDescriptorBufferInfo.
type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset uint64
	Range  uint64
}

// WriteDescriptorSet mirrors VkWriteDescriptorSet.
type WriteDescriptorSet struct {
	SType           StructureType
	DstSet          DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
	DescriptorType  DescriptorType
	ImageInfo       []DescriptorImageInfo
	BufferInfo      []DescriptorBufferInfo
}

// FenceCreateInfo mirrors VkFenceCreateInfo.
type FenceCreateInfo struct {
	SType StructureType
	Flags uint32
}

// SemaphoreCreateInfo mirrors VkSemaphoreCreateInfo.
type SemaphoreCreateInfo struct {
	SType StructureType
	Flags uint32
}
