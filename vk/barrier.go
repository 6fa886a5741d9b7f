// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// SubresourceRange mirrors VkImageSubresourceRange.
type SubresourceRange struct {
	AspectMask     uint32
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// MemoryBarrier mirrors VkMemoryBarrier: a global execution/memory
// dependency carrying no ownership-transfer or layout-transition
// information.
type MemoryBarrier struct {
	SType         StructureType
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
}

// BufferMemoryBarrier mirrors VkBufferMemoryBarrier. SrcQueueFamilyIndex
// and DstQueueFamilyIndex equal to [QueueFamilyIgnored] on both sides means
// no ownership transfer is requested.
type BufferMemoryBarrier struct {
	SType               StructureType
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              uint64
	Size                uint64
}

// IsOwnershipTransfer reports whether this barrier requests a queue-family
// ownership transfer (the two queue-family indices differ and neither is
// [QueueFamilyIgnored]).
func (b BufferMemoryBarrier) IsOwnershipTransfer() bool {
	return b.SrcQueueFamilyIndex != b.DstQueueFamilyIndex &&
		b.SrcQueueFamilyIndex != QueueFamilyIgnored &&
		b.DstQueueFamilyIndex != QueueFamilyIgnored
}

// ImageMemoryBarrier mirrors VkImageMemoryBarrier.
type ImageMemoryBarrier struct {
	SType               StructureType
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    SubresourceRange
}

// IsOwnershipTransfer reports whether this barrier requests a queue-family
// ownership transfer.
func (b ImageMemoryBarrier) IsOwnershipTransfer() bool {
	return b.SrcQueueFamilyIndex != b.DstQueueFamilyIndex &&
		b.SrcQueueFamilyIndex != QueueFamilyIgnored &&
		b.DstQueueFamilyIndex != QueueFamilyIgnored
}

// IsLayoutTransition reports whether this barrier changes the image layout.
func (b ImageMemoryBarrier) IsLayoutTransition() bool {
	return b.OldLayout != b.NewLayout
}

// PipelineBarrier bundles the three barrier kinds a single
// vkCmdPipelineBarrier call submits together, along with the stage masks
// that bracket them. This is the unit the dependency injector builds and
// hands to a command buffer.
type PipelineBarrier struct {
	SrcStageMask PipelineStageFlags
	DstStageMask PipelineStageFlags
	Memory       []MemoryBarrier
	Buffer       []BufferMemoryBarrier
	Image        []ImageMemoryBarrier
}

// IsEmpty reports whether the barrier carries no memory, buffer or image
// entries — i.e. it is a pure execution dependency (or nothing at all).
func (p PipelineBarrier) IsEmpty() bool {
	return len(p.Memory) == 0 && len(p.Buffer) == 0 && len(p.Image) == 0
}
