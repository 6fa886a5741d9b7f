// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import (
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// buildBarrier constructs the vk.PipelineBarrier a record's catch-side
// transition needs: an execution-only barrier if no memory hazard is
// present, otherwise a full buffer or image memory barrier.
func buildBarrier(r *SyncRecord) vk.PipelineBarrier {
	b := vk.PipelineBarrier{SrcStageMask: r.SrcStage, DstStageMask: r.DstStage}
	if !r.Flags.has(NeedsMemoryBarrier) {
		return b
	}
	if r.Resource.IsBuffer {
		b.Buffer = []vk.BufferMemoryBarrier{{
			SType:               vk.StructureTypeBufferMemoryBarrier,
			SrcAccessMask:       r.SrcAccess,
			DstAccessMask:       r.DstAccess,
			SrcQueueFamilyIndex: r.SrcQueueFamily,
			DstQueueFamilyIndex: r.DstQueueFamily,
			Buffer:              r.Resource.Buffer,
		}}
		return b
	}
	b.Image = []vk.ImageMemoryBarrier{{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       r.SrcAccess,
		DstAccessMask:       r.DstAccess,
		OldLayout:           r.OldLayout,
		NewLayout:           r.NewLayout,
		SrcQueueFamilyIndex: r.SrcQueueFamily,
		DstQueueFamilyIndex: r.DstQueueFamily,
		Image:               r.Resource.Image,
		SubresourceRange:    r.Resource.Range,
	}}
	return b
}

// emitBarrier submits b on cmd via vkCmdPipelineBarrier, unless it is
// empty and carries no stage mask worth recording (an IsEmpty barrier
// with identical src/dst stages is a no-op not worth a driver call).
func emitBarrier(cmds *vk.Commands, cmd vk.CommandBuffer, b vk.PipelineBarrier) {
	if b.IsEmpty() && b.SrcStageMask == b.DstStageMask {
		return
	}

	var memPtr, bufPtr, imgPtr unsafe.Pointer
	if len(b.Memory) > 0 {
		memPtr = unsafe.Pointer(&b.Memory[0])
	}
	if len(b.Buffer) > 0 {
		bufPtr = unsafe.Pointer(&b.Buffer[0])
	}
	if len(b.Image) > 0 {
		imgPtr = unsafe.Pointer(&b.Image[0])
	}

	cmds.CmdPipelineBarrier(cmd, b.SrcStageMask, b.DstStageMask,
		uint32(len(b.Memory)), memPtr,
		uint32(len(b.Buffer)), bufPtr,
		uint32(len(b.Image)), imgPtr,
	)
}

// initialLayoutTransition builds an UNDEFINED→layout image barrier for an
// operation input reference that no wait command transitioned. It is
// emitted with the broadest plausible stage mask (top-of-pipe to the
// reference's own destination stage) since the caller supplies no record
// to source more precise stages from.
func initialLayoutTransition(ref ResourceRef, dstAccess vk.AccessFlags, dstStage vk.PipelineStageFlags, newLayout vk.ImageLayout) vk.PipelineBarrier {
	return vk.PipelineBarrier{
		SrcStageMask: vk.PipelineStageTopOfPipe,
		DstStageMask: dstStage,
		Image: []vk.ImageMemoryBarrier{{
			SType:               vk.StructureTypeImageMemoryBarrier,
			SrcAccessMask:       0,
			DstAccessMask:       dstAccess,
			OldLayout:           vk.ImageLayoutUndefined,
			NewLayout:           newLayout,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Image:               ref.Image,
			SubresourceRange:    ref.Range,
		}},
	}
}

// layoutForAccess derives the image layout a reference needs for mask,
// per spec §4.5.1's "layout computed from its access mask" rule.
func layoutForAccess(mask vk.AccessFlags) vk.ImageLayout {
	switch {
	case mask&(vk.AccessColorAttachmentRead|vk.AccessColorAttachmentWrite) != 0:
		return vk.ImageLayoutColorAttachmentOptimal
	case mask&(vk.AccessDepthStencilAttachmentRead|vk.AccessDepthStencilAttachmentWrite) != 0:
		return vk.ImageLayoutDepthStencilAttachmentOptimal
	case mask&vk.AccessTransferRead != 0:
		return vk.ImageLayoutTransferSrcOptimal
	case mask&vk.AccessTransferWrite != 0:
		return vk.ImageLayoutTransferDstOptimal
	case mask&vk.AccessShaderRead != 0:
		return vk.ImageLayoutShaderReadOnlyOptimal
	default:
		return vk.ImageLayoutGeneral
	}
}
