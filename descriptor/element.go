// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package descriptor

import (
	"strconv"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/vkcore/cache"
	"github.com/gogpu/vkcore/vk"
)

// PoolElement is a single allocated, bound descriptor set and the
// bookkeeping needed to recycle it: the block it was allocated from, the
// descriptor-set-layout cache element it was built against (recycling
// only ever reuses a set against the same layout), and a countdown until
// Flush considers it eligible for reuse.
type PoolElement struct {
	Set   vk.DescriptorSet
	Block *PoolBlock

	// Layout is the descriptor-set-layout cache element this set was
	// allocated against. Its address is the reduced key: two sets built
	// against the same *cache.CacheElement are layout-compatible and
	// therefore interchangeable once recycled.
	Layout *cache.CacheElement

	flushesRemaining atomic.Uint32
}

// reducedKey returns the recycling key: the layout cache element's
// identity, independent of the binding data baked into the full key.
func reducedKey(layout *cache.CacheElement) string {
	return strconv.FormatUint(uint64(uintptr(unsafe.Pointer(layout))), 16)
}

func (e *PoolElement) resetCountdown(period uint32) {
	e.flushesRemaining.Store(period)
}

// tick decrements the countdown and reports whether it reached zero.
func (e *PoolElement) tick() bool {
	for {
		cur := e.flushesRemaining.Load()
		if cur == 0 {
			return true
		}
		if e.flushesRemaining.CompareAndSwap(cur, cur-1) {
			return cur-1 == 0
		}
	}
}

// DescriptorWrite is the binding-data half of Get's update_template_data
// argument: a set of writes to apply to the newly allocated or recycled
// set, rewritten to target whichever handle Get actually returns. This
// module applies descriptor data directly via vkUpdateDescriptorSets
// rather than through a VkDescriptorUpdateTemplate object — the template
// object optimizes repeated identical-shape updates, which is an
// orthogonal concern from the structural caching this module provides.
type DescriptorWrite struct {
	Binding         uint32
	ArrayElement    uint32
	DescriptorType  vk.DescriptorType
	ImageInfo       []vk.DescriptorImageInfo
	BufferInfo      []vk.DescriptorBufferInfo
}

func applyWrites(cmds *vk.Commands, device vk.Device, set vk.DescriptorSet, writes []DescriptorWrite) {
	if len(writes) == 0 {
		return
	}
	vkWrites := make([]vk.WriteDescriptorSet, len(writes))
	for i, w := range writes {
		count := uint32(len(w.ImageInfo))
		if len(w.BufferInfo) > count {
			count = uint32(len(w.BufferInfo))
		}
		vkWrites[i] = vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      w.Binding,
			DstArrayElement: w.ArrayElement,
			DescriptorCount: count,
			DescriptorType:  w.DescriptorType,
			ImageInfo:       w.ImageInfo,
			BufferInfo:      w.BufferInfo,
		}
	}
	cmds.UpdateDescriptorSets(device, uint32(len(vkWrites)), unsafe.Pointer(&vkWrites[0]), 0, nil)
}
