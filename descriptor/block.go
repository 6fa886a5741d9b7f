// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package descriptor

import (
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/vkcore/internal/config"
	"github.com/gogpu/vkcore/vk"
)

// PoolBlock is a single raw VkDescriptorPool plus the bookkeeping the
// owning DescriptorPool needs to decide when the block is exhausted and
// when it can be freed. setsInUse is incremented by every successful
// allocation and decremented as recycled elements are erased at Flush.
type PoolBlock struct {
	handle vk.DescriptorPool

	setsInUse atomic.Uint32
	full      atomic.Bool
}

func newBlock(cmds *vk.Commands, device vk.Device, cfg config.PoolConfig) (*PoolBlock, error) {
	sizes := make([]vk.DescriptorPoolSize, 0, len(cfg.PoolSizeRatios))
	for t, ratio := range cfg.PoolSizeRatios {
		sizes = append(sizes, vk.DescriptorPoolSize{
			Type:            t,
			DescriptorCount: cfg.MaxSetsPerBlock * ratio,
		})
	}

	info := vk.DescriptorPoolCreateInfo{
		SType:     vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:     cfg.CreateFlags,
		MaxSets:   cfg.MaxSetsPerBlock,
		PoolSizes: sizes,
	}

	var handle vk.DescriptorPool
	if res := cmds.CreateDescriptorPool(device, unsafe.Pointer(&info), &handle); res != vk.Success {
		return nil, &vkError{op: "vkCreateDescriptorPool", result: res}
	}
	return &PoolBlock{handle: handle}, nil
}

// IsFull reports whether the block has been flagged exhausted (out of pool
// memory or fragmented) by a failed allocation attempt.
func (b *PoolBlock) IsFull() bool { return b.full.Load() }

func (b *PoolBlock) markFull() { b.full.Store(true) }

func (b *PoolBlock) incSetsInUse() { b.setsInUse.Add(1) }

// decSetsInUse decrements the in-use count and reports whether it reached
// zero, the signal that the block can be erased and its handle destroyed.
func (b *PoolBlock) decSetsInUse() bool {
	return b.setsInUse.Add(^uint32(0)) == 0
}

func (b *PoolBlock) reset(cmds *vk.Commands, device vk.Device) error {
	if res := cmds.ResetDescriptorPool(device, b.handle, 0); res != vk.Success {
		return &vkError{op: "vkResetDescriptorPool", result: res}
	}
	b.setsInUse.Store(0)
	b.full.Store(false)
	return nil
}

func (b *PoolBlock) destroy(cmds *vk.Commands, device vk.Device) {
	cmds.DestroyDescriptorPool(device, b.handle)
}
