// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package descriptor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/vkcore/cache"
	"github.com/gogpu/vkcore/internal/assert"
	"github.com/gogpu/vkcore/internal/config"
	"github.com/gogpu/vkcore/internal/metrics"
	"github.com/gogpu/vkcore/internal/tracing"
	"github.com/gogpu/vkcore/key"
	"github.com/gogpu/vkcore/vk"
)

// DescriptorPool is the shared state behind every PoolSub: the block free
// list, the promoted immutable map, the stale (pending-recycle) map, and
// the recycled (layout-keyed, ready-for-reuse) map. See the package doc
// for the concurrency model.
type DescriptorPool struct {
	cmds   *vk.Commands
	device vk.Device
	cfg    config.PoolConfig

	// immutable is written only by Flush/Reset/Unsub/Recycle; Get reads it
	// lockless via the atomic pointer swap, the same pattern cache.ObjectCache
	// uses for its own immutable tier.
	immutable atomic.Pointer[map[string]*PoolElement]

	subLock sync.Mutex
	free    []*PoolBlock
	fullBlk []*PoolBlock
	subs    []*PoolSub

	staleLock sync.Mutex
	stale     map[string]*PoolElement

	recLock  sync.Mutex
	recycled map[string][]*PoolElement

	blocksAllocated atomic.Int64
	recycles        atomic.Uint64
	exhaustions     atomic.Uint64
}

// Stats reports the running block-allocation, recycle, and exhaustion
// counters for this pool, the non-Prometheus counterpart to
// internal/metrics' DescriptorBlocksAllocated/DescriptorPoolExhaustions
// collectors for an embedder that wants the numbers in-process without
// standing up a registry.
type Stats struct {
	BlocksAllocated int64
	Recycles        uint64
	Exhaustions     uint64
}

// Stats returns a snapshot of p's running counters.
func (p *DescriptorPool) Stats() Stats {
	return Stats{
		BlocksAllocated: p.blocksAllocated.Load(),
		Recycles:        p.recycles.Load(),
		Exhaustions:     p.exhaustions.Load(),
	}
}

// New creates an empty DescriptorPool bound to device. No blocks are
// allocated until the first Get needs one.
func New(cmds *vk.Commands, device vk.Device, cfg config.PoolConfig) *DescriptorPool {
	p := &DescriptorPool{
		cmds:     cmds,
		device:   device,
		cfg:      cfg,
		stale:    make(map[string]*PoolElement),
		recycled: make(map[string][]*PoolElement),
	}
	empty := make(map[string]*PoolElement)
	p.immutable.Store(&empty)
	return p
}

// Sub links a new subordinate into the pool and returns it.
func (p *DescriptorPool) Sub() *PoolSub {
	s := newSub(p)
	p.subLock.Lock()
	p.subs = append(p.subs, s)
	p.subLock.Unlock()
	return s
}

// Unsub unclaims s's block, attempts to merge its mutable map straight
// into the immutable tier, and falls back to per-element recycling for
// any key that already exists there, then unlinks s.
func (p *DescriptorPool) Unsub(s *PoolSub) {
	p.subLock.Lock()
	if s.block != nil {
		p.free = append(p.free, s.block)
		s.block = nil
	}
	p.subLock.Unlock()

	type loss struct {
		key  string
		elem *PoolElement
	}
	var losses []loss

	old := *p.immutable.Load()
	merged := make(map[string]*PoolElement, len(old)+len(s.mutable))
	for k, v := range old {
		merged[k] = v
	}
	for k, e := range s.mutable {
		if _, exists := merged[k]; exists {
			losses = append(losses, loss{k, e})
			continue
		}
		merged[k] = e
	}
	p.immutable.Store(&merged)
	s.mutable = make(map[string]*PoolElement)

	for _, l := range losses {
		p.recycleElement(l.elem)
	}

	p.subLock.Lock()
	for i, sub := range p.subs {
		if sub == s {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			break
		}
	}
	p.subLock.Unlock()
}

// Get returns the descriptor set for (layout, key), allocating and binding
// a fresh one if neither tier nor the recycled pool already has a match.
func (p *DescriptorPool) Get(ctx context.Context, sub *PoolSub, layout *cache.CacheElement, k key.HashKey, writes []DescriptorWrite) (*PoolElement, error) {
	_, span := tracing.Start(ctx, "descriptor.Get")
	defer span.End()

	assert.That(layout != nil && layout.Kind == cache.KindDescriptorSetLayout,
		"descriptor.Get requires a cache element of KindDescriptorSetLayout")

	ks := k.String()

	if e, ok := (*p.immutable.Load())[ks]; ok {
		return e, nil
	}
	if e, ok := sub.lookup(ks); ok {
		return e, nil
	}

	rk := reducedKey(layout)
	p.recLock.Lock()
	if list := p.recycled[rk]; len(list) > 0 {
		e := list[len(list)-1]
		list = list[:len(list)-1]
		if len(list) == 0 {
			delete(p.recycled, rk)
		} else {
			p.recycled[rk] = list
		}
		p.recLock.Unlock()

		e.resetCountdown(p.cfg.FlushPeriod)
		sub.mutable[ks] = e
		applyWrites(p.cmds, p.device, e.Set, writes)
		return e, nil
	}
	p.recLock.Unlock()

	for {
		if sub.block == nil {
			blk, err := p.claimBlock()
			if err != nil {
				return nil, err
			}
			sub.block = blk
		}

		set, err := p.allocateSet(sub.block, layout)
		if err == nil {
			e := &PoolElement{Set: set, Block: sub.block, Layout: layout}
			e.resetCountdown(p.cfg.FlushPeriod)
			sub.mutable[ks] = e
			sub.block.incSetsInUse()
			applyWrites(p.cmds, p.device, set, writes)
			metrics.DescriptorSetsInUse.Inc()
			return e, nil
		}

		var vkErr *vkError
		if !errors.As(err, &vkErr) || !isOutOfPoolMemory(vkErr.result) {
			return nil, err
		}

		metrics.DescriptorPoolExhaustions.WithLabelValues(exhaustionReason(vkErr.result)).Inc()
		p.exhaustions.Add(1)
		if sub.block.setsInUse.Load() == 0 {
			return nil, ErrNoCompatibleLayout
		}
		sub.block.markFull()
		p.subLock.Lock()
		p.fullBlk = append(p.fullBlk, sub.block)
		p.subLock.Unlock()
		sub.block = nil
	}
}

func (p *DescriptorPool) claimBlock() (*PoolBlock, error) {
	p.subLock.Lock()
	if n := len(p.free); n > 0 {
		blk := p.free[n-1]
		p.free = p.free[:n-1]
		p.subLock.Unlock()
		return blk, nil
	}
	p.subLock.Unlock()

	blk, err := newBlock(p.cmds, p.device, p.cfg)
	if err != nil {
		return nil, err
	}
	metrics.DescriptorBlocksAllocated.Inc()
	p.blocksAllocated.Add(1)
	return blk, nil
}

func (p *DescriptorPool) allocateSet(block *PoolBlock, layout *cache.CacheElement) (vk.DescriptorSet, error) {
	info := vk.DescriptorSetAllocateInfo{
		SType:      vk.StructureTypeDescriptorSetAllocateInfo,
		Pool:       block.handle,
		SetLayouts: []vk.DescriptorSetLayout{layout.DescriptorSetLayout},
	}
	var set vk.DescriptorSet
	if res := p.cmds.AllocateDescriptorSets(p.device, unsafe.Pointer(&info), &set); res != vk.Success {
		return 0, &vkError{op: "vkAllocateDescriptorSets", result: res}
	}
	return set, nil
}

// Flush unclaims every subordinate's block, merges every subordinate's
// mutable map into the immutable tier, then ticks down the
// flushes-remaining countdown on every element in the immutable and stale
// tiers, recycling whichever reach zero.
func (p *DescriptorPool) Flush() {
	p.subLock.Lock()
	for _, s := range p.subs {
		if s.block != nil {
			p.free = append(p.free, s.block)
			s.block = nil
		}
	}
	subsSnapshot := append([]*PoolSub(nil), p.subs...)
	p.subLock.Unlock()

	old := *p.immutable.Load()
	merged := make(map[string]*PoolElement, len(old))
	for k, v := range old {
		merged[k] = v
	}
	for _, s := range subsSnapshot {
		for k, e := range s.mutable {
			merged[k] = e
			delete(s.mutable, k)
		}
	}

	p.staleLock.Lock()
	final := make(map[string]*PoolElement, len(merged))
	var toRecycle []*PoolElement
	for k, e := range merged {
		if e.tick() {
			toRecycle = append(toRecycle, e)
		} else {
			final[k] = e
		}
	}
	for k, e := range p.stale {
		if e.tick() {
			toRecycle = append(toRecycle, e)
			delete(p.stale, k)
		}
	}
	p.immutable.Store(&final)
	p.staleLock.Unlock()

	for _, e := range toRecycle {
		p.recycleElement(e)
	}

	metrics.DescriptorSetsInUse.Set(float64(p.liveSetCount(final)))
}

func (p *DescriptorPool) liveSetCount(immutable map[string]*PoolElement) int {
	n := len(immutable)
	p.subLock.Lock()
	for _, s := range p.subs {
		n += len(s.mutable)
	}
	p.subLock.Unlock()
	return n
}

// Recycle marks every element currently matching k — in the immutable
// tier or any subordinate's mutable map — as stale, eligible for reuse
// once its countdown of flushes elapses. A flushes value of 0 recycles
// immediately.
func (p *DescriptorPool) Recycle(k key.HashKey, flushes uint32) {
	ks := k.String()

	old := *p.immutable.Load()
	if e, ok := old[ks]; ok {
		merged := make(map[string]*PoolElement, len(old)-1)
		for kk, v := range old {
			if kk != ks {
				merged[kk] = v
			}
		}
		p.immutable.Store(&merged)
		p.markStaleOrRecycle(ks, e, flushes)
	}

	p.subLock.Lock()
	subsSnapshot := append([]*PoolSub(nil), p.subs...)
	p.subLock.Unlock()

	for _, s := range subsSnapshot {
		if e, ok := s.mutable[ks]; ok {
			delete(s.mutable, ks)
			p.markStaleOrRecycle(ks, e, flushes)
		}
	}
}

func (p *DescriptorPool) markStaleOrRecycle(ks string, e *PoolElement, flushes uint32) {
	if flushes == 0 {
		p.recycleElement(e)
		return
	}
	e.resetCountdown(flushes)
	p.staleLock.Lock()
	p.stale[ks] = e
	p.staleLock.Unlock()
}

// recycleElement moves e into the recycled tier keyed by its layout, and
// frees its block once the block's last recycled (or live) set is gone.
func (p *DescriptorPool) recycleElement(e *PoolElement) {
	rk := reducedKey(e.Layout)
	p.recLock.Lock()
	p.recycled[rk] = append(p.recycled[rk], e)
	p.recLock.Unlock()

	if e.Block.decSetsInUse() {
		p.freeBlock(e.Block)
	}
	metrics.DescriptorSetsInUse.Add(-1)
	p.recycles.Add(1)
}

func (p *DescriptorPool) freeBlock(block *PoolBlock) {
	p.recLock.Lock()
	for rk, list := range p.recycled {
		filtered := list[:0]
		for _, e := range list {
			if e.Block != block {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			delete(p.recycled, rk)
		} else {
			p.recycled[rk] = filtered
		}
	}
	p.recLock.Unlock()

	p.subLock.Lock()
	p.free = removeBlock(p.free, block)
	p.fullBlk = removeBlock(p.fullBlk, block)
	p.subLock.Unlock()

	block.destroy(p.cmds, p.device)
	metrics.DescriptorBlocksAllocated.Add(-1)
	p.blocksAllocated.Add(-1)
}

func removeBlock(list []*PoolBlock, target *PoolBlock) []*PoolBlock {
	for i, b := range list {
		if b == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Reset unclaims every block, clears every live map (immutable, stale,
// recycled, and every subordinate's mutable map), moves every full block
// back to the free list, and calls vkResetDescriptorPool on each block.
func (p *DescriptorPool) Reset() error {
	p.subLock.Lock()
	for _, s := range p.subs {
		s.block = nil
		s.mutable = make(map[string]*PoolElement)
	}
	allBlocks := append(append([]*PoolBlock{}, p.free...), p.fullBlk...)
	p.free = allBlocks
	p.fullBlk = nil
	p.subLock.Unlock()

	empty := make(map[string]*PoolElement)
	p.immutable.Store(&empty)

	p.staleLock.Lock()
	p.stale = make(map[string]*PoolElement)
	p.staleLock.Unlock()

	p.recLock.Lock()
	p.recycled = make(map[string][]*PoolElement)
	p.recLock.Unlock()

	for _, b := range allBlocks {
		if err := b.reset(p.cmds, p.device); err != nil {
			return err
		}
	}

	metrics.DescriptorSetsInUse.Set(0)
	metrics.DescriptorBlocksAllocated.Set(float64(len(allBlocks)))
	p.blocksAllocated.Store(int64(len(allBlocks)))
	return nil
}
