// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package descriptor

import (
	"context"
	"testing"

	"github.com/gogpu/vkcore/cache"
	"github.com/gogpu/vkcore/internal/config"
	"github.com/gogpu/vkcore/key"
	"github.com/gogpu/vkcore/vk"
)

func TestPoolBlockSetsInUse(t *testing.T) {
	b := &PoolBlock{}
	b.incSetsInUse()
	b.incSetsInUse()
	if b.decSetsInUse() {
		t.Fatal("decrementing from 2 to 1 must not report empty")
	}
	if !b.decSetsInUse() {
		t.Fatal("decrementing from 1 to 0 must report empty")
	}
}

func TestPoolBlockFullFlag(t *testing.T) {
	b := &PoolBlock{}
	if b.IsFull() {
		t.Fatal("a fresh block must not be full")
	}
	b.markFull()
	if !b.IsFull() {
		t.Fatal("markFull must set IsFull")
	}
}

func TestElementCountdown(t *testing.T) {
	e := &PoolElement{}
	e.resetCountdown(2)
	if e.tick() {
		t.Fatal("first tick of a period-2 countdown must not reach zero")
	}
	if !e.tick() {
		t.Fatal("second tick of a period-2 countdown must reach zero")
	}
}

func TestElementCountdownZeroPeriodElapsesImmediately(t *testing.T) {
	e := &PoolElement{}
	e.resetCountdown(0)
	if !e.tick() {
		t.Fatal("a zero-period countdown must elapse on the first tick")
	}
}

func TestReducedKeyStableForSameLayout(t *testing.T) {
	layout := &cache.CacheElement{Kind: cache.KindDescriptorSetLayout}
	if reducedKey(layout) != reducedKey(layout) {
		t.Fatal("reducedKey must be stable across calls for the same layout pointer")
	}
}

func TestReducedKeyDiffersAcrossLayouts(t *testing.T) {
	a := &cache.CacheElement{Kind: cache.KindDescriptorSetLayout}
	b := &cache.CacheElement{Kind: cache.KindDescriptorSetLayout}
	if reducedKey(a) == reducedKey(b) {
		t.Fatal("distinct layout cache elements must produce distinct reduced keys")
	}
}

func TestRemoveBlock(t *testing.T) {
	a, b, c := &PoolBlock{}, &PoolBlock{}, &PoolBlock{}
	list := []*PoolBlock{a, b, c}

	list = removeBlock(list, b)
	if len(list) != 2 {
		t.Fatalf("expected 2 remaining blocks, got %d", len(list))
	}
	for _, blk := range list {
		if blk == b {
			t.Fatal("removeBlock did not remove the target block")
		}
	}

	list = removeBlock(list, &PoolBlock{})
	if len(list) != 2 {
		t.Fatal("removeBlock must be a no-op when the target is not present")
	}
}

func TestSubLookupMiss(t *testing.T) {
	s := newSub(nil)
	if _, ok := s.lookup("missing"); ok {
		t.Fatal("lookup on an empty subordinate must miss")
	}
}

func TestIsOutOfPoolMemory(t *testing.T) {
	if !isOutOfPoolMemory(vk.ErrorOutOfPoolMemory) {
		t.Fatal("ErrorOutOfPoolMemory must be retriable")
	}
	if !isOutOfPoolMemory(vk.ErrorFragmentedPool) {
		t.Fatal("ErrorFragmentedPool must be retriable")
	}
	if isOutOfPoolMemory(vk.ErrorDeviceLost) {
		t.Fatal("ErrorDeviceLost must not be treated as a retriable pool-exhaustion result")
	}
}

func TestPoolGetRejectsWrongKindLayout(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Get must panic when handed a non-layout cache element")
		}
	}()
	p := New(vk.NewCommands(), vk.Device(1), config.DefaultPoolConfig())
	sub := p.Sub()
	k, err := key.NewBuilder().PushByte(1).Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	wrongKind := &cache.CacheElement{Kind: cache.KindSampler}
	_, _ = p.Get(context.Background(), sub, wrongKind, k, nil)
}

func TestPoolGetWithoutLoadedDriverFails(t *testing.T) {
	p := New(vk.NewCommands(), vk.Device(1), config.DefaultPoolConfig())
	sub := p.Sub()
	k, err := key.NewBuilder().PushByte(2).Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	layout := &cache.CacheElement{Kind: cache.KindDescriptorSetLayout, DescriptorSetLayout: vk.DescriptorSetLayout(1)}
	if _, err := p.Get(context.Background(), sub, layout, k, nil); err == nil {
		t.Fatal("expected an error allocating a descriptor set with no driver loaded")
	}
}

func TestPoolStatsStartsAtZero(t *testing.T) {
	p := New(vk.NewCommands(), vk.Device(1), config.DefaultPoolConfig())
	got := p.Stats()
	if got.BlocksAllocated != 0 || got.Recycles != 0 || got.Exhaustions != 0 {
		t.Fatalf("Stats() on a fresh pool = %+v, want all zero", got)
	}
}

func TestExhaustionReason(t *testing.T) {
	if exhaustionReason(vk.ErrorOutOfPoolMemory) != "out_of_pool_memory" {
		t.Fatal("unexpected label for ErrorOutOfPoolMemory")
	}
	if exhaustionReason(vk.ErrorFragmentedPool) != "fragmented_pool" {
		t.Fatal("unexpected label for ErrorFragmentedPool")
	}
}
