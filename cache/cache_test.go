// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vkcore/key"
	"github.com/gogpu/vkcore/vk"
)

// newTestCache returns a cache bound to an unloaded Commands (every
// function pointer nil). Destroy calls on it are safe no-ops, which is all
// this package's own tests need — they exercise the cache's bookkeeping,
// not the Vulkan ABI.
func newTestCache() *ObjectCache {
	return New(vk.NewCommands(), vk.Device(1))
}

func keyFor(s string) key.HashKey {
	b := new(key.Builder)
	b.Push([]byte(s))
	k, err := b.Finalize()
	if err != nil {
		panic(err)
	}
	return k
}

func TestGetBuildsOnceOnMiss(t *testing.T) {
	c := newTestCache()
	k := keyFor("layout-a")

	calls := 0
	build := func() (*CacheElement, error) {
		calls++
		return &CacheElement{Kind: KindPipelineLayout, PipelineLayout: vk.PipelineLayout(0xAAAA)}, nil
	}

	e1, err := c.Get(context.Background(), k, KindPipelineLayout, build)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	e2, err := c.Get(context.Background(), k, KindPipelineLayout, build)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e1 != e2 {
		t.Fatal("second Get for the same key must return the same element")
	}
	if calls != 1 {
		t.Fatalf("build called %d times, want 1", calls)
	}
}

func TestGetDistinguishesKeys(t *testing.T) {
	c := newTestCache()
	a, err := c.Get(context.Background(), keyFor("a"), KindSampler, func() (*CacheElement, error) {
		return &CacheElement{Kind: KindSampler, Sampler: vk.Sampler(1)}, nil
	})
	if err != nil {
		t.Fatalf("get a: %v", err)
	}
	b, err := c.Get(context.Background(), keyFor("b"), KindSampler, func() (*CacheElement, error) {
		return &CacheElement{Kind: KindSampler, Sampler: vk.Sampler(2)}, nil
	})
	if err != nil {
		t.Fatalf("get b: %v", err)
	}
	if a.Sampler == b.Sampler {
		t.Fatal("distinct keys must not collapse onto the same element")
	}
}

func TestStatsCountsHitsMissesAndCreates(t *testing.T) {
	c := newTestCache()
	build := func() (*CacheElement, error) {
		return &CacheElement{Kind: KindSampler, Sampler: vk.Sampler(1)}, nil
	}

	if _, err := c.Get(context.Background(), keyFor("stats"), KindSampler, build); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := c.Get(context.Background(), keyFor("stats"), KindSampler, build); err != nil {
		t.Fatalf("second get: %v", err)
	}

	got := c.Stats()
	if got.Misses != 1 {
		t.Fatalf("Misses = %d, want 1", got.Misses)
	}
	if got.Creates != 1 {
		t.Fatalf("Creates = %d, want 1", got.Creates)
	}
	if got.Hits != 1 {
		t.Fatalf("Hits = %d, want 1", got.Hits)
	}
}

func TestGetPropagatesConstructionFailure(t *testing.T) {
	c := newTestCache()
	wantErr := errors.New("boom")
	_, err := c.Get(context.Background(), keyFor("fails"), KindSampler, func() (*CacheElement, error) {
		return nil, wantErr
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if c.Len() != 0 {
		t.Fatalf("failed construction must not leave an entry behind, Len() = %d", c.Len())
	}
}

func TestFlushPromotesToImmutable(t *testing.T) {
	c := newTestCache()
	k := keyFor("renderpass-x")
	_, err := c.Get(context.Background(), k, KindRenderPass, func() (*CacheElement, error) {
		return &CacheElement{Kind: KindRenderPass, RenderPass: vk.RenderPass(7)}, nil
	})
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	c.Flush()

	im := *c.immutable.Load()
	if _, ok := im[k.String()]; !ok {
		t.Fatal("flush must promote the mutable entry into the immutable tier")
	}
	if _, ok := c.mutable[k.String()]; ok {
		t.Fatal("flush must remove the promoted entry from the mutable tier")
	}

	// Subsequent Get must hit the immutable tier without calling build.
	called := false
	e, err := c.Get(context.Background(), k, KindRenderPass, func() (*CacheElement, error) {
		called = true
		return nil, errors.New("should not be called")
	})
	if err != nil {
		t.Fatalf("get after flush: %v", err)
	}
	if called {
		t.Fatal("build must not be called for an immutable-tier hit")
	}
	if e.RenderPass != 7 {
		t.Fatalf("unexpected handle %v", e.RenderPass)
	}
}

func TestClearEmptiesBothTiers(t *testing.T) {
	c := newTestCache()
	_, err := c.Get(context.Background(), keyFor("mutable-only"), KindSampler, func() (*CacheElement, error) {
		return &CacheElement{Kind: KindSampler, Sampler: vk.Sampler(9)}, nil
	})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	c.Flush()
	_, err = c.Get(context.Background(), keyFor("mutable-new"), KindSampler, func() (*CacheElement, error) {
		return &CacheElement{Kind: KindSampler, Sampler: vk.Sampler(10)}, nil
	})
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("Clear must empty both tiers, Len() = %d", c.Len())
	}
}

func TestWarmupThenGetSharesElement(t *testing.T) {
	c := newTestCache()
	k := keyFor("warmed")
	built := &CacheElement{Kind: KindDescriptorSetLayout, DescriptorSetLayout: vk.DescriptorSetLayout(42)}

	if err := c.Warmup(context.Background(), k, KindDescriptorSetLayout, func() (*CacheElement, error) {
		return built, nil
	}); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	e, err := c.Get(context.Background(), k, KindDescriptorSetLayout, func() (*CacheElement, error) {
		t.Fatal("build must not be called after a successful warmup")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e != built {
		t.Fatal("get must return the element warmup constructed")
	}
}

func TestWarmupIsReentrant(t *testing.T) {
	c := newTestCache()
	k := keyFor("reentrant")

	var buildCount int
	var mu sync.Mutex

	build := func() (*CacheElement, error) {
		mu.Lock()
		buildCount++
		mu.Unlock()
		return &CacheElement{Kind: KindSampler, Sampler: vk.Sampler(1)}, nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			return c.Warmup(ctx, k, KindSampler, build)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Warmup: %v", err)
	}

	if buildCount != 1 {
		t.Fatalf("concurrent warmups for the same key must construct once, built %d times", buildCount)
	}
}

func TestWarmupConstructionFailureRemovesPlaceholder(t *testing.T) {
	c := newTestCache()
	k := keyFor("warmup-fails")

	if err := c.Warmup(context.Background(), k, KindSampler, func() (*CacheElement, error) {
		return nil, errors.New("construction failed")
	}); err == nil {
		t.Fatal("expected construction failure to propagate")
	}

	if c.Len() != 0 {
		t.Fatalf("failed warmup must not leave a placeholder behind, Len() = %d", c.Len())
	}

	// A subsequent Warmup for the same key must retry construction.
	called := false
	if err := c.Warmup(context.Background(), k, KindSampler, func() (*CacheElement, error) {
		called = true
		return &CacheElement{Kind: KindSampler, Sampler: vk.Sampler(3)}, nil
	}); err != nil {
		t.Fatalf("retry warmup: %v", err)
	}
	if !called {
		t.Fatal("retry warmup must attempt construction again")
	}
}
