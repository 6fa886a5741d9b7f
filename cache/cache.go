// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/vkcore/internal/assert"
	"github.com/gogpu/vkcore/internal/metrics"
	"github.com/gogpu/vkcore/internal/telemetry"
	"github.com/gogpu/vkcore/internal/tracing"
	"github.com/gogpu/vkcore/key"
	"github.com/gogpu/vkcore/vk"
)

// Constructor builds the Vulkan object a cache miss needs. It is supplied
// by the caller (typically a thin wrapper around structkey.Extract plus the
// matching vk.Commands.CreateXxx call) and must not touch the cache itself.
type Constructor func() (*CacheElement, error)

// slot is a mutable-tier entry. Warmup may publish a slot before its
// element is ready; Get never does — every slot Get inserts is ready at
// insertion time. ready is checked with Load/Store rather than under
// lookupLock so that a concurrent Warmup for the same key can observe
// completion without taking the write lock again.
type slot struct {
	elem  *CacheElement
	ready atomic.Bool
}

// ObjectCache is the structural-key-addressed cache over the six
// Vulkan object kinds. See the package doc for the two-tier design.
type ObjectCache struct {
	cmds   *vk.Commands
	device vk.Device

	lookupLock sync.RWMutex
	createLock sync.Mutex

	immutable atomic.Pointer[map[string]*CacheElement]
	mutable   map[string]*slot

	hits    atomic.Uint64
	misses  atomic.Uint64
	creates atomic.Uint64
}

// Stats reports the running hit/miss/create counters for this cache,
// accumulated across every Get call since New (Warmup does not count as
// either a hit or a miss — it is priming, not a lookup).
type Stats struct {
	Hits    uint64
	Misses  uint64
	Creates uint64
}

// Stats returns a snapshot of c's running counters.
func (c *ObjectCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Creates: c.creates.Load(),
	}
}

// New creates an empty cache bound to device, using cmds to destroy
// elements on Clear.
func New(cmds *vk.Commands, device vk.Device) *ObjectCache {
	c := &ObjectCache{
		cmds:    cmds,
		device:  device,
		mutable: make(map[string]*slot),
	}
	empty := make(map[string]*CacheElement)
	c.immutable.Store(&empty)
	return c
}

// Warmup builds the element for k if no element (ready or in-flight)
// already exists for it, without holding any lock during construction.
// Warmup is reentrant across goroutines racing the same key, but must not
// be called concurrently with Get for that same key; the cache does not
// detect such an overlap.
func (c *ObjectCache) Warmup(ctx context.Context, k key.HashKey, kind Kind, build Constructor) error {
	assert.That(build != nil, "cache.Warmup requires a non-nil Constructor")

	ctx, span := tracing.Start(ctx, "cache.Warmup", tracing.AttrKind.String(kind.String()))
	defer span.End()

	ks := k.String()

	c.lookupLock.Lock()
	im := *c.immutable.Load()
	if _, ok := im[ks]; ok {
		c.lookupLock.Unlock()
		return nil
	}
	if _, ok := c.mutable[ks]; ok {
		c.lookupLock.Unlock()
		return nil
	}
	s := &slot{}
	c.mutable[ks] = s
	c.lookupLock.Unlock()

	elem, err := build()
	if err != nil {
		c.lookupLock.Lock()
		delete(c.mutable, ks)
		c.lookupLock.Unlock()
		metrics.CacheConstructionFailures.WithLabelValues(kind.String()).Inc()
		tracing.SetError(span, err)
		return fmt.Errorf("cache: warmup construct %s: %w", kind, err)
	}
	s.elem = elem
	s.ready.Store(true)
	telemetry.Logger().DebugContext(ctx, "cache warmup built element", "kind", kind.String())
	return nil
}

// Get returns the element for k, building it via build on a miss. Get must
// not be called concurrently with Warmup for the same key.
func (c *ObjectCache) Get(ctx context.Context, k key.HashKey, kind Kind, build Constructor) (*CacheElement, error) {
	assert.That(build != nil, "cache.Get requires a non-nil Constructor")

	ctx, span := tracing.Start(ctx, "cache.Get", tracing.AttrKind.String(kind.String()))
	defer span.End()

	ks := k.String()

	// Step 2: lockless search of the immutable tier.
	if e, ok := (*c.immutable.Load())[ks]; ok {
		span.SetAttributes(tracing.AttrHit.Bool(true))
		metrics.CacheHits.WithLabelValues(kind.String()).Inc()
		c.hits.Add(1)
		return e, nil
	}

	// Step 3: search mutable under lookupLock.
	if e, ok := c.lookupMutable(ks); ok {
		span.SetAttributes(tracing.AttrHit.Bool(true))
		metrics.CacheHits.WithLabelValues(kind.String()).Inc()
		c.hits.Add(1)
		return e, nil
	}

	// Step 4: acquire createLock, double-check mutable.
	c.createLock.Lock()
	defer c.createLock.Unlock()

	if e, ok := c.lookupMutable(ks); ok {
		span.SetAttributes(tracing.AttrHit.Bool(true))
		metrics.CacheHits.WithLabelValues(kind.String()).Inc()
		c.hits.Add(1)
		return e, nil
	}

	// Step 5: construct without holding lookupLock.
	metrics.CacheMisses.WithLabelValues(kind.String()).Inc()
	c.misses.Add(1)
	elem, err := build()
	if err != nil {
		metrics.CacheConstructionFailures.WithLabelValues(kind.String()).Inc()
		tracing.SetError(span, err)
		return nil, fmt.Errorf("cache: get construct %s: %w", kind, err)
	}
	c.creates.Add(1)

	// Step 6: insert, destroying ours if another goroutine beat us to it.
	c.lookupLock.Lock()
	if existing, ok := c.mutable[ks]; ok && existing.ready.Load() {
		c.lookupLock.Unlock()
		elem.destroy(c.cmds, c.device)
		return existing.elem, nil
	}
	s := &slot{elem: elem}
	s.ready.Store(true)
	c.mutable[ks] = s
	c.lookupLock.Unlock()

	telemetry.Logger().DebugContext(ctx, "cache built element", "kind", kind.String())
	return elem, nil
}

func (c *ObjectCache) lookupMutable(ks string) (*CacheElement, bool) {
	c.lookupLock.RLock()
	defer c.lookupLock.RUnlock()
	s, ok := c.mutable[ks]
	if !ok || !s.ready.Load() {
		return nil, false
	}
	return s.elem, true
}

// Flush merges every ready mutable-tier element into the immutable tier,
// clearing them from mutable. Not safe to call concurrently with Get or
// Warmup — the caller must provide exclusivity (typically a frame
// boundary).
func (c *ObjectCache) Flush() {
	c.lookupLock.Lock()
	defer c.lookupLock.Unlock()

	old := *c.immutable.Load()
	merged := make(map[string]*CacheElement, len(old)+len(c.mutable))
	for k, v := range old {
		merged[k] = v
	}
	for k, s := range c.mutable {
		if s.ready.Load() {
			merged[k] = s.elem
			delete(c.mutable, k)
		}
	}
	c.immutable.Store(&merged)

	metrics.CacheSize.WithLabelValues("immutable").Set(float64(len(merged)))
	metrics.CacheSize.WithLabelValues("mutable").Set(float64(len(c.mutable)))
}

// Clear destroys every element in both tiers and resets the cache to empty.
// Not safe to call concurrently with Get, Warmup, or Flush.
func (c *ObjectCache) Clear() {
	c.lookupLock.Lock()
	defer c.lookupLock.Unlock()

	for _, e := range *c.immutable.Load() {
		e.destroy(c.cmds, c.device)
	}
	for _, s := range c.mutable {
		if s.ready.Load() {
			s.elem.destroy(c.cmds, c.device)
		}
	}

	empty := make(map[string]*CacheElement)
	c.immutable.Store(&empty)
	c.mutable = make(map[string]*slot)

	metrics.CacheSize.WithLabelValues("immutable").Set(0)
	metrics.CacheSize.WithLabelValues("mutable").Set(0)
}

// Len reports the combined element count across both tiers, primarily for
// tests and diagnostics.
func (c *ObjectCache) Len() int {
	c.lookupLock.RLock()
	defer c.lookupLock.RUnlock()
	n := len(*c.immutable.Load())
	for _, s := range c.mutable {
		if s.ready.Load() {
			n++
		}
	}
	return n
}
